package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// UseCase use case для получения свободных слотов комнаты на день
type UseCase struct {
	bookingRepo BookingRepository
	location    *time.Location
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
// location - часовой пояс, в котором считается рабочее окно 08:00-18:00
func NewUseCase(
	bookingRepo BookingRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.Local
	}

	return &UseCase{
		bookingRepo: bookingRepo,
		location:    location,
		logger:      logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: room=%s, date=%s", req.RoomID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Рабочее окно дня
	windowStart, windowEnd := domain.BusinessWindow(req.Date, uc.location)

	// 3. Бронирования, целиком лежащие в окне
	bookings, err := uc.bookingRepo.FindContained(ctx, req.RoomID, windowStart, windowEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for room=%s: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Свободные промежутки
	slots := computeFreeSlots(windowStart, windowEnd, bookings)

	uc.logger.Info("GetAvailableSlots: room=%s, date=%s, bookings=%d, free slots=%d",
		req.RoomID, req.Date.Format(domain.DateFormat), len(bookings), len(slots))

	return &Response{
		RoomID: req.RoomID,
		Date:   req.Date,
		Slots:  slots,
	}, nil
}
