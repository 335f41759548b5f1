package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	"github.com/m04kA/SMC-RoomBooking/internal/infra/events"
	"github.com/m04kA/SMC-RoomBooking/internal/infra/lock"
	bookingRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/booking"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	roomLocker   RoomLocker
	publisher    EventPublisher
	metrics      AdmissionMetrics
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// roomLocker и publisher могут быть nil, тогда используются заглушки
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	roomLocker RoomLocker,
	publisher EventPublisher,
	metrics AdmissionMetrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if roomLocker == nil {
		roomLocker = lock.NopLock{}
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if location == nil {
		location = time.Local
	}

	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		roomLocker:   roomLocker,
		publisher:    publisher,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
// Проверка пересечений и вставка выполняются под блокировкой комнаты в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	booking, err := uc.execute(ctx, req)
	if uc.metrics != nil {
		uc.metrics.IncBookingAdmission(admissionOutcome(err))
	}
	if err != nil {
		return nil, err
	}

	return &Response{
		ID:        booking.ID,
		UserID:    booking.UserID,
		RoomID:    booking.RoomID,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		CreatedAt: booking.CreatedAt,
	}, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("CreateBooking: user=%s, room=%s, start=%s, end=%s",
		req.UserID, req.RoomID, req.StartTime.Format(domain.TimeFormat), req.EndTime.Format(domain.TimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Временные ограничения
	now := uc.timeProvider.Now()
	if err := validateBookingTime(req.StartTime, req.EndTime, now, uc.location); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	// 3. Блокировка комнаты
	release, err := uc.roomLocker.Acquire(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, lock.ErrLockNotAcquired) {
			uc.logger.Warn("CreateBooking: room=%s is locked by another request", req.RoomID)
			return nil, fmt.Errorf("%w: %v", ErrRoomBusy, err)
		}
		uc.logger.Error("CreateBooking: failed to lock room=%s: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to lock room: %v", ErrInternal, err)
	}
	defer func() {
		// ctx запроса может быть уже отменен, ключ все равно надо снять
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := release(releaseCtx); err != nil {
			uc.logger.Error("CreateBooking: failed to release lock for room=%s: %v", req.RoomID, err)
		}
	}()

	var result *domain.Booking

	// 4. Проверка пересечений и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		overlapping, err := uc.bookingRepo.FindOverlapping(txCtx, req.RoomID, req.StartTime, req.EndTime)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSerializationFailure) {
				uc.logger.Warn("CreateBooking: serialization failure for room=%s: %v", req.RoomID, err)
				return fmt.Errorf("%w: %v", ErrRoomBusy, err)
			}
			uc.logger.Error("CreateBooking: failed to find overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to find overlapping bookings: %v", ErrInternal, err)
		}

		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: room=%s occupied by booking id=%s (%s - %s)",
				req.RoomID, overlapping[0].ID,
				overlapping[0].StartTime.Format(domain.TimeFormat), overlapping[0].EndTime.Format(domain.TimeFormat))
			return ErrRoomOccupied
		}

		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:    req.UserID,
			RoomID:    req.RoomID,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: room=%s occupied by a concurrent booking", req.RoomID)
				return ErrRoomOccupied
			}
			if errors.Is(err, bookingRepo.ErrSerializationFailure) {
				uc.logger.Warn("CreateBooking: serialization failure for room=%s: %v", req.RoomID, err)
				return fmt.Errorf("%w: %v", ErrRoomBusy, err)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrRoomOccupied), errors.Is(err, ErrRoomBusy), errors.Is(err, ErrInternal):
			return nil, err
		case bookingRepo.IsConflict(err):
			uc.logger.Warn("CreateBooking: exclusion conflict for room=%s: %v", req.RoomID, err)
			return nil, ErrRoomOccupied
		case bookingRepo.IsSerializationFailure(err):
			// 40001 на коммите не доказывает пересечение, клиент может повторить
			uc.logger.Warn("CreateBooking: serialization failure on commit for room=%s: %v", req.RoomID, err)
			return nil, fmt.Errorf("%w: %v", ErrRoomBusy, err)
		default:
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	// 5. Событие; ошибка публикации не влияет на ответ
	if err := uc.publisher.Publish(ctx, events.BookingCreated(result, now)); err != nil {
		uc.logger.Error("CreateBooking: failed to publish event for booking id=%s: %v", result.ID, err)
	}

	return result, nil
}

// admissionOutcome метка исхода для метрик
func admissionOutcome(err error) string {
	switch {
	case err == nil:
		return "ADMITTED"
	case errors.Is(err, ErrPastStart):
		return "PAST_START"
	case errors.Is(err, ErrInvalidRange):
		return "INVALID_RANGE"
	case errors.Is(err, ErrNotHourly):
		return "NOT_HOURLY"
	case errors.Is(err, ErrOutsideBusinessHours):
		return "OUTSIDE_BUSINESS_HOURS"
	case errors.Is(err, ErrRoomOccupied):
		return "ROOM_OCCUPIED"
	case errors.Is(err, ErrRoomBusy):
		return "ROOM_BUSY"
	case errors.Is(err, ErrInvalidInput):
		return "INVALID_INPUT"
	default:
		return "INTERNAL"
	}
}
