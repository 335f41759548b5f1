package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// validateRequest валидирует наличие и формат входных данных
func validateRequest(req *Request) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	if req.RoomID == "" {
		return fmt.Errorf("%w: roomId is required", ErrInvalidInput)
	}

	if _, err := uuid.Parse(req.RoomID); err != nil {
		return fmt.Errorf("%w: roomId must be a valid id", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	return nil
}

// validateBookingTime проверяет временные ограничения бронирования
// Порядок проверок фиксирован, возвращается первая нарушенная.
//
// Для окончания проверяется только час по местному времени (<= 18),
// поэтому окончание в 00:00 следующего дня проходит проверку.
func validateBookingTime(start, end, now time.Time, loc *time.Location) error {
	// 1. Начало строго в будущем
	if !start.After(now) {
		return ErrPastStart
	}

	// 2. Окончание строго позже начала
	if !end.After(start) {
		return ErrInvalidRange
	}

	localStart := start.In(loc)
	localEnd := end.In(loc)

	// 3. Только целые часы
	if !isFullHour(localStart) || !isFullHour(localEnd) {
		return fmt.Errorf("%w: got %s - %s", ErrNotHourly,
			localStart.Format(domain.TimeFormat), localEnd.Format(domain.TimeFormat))
	}

	// 4. Рабочие часы
	if localStart.Hour() < domain.BusinessOpenHour ||
		localStart.Hour() >= domain.BusinessCloseHour ||
		localEnd.Hour() > domain.BusinessCloseHour {
		return fmt.Errorf("%w: got %02d:00 - %02d:00", ErrOutsideBusinessHours, localStart.Hour(), localEnd.Hour())
	}

	return nil
}

// isFullHour true, если минуты, секунды и наносекунды нулевые
func isFullHour(t time.Time) bool {
	return t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}
