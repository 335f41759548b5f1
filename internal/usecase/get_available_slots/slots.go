package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// computeFreeSlots вычисляет свободные промежутки окна [windowStart, windowEnd)
// bookings должны быть отсортированы по StartTime и лежать внутри окна.
// Курсор идет от начала окна: перед каждым бронированием выдается промежуток
// [cursor, booking.Start), если он непустой, затем курсор сдвигается на max(cursor, booking.End).
func computeFreeSlots(windowStart, windowEnd time.Time, bookings []*domain.Booking) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)
	cursor := windowStart

	for _, booking := range bookings {
		if cursor.Before(booking.StartTime) {
			slots = append(slots, domain.TimeSlot{StartTime: cursor, EndTime: booking.StartTime})
		}
		if booking.EndTime.After(cursor) {
			cursor = booking.EndTime
		}
	}

	if cursor.Before(windowEnd) {
		slots = append(slots, domain.TimeSlot{StartTime: cursor, EndTime: windowEnd})
	}

	return slots
}
