package events

import (
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// Типы событий, они же routing key
const (
	TypeBookingCreated = "booking.created"
	TypeBookingDeleted = "booking.deleted"
)

// Event событие жизненного цикла бронирования
type Event struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"bookingId"`
	UserID     string    `json:"userId"`
	RoomID     string    `json:"roomId"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	OccurredAt time.Time `json:"occurredAt"`
}

// BookingCreated событие создания бронирования
func BookingCreated(b *domain.Booking, at time.Time) Event {
	return newEvent(TypeBookingCreated, b, at)
}

// BookingDeleted событие удаления бронирования
func BookingDeleted(b *domain.Booking, at time.Time) Event {
	return newEvent(TypeBookingDeleted, b, at)
}

func newEvent(eventType string, b *domain.Booking, at time.Time) Event {
	return Event{
		Type:       eventType,
		BookingID:  b.ID,
		UserID:     b.UserID,
		RoomID:     b.RoomID,
		StartTime:  b.StartTime.UTC(),
		EndTime:    b.EndTime.UTC(),
		OccurredAt: at.UTC(),
	}
}
