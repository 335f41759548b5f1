package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	RoomID    string        `json:"roomId"`
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	CreatedAt time.Time     `json:"createdAt"`
	Room      *RoomResponse `json:"room"` // null, если комнаты больше нет
}

// RoomResponse данные комнаты в истории бронирований
type RoomResponse struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		RoomID:    b.RoomID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список бронирований с комнатами в DTO
func FromDomainBookingList(bookings []*domain.BookingWithRoom) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		if b == nil {
			continue
		}
		item := FromDomainBooking(&b.Booking)
		if b.Room != nil {
			item.Room = &RoomResponse{Name: b.Room.Name, Capacity: b.Room.Capacity}
		}
		resp.Bookings = append(resp.Bookings, *item)
	}

	return resp
}
