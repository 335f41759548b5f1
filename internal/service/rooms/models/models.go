package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// RoomResponse ответ с данными комнаты
type RoomResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"createdAt"`
}

// RoomListResponse ответ со списком комнат
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// SeedResponse ответ на наполнение каталога
type SeedResponse struct {
	Message string         `json:"message"`
	Rooms   []RoomResponse `json:"rooms"`
}

// SeedRoom комната из конфигурации для наполнения каталога
type SeedRoom struct {
	Name     string
	Capacity int
}

// FromDomainRoomList конвертирует список domain моделей в DTO
func FromDomainRoomList(rooms []*domain.Room) []RoomResponse {
	result := make([]RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		if r == nil {
			continue
		}
		result = append(result, RoomResponse{
			ID:        r.ID,
			Name:      r.Name,
			Capacity:  r.Capacity,
			CreatedAt: r.CreatedAt,
		})
	}
	return result
}
