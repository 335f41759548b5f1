package domain

import "time"

// Room переговорная комната
type Room struct {
	ID        string
	Name      string
	Capacity  int
	CreatedAt time.Time
}

// RoomsFilter фильтр списка комнат
type RoomsFilter struct {
	MinCapacity *int // nil - без ограничения по вместимости
}
