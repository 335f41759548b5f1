package domain

import "time"

// Booking бронирование переговорной комнаты
// Интервал полуоткрытый: [StartTime, EndTime)
type Booking struct {
	ID        string
	UserID    string
	RoomID    string
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
}

// Duration длительность бронирования
func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// Overlaps проверяет пересечение с интервалом [start, end)
// Граничные случаи (конец одного == начало другого) пересечением не считаются
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}

// IsOwnedBy true, если бронирование принадлежит пользователю
func (b *Booking) IsOwnedBy(userID string) bool {
	return b.UserID == userID
}

// BookingWithRoom бронирование с подставленными данными комнаты
// Room == nil, если комната была удалена (например, при пересидировании)
type BookingWithRoom struct {
	Booking
	Room *RoomSummary
}

// RoomSummary данные комнаты, которые показываются в истории бронирований
type RoomSummary struct {
	Name     string
	Capacity int
}
