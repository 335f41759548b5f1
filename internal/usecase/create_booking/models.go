package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID    string    // ID пользователя из токена
	RoomID    string    // ID комнаты (UUID)
	StartTime time.Time // Начало, включительно
	EndTime   time.Time // Окончание, не включительно
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        string
	UserID    string
	RoomID    string
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
}
