package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	RoomID string    // ID комнаты (UUID)
	Date   time.Time // Календарный день, время игнорируется
}

// Response модель ответа со списком свободных слотов
type Response struct {
	RoomID string
	Date   time.Time
	Slots  []domain.TimeSlot // По возрастанию StartTime
}
