package domain

import "time"

// TimeSlot свободный интервал [StartTime, EndTime) в рамках рабочего дня комнаты
// Не хранится в БД, вычисляется из бронирований
type TimeSlot struct {
	StartTime time.Time
	EndTime   time.Time
}

// Duration длительность слота
func (s TimeSlot) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
