package domain

import "time"

// Рабочие часы: бронировать можно только в окне [08:00, 18:00) по местному времени
const (
	BusinessOpenHour  = 8
	BusinessCloseHour = 18
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	TimeFormat = time.RFC3339
)

// BusinessWindow возвращает рабочее окно [open, close) для календарного дня date в зоне loc
// Берется календарная дата из date как есть (time.Parse(DateFormat) отдает полночь UTC)
func BusinessWindow(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	open := time.Date(y, m, d, BusinessOpenHour, 0, 0, 0, loc)
	closing := time.Date(y, m, d, BusinessCloseHour, 0, 0, 0, loc)
	return open, closing
}
