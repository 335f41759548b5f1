package booking

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotNotAvailable возвращается, когда интервал уже занят (сработал exclusion constraint)
	ErrSlotNotAvailable = errors.New("booking.repository: slot not available")

	// ErrSerializationFailure возвращается, когда SERIALIZABLE транзакция не смогла сериализоваться
	// Интервал при этом может быть свободен, запрос можно повторить
	ErrSerializationFailure = errors.New("booking.repository: serialization failure")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)

// Коды ошибок PostgreSQL
const (
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
)

// IsConflict true, если ошибка означает пересечение с другим бронированием
// Проверяет как ErrSlotNotAvailable, так и "сырую" ошибку PostgreSQL 23P01
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrSlotNotAvailable) {
		return true
	}
	return hasPgCode(err, pgExclusionViolation)
}

// IsSerializationFailure true, если SERIALIZABLE транзакция откатилась с 40001
// (например, на Commit). Это не означает занятый интервал: PostgreSQL
// блокирует предикаты на уровне страниц индекса и даёт ложные срабатывания.
func IsSerializationFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrSerializationFailure) {
		return true
	}
	return hasPgCode(err, pgSerializationFailure)
}

func hasPgCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == code
	}
	return false
}
