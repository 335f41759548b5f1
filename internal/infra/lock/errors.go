package lock

import "errors"

var (
	// ErrLockNotAcquired возвращается, когда блокировку комнаты не удалось взять за время ожидания
	ErrLockNotAcquired = errors.New("lock: room is locked by another request")

	// ErrRedis возвращается при ошибках обращения к Redis
	ErrRedis = errors.New("lock: redis error")
)
