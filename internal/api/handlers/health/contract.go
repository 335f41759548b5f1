package health

import (
	"context"
	"time"
)

// Pinger проверка доступности БД, *sql.DB подходит как есть
type Pinger interface {
	PingContext(ctx context.Context) error
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}
