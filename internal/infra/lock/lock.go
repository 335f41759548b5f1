package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultTTL          = 5 * time.Second
	DefaultWait         = 2 * time.Second
	DefaultRetryBackoff = 50 * time.Millisecond
	DefaultKeyPrefix    = "room-booking:lock:room"
)

// ReleaseFunc снимает взятую блокировку
type ReleaseFunc func(ctx context.Context) error

// Ключ удаляется, только если в нём всё ещё наш токен.
// Иначе блокировка уже истекла по TTL и её взял кто-то другой.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Options параметры блокировки
type Options struct {
	TTL          time.Duration // Время жизни ключа, страхует от упавшего держателя
	Wait         time.Duration // Сколько ждать освобождения перед ErrLockNotAcquired
	RetryBackoff time.Duration // Пауза между попытками
	KeyPrefix    string
}

// RoomLock взаимное исключение по ID комнаты на Redis (SET NX PX + compare-and-delete)
type RoomLock struct {
	client redis.Cmdable
	opts   Options
}

// NewRoomLock создает блокировку поверх клиента Redis
func NewRoomLock(client redis.Cmdable, opts Options) *RoomLock {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Wait < 0 {
		opts.Wait = 0
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = DefaultRetryBackoff
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = DefaultKeyPrefix
	}

	return &RoomLock{client: client, opts: opts}
}

// Acquire берет блокировку комнаты roomID
// Пока блокировка занята, повторяет попытки до истечения opts.Wait или отмены ctx.
func (l *RoomLock) Acquire(ctx context.Context, roomID string) (ReleaseFunc, error) {
	key := l.key(roomID)
	token := uuid.NewString()
	deadline := time.Now().Add(l.opts.Wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.opts.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: Acquire - set %s: %v", ErrRedis, key, err)
		}
		if ok {
			return l.releaseFunc(key, token), nil
		}

		if !time.Now().Before(deadline) {
			return nil, fmt.Errorf("%w: room=%s", ErrLockNotAcquired, roomID)
		}

		timer := time.NewTimer(l.opts.RetryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("%w: room=%s: %v", ErrLockNotAcquired, roomID, ctx.Err())
		case <-timer.C:
		}
	}
}

func (l *RoomLock) releaseFunc(key, token string) ReleaseFunc {
	return func(ctx context.Context) error {
		err := releaseScript.Run(ctx, l.client, []string{key}, token).Err()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("%w: Release - %s: %v", ErrRedis, key, err)
		}
		return nil
	}
}

func (l *RoomLock) key(roomID string) string {
	return l.opts.KeyPrefix + ":" + roomID
}

// NopLock блокировка-заглушка, когда Redis не настроен
// Гонку в этом случае закрывают транзакция и exclusion constraint в БД.
type NopLock struct{}

// Acquire всегда успешен
func (NopLock) Acquire(context.Context, string) (ReleaseFunc, error) {
	return func(context.Context) error { return nil }, nil
}
