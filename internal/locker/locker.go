package locker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrNotOwner - ключ занят чужим токеном или уже истёк
var ErrNotOwner = errors.New("lock not owned by this client")

// ErrInvalidTTL - без положительного TTL ключ в Redis никогда не истечёт
var ErrInvalidTTL = errors.New("lock ttl must be positive")

// Locker - кратковременная распределённая блокировка по ключу
type Locker interface {
	// TryLock пытается захватить ключ. Возвращает токен владельца,
	// либо acquired=false если ключ уже занят
	TryLock(ctx context.Context, key string, ttl time.Duration) (acquired bool, token string, err error)
	Unlock(ctx context.Context, key, token string) error
}

// Удаляем ключ только если он всё ещё принадлежит нам
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker блокировка на SET NX с токеном
type RedisLocker struct {
	client redis.UniversalClient
	logger *zap.Logger
}

func NewRedisLocker(client redis.UniversalClient, logger *zap.Logger) *RedisLocker {
	return &RedisLocker{
		client: client,
		logger: logger,
	}
}

func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, string, error) {
	if ttl <= 0 {
		return false, "", fmt.Errorf("set lock %s: %w", key, ErrInvalidTTL)
	}

	token := uuid.NewString()

	acquired, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		l.logger.Error("Failed to acquire lock", zap.String("key", key), zap.Error(err))
		return false, "", fmt.Errorf("set lock %s: %w", key, err)
	}

	if !acquired {
		l.logger.Debug("Lock is busy", zap.String("key", key))
		return false, "", nil
	}

	l.logger.Debug("Lock acquired", zap.String("key", key), zap.Duration("ttl", ttl))
	return true, token, nil
}

func (l *RedisLocker) Unlock(ctx context.Context, key, token string) error {
	deleted, err := unlockScript.Run(ctx, l.client, []string{key}, token).Int64()
	if err != nil {
		l.logger.Error("Failed to release lock", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("release lock %s: %w", key, err)
	}

	if deleted == 0 {
		l.logger.Warn("Lock was not owned on release", zap.String("key", key))
		return ErrNotOwner
	}

	return nil
}

// NoopLocker используется когда Redis не настроен.
// Защита от гонки остаётся на стороне базы
type NoopLocker struct{}

func (NoopLocker) TryLock(_ context.Context, _ string, _ time.Duration) (bool, string, error) {
	return true, "", nil
}

func (NoopLocker) Unlock(_ context.Context, _, _ string) error {
	return nil
}

// AppointmentDayKey ключ блокировки дня специалиста
func AppointmentDayKey(professionalID int64, date string) string {
	return fmt.Sprintf("appointments:lock:%d:%s", professionalID, date)
}

// NewRedisClient создаёт клиента и проверяет соединение
func NewRedisClient(ctx context.Context, addr, password string, db int, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info("Connected to Redis", zap.String("addr", addr), zap.Int("db", db))
	return client, nil
}
