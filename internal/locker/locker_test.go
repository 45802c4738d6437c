package locker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAppointmentDayKey(t *testing.T) {
	assert.Equal(t, "appointments:lock:42:2026-10-14", AppointmentDayKey(42, "2026-10-14"))
}

func TestNoopLocker(t *testing.T) {
	var l Locker = NoopLocker{}

	acquired, token, err := l.TryLock(context.Background(), "k", time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)
	assert.Empty(t, token)

	// повторный захват тоже проходит, блокировки нет
	acquired, _, err = l.TryLock(context.Background(), "k", time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)

	assert.NoError(t, l.Unlock(context.Background(), "k", token))
}

func TestRedisLocker_RejectsNonPositiveTTL(t *testing.T) {
	// до Redis дело не доходит, клиент не нужен
	l := NewRedisLocker(nil, zap.NewNop())

	for _, ttl := range []time.Duration{0, -time.Second} {
		acquired, token, err := l.TryLock(context.Background(), AppointmentDayKey(10, "2026-10-14"), ttl)
		require.ErrorIs(t, err, ErrInvalidTTL)
		assert.False(t, acquired)
		assert.Empty(t, token)
	}
}
