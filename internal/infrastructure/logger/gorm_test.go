package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGorm(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func TestGormLogger_Options(t *testing.T) {
	gl, _ := newObservedGorm(gormlogger.Info,
		WithSlowThreshold(500*time.Millisecond),
		WithIgnoreRecordNotFoundError(false),
		WithFullSQL(true),
	)
	assert.Equal(t, 500*time.Millisecond, gl.slowThreshold)
	assert.False(t, gl.ignoreRecordNotFoundError)
	assert.True(t, gl.fullSQL)
}

func TestGormLogger_LogMode(t *testing.T) {
	gl, _ := newObservedGorm(gormlogger.Info)
	changed, ok := gl.LogMode(gormlogger.Warn).(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, changed.logLevel)
	assert.Equal(t, gormlogger.Info, gl.logLevel)
}

func TestGormLogger_Messages(t *testing.T) {
	gl, recorded := newObservedGorm(gormlogger.Warn)
	ctx := context.Background()

	gl.Info(ctx, "suppressed %d", 1)
	gl.Warn(ctx, "warn %s", "x")
	gl.Error(ctx, "error %s", "y")

	require.Len(t, recorded.All(), 2)
	assert.Equal(t, "warn x", recorded.All()[0].Message)
}

func TestGormLogger_Trace(t *testing.T) {
	query := func() (string, int64) {
		return `SELECT * FROM "users" WHERE email = 'jane@example.com' AND id = 42`, 1
	}

	t.Run("error", func(t *testing.T) {
		gl, recorded := newObservedGorm(gormlogger.Info)
		gl.Trace(context.Background(), time.Now(), query, errors.New("boom"))
		assert.Equal(t, 1, recorded.FilterMessage("SQL Error").Len())
	})

	t.Run("record not found is ignored", func(t *testing.T) {
		gl, recorded := newObservedGorm(gormlogger.Info)
		gl.Trace(context.Background(), time.Now(), query, gormlogger.ErrRecordNotFound)
		assert.Zero(t, recorded.Len())
	})

	t.Run("slow query", func(t *testing.T) {
		gl, recorded := newObservedGorm(gormlogger.Warn, WithSlowThreshold(time.Millisecond))
		gl.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)
		require.Equal(t, 1, recorded.Len())
		assert.Equal(t, zapcore.WarnLevel, recorded.All()[0].Level)
	})

	t.Run("silent", func(t *testing.T) {
		gl, recorded := newObservedGorm(gormlogger.Silent)
		gl.Trace(context.Background(), time.Now(), query, errors.New("boom"))
		assert.Zero(t, recorded.Len())
	})

	t.Run("redacts literals by default", func(t *testing.T) {
		gl, recorded := newObservedGorm(gormlogger.Info)
		ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
		gl.Trace(ctx, time.Now(), query, nil)

		require.Equal(t, 1, recorded.Len())
		fields := recorded.All()[0].ContextMap()
		assert.NotContains(t, fields["sql"], "jane@example.com")
		assert.NotContains(t, fields["sql"], "42")
		assert.Equal(t, "req-1", fields["request_id"])
	})

	t.Run("zero threshold disables slow logging", func(t *testing.T) {
		gl, recorded := newObservedGorm(gormlogger.Warn, WithSlowThreshold(0))
		gl.Trace(context.Background(), time.Now().Add(-time.Minute), query, nil)
		assert.Zero(t, recorded.Len())
	})

	t.Run("tags cart session and user", func(t *testing.T) {
		gl, recorded := newObservedGorm(gormlogger.Info)
		ctx := context.WithValue(context.Background(), SessionIDKey, "sess-3")
		ctx = context.WithValue(ctx, UserIDKey, "user-3")
		gl.Trace(ctx, time.Now(), query, errors.New("deadlock detected"))

		fields := recorded.FilterMessage("SQL Error").All()[0].ContextMap()
		assert.Equal(t, "sess-3", fields["session_id"])
		assert.Equal(t, "user-3", fields["user_id"])
	})

	t.Run("full sql keeps values", func(t *testing.T) {
		gl, recorded := newObservedGorm(gormlogger.Info, WithFullSQL(true))
		gl.Trace(context.Background(), time.Now(), query, nil)
		assert.Contains(t, recorded.All()[0].ContextMap()["sql"], "jane@example.com")
	})
}

func TestRedactSQL(t *testing.T) {
	assert.Equal(t,
		`UPDATE "products" SET stock = stock - ? WHERE id = '?' AND stock >= ?`,
		RedactSQL(`UPDATE "products" SET stock = stock - 3 WHERE id = 'a-b' AND stock >= 3`))
	assert.Equal(t, `SELECT '?'`, RedactSQL(`SELECT 'it''s'`))
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("other"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("INFO"))
}
