package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakePurger struct {
	removed int64
	err     error
	maxAge  time.Duration
	calls   atomic.Int32
}

func (f *fakePurger) PurgeStale(_ context.Context, maxAge time.Duration) (int64, error) {
	f.calls.Add(1)
	f.maxAge = maxAge
	return f.removed, f.err
}

func TestRegister_Validation(t *testing.T) {
	s := New(Config{}, zaptest.NewLogger(t))
	noop := JobFunc(func(context.Context) error { return nil })

	require.NoError(t, s.Register("nightly", "30 3 * * *", noop))
	assert.ErrorIs(t, s.Register("nightly", "@hourly", noop), ErrDuplicateJob)
	assert.ErrorIs(t, s.Register("broken", "61 * * * *", noop), ErrInvalidSchedule)
	assert.ErrorIs(t, s.Register("seconds", "*/5 * * * * *", noop), ErrInvalidSchedule)
}

func TestRunNow_RecordsStatus(t *testing.T) {
	s := New(Config{}, zaptest.NewLogger(t))
	boom := errors.New("boom")
	fail := true
	require.NoError(t, s.Register("flaky", "@daily", JobFunc(func(context.Context) error {
		if fail {
			return boom
		}
		return nil
	})))

	assert.ErrorIs(t, s.RunNow(context.Background(), "flaky"), boom)
	fail = false
	require.NoError(t, s.RunNow(context.Background(), "flaky"))
	assert.ErrorIs(t, s.RunNow(context.Background(), "missing"), ErrJobNotFound)

	statuses := s.Status()
	require.Len(t, statuses, 1)
	assert.Equal(t, 2, statuses[0].Runs)
	assert.NoError(t, statuses[0].LastErr)
	assert.Equal(t, "@daily", statuses[0].Schedule)
}

func TestRunNow_AppliesJobTimeout(t *testing.T) {
	s := New(Config{JobTimeout: 20 * time.Millisecond}, zaptest.NewLogger(t))
	require.NoError(t, s.Register("slow", "@hourly", JobFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})))

	assert.ErrorIs(t, s.RunNow(context.Background(), "slow"), context.DeadlineExceeded)
}

func TestStartStop(t *testing.T) {
	s := New(Config{}, zaptest.NewLogger(t))
	require.NoError(t, s.Register("purge", "@every 10ms", JobFunc(func(context.Context) error { return nil })))

	s.Start()
	s.Start()
	require.Eventually(t, func() bool { return s.Status()[0].Runs > 0 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	require.NoError(t, s.Stop(ctx))
}

func TestCartPurgeJob(t *testing.T) {
	purger := &fakePurger{removed: 7}
	job := NewCartPurgeJob(purger, 48*time.Hour, zaptest.NewLogger(t))

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 48*time.Hour, purger.maxAge)
	assert.Equal(t, int32(1), purger.calls.Load())

	purger.err = errors.New("db down")
	assert.Error(t, job.Run(context.Background()))
}
