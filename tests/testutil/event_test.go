package testutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingEvent struct {
	shared.BaseDomainEvent
}

func newPing() *pingEvent {
	return &pingEvent{BaseDomainEvent: shared.NewBaseDomainEvent("Ping", "Test", uuid.New())}
}

func TestEventRecorder(t *testing.T) {
	r := NewEventRecorder("Ping")
	assert.Equal(t, []string{"Ping"}, r.EventTypes())

	first := newPing()
	require.NoError(t, r.Handle(context.Background(), first))

	r.FailWith(errors.New("boom"))
	assert.EqualError(t, r.Handle(context.Background(), newPing()), "boom")

	events := r.Events()
	require.Len(t, events, 2, "failed deliveries are recorded too")
	assert.Same(t, first, events[0])
}

func TestEventRecorder_RequireCount(t *testing.T) {
	r := NewEventRecorder()
	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = r.Handle(context.Background(), newPing())
	}()

	events := r.RequireCount(t, 1, time.Second)
	assert.Len(t, events, 1)
}

func TestWaitForCondition(t *testing.T) {
	assert.True(t, WaitForCondition(t, func() bool { return true }, 10*time.Millisecond, time.Millisecond))
	assert.False(t, WaitForCondition(t, func() bool { return false }, 20*time.Millisecond, 5*time.Millisecond))
}
