package eventbus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type testEvent struct{ name string }

func (e testEvent) Name() string { return e.name }

func TestBus_DeliversOnlyToSubscribers(t *testing.T) {
	bus := New(zap.NewNop())
	var refreshed, failed atomic.Int32

	bus.Subscribe("board.refreshed", func(context.Context, Event) error { refreshed.Add(1); return nil })
	bus.Subscribe("board.refreshed", func(context.Context, Event) error { refreshed.Add(1); return errors.New("falhou") })
	bus.Subscribe("board.failed", func(context.Context, Event) error { failed.Add(1); return nil })

	bus.Publish(context.Background(), testEvent{name: "board.refreshed"})

	assert.Eventually(t, func() bool { return refreshed.Load() == 2 }, time.Second, 5*time.Millisecond)
	assert.Zero(t, failed.Load())
}

func TestBus_HandlerContextOutlivesPublisher(t *testing.T) {
	bus := NewWithTimeout(time.Second, zap.NewNop())
	done := make(chan error, 1)
	bus.Subscribe("history.synced", func(ctx context.Context, _ Event) error {
		time.Sleep(20 * time.Millisecond)
		done <- ctx.Err()
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	bus.Publish(ctx, testEvent{name: "history.synced"})
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("обработчик не был вызван")
	}
}

func TestBus_PanickingHandlerDoesNotCrash(t *testing.T) {
	bus := New(zap.NewNop())
	var ok atomic.Bool
	bus.Subscribe("x", func(context.Context, Event) error { panic("boom") })
	bus.Subscribe("x", func(context.Context, Event) error { ok.Store(true); return nil })

	bus.Publish(context.Background(), testEvent{name: "x"})
	assert.Eventually(t, ok.Load, time.Second, 5*time.Millisecond)
}
