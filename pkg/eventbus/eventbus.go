package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultHandlerTimeout - сколько может работать один обработчик события.
const DefaultHandlerTimeout = time.Minute

// Event - событие конвейера доски (обновление, ошибка, синхронизация истории).
type Event interface {
	Name() string
}

// Listener обрабатывает событие. Ошибка только логируется.
type Listener func(ctx context.Context, event Event) error

// Bus - шина событий внутри процесса. Каждый обработчик вызывается в своей горутине,
// поэтому Publish не ждет медленных подписчиков (кеш, WebSocket).
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	timeout   time.Duration
	logger    *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	return NewWithTimeout(DefaultHandlerTimeout, logger)
}

func NewWithTimeout(timeout time.Duration, logger *zap.Logger) *Bus {
	if timeout <= 0 {
		timeout = DefaultHandlerTimeout
	}
	return &Bus{
		listeners: make(map[string][]Listener),
		timeout:   timeout,
		logger:    logger,
	}
}

func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish рассылает событие подписчикам. Контекст вызывающего не передается:
// обработчик не должен обрываться вместе с обновлением, которое его породило.
func (b *Bus) Publish(_ context.Context, event Event) {
	eventName := event.Name()

	b.mu.RLock()
	listeners := append([]Listener(nil), b.listeners[eventName]...)
	b.mu.RUnlock()

	for _, listener := range listeners {
		go b.dispatch(eventName, listener, event)
	}
}

func (b *Bus) dispatch(eventName string, l Listener, event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Паника в обработчике события", zap.String("event", eventName), zap.Any("panic", r))
		}
	}()

	if err := l(ctx, event); err != nil {
		b.logger.Error("Ошибка в обработчике события",
			zap.String("event", eventName),
			zap.Error(err),
		)
	}
}
