package listeners

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"production-board/internal/events"
	"production-board/internal/services"
	"production-board/pkg/constants"
	"production-board/pkg/eventbus"
	"production-board/pkg/websocket"
)

// BoardListener кладет результаты обновлений в кеш и рассылает их экранам.
type BoardListener struct {
	cache    *services.BaseService
	notifier services.WebSocketNotificationServiceInterface
	logger   *zap.Logger

	// шина вызывает обработчики в горутинах. mu держится от проверки свежести
	// до рассылки, иначе старый снимок может записаться и уйти экранам последним.
	mu         sync.Mutex
	lastStored time.Time
}

func NewBoardListener(
	cache *services.BaseService,
	notifier services.WebSocketNotificationServiceInterface,
	logger *zap.Logger,
) *BoardListener {
	return &BoardListener{cache: cache, notifier: notifier, logger: logger}
}

func (l *BoardListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.BoardRefreshed, l.handleBoardRefreshed)
	bus.Subscribe(events.BoardFailed, l.handleBoardFailed)
	bus.Subscribe(events.HistorySynced, l.handleHistorySynced)
	l.logger.Info("BoardListener подписан на события доски")
}

func (l *BoardListener) handleBoardRefreshed(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.BoardRefreshedEvent)
	if !ok {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.claimLocked(e.State.UpdatedAt) {
		l.logger.Debug("Пропущен устаревший снимок", zap.String("snapshot", e.Snapshot.ID))
		return nil
	}

	if err := l.cache.CacheSet(ctx, constants.CacheKeyBoardSnapshot, e.Snapshot, 0); err != nil {
		l.logger.Error("Не удалось сохранить снимок в кеш", zap.Error(err))
	}
	if err := l.cache.CacheSet(ctx, constants.CacheKeyBoardState, e.State, 0); err != nil {
		l.logger.Error("Не удалось сохранить состояние в кеш", zap.Error(err))
	}
	count := l.cache.CacheIncr(ctx, constants.CacheKeyRefreshCount)

	l.logger.Info("Снимок доски опубликован",
		zap.String("snapshot", e.Snapshot.ID),
		zap.Int("active", len(e.Snapshot.Views.Active)),
		zap.Int64("refreshes", count),
	)
	return l.notifier.Broadcast(websocket.MessageBoardSnapshot, e.Snapshot)
}

func (l *BoardListener) handleBoardFailed(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.BoardFailedEvent)
	if !ok {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.claimLocked(e.State.UpdatedAt) {
		return nil
	}

	// снимок не трогаем: после восстановления экран сразу покажет последние данные
	if err := l.cache.CacheSet(ctx, constants.CacheKeyBoardState, e.State, 0); err != nil {
		l.logger.Error("Не удалось сохранить состояние в кеш", zap.Error(err))
	}
	return l.notifier.Broadcast(websocket.MessageBoardError, e.State)
}

func (l *BoardListener) handleHistorySynced(_ context.Context, event eventbus.Event) error {
	e, ok := event.(events.HistorySyncedEvent)
	if !ok {
		return nil
	}
	return l.notifier.Broadcast(websocket.MessageHistorySynced, e.Result)
}

// claimLocked - true, если событие не старше уже записанного. Вызывается под l.mu.
func (l *BoardListener) claimLocked(at time.Time) bool {
	if at.Before(l.lastStored) {
		return false
	}
	l.lastStored = at
	return true
}
