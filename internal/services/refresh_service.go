package services

import (
	"context"
	"sync"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"production-board/internal/dto"
	"production-board/internal/events"
	apperrors "production-board/pkg/errors"
	"production-board/pkg/eventbus"
)

type RefreshServiceInterface interface {
	// Trigger ставит обновление в очередь и не блокирует. Сигналы, пришедшие
	// во время обновления, сливаются в один повторный запуск.
	Trigger()
	// Run выполняет обновления по сигналам Trigger до отмены ctx.
	Run(ctx context.Context) error
	// RefreshNow - один полный цикл: загрузка, сверка истории, расчет снимка.
	RefreshNow(ctx context.Context) (*dto.BoardSnapshotDTO, error)
	// ManualSync перечитывает таблицу и запускает ручную синхронизацию истории.
	ManualSync(ctx context.Context) dto.SyncResultDTO
	Current() dto.BoardDTO
}

type RefreshService struct {
	loader  RecordLoaderInterface
	history HistorySyncServiceInterface
	phrases PhraseServiceInterface
	bus     *eventbus.Bus
	logger  *zap.Logger
	clock   func() time.Time

	trigger chan struct{}
	runMu   sync.Mutex

	mu       sync.RWMutex
	state    dto.BoardStateDTO
	snapshot *dto.BoardSnapshotDTO
}

func NewRefreshService(
	loader RecordLoaderInterface,
	history HistorySyncServiceInterface,
	phrases PhraseServiceInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) RefreshServiceInterface {
	s := &RefreshService{
		loader:  loader,
		history: history,
		phrases: phrases,
		bus:     bus,
		logger:  logger,
		clock:   time.Now,
		trigger: make(chan struct{}, 1),
	}
	s.state = dto.BoardStateDTO{Status: dto.BoardStatusOK, UpdatedAt: s.clock()}
	if initErr := history.InitError(); initErr != nil {
		s.state.StoreError = null.StringFrom(initErr.Error())
	}
	return s
}

func (s *RefreshService) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
		s.logger.Debug("Обновление уже запланировано, сигнал объединен")
	}
}

func (s *RefreshService) Run(ctx context.Context) error {
	s.logger.Info("Цикл обновления доски запущен")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Цикл обновления доски остановлен")
			return nil
		case <-s.trigger:
			if _, err := s.RefreshNow(ctx); err != nil {
				s.logger.Warn("Обновление не удалось, ждем следующего сигнала", zap.Error(err))
			}
		}
	}
}

func (s *RefreshService) RefreshNow(ctx context.Context) (*dto.BoardSnapshotDTO, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	now := s.clock()
	runID := uuid.NewString()
	log := s.logger.With(zap.String("refresh", runID))
	log.Info("Обновление доски")

	records, err := s.loader.Load(ctx)
	if err != nil {
		log.Error("Таблица недоступна", zap.Error(err))
		state := s.setFailed(err, now)
		s.publish(ctx, events.BoardFailedEvent{State: state})
		return nil, err
	}

	// сбой хранилища не мешает показу данных, он попадает только в History
	history := s.history.Reconcile(ctx, records)
	s.publish(ctx, events.HistorySyncedEvent{Result: history})

	snapshot := &dto.BoardSnapshotDTO{
		ID:          runID,
		GeneratedAt: now,
		Views:       PartitionViews(records, now),
		Metrics:     ComputeMonthlyMetrics(records, now),
		Weekly:      ComputeWeeklySeries(records, now),
		Phrase:      s.phrases.PhraseFor(now),
		History:     history,
	}

	state := s.setOK(snapshot, now)
	s.publish(ctx, events.BoardRefreshedEvent{Snapshot: *snapshot, State: state})

	log.Info("Доска обновлена",
		zap.Int("records", len(records)),
		zap.Int("active", len(snapshot.Views.Active)),
		zap.Int("completed_today", len(snapshot.Views.CompletedToday)),
		zap.Bool("history_ok", history.Success),
	)
	return snapshot, nil
}

func (s *RefreshService) ManualSync(ctx context.Context) dto.SyncResultDTO {
	records, err := s.loader.Load(ctx)
	if err != nil {
		s.logger.Error("Ручная синхронизация: таблица недоступна", zap.Error(err))
		return dto.SyncResultDTO{
			Success:   false,
			ErrorKind: apperrors.KindOf(err),
			Message:   apperrors.UserMessage(err),
		}
	}

	result := s.history.ManualSync(ctx, records, s.clock())
	s.publish(ctx, events.HistorySyncedEvent{Result: result, Manual: true})
	return result
}

func (s *RefreshService) Current() dto.BoardDTO {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return dto.BoardDTO{State: s.state, Snapshot: s.snapshot}
}

func (s *RefreshService) setFailed(err error, now time.Time) dto.BoardStateDTO {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Status = dto.BoardStatusError
	s.state.ErrorKind = apperrors.KindOf(err)
	s.state.ErrorMessage = apperrors.UserMessage(err)
	s.state.UpdatedAt = now
	return s.state
}

func (s *RefreshService) setOK(snapshot *dto.BoardSnapshotDTO, now time.Time) dto.BoardStateDTO {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = snapshot
	s.state.Status = dto.BoardStatusOK
	s.state.ErrorKind = ""
	s.state.ErrorMessage = ""
	s.state.LastSuccess = null.TimeFrom(now)
	s.state.UpdatedAt = now
	return s.state
}

func (s *RefreshService) publish(ctx context.Context, event eventbus.Event) {
	if s.bus != nil {
		s.bus.Publish(ctx, event)
	}
}

