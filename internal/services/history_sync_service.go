package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"production-board/internal/dto"
	"production-board/internal/entities"
	"production-board/internal/repositories"
	"production-board/pkg/constants"
	apperrors "production-board/pkg/errors"
	"production-board/pkg/types"
)

type HistorySyncServiceInterface interface {
	// Reconcile приводит таблицу concluidos в соответствие со снимком: добавляет новые
	// завершенные заказы и, если включено, удаляет те, что больше не "Concluído".
	Reconcile(ctx context.Context, records []entities.OrderRecord) dto.SyncResultDTO
	// ManualSync добавляет завершенные за последние 30 дней заказы. Никогда не удаляет.
	ManualSync(ctx context.Context, records []entities.OrderRecord, now time.Time) dto.SyncResultDTO
	List(ctx context.Context, filter types.Filter) ([]dto.HistoryItemDTO, uint64, error)
	// InitError - ошибка открытия хранилища при старте, nil если все в порядке.
	InitError() error
}

type HistorySyncService struct {
	mu        sync.Mutex
	repo      repositories.CompletedOrderRepositoryInterface
	txManager repositories.TxManagerInterface
	prune     bool
	initErr   error
	logger    *zap.Logger
}

// NewHistorySyncService. Если initErr не nil (база не открылась), все операции
// возвращают результат StoreInit, не трогая repo.
func NewHistorySyncService(
	repo repositories.CompletedOrderRepositoryInterface,
	txManager repositories.TxManagerInterface,
	prune bool,
	initErr error,
	logger *zap.Logger,
) HistorySyncServiceInterface {
	if initErr == nil && (repo == nil || txManager == nil) {
		initErr = apperrors.NewStoreInit("хранилище истории не настроено", nil)
	}
	return &HistorySyncService{
		repo:      repo,
		txManager: txManager,
		prune:     prune,
		initErr:   initErr,
		logger:    logger,
	}
}

func (s *HistorySyncService) InitError() error {
	return s.initErr
}

func (s *HistorySyncService) Reconcile(ctx context.Context, records []entities.OrderRecord) dto.SyncResultDTO {
	if s.initErr != nil {
		return s.initFailure()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	candidates := completedCandidates(records, nil)
	result := dto.SyncResultDTO{Considered: len(candidates)}

	err := s.txManager.RunInTransaction(ctx, func(tx *sql.Tx) error {
		repo := s.repo.WithTx(tx)

		stored, err := repo.ListIDs(ctx)
		if err != nil {
			return err
		}

		snapshot := make(map[string]struct{}, len(candidates))
		var toAdd []entities.CompletedOrder
		for _, c := range candidates {
			snapshot[c.OrderID] = struct{}{}
			if _, ok := stored[c.OrderID]; !ok {
				toAdd = append(toAdd, c)
			}
		}

		if s.prune {
			var toRemove []string
			for id := range stored {
				if _, ok := snapshot[id]; !ok {
					toRemove = append(toRemove, id)
				}
			}
			sort.Strings(toRemove)
			if result.Removed, err = repo.DeleteByIDs(ctx, toRemove); err != nil {
				return err
			}
		}

		result.Inserted, err = repo.InsertOrIgnore(ctx, toAdd)
		return err
	})
	if err != nil {
		return s.storeFailure("Reconcile", err)
	}

	result.Success = true
	if result.Inserted == 0 && result.Removed == 0 {
		result.Message = "Histórico já está atualizado."
	} else {
		result.Message = fmt.Sprintf("Histórico sincronizado: %d pedido(s) adicionado(s), %d removido(s).", result.Inserted, result.Removed)
	}

	s.logger.Info("Сверка истории завершена",
		zap.Int("considered", result.Considered),
		zap.Int("inserted", result.Inserted),
		zap.Int("removed", result.Removed),
	)
	return result
}

func (s *HistorySyncService) ManualSync(ctx context.Context, records []entities.OrderRecord, now time.Time) dto.SyncResultDTO {
	if s.initErr != nil {
		return s.initFailure()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from := now.Add(-constants.ManualSyncWindow)
	candidates := completedCandidates(records, func(t time.Time) bool {
		return !t.Before(from) && !t.After(now)
	})
	result := dto.SyncResultDTO{Considered: len(candidates)}

	err := s.txManager.RunInTransaction(ctx, func(tx *sql.Tx) error {
		var err error
		result.Inserted, err = s.repo.WithTx(tx).InsertOrIgnore(ctx, candidates)
		return err
	})
	if err != nil {
		return s.storeFailure("ManualSync", err)
	}

	result.Success = true
	if result.Inserted == 0 {
		result.Message = fmt.Sprintf("Histórico já está atualizado (%d pedido(s) concluído(s) nos últimos 30 dias).", result.Considered)
	} else {
		result.Message = fmt.Sprintf("%d pedido(s) concluído(s) encontrado(s) nos últimos 30 dias, %d novo(s) salvo(s) no histórico.", result.Considered, result.Inserted)
	}

	s.logger.Info("Ручная синхронизация истории",
		zap.Int("considered", result.Considered),
		zap.Int("inserted", result.Inserted),
	)
	return result
}

func (s *HistorySyncService) List(ctx context.Context, filter types.Filter) ([]dto.HistoryItemDTO, uint64, error) {
	if s.initErr != nil {
		return nil, 0, s.initErr
	}

	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.NewStoreOperational("не удалось прочитать историю", err)
	}

	items := make([]dto.HistoryItemDTO, 0, len(orders))
	for _, o := range orders {
		item := dto.HistoryItemDTO{
			OrderID:   o.OrderID,
			ClientRef: o.ClientRef,
			Quantity:  o.Quantity,
			Equipment: o.Equipment,
			Service:   o.Service,
		}
		if !o.CompletedAt.IsZero() {
			item.CompletedAt = o.CompletedAt.Format(constants.StoreTimestampLayout)
		}
		items = append(items, item)
	}
	return items, total, nil
}

func (s *HistorySyncService) initFailure() dto.SyncResultDTO {
	return dto.SyncResultDTO{
		Success:   false,
		ErrorKind: apperrors.KindOf(s.initErr),
		Message:   fmt.Sprintf("Banco de dados do histórico indisponível: %v", s.initErr),
	}
}

func (s *HistorySyncService) storeFailure(op string, err error) dto.SyncResultDTO {
	storeErr := apperrors.NewStoreOperational(op, err)
	s.logger.Error("Ошибка синхронизации истории", zap.String("op", op), zap.Error(storeErr))
	return dto.SyncResultDTO{
		Success:   false,
		ErrorKind: apperrors.KindOf(storeErr),
		Message:   fmt.Sprintf("Erro ao sincronizar o histórico: %v", err),
	}
}

// completedCandidates - завершенные заказы с датой, по одному на pedido_id (первое вхождение).
// inWindow nil - без ограничения по дате.
func completedCandidates(records []entities.OrderRecord, inWindow func(time.Time) bool) []entities.CompletedOrder {
	seen := make(map[string]struct{})
	var out []entities.CompletedOrder
	for _, r := range records {
		if !r.IsCompleted() || !r.StatusDate.Valid {
			continue
		}
		if inWindow != nil && !inWindow(r.StatusDate.Time) {
			continue
		}
		if _, dup := seen[r.OrderID]; dup {
			continue
		}
		seen[r.OrderID] = struct{}{}
		out = append(out, entities.NewCompletedOrder(r))
	}
	return out
}
