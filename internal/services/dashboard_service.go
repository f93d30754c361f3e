package services

import (
	"context"

	"go.uber.org/zap"

	"production-board/internal/dto"
	"production-board/pkg/constants"
)

type DashboardServiceInterface interface {
	// GetBoard - последнее состояние и снимок доски для GET /api/board и новых экранов.
	GetBoard(ctx context.Context) dto.BoardDTO
}

// DashboardService читает опубликованный снимок из кеша. Если кеш пуст или отстал
// от процесса (шина пишет его асинхронно), берется состояние цикла обновления.
type DashboardService struct {
	*BaseService
	refresh RefreshServiceInterface
	logger  *zap.Logger
}

func NewDashboardService(base *BaseService, refresh RefreshServiceInterface, logger *zap.Logger) DashboardServiceInterface {
	return &DashboardService{BaseService: base, refresh: refresh, logger: logger}
}

func (s *DashboardService) GetBoard(ctx context.Context) dto.BoardDTO {
	current := s.refresh.Current()

	var cachedState dto.BoardStateDTO
	if !s.CacheGet(ctx, constants.CacheKeyBoardState, &cachedState) || cachedState.UpdatedAt.Before(current.State.UpdatedAt) {
		return current
	}

	board := dto.BoardDTO{State: cachedState}
	var cachedSnapshot dto.BoardSnapshotDTO
	if s.CacheGet(ctx, constants.CacheKeyBoardSnapshot, &cachedSnapshot) {
		board.Snapshot = &cachedSnapshot
	} else {
		board.Snapshot = current.Snapshot
	}
	return board
}
