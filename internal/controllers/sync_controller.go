package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"production-board/internal/dto"
	"production-board/internal/services"
	apperrors "production-board/pkg/errors"
	"production-board/pkg/utils"
)

const manualSyncTimeoutSeconds = 60

type SyncController struct {
	refreshService services.RefreshServiceInterface
	logger         *zap.Logger
}

func NewSyncController(refreshService services.RefreshServiceInterface, logger *zap.Logger) *SyncController {
	return &SyncController{
		refreshService: refreshService,
		logger:         logger.Named("sync_controller"),
	}
}

type syncCountsDTO struct {
	Considered int `json:"considered"`
	Inserted   int `json:"inserted"`
}

// HandleManualSync - кнопка "sincronizar histórico": сохраняет завершенные за 30 дней.
func (c *SyncController) HandleManualSync(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, manualSyncTimeoutSeconds)
	defer cancel()

	result := c.refreshService.ManualSync(reqCtx)

	c.logger.Info("Ручная синхронизация истории",
		zap.Bool("success", result.Success),
		zap.Int("considered", result.Considered),
		zap.Int("inserted", result.Inserted),
	)

	return ctx.JSON(syncStatusCode(result), utils.HttpResponse{
		Status:  result.Success,
		Body:    syncCountsDTO{Considered: result.Considered, Inserted: result.Inserted},
		Message: result.Message,
	})
}

func syncStatusCode(result dto.SyncResultDTO) int {
	if result.Success {
		return http.StatusOK
	}
	switch result.ErrorKind {
	case apperrors.KindSourceUnavailable, apperrors.KindStoreInit:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
