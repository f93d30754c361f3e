package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"production-board/internal/dto"
	"production-board/internal/services"
	"production-board/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	notifier         services.WebSocketNotificationServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(
	dashboardService services.DashboardServiceInterface,
	notifier services.WebSocketNotificationServiceInterface,
	logger *zap.Logger,
) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		notifier:         notifier,
		logger:           logger,
	}
}

// GetBoard - последний снимок и состояние доски.
func (ctrl *DashboardController) GetBoard(c echo.Context) error {
	board := ctrl.dashboardService.GetBoard(c.Request().Context())
	return utils.SuccessResponse(c, board, "Painel atualizado", http.StatusOK)
}

type healthDTO struct {
	Board    string  `json:"board"`
	Store    string  `json:"store"`
	Clients  int     `json:"clients"`
	Snapshot *string `json:"snapshot,omitempty"`
}

func (ctrl *DashboardController) Health(c echo.Context) error {
	board := ctrl.dashboardService.GetBoard(c.Request().Context())

	health := healthDTO{
		Board:   board.State.Status,
		Store:   "ok",
		Clients: ctrl.notifier.ClientCount(),
	}
	if board.State.StoreError.Valid {
		health.Store = board.State.StoreError.String
	}
	if board.Snapshot != nil {
		health.Snapshot = &board.Snapshot.ID
	}

	code := http.StatusOK
	if board.State.Status != dto.BoardStatusOK {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, utils.HttpResponse{Status: code == http.StatusOK, Body: health, Message: "health"})
}
