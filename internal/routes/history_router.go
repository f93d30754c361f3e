package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"production-board/internal/controllers"
)

func runHistoryRouter(api *echo.Group, svc Services, logger *zap.Logger) {
	historyController := controllers.NewHistoryController(svc.History, logger)
	syncController := controllers.NewSyncController(svc.Refresh, logger)

	historyGroup := api.Group("/history")
	historyGroup.GET("", historyController.GetHistory)
	historyGroup.POST("/sync", syncController.HandleManualSync)
}
