package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"production-board/internal/controllers"
)

func runBoardRouter(e *echo.Echo, api *echo.Group, svc Services, logger *zap.Logger) {
	dashboardController := controllers.NewDashboardController(svc.Dashboard, svc.Notifier, logger)
	wsController := controllers.NewWebSocketController(svc.Hub, svc.Dashboard, logger)

	api.GET("/board", dashboardController.GetBoard)
	api.GET("/health", dashboardController.Health)
	e.GET("/ws", wsController.ServeWs)
}
