package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"production-board/internal/services"
	"production-board/pkg/websocket"
)

// Services - собранные в main сервисы, которые нужны HTTP-слою.
type Services struct {
	Dashboard services.DashboardServiceInterface
	Refresh   services.RefreshServiceInterface
	History   services.HistorySyncServiceInterface
	Notifier  services.WebSocketNotificationServiceInterface
	Hub       *websocket.Hub
}

func InitRouter(e *echo.Echo, svc Services, logger *zap.Logger) {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")

	runBoardRouter(e, api, svc, logger)
	runHistoryRouter(api, svc, logger)

	logger.Info("INIT_ROUTER: Создание маршрутов завершено")
}
