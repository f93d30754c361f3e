package controllers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"production-board/internal/dto"
	"production-board/internal/services"
	appwebsocket "production-board/pkg/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// доска открывается с телевизоров в локальной сети, без авторизации
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketController struct {
	hub              *appwebsocket.Hub
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewWebSocketController(hub *appwebsocket.Hub, dashboardService services.DashboardServiceInterface, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{
		hub:              hub,
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// ServeWs подключает экран и сразу отправляет ему текущее состояние доски.
func (c *WebSocketController) ServeWs(ctx echo.Context) error {
	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Error("WebSocket: не удалось улучшить соединение", zap.Error(err))
		return err
	}

	client := appwebsocket.NewClient(c.hub, conn, c.logger)

	board := c.dashboardService.GetBoard(ctx.Request().Context())
	var message []byte
	switch {
	case board.State.Status != dto.BoardStatusOK:
		message, err = appwebsocket.Encode(appwebsocket.MessageBoardError, board.State)
	case board.Snapshot != nil:
		message, err = appwebsocket.Encode(appwebsocket.MessageBoardSnapshot, board.Snapshot)
	}
	if err != nil {
		c.logger.Error("WebSocket: не удалось подготовить начальное сообщение", zap.Error(err))
	} else if message != nil {
		client.Send <- message
	}

	if !c.hub.Attach(client) {
		c.logger.Warn("WebSocket: хаб остановлен, соединение закрыто")
		_ = conn.Close()
		return nil
	}

	go client.WritePump()
	go client.ReadPump()

	c.logger.Info("WebSocket: экран подключен", zap.String("client", client.ID), zap.String("remote", ctx.RealIP()))
	return nil
}
