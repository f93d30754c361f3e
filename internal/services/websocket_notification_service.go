package services

import (
	"go.uber.org/zap"

	"production-board/pkg/websocket"
)

type WebSocketNotificationServiceInterface interface {
	Broadcast(messageType string, payload interface{}) error
	ClientCount() int
}

type WebSocketNotificationService struct {
	hub    *websocket.Hub
	logger *zap.Logger
}

func NewWebSocketNotificationService(hub *websocket.Hub, logger *zap.Logger) WebSocketNotificationServiceInterface {
	return &WebSocketNotificationService{
		hub:    hub,
		logger: logger,
	}
}

// Broadcast рассылает сообщение всем экранам доски.
func (s *WebSocketNotificationService) Broadcast(messageType string, payload interface{}) error {
	s.logger.Debug("Рассылка WebSocket-сообщения",
		zap.String("type", messageType),
		zap.Int("clients", s.hub.ClientCount()),
	)
	return s.hub.Broadcast(messageType, payload)
}

func (s *WebSocketNotificationService) ClientCount() int {
	return s.hub.ClientCount()
}
