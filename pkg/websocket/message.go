package websocket

import "time"

// Типы сообщений, которые получают экраны доски.
const (
	MessageBoardSnapshot = "board.snapshot"
	MessageBoardError    = "board.error"
	MessageHistorySynced = "history.synced"
)

// Envelope — "конверт" сообщения: тип говорит экрану, как разбирать payload.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}
