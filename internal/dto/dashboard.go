package dto

import (
	"time"

	"github.com/aarondl/null/v8"

	"production-board/internal/entities"
	"production-board/pkg/types"
)

// ActiveOrderDTO - незавершенный заказ с рассчитанным приоритетом.
type ActiveOrderDTO struct {
	entities.OrderRecord
	Priority int  `json:"priority"`
	IsUrgent bool `json:"is_urgent"`
}

// BoardColumnsDTO - колонки доски, собранные из активных заказов.
type BoardColumnsDTO struct {
	Priorities       []ActiveOrderDTO `json:"priorities"`
	InAssembly       []ActiveOrderDTO `json:"in_assembly"`
	Pending          []ActiveOrderDTO `json:"pending"`
	AwaitingAssembly []ActiveOrderDTO `json:"awaiting_assembly"`
	AwaitingArrival  []ActiveOrderDTO `json:"awaiting_arrival"`
}

// BoardViewsDTO - результат разбиения таблицы на представления.
type BoardViewsDTO struct {
	Active          []ActiveOrderDTO       `json:"active"`
	Columns         BoardColumnsDTO        `json:"columns"`
	CompletedToday  []entities.OrderRecord `json:"completed_today"`
	CancelledToday  []entities.OrderRecord `json:"cancelled_today"`
	CompletedTotals types.DailyTotals      `json:"completed_totals"`
	CancelledTotals types.DailyTotals      `json:"cancelled_totals"`
}

// SyncResultDTO - итог синхронизации истории: флаг успеха и сообщение для доски.
type SyncResultDTO struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	ErrorKind  string `json:"error_kind,omitempty"`
	Considered int    `json:"considered"`
	Inserted   int    `json:"inserted"`
	Removed    int    `json:"removed"`
}

// BoardSnapshotDTO - все, что нужно отрисовать доске после одного обновления.
type BoardSnapshotDTO struct {
	ID          string               `json:"id"`
	GeneratedAt time.Time            `json:"generated_at"`
	Views       BoardViewsDTO        `json:"views"`
	Metrics     types.MonthlyMetrics `json:"metrics"`
	Weekly      types.WeeklySeries   `json:"weekly"`
	Phrase      string               `json:"phrase"`
	History     SyncResultDTO        `json:"history"`
}

const (
	BoardStatusOK    = "ok"
	BoardStatusError = "error"
)

// BoardStateDTO - состояние доски. При status=error доска показывает блокирующую ошибку,
// пока следующее обновление не пройдет успешно.
type BoardStateDTO struct {
	Status       string      `json:"status"`
	ErrorKind    string      `json:"error_kind,omitempty"`
	ErrorMessage string      `json:"error_message,omitempty"`
	StoreError   null.String `json:"store_error"`
	LastSuccess  null.Time   `json:"last_success"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// BoardDTO - ответ GET /api/board.
type BoardDTO struct {
	State    BoardStateDTO     `json:"state"`
	Snapshot *BoardSnapshotDTO `json:"snapshot,omitempty"`
}

// HistoryItemDTO - строка истории завершенных заказов для API.
type HistoryItemDTO struct {
	CompletedAt string `json:"completed_at"`
	OrderID     string `json:"order_id"`
	ClientRef   string `json:"client_ref"`
	Quantity    int    `json:"quantity"`
	Equipment   string `json:"equipment"`
	Service     string `json:"service"`
}
