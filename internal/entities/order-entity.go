package entities

import (
	"strings"

	"github.com/aarondl/null/v8"

	"production-board/pkg/constants"
)

// OrderRecord - одна нормализованная строка таблицы статусов.
// RowIndex - позиция строки после фильтра по префиксу, задает "исходный порядок".
type OrderRecord struct {
	RowIndex           int       `json:"-"`
	OrderID            string    `json:"order_id"`
	ClientRef          string    `json:"client_ref"`
	ServiceDescription string    `json:"service_description"`
	Status             string    `json:"status"`
	StatusDate         null.Time `json:"status_date"`
	Quantity           int       `json:"quantity"`
	Equipment          string    `json:"equipment"`
}

func (o OrderRecord) IsCompleted() bool { return o.Status == constants.StatusCompleted }

func (o OrderRecord) IsCancelled() bool { return o.Status == constants.StatusCancelled }

func (o OrderRecord) IsTerminal() bool { return constants.IsTerminalStatus(o.Status) }

// IsUrgent не чувствителен к регистру и пробелам по краям.
func (o OrderRecord) IsUrgent() bool {
	return strings.EqualFold(strings.TrimSpace(o.Status), constants.StatusUrgent)
}

// HasMarker - относится ли клиент к категории маркера.
func (o OrderRecord) HasMarker() bool {
	return strings.Contains(o.ClientRef, constants.CategoryMarker)
}
