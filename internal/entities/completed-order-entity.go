package entities

import "time"

// CompletedOrder - строка таблицы concluidos. pedido_id - первичный ключ.
type CompletedOrder struct {
	CompletedAt time.Time `db:"data_conclusao" json:"completed_at"`
	OrderID     string    `db:"pedido_id" json:"order_id"`
	ClientRef   string    `db:"pv" json:"client_ref"`
	Quantity    int       `db:"qtd_maquinas" json:"quantity"`
	Equipment   string    `db:"equipamento" json:"equipment"`
	Service     string    `db:"servico" json:"service"`
}

// NewCompletedOrder строит запись истории из строки таблицы; StatusDate должна быть заполнена.
func NewCompletedOrder(o OrderRecord) CompletedOrder {
	return CompletedOrder{
		CompletedAt: o.StatusDate.Time,
		OrderID:     o.OrderID,
		ClientRef:   o.ClientRef,
		Quantity:    o.Quantity,
		Equipment:   o.Equipment,
		Service:     o.ServiceDescription,
	}
}
