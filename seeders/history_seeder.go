package seeders

import (
	"context"
	"database/sql"
	"log"
	"time"

	"go.uber.org/zap"

	"production-board/internal/entities"
	"production-board/internal/repositories"
	"production-board/pkg/constants"
	"production-board/pkg/utils"
)

// SeedHistory сохраняет завершенные демонстрационные заказы в concluidos.
// Уже сохраненные pedido_id не трогаются. Возвращает число новых строк.
func SeedHistory(ctx context.Context, db *sql.DB, now time.Time) (int, error) {
	log.Println("  - Наполнение таблицы 'concluidos'...")

	today := utils.StartOfDay(now)
	var orders []entities.CompletedOrder
	for _, o := range demoOrders {
		if o.Status != constants.StatusCompleted || o.DaysAgo < 0 {
			continue
		}
		orders = append(orders, entities.CompletedOrder{
			CompletedAt: today.AddDate(0, 0, -o.DaysAgo).Add(time.Duration(o.Hour) * time.Hour),
			OrderID:     o.ID,
			ClientRef:   o.Client,
			Quantity:    o.Qty,
			Equipment:   o.Equipment,
			Service:     o.Service,
		})
	}

	repo := repositories.NewCompletedOrderRepository(db, zap.NewNop())
	var inserted int
	err := repositories.WithTx(ctx, db, func(tx *sql.Tx) error {
		n, err := repo.WithTx(tx).InsertOrIgnore(ctx, orders)
		inserted = n
		return err
	})
	if err != nil {
		return 0, err
	}
	log.Printf("    - Добавлено %d из %d записей", inserted, len(orders))
	return inserted, nil
}
