package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"production-board/internal/entities"
	db "production-board/internal/infrastructure/bd"
	"production-board/pkg/constants"
	"production-board/pkg/types"
)

const (
	completedOrderTable = "concluidos"

	// SQLite ограничивает число параметров в запросе, поэтому пишем пачками.
	completedOrderBatchSize = 200
)

var completedOrderColumns = []string{"data_conclusao", "pedido_id", "pv", "qtd_maquinas", "equipamento", "servico"}

// Поля, по которым GET /api/history разрешает фильтр и сортировку.
var completedOrderAllowedFields = map[string]string{
	"data_conclusao": "data_conclusao",
	"pedido_id":      "pedido_id",
	"pv":             "pv",
	"qtd_maquinas":   "qtd_maquinas",
	"equipamento":    "equipamento",
	"servico":        "servico",
}

// Старые базы создавались без NOT NULL, поэтому колонки читаем как nullable.
type dbCompletedOrder struct {
	CompletedAt null.String
	OrderID     string
	ClientRef   null.String
	Quantity    null.Int
	Equipment   null.String
	Service     null.String
}

func (r *dbCompletedOrder) ToEntity() entities.CompletedOrder {
	var completedAt time.Time
	if r.CompletedAt.Valid {
		if t, err := time.ParseInLocation(constants.StoreTimestampLayout, r.CompletedAt.String, time.Local); err == nil {
			completedAt = t
		}
	}
	return entities.CompletedOrder{
		CompletedAt: completedAt,
		OrderID:     r.OrderID,
		ClientRef:   r.ClientRef.String,
		Quantity:    r.Quantity.Int,
		Equipment:   r.Equipment.String,
		Service:     r.Service.String,
	}
}

type CompletedOrderRepositoryInterface interface {
	ListIDs(ctx context.Context) (map[string]struct{}, error)
	InsertOrIgnore(ctx context.Context, orders []entities.CompletedOrder) (int, error)
	DeleteByIDs(ctx context.Context, ids []string) (int, error)
	List(ctx context.Context, filter types.Filter) ([]entities.CompletedOrder, uint64, error)
	// WithTx возвращает копию репозитория, работающую внутри tx.
	WithTx(tx *sql.Tx) CompletedOrderRepositoryInterface
}

type CompletedOrderRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewCompletedOrderRepository(storage *sql.DB, logger *zap.Logger) CompletedOrderRepositoryInterface {
	return &CompletedOrderRepository{storage: storage, logger: logger}
}

func (r *CompletedOrderRepository) WithTx(tx *sql.Tx) CompletedOrderRepositoryInterface {
	return &CompletedOrderRepository{storage: tx, logger: r.logger}
}

func (r *CompletedOrderRepository) ListIDs(ctx context.Context) (map[string]struct{}, error) {
	query, args, err := sq.Select("pedido_id").From(completedOrderTable).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения id истории: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// InsertOrIgnore вставляет записи, не трогая уже существующие pedido_id.
// Возвращает число реально вставленных строк.
func (r *CompletedOrderRepository) InsertOrIgnore(ctx context.Context, orders []entities.CompletedOrder) (int, error) {
	inserted := 0
	for start := 0; start < len(orders); start += completedOrderBatchSize {
		end := start + completedOrderBatchSize
		if end > len(orders) {
			end = len(orders)
		}

		builder := sq.Insert(completedOrderTable).Options("OR IGNORE").Columns(completedOrderColumns...)
		for _, o := range orders[start:end] {
			builder = builder.Values(
				o.CompletedAt.Format(constants.StoreTimestampLayout),
				o.OrderID,
				o.ClientRef,
				o.Quantity,
				o.Equipment,
				o.Service,
			)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return inserted, err
		}
		res, err := r.storage.ExecContext(ctx, query, args...)
		if err != nil {
			return inserted, fmt.Errorf("ошибка записи истории: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return inserted, err
		}
		inserted += int(n)
	}

	if inserted > 0 {
		r.logger.Debug("В историю добавлены заказы", zap.Int("inserted", inserted), zap.Int("requested", len(orders)))
	}
	return inserted, nil
}

func (r *CompletedOrderRepository) DeleteByIDs(ctx context.Context, ids []string) (int, error) {
	removed := 0
	for start := 0; start < len(ids); start += completedOrderBatchSize {
		end := start + completedOrderBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		query, args, err := sq.Delete(completedOrderTable).Where(sq.Eq{"pedido_id": ids[start:end]}).ToSql()
		if err != nil {
			return removed, err
		}
		res, err := r.storage.ExecContext(ctx, query, args...)
		if err != nil {
			return removed, fmt.Errorf("ошибка удаления из истории: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return removed, err
		}
		removed += int(n)
	}
	return removed, nil
}

// List - история от новых к старым (если сортировка не задана), с фильтрами и пагинацией.
func (r *CompletedOrderRepository) List(ctx context.Context, filter types.Filter) ([]entities.CompletedOrder, uint64, error) {
	countBuilder := sq.Select("COUNT(*)").From(completedOrderTable)
	countBuilder = db.ApplyFilters(countBuilder, filter, completedOrderAllowedFields)
	countBuilder = db.ApplySearch(countBuilder, filter.Search, "pedido_id", "pv", "equipamento")

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета истории: %w", err)
	}
	if total == 0 {
		return []entities.CompletedOrder{}, 0, nil
	}

	builder := sq.Select(completedOrderColumns...).From(completedOrderTable)
	builder = db.ApplySearch(builder, filter.Search, "pedido_id", "pv", "equipamento")
	builder = db.ApplyListParams(builder, filter, completedOrderAllowedFields)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("data_conclusao DESC", "pedido_id")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка чтения истории: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.CompletedOrder, 0)
	for rows.Next() {
		var row dbCompletedOrder
		if err := rows.Scan(&row.CompletedAt, &row.OrderID, &row.ClientRef, &row.Quantity, &row.Equipment, &row.Service); err != nil {
			return nil, 0, err
		}
		orders = append(orders, row.ToEntity())
	}
	return orders, total, rows.Err()
}
