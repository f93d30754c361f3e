package repositories

import (
	"context"
	"database/sql"
)

// querier - общее у *sql.DB и *sql.Tx, чтобы репозиторий работал и внутри транзакции.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
