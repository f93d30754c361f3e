package repositories

import (
	"context"
	"database/sql"
)

type TxManagerInterface interface {
	RunInTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type TxManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) TxManagerInterface {
	return &TxManager{db: db}
}

// RunInTransaction выполняет fn в одной транзакции: ошибка или паника - откат, иначе коммит.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return WithTx(ctx, m.db, fn)
}
