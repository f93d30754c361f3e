package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"production-board/internal/entities"
	"production-board/internal/testhelpers"
	"production-board/pkg/types"
)

type CompletedOrderRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo CompletedOrderRepositoryInterface
	ctx  context.Context
}

func TestCompletedOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(CompletedOrderRepositorySuite))
}

func (s *CompletedOrderRepositorySuite) SetupTest() {
	s.db = testhelpers.SetupTestDB(s.T())
	s.repo = NewCompletedOrderRepository(s.db, zap.NewNop())
	s.ctx = context.Background()
}

func completed(id string, at time.Time, qty int) entities.CompletedOrder {
	return entities.CompletedOrder{
		CompletedAt: at,
		OrderID:     id,
		ClientRef:   "TERAVIX-" + id,
		Quantity:    qty,
		Equipment:   "Prensa",
		Service:     "Montagem",
	}
}

func (s *CompletedOrderRepositorySuite) TestInsertOrIgnoreNeverOverwrites() {
	at := time.Date(2026, 10, 10, 9, 15, 0, 0, time.Local)

	n, err := s.repo.InsertOrIgnore(s.ctx, []entities.CompletedOrder{completed("CV-1", at, 2), completed("CV-2", at, 3)})
	s.Require().NoError(err)
	s.Equal(2, n)

	changed := completed("CV-1", at.AddDate(0, 0, 1), 99)
	n, err = s.repo.InsertOrIgnore(s.ctx, []entities.CompletedOrder{changed, completed("CV-3", at, 1)})
	s.Require().NoError(err)
	s.Equal(1, n, "существующий pedido_id пропускается")

	var qty int
	var stored string
	s.Require().NoError(s.db.QueryRow(`SELECT qtd_maquinas, data_conclusao FROM concluidos WHERE pedido_id = 'CV-1'`).Scan(&qty, &stored))
	s.Equal(2, qty)
	s.Equal("2026-10-10 09:15:00", stored)

	ids, err := s.repo.ListIDs(s.ctx)
	s.Require().NoError(err)
	s.Len(ids, 3)
	s.Contains(ids, "CV-3")
}

func (s *CompletedOrderRepositorySuite) TestInsertOrIgnoreBatches() {
	at := time.Date(2026, 10, 1, 8, 0, 0, 0, time.Local)
	orders := make([]entities.CompletedOrder, 0, completedOrderBatchSize*2+5)
	for i := 0; i < cap(orders); i++ {
		orders = append(orders, completed(fmt.Sprintf("CV-%d", i), at, 1))
	}

	n, err := s.repo.InsertOrIgnore(s.ctx, orders)
	s.Require().NoError(err)
	s.Equal(len(orders), n)

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.OrderID)
	}
	removed, err := s.repo.DeleteByIDs(s.ctx, ids)
	s.Require().NoError(err)
	s.Equal(len(orders), removed)
}

func (s *CompletedOrderRepositorySuite) TestDeleteByIDs() {
	at := time.Date(2026, 10, 10, 9, 0, 0, 0, time.Local)
	_, err := s.repo.InsertOrIgnore(s.ctx, []entities.CompletedOrder{completed("CV-1", at, 1), completed("CV-2", at, 1)})
	s.Require().NoError(err)

	removed, err := s.repo.DeleteByIDs(s.ctx, []string{"CV-2", "CV-404"})
	s.Require().NoError(err)
	s.Equal(1, removed)

	removed, err = s.repo.DeleteByIDs(s.ctx, nil)
	s.Require().NoError(err)
	s.Zero(removed)
}

func (s *CompletedOrderRepositorySuite) TestListNewestFirstWithFilters() {
	base := time.Date(2026, 10, 1, 10, 0, 0, 0, time.Local)
	orders := []entities.CompletedOrder{
		completed("CV-1", base, 1),
		completed("CV-2", base.Add(48*time.Hour), 2),
		completed("CV-3", base.Add(24*time.Hour), 3),
	}
	orders[2].ClientRef = "ACME"
	_, err := s.repo.InsertOrIgnore(s.ctx, orders)
	s.Require().NoError(err)

	all, total, err := s.repo.List(s.ctx, types.Filter{Limit: 10, WithPagination: true})
	s.Require().NoError(err)
	s.Equal(uint64(3), total)
	s.Require().Len(all, 3)
	s.Equal([]string{"CV-2", "CV-3", "CV-1"}, []string{all[0].OrderID, all[1].OrderID, all[2].OrderID})
	s.True(all[0].CompletedAt.Equal(base.Add(48 * time.Hour)))

	page, total, err := s.repo.List(s.ctx, types.Filter{Limit: 1, Offset: 1, WithPagination: true})
	s.Require().NoError(err)
	s.Equal(uint64(3), total)
	s.Require().Len(page, 1)
	s.Equal("CV-3", page[0].OrderID)

	filtered, total, err := s.repo.List(s.ctx, types.Filter{
		Filter: map[string]interface{}{"pv": "ACME", "unknown": "x"},
		Limit:  10, WithPagination: true,
	})
	s.Require().NoError(err)
	s.Equal(uint64(1), total)
	s.Require().Len(filtered, 1)
	s.Equal("CV-3", filtered[0].OrderID)

	searched, total, err := s.repo.List(s.ctx, types.Filter{Search: "TERAVIX", Sort: map[string]string{"data_conclusao": "asc"}, Limit: 10, WithPagination: true})
	s.Require().NoError(err)
	s.Equal(uint64(2), total)
	s.Require().Len(searched, 2)
	s.Equal("CV-1", searched[0].OrderID)
}

func (s *CompletedOrderRepositorySuite) TestListReadsLegacyNulls() {
	_, err := s.db.Exec(`INSERT INTO concluidos (pedido_id) VALUES ('CV-9')`)
	s.Require().NoError(err)

	items, total, err := s.repo.List(s.ctx, types.Filter{Limit: 10, WithPagination: true})
	s.Require().NoError(err)
	s.Equal(uint64(1), total)
	s.Require().Len(items, 1)
	s.True(items[0].CompletedAt.IsZero())
	s.Zero(items[0].Quantity)
}

func TestWithTx_RollbackOnError(t *testing.T) {
	database := testhelpers.SetupTestDB(t)
	repo := NewCompletedOrderRepository(database, zap.NewNop())
	txManager := NewTxManager(database)
	ctx := context.Background()
	at := time.Date(2026, 10, 10, 9, 0, 0, 0, time.Local)

	boom := errors.New("boom")
	err := txManager.RunInTransaction(ctx, func(tx *sql.Tx) error {
		n, err := repo.WithTx(tx).InsertOrIgnore(ctx, []entities.CompletedOrder{completed("CV-1", at, 1)})
		require.NoError(t, err)
		require.Equal(t, 1, n)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	err = txManager.RunInTransaction(ctx, func(tx *sql.Tx) error {
		_, err := repo.WithTx(tx).InsertOrIgnore(ctx, []entities.CompletedOrder{completed("CV-1", at, 1)})
		return err
	})
	require.NoError(t, err)

	ids, err = repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}
