package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"production-board/internal/dto"
	"production-board/internal/integrations/mock"
	"production-board/internal/repositories"
	"production-board/internal/testhelpers"
	"production-board/pkg/constants"
	apperrors "production-board/pkg/errors"
)

func boardWorkbook(t *testing.T) []byte {
	t.Helper()
	return testhelpers.BuildWorkbook(t, testhelpers.StandardHeader, [][]interface{}{
		{"CV-1", "TERAVIX", "Montagem", constants.StatusCompleted, metricsNow.Add(-2 * time.Hour), 3, "Torno"},
		{"CV-2", "ACME", "Montagem", constants.StatusUrgent, metricsNow.Add(-time.Hour), 1, "Fresa"},
		{"CV-3", "ACME", "Montagem", constants.StatusPending, metricsNow.AddDate(0, 0, -1), 2, "Prensa"},
		{"CV-4", "ACME", "Montagem", constants.StatusCancelled, metricsNow.Add(-3 * time.Hour), 1, "Prensa"},
	})
}

type refreshFixture struct {
	svc      *RefreshService
	provider *mock.MockProvider
	repo     repositories.CompletedOrderRepositoryInterface
}

func newRefreshFixture(t *testing.T) refreshFixture {
	t.Helper()
	loader, provider := newMockLoader(t, boardWorkbook(t))
	history, repo := newHistoryService(t, true)
	svc := NewRefreshService(loader, history, NewPhraseService([]string{"Bom trabalho!"}, nil), nil, zap.NewNop()).(*RefreshService)
	svc.clock = func() time.Time { return metricsNow }
	return refreshFixture{svc: svc, provider: provider, repo: repo}
}

func TestRefresh_BuildsSnapshotAndSyncsHistory(t *testing.T) {
	f := newRefreshFixture(t)

	snapshot, err := f.svc.RefreshNow(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	assert.NotEmpty(t, snapshot.ID)
	assert.Equal(t, metricsNow, snapshot.GeneratedAt)
	assert.Equal(t, "Bom trabalho!", snapshot.Phrase)
	assert.Equal(t, []string{"CV-2", "CV-3"}, activeIDs(snapshot.Views.Active))
	require.Len(t, snapshot.Views.CompletedToday, 1)
	assert.Equal(t, "CV-1", snapshot.Views.CompletedToday[0].OrderID)
	require.Len(t, snapshot.Views.CancelledToday, 1)
	assert.Equal(t, 1, snapshot.Metrics.CurrentCount)
	assert.Equal(t, constants.WeeklyGoal, snapshot.Weekly.Goal)

	assert.True(t, snapshot.History.Success, snapshot.History.Message)
	assert.Equal(t, 1, snapshot.History.Inserted)
	assert.Equal(t, []string{"CV-1"}, storedIDs(t, f.repo))

	board := f.svc.Current()
	assert.Equal(t, dto.BoardStatusOK, board.State.Status)
	assert.True(t, board.State.LastSuccess.Valid)
	assert.False(t, board.State.StoreError.Valid)
	assert.Same(t, snapshot, board.Snapshot)
}

func TestRefresh_FailureKeepsLastSnapshotUntilRecovery(t *testing.T) {
	f := newRefreshFixture(t)
	ctx := context.Background()

	first, err := f.svc.RefreshNow(ctx)
	require.NoError(t, err)

	f.provider.FailWith(errors.New("conexão recusada"))
	_, err = f.svc.RefreshNow(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)

	board := f.svc.Current()
	assert.Equal(t, dto.BoardStatusError, board.State.Status)
	assert.Equal(t, apperrors.KindSourceUnavailable, board.State.ErrorKind)
	assert.Contains(t, board.State.ErrorMessage, "conexão recusada")
	assert.Same(t, first, board.Snapshot)

	_, err = f.svc.RefreshNow(ctx)
	require.NoError(t, err)
	board = f.svc.Current()
	assert.Equal(t, dto.BoardStatusOK, board.State.Status)
	assert.Empty(t, board.State.ErrorKind)
	assert.Empty(t, board.State.ErrorMessage)
}

func TestRefresh_StoreInitErrorIsShownButBoardWorks(t *testing.T) {
	loader, _ := newMockLoader(t, boardWorkbook(t))
	initErr := apperrors.NewStoreInit("não foi possível abrir producao.db", errors.New("read-only file system"))
	history := NewHistorySyncService(nil, nil, true, initErr, zap.NewNop())
	svc := NewRefreshService(loader, history, NewPhraseService(nil, nil), nil, zap.NewNop())

	require.True(t, svc.Current().State.StoreError.Valid)

	snapshot, err := svc.RefreshNow(context.Background())
	require.NoError(t, err)
	assert.False(t, snapshot.History.Success)
	assert.Equal(t, apperrors.KindStoreInit, snapshot.History.ErrorKind)
	assert.Equal(t, dto.BoardStatusOK, svc.Current().State.Status)
	assert.Contains(t, svc.Current().State.StoreError.String, "read-only")
}

func TestRefresh_StoreFailureDuringReconcileKeepsSnapshot(t *testing.T) {
	loader, _ := newMockLoader(t, boardWorkbook(t))
	locked := errors.New("database is locked")
	history := NewHistorySyncService(failingRepo{err: locked}, directTx{}, true, nil, zap.NewNop())
	svc := NewRefreshService(loader, history, NewPhraseService(nil, nil), nil, zap.NewNop()).(*RefreshService)
	svc.clock = func() time.Time { return metricsNow }

	snapshot, err := svc.RefreshNow(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	assert.False(t, snapshot.History.Success)
	assert.Equal(t, apperrors.KindStoreOperational, snapshot.History.ErrorKind)
	assert.Contains(t, snapshot.History.Message, "database is locked")
	assert.Equal(t, []string{"CV-2", "CV-3"}, activeIDs(snapshot.Views.Active))
	require.Len(t, snapshot.Views.CompletedToday, 1)

	board := svc.Current()
	assert.Equal(t, dto.BoardStatusOK, board.State.Status)
	assert.False(t, board.State.StoreError.Valid)
	assert.Same(t, snapshot, board.Snapshot)
}

func TestRefresh_TriggerCoalesces(t *testing.T) {
	f := newRefreshFixture(t)

	f.svc.Trigger()
	f.svc.Trigger()
	f.svc.Trigger()
	assert.Len(t, f.svc.trigger, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.svc.Run(ctx) }()

	assert.Eventually(t, func() bool { return f.svc.Current().Snapshot != nil }, 2*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, 1, f.provider.Calls())
}

func TestRefresh_ManualSync(t *testing.T) {
	f := newRefreshFixture(t)

	res := f.svc.ManualSync(context.Background())
	require.True(t, res.Success, res.Message)
	assert.Equal(t, 1, res.Considered)
	assert.Equal(t, 1, res.Inserted)

	f.provider.FailWith(errors.New("timeout"))
	res = f.svc.ManualSync(context.Background())
	assert.False(t, res.Success)
	assert.Equal(t, apperrors.KindSourceUnavailable, res.ErrorKind)
}

func TestDashboard_PrefersFresherState(t *testing.T) {
	f := newRefreshFixture(t)
	ctx := context.Background()
	base := NewBaseService(repositories.NewMemoryCacheRepository(), zap.NewNop())
	dashboard := NewDashboardService(base, f.svc, zap.NewNop())

	// пустой кеш: состояние берется из цикла обновления
	assert.Equal(t, f.svc.Current(), dashboard.GetBoard(ctx))

	_, err := f.svc.RefreshNow(ctx)
	require.NoError(t, err)
	current := f.svc.Current()

	cached := dto.BoardSnapshotDTO{ID: "cached", GeneratedAt: metricsNow}
	require.NoError(t, base.CacheSet(ctx, constants.CacheKeyBoardSnapshot, cached, 0))
	require.NoError(t, base.CacheSet(ctx, constants.CacheKeyBoardState, current.State, 0))

	board := dashboard.GetBoard(ctx)
	require.NotNil(t, board.Snapshot)
	assert.Equal(t, "cached", board.Snapshot.ID)

	// кеш отстал от процесса
	stale := current.State
	stale.UpdatedAt = metricsNow.Add(-time.Minute)
	require.NoError(t, base.CacheSet(ctx, constants.CacheKeyBoardState, stale, 0))
	assert.Equal(t, current.Snapshot.ID, dashboard.GetBoard(ctx).Snapshot.ID)
}
