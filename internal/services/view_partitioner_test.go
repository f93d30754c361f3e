package services

import (
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"production-board/internal/dto"
	"production-board/internal/entities"
	"production-board/pkg/constants"
	"production-board/pkg/types"
)

var boardNow = time.Date(2026, 10, 16, 15, 0, 0, 0, time.Local)

func order(id, status string, date time.Time, qty int, client string) entities.OrderRecord {
	r := entities.OrderRecord{
		OrderID:            id,
		ClientRef:          client,
		ServiceDescription: constants.DefaultService,
		Status:             status,
		Quantity:           qty,
		Equipment:          constants.DefaultEquipment,
	}
	if !date.IsZero() {
		r.StatusDate = null.TimeFrom(date)
	}
	return r
}

func activeIDs(items []dto.ActiveOrderDTO) []string {
	ids := make([]string, 0, len(items))
	for _, a := range items {
		ids = append(ids, a.OrderID)
	}
	return ids
}

func TestPartitionViews_DailyTotalsByCategory(t *testing.T) {
	records := []entities.OrderRecord{
		order("CV-1", constants.StatusCompleted, boardNow.Add(-2*time.Hour), 3, "TERAVIX-1"),
		order("CV-2", constants.StatusCompleted, boardNow.Add(-time.Hour), 5, "OTHERCO"),
		// вчера - не попадает в сегодняшние итоги
		order("CV-3", constants.StatusCompleted, boardNow.AddDate(0, 0, -1), 7, "TERAVIX"),
		// маркер чувствителен к регистру
		order("CV-4", constants.StatusCancelled, boardNow.Add(-3*time.Hour), 2, "teravix"),
	}

	views := PartitionViews(records, boardNow)

	assert.Equal(t, types.DailyTotals{
		MarkerCount: 1, MarkerQty: 3,
		OtherCount: 1, OtherQty: 5,
		TotalCount: 2, TotalQty: 8,
	}, views.CompletedTotals)
	assert.Equal(t, types.DailyTotals{OtherCount: 1, OtherQty: 2, TotalCount: 1, TotalQty: 2}, views.CancelledTotals)

	// от поздних к ранним
	require.Len(t, views.CompletedToday, 2)
	assert.Equal(t, "CV-2", views.CompletedToday[0].OrderID)
	assert.Equal(t, "CV-1", views.CompletedToday[1].OrderID)
	require.Len(t, views.CancelledToday, 1)
	assert.Nil(t, views.Active)
}

func TestRankActive_UrgentFirstStable(t *testing.T) {
	records := []entities.OrderRecord{
		order("A", constants.StatusPending, time.Time{}, 1, "X"),
		order("U", constants.StatusUrgent, time.Time{}, 1, "X"),
		order("B", constants.StatusPending, time.Time{}, 1, "X"),
		order("D", constants.StatusCompleted, boardNow, 1, "X"),
		order("C", constants.StatusPending, time.Time{}, 1, "X"),
	}

	active := RankActive(records)
	require.Len(t, active, 4)
	assert.Equal(t, []string{"U", "A", "B", "C"}, activeIDs(active))
	for i, a := range active {
		assert.Equal(t, i+1, a.Priority)
	}
	assert.True(t, active[0].IsUrgent)
	assert.False(t, active[1].IsUrgent)

	again := RankActive(records)
	assert.Equal(t, active, again, "ранжирование детерминировано")
}

func TestRankActive_UrgentIgnoresCaseAndSpaces(t *testing.T) {
	records := []entities.OrderRecord{
		order("A", constants.StatusPending, time.Time{}, 1, "X"),
		order("U", " urgente ", time.Time{}, 1, "X"),
	}
	assert.Equal(t, []string{"U", "A"}, activeIDs(RankActive(records)))
}

func TestRankActive_EmptyProducesNoPriorities(t *testing.T) {
	assert.Nil(t, RankActive(nil))
	assert.Nil(t, RankActive([]entities.OrderRecord{
		order("CV-1", constants.StatusCompleted, boardNow, 1, "X"),
		order("CV-2", constants.StatusCancelled, boardNow, 1, "X"),
	}))
}

func TestPartitionViews_EveryValidRowAccountedOnce(t *testing.T) {
	records := []entities.OrderRecord{
		order("CV-1", constants.StatusPending, time.Time{}, 1, "X"),
		order("CV-2", constants.StatusCompleted, boardNow, 1, "X"),
		order("CV-3", constants.StatusCancelled, boardNow, 1, "X"),
		order("CV-4", "Em Revisão", boardNow, 1, "X"),
		order("CV-5", constants.StatusInAssembly, boardNow, 1, "X"),
	}

	views := PartitionViews(records, boardNow)
	total := len(views.Active) + len(views.CompletedToday) + len(views.CancelledToday)
	assert.Equal(t, len(records), total)

	// нераспознанный статус активен, но не попадает ни в одну колонку
	assert.Contains(t, activeIDs(views.Active), "CV-4")
	cols := views.Columns
	for _, col := range [][]dto.ActiveOrderDTO{cols.Priorities, cols.InAssembly, cols.Pending, cols.AwaitingAssembly, cols.AwaitingArrival} {
		assert.NotContains(t, activeIDs(col), "CV-4")
	}
}

func TestBuildColumns(t *testing.T) {
	records := []entities.OrderRecord{
		order("P1", constants.StatusPending, time.Time{}, 1, "X"),
		order("M1", constants.StatusInAssembly, time.Time{}, 1, "X"),
		order("W1", constants.StatusAwaitingAssembly, time.Time{}, 1, "X"),
		order("M2", constants.StatusInAssembly, time.Time{}, 1, "X"),
		order("W2", constants.StatusAwaitingAssembly, time.Time{}, 1, "X"),
		order("U1", constants.StatusUrgent, time.Time{}, 1, "X"),
		order("C1", constants.StatusAwaitingArrival, time.Time{}, 1, "X"),
	}

	cols := BuildColumns(RankActive(records))

	// не больше четырех карточек, срочные первыми
	assert.Equal(t, []string{"U1", "M1", "W1", "M2"}, activeIDs(cols.Priorities))
	assert.Empty(t, cols.InAssembly)
	assert.Equal(t, []string{"W2"}, activeIDs(cols.AwaitingAssembly))
	assert.Equal(t, []string{"P1"}, activeIDs(cols.Pending))
	assert.Equal(t, []string{"C1"}, activeIDs(cols.AwaitingArrival))
}
