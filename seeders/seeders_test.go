package seeders

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"production-board/internal/services"
	"production-board/internal/testhelpers"
	"production-board/pkg/constants"
)

var seedNow = time.Date(2026, 10, 16, 15, 0, 0, 0, time.Local)

func TestSeedWorkbook_LoadsAsStatusTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dados", "Status_dos_pedidos.xlsx")
	require.NoError(t, SeedWorkbook(path, seedNow, false))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
	require.NoError(t, err)

	records, err := services.NormalizeRows(rows)
	require.NoError(t, err)
	require.Len(t, records, len(demoOrders))

	views := services.PartitionViews(records, seedNow)
	assert.Equal(t, "CV-1001", views.Active[0].OrderID)
	assert.Len(t, views.CompletedToday, 2)
	assert.Len(t, views.CancelledToday, 1)
	assert.False(t, records[4].StatusDate.Valid)
}

func TestSeedWorkbook_RefusesToOverwriteExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Status_dos_pedidos.xlsx")
	original := testhelpers.BuildWorkbook(t, testhelpers.StandardHeader, [][]interface{}{
		{"CV-REAL-001", "ACME", "Montagem", constants.StatusCompleted, seedNow.Add(-time.Hour), 1, "Torno"},
	})
	require.NoError(t, os.WriteFile(path, original, 0o644))

	err := SeedWorkbook(path, seedNow, false)
	require.ErrorIs(t, err, ErrWorkbookExists)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, onDisk)

	require.NoError(t, SeedWorkbook(path, seedNow, true))
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Len(t, rows, len(demoOrders)+1)
}

func TestSeedHistory_IsIdempotent(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()

	first, err := SeedHistory(ctx, db, seedNow)
	require.NoError(t, err)
	assert.Equal(t, 6, first)

	second, err := SeedHistory(ctx, db, seedNow)
	require.NoError(t, err)
	assert.Zero(t, second)
}
