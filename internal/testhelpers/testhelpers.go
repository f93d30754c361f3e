package testhelpers

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"production-board/pkg/constants"
	"production-board/pkg/database/sqlite"
	"production-board/pkg/utils"
)

// StandardHeader - полный набор колонок таблицы статусов.
var StandardHeader = []string{
	constants.ColumnOrderID,
	constants.ColumnClientRef,
	constants.ColumnService,
	constants.ColumnStatus,
	constants.ColumnStatusDate,
	constants.ColumnQuantity,
	constants.ColumnEquipment,
}

// BuildWorkbook собирает xlsx в памяти: первая строка - header, дальше rows.
// Значения time.Time пишутся датами Excel с тем же "настенным" временем.
func BuildWorkbook(tb testing.TB, header []string, rows [][]interface{}) []byte {
	tb.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		tb.Fatalf("не удалось записать заголовок: %v", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			tb.Fatalf("координаты ячейки: %v", err)
		}
		r := make([]interface{}, len(row))
		for j, v := range row {
			if t, ok := v.(time.Time); ok {
				v = utils.WallClockUTC(t)
			}
			r[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			tb.Fatalf("не удалось записать строку %d: %v", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		tb.Fatalf("не удалось сериализовать книгу: %v", err)
	}
	return buf.Bytes()
}

// SetupTestDB - свежая база истории во временном каталоге теста.
func SetupTestDB(tb testing.TB) *sql.DB {
	tb.Helper()

	db, err := sqlite.ConnectDB(filepath.Join(tb.TempDir(), "producao.db"), zap.NewNop())
	if err != nil {
		tb.Fatalf("Не удалось создать тестовую базу: %v", err)
	}
	tb.Cleanup(func() { db.Close() })
	return db
}
