package seeders

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"production-board/pkg/constants"
	"production-board/pkg/utils"
)

// ErrWorkbookExists - по пути уже лежит таблица, а перезапись не разрешена.
var ErrWorkbookExists = errors.New("таблица уже существует")

// SeedWorkbook пишет демонстрационную таблицу статусов по пути path.
// Существующий файл перезаписывается только при force.
func SeedWorkbook(path string, now time.Time, force bool) error {
	log.Printf("  - Создание демонстрационной таблицы '%s'...", path)

	if _, err := os.Stat(path); err == nil {
		if !force {
			return fmt.Errorf("%w: %s (используйте -force для перезаписи)", ErrWorkbookExists, path)
		}
		log.Printf("  ! Файл '%s' будет перезаписан (-force)", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := []interface{}{
		constants.ColumnOrderID,
		constants.ColumnClientRef,
		constants.ColumnService,
		constants.ColumnStatus,
		constants.ColumnStatusDate,
		constants.ColumnQuantity,
		constants.ColumnEquipment,
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 22})
	if err != nil {
		return err
	}

	today := utils.StartOfDay(now)
	for i, o := range demoOrders {
		var statusDate interface{} = ""
		if o.DaysAgo >= 0 {
			statusDate = utils.WallClockUTC(today.AddDate(0, 0, -o.DaysAgo).Add(time.Duration(o.Hour) * time.Hour))
		}
		row := []interface{}{o.ID, o.Client, o.Service, o.Status, statusDate, o.Qty, o.Equipment}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("строка %s: %w", o.ID, err)
		}
		dateCell, _ := excelize.CoordinatesToCellName(5, i+2)
		_ = f.SetCellStyle(sheet, dateCell, dateCell, dateStyle)
	}
	_ = f.SetColWidth(sheet, "B", "C", 22)
	_ = f.SetColWidth(sheet, "E", "E", 18)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return f.SaveAs(path)
}
