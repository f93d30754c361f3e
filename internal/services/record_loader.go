package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/sethvargo/go-retry"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"production-board/internal/entities"
	"production-board/internal/integrations"
	"production-board/pkg/constants"
	apperrors "production-board/pkg/errors"
)

// Текстовые форматы даты, которые встречаются в колонке "Data Status",
// когда ячейка заполнена строкой, а не датой Excel.
var statusDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	time.RFC3339,
}

type RecordLoaderInterface interface {
	// Load читает активный источник и возвращает всю нормализованную таблицу,
	// включая завершенные и отмененные заказы.
	Load(ctx context.Context) ([]entities.OrderRecord, error)
}

type RecordLoader struct {
	registry   integrations.RegistryInterface
	retryDelay time.Duration
	logger     *zap.Logger
}

func NewRecordLoader(registry integrations.RegistryInterface, retryDelay time.Duration, logger *zap.Logger) RecordLoaderInterface {
	if retryDelay <= 0 {
		retryDelay = time.Millisecond
	}
	return &RecordLoader{registry: registry, retryDelay: retryDelay, logger: logger}
}

func (l *RecordLoader) Load(ctx context.Context) ([]entities.OrderRecord, error) {
	provider, err := l.registry.GetActive()
	if err != nil {
		return nil, apperrors.NewSourceUnavailable("источник таблицы не настроен", err)
	}

	l.logger.Debug("Загрузка таблицы", zap.String("source", l.registry.Active()), zap.String("location", provider.Location()))

	var records []entities.OrderRecord
	// Одна повторная попытка: файл часто занят Excel'ем в момент сохранения.
	backoff := retry.WithMaxRetries(1, retry.NewConstant(l.retryDelay))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		recs, err := l.read(ctx, provider)
		if err != nil {
			if isTransientSourceError(err) {
				l.logger.Warn("Таблица временно недоступна, повторим", zap.Error(err))
				return retry.RetryableError(err)
			}
			return err
		}
		records = recs
		return nil
	})
	if err != nil {
		return nil, apperrors.NewSourceUnavailable(
			fmt.Sprintf("Não foi possível carregar a planilha (%s). Verifique o caminho ou o link.", provider.Location()),
			err,
		)
	}

	l.logger.Info("Таблица загружена", zap.Int("rows", len(records)))
	return records, nil
}

func (l *RecordLoader) read(ctx context.Context, provider integrations.SourceProvider) ([]entities.OrderRecord, error) {
	rc, err := provider.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	f, err := excelize.OpenReader(rc)
	if err != nil {
		return nil, fmt.Errorf("файл не является книгой Excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("в книге нет листов")
	}

	// RawCellValue: даты приходят серийными числами, без форматирования ячейки
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения листа %s: %w", sheets[0], err)
	}

	return NormalizeRows(rows)
}

// orderSchema сопоставляет заголовки колонок с их позициями.
type orderSchema struct {
	index map[string]int
}

var requiredColumns = []string{
	constants.ColumnOrderID,
	constants.ColumnStatus,
	constants.ColumnStatusDate,
}

func newOrderSchema(header []string) (orderSchema, error) {
	s := orderSchema{index: make(map[string]int, len(header))}
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, dup := s.index[name]; !dup {
			s.index[name] = i
		}
	}
	var missing []string
	for _, col := range requiredColumns {
		if !s.has(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return s, fmt.Errorf("в таблице нет обязательных колонок: %s", strings.Join(missing, ", "))
	}
	return s, nil
}

func (s orderSchema) has(column string) bool {
	_, ok := s.index[column]
	return ok
}

// cell возвращает значение ячейки; короткие строки (excelize обрезает хвост) дают "".
func (s orderSchema) cell(row []string, column string) string {
	i, ok := s.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// textOrDefault - отсутствующая колонка или пустая ячейка дают значение по умолчанию.
func (s orderSchema) textOrDefault(row []string, column, def string) string {
	if !s.has(column) {
		return def
	}
	v := s.cell(row, column)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// NormalizeRows превращает сырые строки листа (первая - заголовок) в типизированные записи.
// Строки, чей номер не начинается с OrderIDPrefix, отбрасываются.
func NormalizeRows(rows [][]string) ([]entities.OrderRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("лист пустой: нет строки заголовков")
	}

	schema, err := newOrderSchema(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]entities.OrderRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		orderID := schema.cell(row, constants.ColumnOrderID)
		if !strings.HasPrefix(orderID, constants.OrderIDPrefix) {
			continue
		}

		quantity := constants.DefaultQuantity
		if schema.has(constants.ColumnQuantity) {
			quantity = ParseQuantity(schema.cell(row, constants.ColumnQuantity))
		}

		records = append(records, entities.OrderRecord{
			RowIndex:           len(records),
			OrderID:            orderID,
			ClientRef:          schema.textOrDefault(row, constants.ColumnClientRef, constants.DefaultClientRef),
			ServiceDescription: schema.textOrDefault(row, constants.ColumnService, constants.DefaultService),
			Status:             schema.cell(row, constants.ColumnStatus),
			StatusDate:         ParseStatusDate(schema.cell(row, constants.ColumnStatusDate)),
			Quantity:           quantity,
			Equipment:          schema.textOrDefault(row, constants.ColumnEquipment, constants.DefaultEquipment),
		})
	}
	return records, nil
}

// ParseQuantity: нечисловое значение -> 0, дробное усекается, отрицательное -> 0.
func ParseQuantity(raw string) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}

// ParseStatusDate понимает серийные даты Excel и текстовые форматы из statusDateLayouts.
// Все остальное - null, не ошибка.
func ParseStatusDate(raw string) null.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return null.Time{}
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if serial <= 0 || math.IsNaN(serial) || math.IsInf(serial, 0) {
			return null.Time{}
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return null.Time{}
		}
		// excelize возвращает "настенное" время в UTC; переносим в локальную зону без сдвига
		t = t.Round(time.Second)
		return null.TimeFrom(time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local))
	}

	for _, layout := range statusDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return null.TimeFrom(t)
		}
	}
	return null.Time{}
}

// isTransientSourceError - блокировка файла или нехватка прав, которые обычно проходят сами.
func isTransientSourceError(err error) bool {
	if errors.Is(err, fs.ErrPermission) || errors.Is(err, syscall.EBUSY) || errors.Is(err, syscall.EAGAIN) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "being used by another process") || strings.Contains(msg, "locked")
}
