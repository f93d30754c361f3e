// pkg/constants/constants.go
package constants

import "time"

//============== КОЛОНКИ ТАБЛИЦЫ ==============

// Заголовки колонок исходной таблицы. Сравниваются после TrimSpace.
const (
	ColumnOrderID    = "Pedido"
	ColumnClientRef  = "PV"
	ColumnService    = "Servico"
	ColumnStatus     = "Status"
	ColumnStatusDate = "Data Status"
	ColumnQuantity   = "Qtd Maquinas"
	ColumnEquipment  = "Equipamento"
)

// Значения по умолчанию для необязательных колонок.
const (
	DefaultClientRef = "TERAVIX"
	DefaultService   = "Detalhe não disponível"
	DefaultQuantity  = 0
	DefaultEquipment = "Não especificado"
)

//============== ПРАВИЛА ДОСКИ ==============

const (
	// OrderIDPrefix - строки без этого префикса отбрасываются при загрузке.
	OrderIDPrefix = "CV-"

	// CategoryMarker делит клиентов на две категории (поиск подстроки с учетом регистра).
	CategoryMarker = "TERAVIX"

	// WeeklyGoal - недельная цель в машинах.
	WeeklyGoal = 500

	// ChartWeeks - сколько последних недель показывает график.
	ChartWeeks = 4

	// PriorityCards - сколько карточек показывается в колонке приоритетов.
	PriorityCards = 4

	// ManualSyncWindow - окно ручной синхронизации истории.
	ManualSyncWindow = 30 * 24 * time.Hour
)

//============== ФОРМАТЫ ДАТ ==============

const (
	// StoreTimestampLayout - формат колонки data_conclusao.
	StoreTimestampLayout = "2006-01-02 15:04:05"

	// DisplayDateLayout - формат даты рекорда.
	DisplayDateLayout = "02/01/2006"
)

//============== КЛЮЧИ КЕША ==============

const (
	// CacheKeyBoardSnapshot хранит последний успешный снимок доски (JSON).
	CacheKeyBoardSnapshot = "board:snapshot"

	// CacheKeyBoardState хранит текущее состояние доски (ok / error).
	CacheKeyBoardState = "board:state"

	// CacheKeyRefreshCount - счетчик успешных обновлений доски.
	CacheKeyRefreshCount = "board:refresh_count"
)
