package types

import "time"

// DailyTotals - итоги за день по двум категориям клиентов (маркер / остальные).
type DailyTotals struct {
	MarkerCount int `json:"marker_count"`
	MarkerQty   int `json:"marker_qty"`
	OtherCount  int `json:"other_count"`
	OtherQty    int `json:"other_qty"`
	TotalCount  int `json:"total_count"`
	TotalQty    int `json:"total_qty"`
}

// MonthlyMetrics - показатели текущего и прошлого месяца.
type MonthlyMetrics struct {
	CurrentCount         int     `json:"current_count"`
	CurrentQty           int     `json:"current_qty"`
	CurrentAvg           float64 `json:"current_avg"`
	CurrentAvgQty        float64 `json:"current_avg_qty"`
	CurrentBusinessDays  int     `json:"current_business_days"`
	PreviousCount        int     `json:"previous_count"`
	PreviousQty          int     `json:"previous_qty"`
	PreviousAvg          float64 `json:"previous_avg"`
	PreviousAvgQty       float64 `json:"previous_avg_qty"`
	PreviousBusinessDays int     `json:"previous_business_days"`

	// Рекорд дня в текущем месяце. RecordDate пустая, если завершенных нет.
	RecordCount int    `json:"record_count"`
	RecordDate  string `json:"record_date"`
	RecordQty   int    `json:"record_qty"`
}

// WeeklyPoint - одна неделя графика (понедельник–воскресенье).
type WeeklyPoint struct {
	WeekStart     time.Time `json:"week_start"`
	WeekEnd       time.Time `json:"week_end"`
	Quantity      int       `json:"quantity"`
	IsCurrentWeek bool      `json:"is_current_week"`
}

// WeeklySeries - ровно ChartWeeks точек, если есть хоть один завершенный заказ, иначе пусто.
type WeeklySeries struct {
	Goal   int           `json:"goal"`
	Points []WeeklyPoint `json:"points"`
}
