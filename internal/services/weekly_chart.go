package services

import (
	"time"

	"production-board/internal/entities"
	"production-board/pkg/constants"
	"production-board/pkg/types"
	"production-board/pkg/utils"
)

// ComputeWeeklySeries суммирует количество машин завершенных заказов по неделям (с понедельника)
// и возвращает последние ChartWeeks недель, заканчивая текущей, от старых к новым.
// Без единого завершенного заказа с датой Points пустой - это не то же самое, что четыре нуля.
func ComputeWeeklySeries(records []entities.OrderRecord, now time.Time) types.WeeklySeries {
	series := types.WeeklySeries{Goal: constants.WeeklyGoal}

	byWeek := make(map[string]int)
	found := false
	for _, r := range records {
		if !r.IsCompleted() || !r.StatusDate.Valid {
			continue
		}
		found = true
		byWeek[weekKey(r.StatusDate.Time)] += r.Quantity
	}
	if !found {
		return series
	}

	current := utils.StartOfWeek(now)
	series.Points = make([]types.WeeklyPoint, 0, constants.ChartWeeks)
	for i := constants.ChartWeeks - 1; i >= 0; i-- {
		start := current.AddDate(0, 0, -7*i)
		series.Points = append(series.Points, types.WeeklyPoint{
			WeekStart:     start,
			WeekEnd:       start.AddDate(0, 0, 6),
			Quantity:      byWeek[weekKey(start)],
			IsCurrentWeek: i == 0,
		})
	}
	return series
}

// weekKey - календарная дата понедельника недели.
func weekKey(t time.Time) string {
	return utils.StartOfWeek(t).Format("2006-01-02")
}
