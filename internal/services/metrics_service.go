package services

import (
	"time"

	"production-board/internal/entities"
	"production-board/pkg/constants"
	"production-board/pkg/types"
	"production-board/pkg/utils"
)

// ComputeMonthlyMetrics считает показатели завершенных заказов:
// текущий месяц [1-е число 00:00, now], прошлый месяц [1-е число прошлого, 1-е число текущего).
func ComputeMonthlyMetrics(records []entities.OrderRecord, now time.Time) types.MonthlyMetrics {
	monthStart := utils.StartOfMonth(now)
	prevStart := utils.StartOfPrevMonth(now)

	var m types.MonthlyMetrics
	var current []entities.OrderRecord

	for _, r := range records {
		if !r.IsCompleted() || !r.StatusDate.Valid {
			continue
		}
		at := r.StatusDate.Time
		switch {
		case !at.Before(monthStart) && !at.After(now):
			current = append(current, r)
			m.CurrentCount++
			m.CurrentQty += r.Quantity
		case !at.Before(prevStart) && at.Before(monthStart):
			m.PreviousCount++
			m.PreviousQty += r.Quantity
		}
	}

	m.CurrentBusinessDays = utils.BusinessDays(monthStart, now)
	m.PreviousBusinessDays = utils.BusinessDays(prevStart, monthStart.AddDate(0, 0, -1))

	m.CurrentAvg = utils.SafeAverage(m.CurrentCount, m.CurrentBusinessDays)
	m.CurrentAvgQty = utils.SafeAverage(m.CurrentQty, m.CurrentBusinessDays)
	m.PreviousAvg = utils.SafeAverage(m.PreviousCount, m.PreviousBusinessDays)
	m.PreviousAvgQty = utils.SafeAverage(m.PreviousQty, m.PreviousBusinessDays)

	m.RecordCount, m.RecordDate, m.RecordQty = dailyRecord(current)
	return m
}

type dayBucket struct {
	day   time.Time
	count int
	qty   int
}

// dailyRecord - день с максимумом завершенных заказов; при равенстве побеждает более ранний.
func dailyRecord(completed []entities.OrderRecord) (int, string, int) {
	byDay := make(map[string]*dayBucket)
	for _, r := range completed {
		day := utils.StartOfDay(r.StatusDate.Time)
		key := day.Format("2006-01-02")
		b, ok := byDay[key]
		if !ok {
			b = &dayBucket{day: day}
			byDay[key] = b
		}
		b.count++
		b.qty += r.Quantity
	}

	var best *dayBucket
	for _, b := range byDay {
		if best == nil || b.count > best.count || (b.count == best.count && b.day.Before(best.day)) {
			best = b
		}
	}
	if best == nil {
		return 0, "", 0
	}
	return best.count, best.day.Format(constants.DisplayDateLayout), best.qty
}
