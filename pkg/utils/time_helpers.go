package utils

import (
	"time"
)

// StartOfDay обнуляет время, оставляя часовой пояс исходной даты.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay - совпадает ли календарная дата (по настенным часам t).
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfMonth - первое число месяца, 00:00.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// StartOfPrevMonth - первое число предыдущего месяца, 00:00.
func StartOfPrevMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, -1, 0)
}

// StartOfWeek - понедельник недели, 00:00.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // понедельник = 0
	return day.AddDate(0, 0, -offset)
}

// BusinessDays считает дни Пн–Пт в диапазоне [from, to] по календарным датам, включая обе границы.
// Праздники не учитываются. Если to раньше from, результат 0.
func BusinessDays(from, to time.Time) int {
	start := StartOfDay(from)
	end := StartOfDay(to)
	if end.Before(start) {
		return 0
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
			continue
		}
		count++
	}
	return count
}

// SafeAverage - деление с нулем вместо ошибки при пустом знаменателе.
func SafeAverage(total, days int) float64 {
	if days <= 0 {
		return 0
	}
	return float64(total) / float64(days)
}

// WallClockUTC - то же "настенное" время в UTC. Excel хранит даты без зоны,
// а excelize переводит time.Time в серийное число по UTC.
func WallClockUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
