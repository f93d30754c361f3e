package services

import (
	"sort"
	"time"

	"production-board/internal/dto"
	"production-board/internal/entities"
	"production-board/pkg/constants"
	"production-board/pkg/types"
	"production-board/pkg/utils"
)

// PartitionViews раскладывает полную таблицу по представлениям доски.
// now задает "сегодня" по местным настенным часам.
func PartitionViews(records []entities.OrderRecord, now time.Time) dto.BoardViewsDTO {
	active := RankActive(records)
	completedToday := terminalOfDay(records, constants.StatusCompleted, now)
	cancelledToday := terminalOfDay(records, constants.StatusCancelled, now)

	return dto.BoardViewsDTO{
		Active:          active,
		Columns:         BuildColumns(active),
		CompletedToday:  completedToday,
		CancelledToday:  cancelledToday,
		CompletedTotals: DailyTotalsOf(completedToday),
		CancelledTotals: DailyTotalsOf(cancelledToday),
	}
}

// RankActive присваивает приоритеты незавершенным заказам: сначала все "Urgente" в исходном порядке,
// потом остальные в исходном порядке. Пустой вход дает nil - приоритетов нет.
func RankActive(records []entities.OrderRecord) []dto.ActiveOrderDTO {
	var urgent, rest []dto.ActiveOrderDTO
	for _, r := range records {
		if r.IsTerminal() {
			continue
		}
		item := dto.ActiveOrderDTO{OrderRecord: r, IsUrgent: r.IsUrgent()}
		if item.IsUrgent {
			urgent = append(urgent, item)
		} else {
			rest = append(rest, item)
		}
	}
	if len(urgent)+len(rest) == 0 {
		return nil
	}

	active := append(urgent, rest...)
	for i := range active {
		active[i].Priority = i + 1
	}
	return active
}

// terminalOfDay - заказы с точным статусом status и датой статуса в календарный день now,
// от самых поздних к ранним.
func terminalOfDay(records []entities.OrderRecord, status string, now time.Time) []entities.OrderRecord {
	var out []entities.OrderRecord
	for _, r := range records {
		if r.Status != status || !r.StatusDate.Valid {
			continue
		}
		if utils.SameDay(r.StatusDate.Time, now) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StatusDate.Time.After(out[j].StatusDate.Time)
	})
	return out
}

// DailyTotalsOf делит записи по маркеру категории в ClientRef.
func DailyTotalsOf(records []entities.OrderRecord) types.DailyTotals {
	var t types.DailyTotals
	for _, r := range records {
		if r.HasMarker() {
			t.MarkerCount++
			t.MarkerQty += r.Quantity
		} else {
			t.OtherCount++
			t.OtherQty += r.Quantity
		}
	}
	t.TotalCount = t.MarkerCount + t.OtherCount
	t.TotalQty = t.MarkerQty + t.OtherQty
	return t
}

// BuildColumns собирает колонки доски. Заказы, попавшие в карточки приоритетов,
// не дублируются в колонках "Em Montagem" и "Aguardando Montagem".
// Нераспознанные статусы не попадают ни в одну колонку.
func BuildColumns(active []dto.ActiveOrderDTO) dto.BoardColumnsDTO {
	var cols dto.BoardColumnsDTO

	inPriority := make(map[string]struct{})
	for _, a := range active {
		if len(cols.Priorities) == constants.PriorityCards {
			break
		}
		if constants.IsPriorityStatus(a.Status) {
			cols.Priorities = append(cols.Priorities, a)
			inPriority[a.OrderID] = struct{}{}
		}
	}

	for _, a := range active {
		_, shown := inPriority[a.OrderID]
		switch a.Status {
		case constants.StatusInAssembly:
			if !shown {
				cols.InAssembly = append(cols.InAssembly, a)
			}
		case constants.StatusPending:
			cols.Pending = append(cols.Pending, a)
		case constants.StatusAwaitingAssembly:
			if !shown {
				cols.AwaitingAssembly = append(cols.AwaitingAssembly, a)
			}
		case constants.StatusAwaitingArrival:
			cols.AwaitingArrival = append(cols.AwaitingArrival, a)
		}
	}
	return cols
}
