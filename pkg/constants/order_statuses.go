package constants

// --- СТАТУСЫ ЗАКАЗОВ (совпадают с текстом в колонке "Status" таблицы) ---
const (
	StatusPending          = "Pendente"
	StatusAwaitingAssembly = "Aguardando Montagem"
	StatusAwaitingArrival  = "Aguardando Chegada"
	StatusInAssembly       = "Em Montagem"
	StatusCompleted        = "Concluído"
	StatusCancelled        = "Cancelado"
	StatusUrgent           = "Urgente"
)

// Финальные статусы: такие заказы не участвуют в приоритизации
var TerminalStatuses = []string{
	StatusCompleted,
	StatusCancelled,
}

// IsTerminalStatus сравнивает точно, без нормализации регистра.
func IsTerminalStatus(status string) bool {
	for _, s := range TerminalStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// PriorityStatuses - статусы, из которых набираются карточки "PRIORIDADES".
var PriorityStatuses = []string{
	StatusAwaitingAssembly,
	StatusInAssembly,
	StatusUrgent,
}

func IsPriorityStatus(status string) bool {
	for _, s := range PriorityStatuses {
		if s == status {
			return true
		}
	}
	return false
}
