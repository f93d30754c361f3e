package seeders

import "production-board/pkg/constants"

// demoOrders - демонстрационная таблица статусов. DaysAgo и Hour задают "Data Status"
// относительно момента запуска сидера; DaysAgo < 0 - ячейка даты пустая.
var demoOrders = []struct {
	ID        string
	Client    string
	Service   string
	Status    string
	DaysAgo   int
	Hour      int
	Qty       int
	Equipment string
}{
	// --- В работе ---
	{ID: "CV-1001", Client: "TERAVIX 120", Service: "Montagem de linha", Status: constants.StatusUrgent, DaysAgo: 0, Hour: 8, Qty: 12, Equipment: "Torno CNC"},
	{ID: "CV-1002", Client: "METALURGICA SUL", Service: "Revisão geral", Status: constants.StatusInAssembly, DaysAgo: 1, Hour: 10, Qty: 4, Equipment: "Fresadora"},
	{ID: "CV-1003", Client: "TERAVIX 121", Service: "Montagem de linha", Status: constants.StatusAwaitingAssembly, DaysAgo: 2, Hour: 14, Qty: 8, Equipment: "Prensa"},
	{ID: "CV-1004", Client: "AGRO NORTE", Service: "Instalação", Status: constants.StatusPending, DaysAgo: 3, Hour: 9, Qty: 2, Equipment: "Compressor"},
	{ID: "CV-1005", Client: "AGRO NORTE", Service: "Instalação", Status: constants.StatusAwaitingArrival, DaysAgo: -1, Qty: 3, Equipment: "Compressor"},
	{ID: "CV-1006", Client: "TERAVIX 122", Service: "Reforma", Status: constants.StatusInAssembly, DaysAgo: 4, Hour: 11, Qty: 6, Equipment: "Torno CNC"},

	// --- Завершенные ---
	{ID: "CV-0990", Client: "TERAVIX 118", Service: "Montagem de linha", Status: constants.StatusCompleted, DaysAgo: 0, Hour: 11, Qty: 10, Equipment: "Prensa"},
	{ID: "CV-0991", Client: "METALURGICA SUL", Service: "Revisão geral", Status: constants.StatusCompleted, DaysAgo: 0, Hour: 13, Qty: 3, Equipment: "Fresadora"},
	{ID: "CV-0985", Client: "TERAVIX 117", Service: "Reforma", Status: constants.StatusCompleted, DaysAgo: 6, Hour: 16, Qty: 25, Equipment: "Torno CNC"},
	{ID: "CV-0980", Client: "AGRO NORTE", Service: "Instalação", Status: constants.StatusCompleted, DaysAgo: 12, Hour: 10, Qty: 40, Equipment: "Compressor"},
	{ID: "CV-0975", Client: "TERAVIX 115", Service: "Montagem de linha", Status: constants.StatusCompleted, DaysAgo: 20, Hour: 15, Qty: 60, Equipment: "Prensa"},
	{ID: "CV-0960", Client: "TERAVIX 110", Service: "Montagem de linha", Status: constants.StatusCompleted, DaysAgo: 40, Hour: 9, Qty: 30, Equipment: "Prensa"},

	// --- Отмененные ---
	{ID: "CV-0995", Client: "AGRO NORTE", Service: "Instalação", Status: constants.StatusCancelled, DaysAgo: 0, Hour: 9, Qty: 1, Equipment: "Compressor"},
}
