package events

import (
	"production-board/internal/dto"
)

const (
	BoardRefreshed = "board.refreshed"
	BoardFailed    = "board.failed"
	HistorySynced  = "history.synced"
)

// BoardRefreshedEvent - обновление прошло успешно, снимок готов к показу.
type BoardRefreshedEvent struct {
	Snapshot dto.BoardSnapshotDTO
	State    dto.BoardStateDTO
}

func (e BoardRefreshedEvent) Name() string { return BoardRefreshed }

// BoardFailedEvent - таблица недоступна; доска переходит в состояние ошибки.
type BoardFailedEvent struct {
	State dto.BoardStateDTO
}

func (e BoardFailedEvent) Name() string { return BoardFailed }

// HistorySyncedEvent - итог сверки или ручной синхронизации истории.
type HistorySyncedEvent struct {
	Result dto.SyncResultDTO
	Manual bool
}

func (e HistorySyncedEvent) Name() string { return HistorySynced }
