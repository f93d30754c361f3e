package integrations

import (
	"context"
	"io"
)

// SourceProvider отдает сырой файл таблицы статусов (xlsx/xlsm).
// Вызывающий обязан закрыть поток.
type SourceProvider interface {
	Name() string
	// Location - путь или URL, для логов и для сверки событий файловой системы.
	Location() string
	Open(ctx context.Context) (io.ReadCloser, error)
}
