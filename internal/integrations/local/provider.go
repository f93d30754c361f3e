package local

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"production-board/internal/integrations"
)

// Provider читает таблицу с локального диска.
type Provider struct {
	path   string
	logger *zap.Logger
}

func New(path string, logger *zap.Logger) integrations.SourceProvider {
	return &Provider{
		path:   path,
		logger: logger.Named("local_source"),
	}
}

func (p *Provider) Name() string {
	return "local"
}

func (p *Provider) Location() string {
	return p.path
}

func (p *Provider) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.logger.Debug("Открываем локальную таблицу", zap.String("path", p.path))
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл %s: %w", p.path, err)
	}
	return f, nil
}
