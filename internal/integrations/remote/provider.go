package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"production-board/internal/integrations"
)

// maxBodySize ограничивает размер скачиваемой таблицы.
const maxBodySize = 64 << 20

var ErrBodyTooLarge = errors.New("таблица превышает допустимый размер")

// Provider скачивает таблицу по прямой ссылке (Google Sheets / SharePoint export).
type Provider struct {
	httpClient *http.Client
	url        string
	maxBody    int64
	logger     *zap.Logger
}

func New(url string, timeout time.Duration, logger *zap.Logger) integrations.SourceProvider {
	return &Provider{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		maxBody:    maxBodySize,
		logger:     logger.Named("remote_source"),
	}
}

func (p *Provider) Name() string {
	return "remote"
}

func (p *Provider) Location() string {
	return p.url
}

// Open скачивает файл целиком: excelize все равно читает zip в память.
func (p *Provider) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("некорректная ссылка на таблицу: %w", err)
	}

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки таблицы: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("сервер вернул статус %d при загрузке таблицы", resp.StatusCode)
	}

	// лишний байт отличает файл ровно на лимите от обрезанного
	body, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}
	if int64(len(body)) > p.maxBody {
		return nil, fmt.Errorf("%w: больше %d байт", ErrBodyTooLarge, p.maxBody)
	}

	p.logger.Debug("Таблица скачана",
		zap.Int("bytes", len(body)),
		zap.Duration("took", time.Since(start)),
	)
	return io.NopCloser(bytes.NewReader(body)), nil
}
