package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Trigger - получатель сигналов об изменении источника (RefreshService).
type Trigger interface {
	Trigger()
}

// FileWatcher следит за каталогом таблицы и сигналит, когда меняется сам файл.
// Excel сохраняет файл в несколько приемов, поэтому сигнал отправляется только
// после паузы settle без новых событий.
type FileWatcher struct {
	path   string
	settle time.Duration
	target Trigger
	logger *zap.Logger

	mu    sync.Mutex
	timer *time.Timer
}

func NewFileWatcher(path string, settle time.Duration, target Trigger, logger *zap.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("некорректный путь к таблице %s: %w", path, err)
	}
	return &FileWatcher{
		path:   filepath.Clean(abs),
		settle: settle,
		target: target,
		logger: logger.Named("file_watcher"),
	}, nil
}

// Run блокирует до отмены ctx.
func (w *FileWatcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("не удалось создать наблюдатель файлов: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("не удалось следить за каталогом %s: %w", dir, err)
	}
	w.logger.Info("Наблюдение за таблицей запущено", zap.String("path", w.path), zap.Duration("settle", w.settle))

	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Наблюдение за таблицей остановлено")
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.matches(ev) {
				w.logger.Debug("Таблица изменена", zap.String("op", ev.Op.String()))
				w.schedule()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Ошибка наблюдателя файлов", zap.Error(err))
		}
	}
}

func (w *FileWatcher) matches(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return filepath.Clean(name) == w.path
}

// schedule откладывает сигнал: каждое новое событие сдвигает его на settle.
func (w *FileWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.settle, w.target.Trigger)
}

func (w *FileWatcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Poller сигналит с фиксированным интервалом; для удаленного источника,
// у которого нет событий изменения.
type Poller struct {
	interval time.Duration
	target   Trigger
	logger   *zap.Logger
}

func NewPoller(interval time.Duration, target Trigger, logger *zap.Logger) *Poller {
	return &Poller{interval: interval, target: target, logger: logger.Named("poller")}
}

func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	p.logger.Info("Периодическое обновление запущено", zap.Duration("interval", p.interval))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.target.Trigger()
		}
	}
}
