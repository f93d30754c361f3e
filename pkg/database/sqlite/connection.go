package sqlite

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// busyTimeoutMs - сколько SQLite ждет освобождения блокировки, прежде чем вернуть "database is locked".
const busyTimeoutMs = 5000

// ConnectDB открывает (и при необходимости создает) файл базы и применяет миграции.
// В отличие от сервера, ошибку не роняем: без истории доска продолжает работать.
func ConnectDB(dbPath string, logger *zap.Logger) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("не удалось создать каталог базы: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL", dbPath, busyTimeoutMs)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть базу %s: %w", dbPath, err)
	}

	// SQLite - один писатель
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось пинговать базу %s: %w", dbPath, err)
	}

	if err := Migrate(db, logger); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("✅ База истории подключена", zap.String("path", dbPath))
	return db, nil
}

// Migrate применяет встроенные goose-миграции.
func Migrate(db *sql.DB, logger *zap.Logger) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(&gooseLogger{logger: logger.Named("goose")})
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("ошибка применения миграций: %w", err)
	}
	return nil
}

// gooseLogger перенаправляет вывод goose в zap.
type gooseLogger struct {
	logger *zap.Logger
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatal(fmt.Sprintf(format, v...))
}
