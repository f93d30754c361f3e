package seeders

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"production-board/pkg/config"
	"production-board/pkg/database/sqlite"
)

// SeedDemoWorkbook создает таблицу статусов по пути SOURCE_PATH.
func SeedDemoWorkbook(cfg *config.Config, now time.Time, force bool) {
	log.Println("▶️  Запуск создания демонстрационной таблицы...")
	if err := SeedWorkbook(cfg.Source.Path, now, force); err != nil {
		log.Fatalf("❌ Ошибка создания таблицы: %v", err)
	}
	log.Println("✅ Таблица создана!")
}

// SeedDemoHistory наполняет базу истории по пути DB_PATH (миграции применяются при подключении).
func SeedDemoHistory(cfg *config.Config, now time.Time) {
	log.Println("▶️  Запуск наполнения истории...")
	db, err := sqlite.ConnectDB(cfg.History.DBPath, zap.NewNop())
	if err != nil {
		log.Fatalf("❌ Ошибка подключения к базе истории: %v", err)
	}
	defer db.Close()

	if _, err := SeedHistory(context.Background(), db, now); err != nil {
		log.Fatalf("❌ Ошибка наполнения истории: %v", err)
	}
	log.Println("✅ Наполнение истории завершено!")
}
