package main

import (
	"flag"
	"log"
	"time"

	"production-board/pkg/config"
	"production-board/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Демо-данные доски)         ")
	log.Println("======================================================")

	runWorkbook := flag.Bool("workbook", false, "Создать демонстрационную таблицу статусов (SOURCE_PATH)")
	runHistory := flag.Bool("history", false, "Наполнить базу истории завершенными заказами (DB_PATH)")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -workbook -history)")
	force := flag.Bool("force", false, "Перезаписать существующую таблицу SOURCE_PATH")

	flag.Parse()

	if !*runWorkbook && !*runHistory && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -workbook")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("  go run ./seeders/cmd/seed -workbook -force")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	now := time.Now()
	log.Println("📦 Таблица:", cfg.Source.Path)
	log.Println("📦 База истории:", cfg.History.DBPath)
	log.Println("======================================================")

	if *runAll || *runWorkbook {
		seeders.SeedDemoWorkbook(cfg, now, *force)
		log.Println("======================================================")
	}

	if *runAll || *runHistory {
		seeders.SeedDemoHistory(cfg, now)
		log.Println("======================================================")
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
