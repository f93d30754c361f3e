// Файл: main.go

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"production-board/internal/integrations"
	"production-board/internal/integrations/local"
	"production-board/internal/integrations/remote"
	"production-board/internal/listeners"
	"production-board/internal/repositories"
	"production-board/internal/routes"
	"production-board/internal/services"
	"production-board/internal/watcher"
	"production-board/pkg/config"
	"production-board/pkg/database/sqlite"
	apperrors "production-board/pkg/errors"
	"production-board/pkg/eventbus"
	applogger "production-board/pkg/logger"
	"production-board/pkg/middleware"
	"production-board/pkg/utils"
	"production-board/pkg/websocket"
)

func main() {
	// 1. Конфиг (.env читается внутри) и логгер
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Path)
	defer logger.Sync()

	v, err := config.NewValidator()
	if err != nil {
		logger.Fatal("Ошибка регистрации кастомных правил валидации", zap.Error(err))
	}
	if err := cfg.Validate(v); err != nil {
		logger.Fatal("Конфигурация не прошла проверку", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Хранилище истории. Без него доска работает, ошибка показывается на экране.
	var (
		completedRepo repositories.CompletedOrderRepositoryInterface
		txManager     repositories.TxManagerInterface
		storeErr      error
	)
	dbConn, err := sqlite.ConnectDB(cfg.History.DBPath, logger)
	if err != nil {
		storeErr = apperrors.NewStoreInit("Não foi possível abrir o banco de dados do histórico", err)
		logger.Error("Хранилище истории недоступно, продолжаем без него", zap.Error(err))
	} else {
		defer dbConn.Close()
		completedRepo = repositories.NewCompletedOrderRepository(dbConn, logger)
		txManager = repositories.NewTxManager(dbConn)
	}

	// 3. Кеш снимков: Redis, если включен, иначе память процесса
	cacheRepo := newCacheRepository(ctx, cfg.Redis, logger)

	// 4. Источник таблицы
	registry := integrations.NewRegistry()
	mustRegister(registry, local.New(cfg.Source.Path, logger), logger)
	mustRegister(registry, remote.New(cfg.Source.URL, cfg.Source.Timeout, logger), logger)
	if err := registry.SetActive(cfg.Source.Mode); err != nil {
		logger.Fatal("Неизвестный режим источника", zap.String("mode", cfg.Source.Mode), zap.Error(err))
	}

	// 5. Сервисы, шина событий и WebSocket
	bus := eventbus.New(logger)
	hub := websocket.NewHub(logger)
	notifier := services.NewWebSocketNotificationService(hub, logger)
	baseService := services.NewBaseService(cacheRepo, logger)
	listeners.NewBoardListener(baseService, notifier, logger).Register(bus)

	historyService := services.NewHistorySyncService(completedRepo, txManager, cfg.History.Prune, storeErr, logger)
	loader := services.NewRecordLoader(registry, cfg.Source.RetryDelay, logger)
	refreshService := services.NewRefreshService(loader, historyService, services.NewPhraseService(nil, nil), bus, logger)
	dashboardService := services.NewDashboardService(baseService, refreshService, logger)

	// 6. HTTP
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Erro interno do servidor", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		ExposeHeaders: []string{echo.HeaderContentDisposition},
	}))

	routes.InitRouter(e, routes.Services{
		Dashboard: dashboardService,
		Refresh:   refreshService,
		History:   historyService,
		Notifier:  notifier,
		Hub:       hub,
	}, logger)

	// 7. Запуск: все компоненты под одной errgroup, остановка по сигналу
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error { return refreshService.Run(gctx) })
	g.Go(func() error { return runTriggerSource(gctx, cfg.Source, refreshService, logger) })
	g.Go(func() error {
		logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	// первое обновление сразу при старте
	refreshService.Trigger()

	if err := g.Wait(); err != nil {
		logger.Error("Сервис остановлен с ошибкой", zap.Error(err))
		return
	}
	logger.Info("Сервис остановлен")
}

func mustRegister(registry integrations.RegistryInterface, provider integrations.SourceProvider, logger *zap.Logger) {
	if err := registry.Register(provider); err != nil {
		logger.Fatal("Ошибка регистрации источника", zap.String("source", provider.Name()), zap.Error(err))
	}
}

func newCacheRepository(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) repositories.CacheRepositoryInterface {
	if !cfg.Enabled {
		logger.Info("Redis выключен, снимки доски кешируются в памяти")
		return repositories.NewMemoryCacheRepository()
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       0,
	})
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logger.Warn("Не удалось подключиться к Redis, используется кеш в памяти", zap.Error(err), zap.String("address", cfg.Address))
		_ = redisClient.Close()
		return repositories.NewMemoryCacheRepository()
	}
	return repositories.NewRedisCacheRepository(redisClient)
}

// runTriggerSource - события файла в локальном режиме, таймер в удаленном.
func runTriggerSource(ctx context.Context, cfg config.SourceConfig, target watcher.Trigger, logger *zap.Logger) error {
	if cfg.Mode == config.SourceModeRemote {
		return watcher.NewPoller(cfg.PollInterval, target, logger).Run(ctx)
	}

	fw, err := watcher.NewFileWatcher(cfg.Path, cfg.SettleDelay, target, logger)
	if err != nil {
		return err
	}
	if err := fw.Run(ctx); err != nil {
		// без наблюдателя доска все равно обновляется по таймеру
		logger.Error("Наблюдение за файлом недоступно, переходим на периодическое обновление", zap.Error(err))
		return watcher.NewPoller(cfg.PollInterval, target, logger).Run(ctx)
	}
	return nil
}
