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

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"backoffice/internal/adminapi"
	"backoffice/internal/listeners"
	"backoffice/internal/listkit"
	"backoffice/internal/repositories"
	"backoffice/internal/routes"
	"backoffice/pkg/config"
	"backoffice/pkg/database/postgresql"
	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/eventbus"
	applogger "backoffice/pkg/logger"
	"backoffice/pkg/middleware"
	"backoffice/pkg/service"
	"backoffice/pkg/utils"
	appwebsocket "backoffice/pkg/websocket"
)

const purgeInterval = time.Hour

func main() {
	// 1. Конфиг и логгер
	cfg := config.New()
	v := validator.New()
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.File)
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(v); err != nil {
		logger.Fatal("Некорректная конфигурация", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Echo и middleware
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
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
	}))
	e.Use(middleware.RequestLogger(logger.Named("http")))
	e.Validator = utils.NewValidator(v)

	// 3. Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}
	defer redisClient.Close()
	cache := repositories.NewRedisCacheRepository(redisClient)

	// 4. PostgreSQL: состояния поиска и журнал действий. Без DSN журнал не ведётся.
	var (
		dbConn    *pgxpool.Pool
		pgStates  *repositories.PostgresStateStore
		auditRepo repositories.AuditRepositoryInterface
		shared    listkit.StateStore
	)
	if cfg.Postgres.DSN != "" {
		if err := postgresql.Migrate(cfg.Postgres.DSN); err != nil {
			logger.Fatal("Ошибка применения миграций", zap.Error(err))
		}
		pool, err := postgresql.Connect(ctx, cfg.Postgres.DSN)
		if err != nil {
			logger.Fatal("не удалось подключиться к PostgreSQL", zap.Error(err))
		}
		dbConn = pool
		defer dbConn.Close()
		pgStates = repositories.NewPostgresStateStore(dbConn, logger.Named("state"))
		auditRepo = repositories.NewAuditRepository(dbConn, logger.Named("audit"))
	}

	switch cfg.List.StateStore {
	case repositories.StateStoreRedis:
		shared = repositories.NewRedisStateStore(cache)
	case repositories.StateStorePostgres:
		if pgStates == nil {
			logger.Fatal("STATE_STORE=postgres требует DATABASE_URL")
		}
		shared = pgStates
	}
	stores := repositories.NewStateStoreFactory(cfg.List.StateStore, shared)

	// 5. Клиент API, шина событий, хаб live-сессий
	client := adminapi.New(cfg.API.BaseURL, cfg.API.Timeout, logger)
	bus := eventbus.New(logger.Named("eventbus"))
	hub := appwebsocket.NewHub(logger.Named("hub"))
	go hub.Run(ctx)

	if auditRepo != nil {
		listeners.NewAuditListener(auditRepo, logger.Named("audit")).Register(bus)
	}
	listeners.NewLiveListener(hub, logger.Named("live")).Register(bus)

	// 6. Маршруты
	routes.InitRouter(e, routes.Dependencies{
		Client:    client,
		Cache:     cache,
		Stores:    stores,
		AuditRepo: auditRepo,
		Bus:       bus,
		Hub:       hub,
		JWT:       service.NewJWTService(cfg.JWT.SecretKey, logger.Named("jwt")),
		Config:    cfg,
	}, &routes.Loggers{
		Main: logger,
		Auth: logger.Named("auth"),
		List: logger.Named("list"),
		Live: logger.Named("live"),
	})

	if cfg.List.StateStore == repositories.StateStorePostgres {
		go purgeStates(ctx, pgStates, logger)
	}

	// 7. Запуск и плавная остановка
	go func() {
		logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port), zap.String("state_store", cfg.List.StateStore))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Остановка сервера")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки сервера", zap.Error(err))
	}
	bus.Wait()
}

// purgeStates раз в час удаляет просроченные состояния поиска.
func purgeStates(ctx context.Context, store *repositories.PostgresStateStore, logger *zap.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.PurgeExpired(ctx)
			if err != nil {
				logger.Error("Ошибка очистки состояний поиска", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("Удалены просроченные состояния поиска", zap.Int64("count", n))
			}
		}
	}
}
