// Точка входа Admin Module — административный модуль платформы HaqNow.
// Загружает конфигурацию, подключается к PostgreSQL, применяет миграции,
// создаёт клиент backend API с пробросом токена администратора,
// инициализирует сервисный слой и API handlers, запускает topologymetrics
// и HTTP-сервер с JWT middleware и graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/main-salman/haqnow/admin-module/internal/api/handlers"
	"github.com/main-salman/haqnow/admin-module/internal/api/middleware"
	"github.com/main-salman/haqnow/admin-module/internal/api/openapi"
	"github.com/main-salman/haqnow/admin-module/internal/backend"
	"github.com/main-salman/haqnow/admin-module/internal/config"
	"github.com/main-salman/haqnow/admin-module/internal/database"
	"github.com/main-salman/haqnow/admin-module/internal/repository"
	"github.com/main-salman/haqnow/admin-module/internal/server"
	"github.com/main-salman/haqnow/admin-module/internal/service"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Admin Module запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	if os.Getenv("HQ_DEPHEALTH_GROUP") == "" {
		logger.Warn("HQ_DEPHEALTH_GROUP не задана, используется значение по умолчанию",
			slog.String("default", cfg.DephealthGroup),
		)
	}

	// 3. Применение миграций БД
	logger.Info("Применение миграций БД...")
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Подключение к PostgreSQL (pgxpool)
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// 4.1 Адаптер pgxpool → *sql.DB для topologymetrics (connection pool mode).
	// Проверка здоровья PostgreSQL идёт через существующий пул соединений,
	// что позволяет обнаружить его исчерпание.
	pgDB := stdlib.OpenDBFromPool(pool)
	defer pgDB.Close()

	// 5. Клиент backend API платформы.
	// Токен администратора пробрасывается per-request из контекста.
	backendClient, err := backend.New(
		cfg.BackendURL,
		cfg.BackendCACertPath,
		cfg.BackendTimeout,
		middleware.TokenFromContext,
		logger,
	)
	if err != nil {
		logger.Error("Ошибка создания backend-клиента", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Backend-клиент создан", slog.String("url", cfg.BackendURL))

	// 6. Repositories
	auditRepo := repository.NewAuditLogRepository(pool)
	uiSettingsRepo := repository.NewUISettingsRepository(pool)

	// 7. Services
	documentsSvc := service.NewDocumentService(backendClient, auditRepo, logger)
	commentsSvc := service.NewCommentService(backendClient, auditRepo, logger)
	bannedWordsSvc := service.NewBannedWordService(backendClient, auditRepo, logger)
	adminsSvc := service.NewAdminService(backendClient, auditRepo, logger)
	apiKeysSvc := service.NewAPIKeyService(backendClient, auditRepo, logger)
	translationsSvc := service.NewTranslationService(backendClient, logger)
	statsSvc := service.NewStatsService(backendClient, cfg.StatsCacheTTL, cfg.StatsCacheSize, logger)
	settingsSvc := service.NewUISettingsService(uiSettingsRepo, logger)

	// 8. Readiness checkers (PostgreSQL + auth-провайдер)
	pgChecker := database.NewReadinessChecker(pool)
	authChecker, err := middleware.NewAuthReadinessChecker(
		cfg.JWTJWKSURL, cfg.BackendCACertPath, cfg.BackendTimeout)
	if err != nil {
		logger.Error("Ошибка создания auth readiness checker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	healthHandler := handlers.NewHealthHandler(pgChecker, authChecker)

	// 9. API handler
	apiHandler := handlers.NewAPIHandler(
		healthHandler,
		documentsSvc,
		commentsSvc,
		bannedWordsSvc,
		adminsSvc,
		apiKeysSvc,
		translationsSvc,
		statsSvc,
		settingsSvc,
		auditRepo,
		logger,
	)

	// 10. JWT middleware
	jwtAuth, err := middleware.NewJWTAuth(
		cfg.JWTJWKSURL,
		cfg.BackendCACertPath,
		cfg.JWTIssuer,
		cfg.JWTJWKSRefreshInterval,
		cfg.JWTLeeway,
		logger,
	)
	if err != nil {
		logger.Error("Ошибка создания JWT middleware", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer jwtAuth.Close()
	logger.Info("JWT middleware инициализирован",
		slog.String("jwks_url", cfg.JWTJWKSURL),
		slog.String("issuer", cfg.JWTIssuer),
	)

	// 11. Валидация запросов по OpenAPI-контракту
	doc, err := openapi.Load(ctx)
	if err != nil {
		logger.Error("Ошибка загрузки OpenAPI-спецификации", slog.String("error", err.Error()))
		os.Exit(1)
	}
	validation, err := openapi.ValidationMiddleware(doc)
	if err != nil {
		logger.Error("Ошибка создания OpenAPI middleware", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 12. topologymetrics — мониторинг зависимостей (PostgreSQL + backend API)
	var dephealthSvc *service.DephealthService
	dephealthSvc, dephealthErr := service.NewDephealthService(
		"admin-module",
		cfg.DephealthGroup,
		pgDB,
		cfg.DatabaseURL(),
		cfg.BackendURL,
		cfg.DephealthCheckInterval,
		logger,
	)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
	} else {
		if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
		} else {
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
		}
	}

	// 13. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, apiHandler, jwtAuth, validation)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 14. Graceful shutdown фоновых задач
	if dephealthSvc != nil {
		dephealthSvc.Stop()
	}

	logger.Info("Admin Module остановлен")
}
