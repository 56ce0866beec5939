// Пакет config — загрузка и валидация конфигурации Admin Module
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации Admin Module.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- PostgreSQL (журнал модерации, настройки интерфейса) ---

	// Хост PostgreSQL
	DBHost string
	// Порт PostgreSQL
	DBPort int
	// Имя базы данных
	DBName string
	// Имя пользователя PostgreSQL
	DBUser string
	// Пароль пользователя PostgreSQL
	DBPassword string
	// Режим SSL: disable, require, verify-ca, verify-full
	DBSSLMode string

	// --- Backend API (document-processing, comments, translations) ---

	// Базовый URL backend API
	BackendURL string
	// Путь к CA-сертификату для TLS-соединений с backend (опционально)
	BackendCACertPath string
	// Таймаут HTTP-запросов к backend
	BackendTimeout time.Duration

	// --- JWT ---

	// URL JWKS endpoint провайдера аутентификации
	JWTJWKSURL string
	// Ожидаемый issuer JWT (пустой — не проверяется)
	JWTIssuer string
	// Интервал обновления JWKS
	JWTJWKSRefreshInterval time.Duration
	// Допустимое расхождение часов при проверке exp/nbf
	JWTLeeway time.Duration

	// --- Кэш статистики ---

	// Время жизни записи в кэше статистики
	StatsCacheTTL time.Duration
	// Максимальное число записей в кэше статистики
	StatsCacheSize int

	// --- Dephealth ---

	// Имя группы вершин в графе topologymetrics
	DephealthGroup string
	// Интервал проверки зависимостей topologymetrics
	DephealthCheckInterval time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// обязательные поля и возвращает Config или ошибку.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// HQ_PORT — порт HTTP-сервера (по умолчанию 8080)
	cfg.Port, err = getEnvInt("HQ_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("HQ_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("HQ_PORT: значение %d вне допустимого диапазона 1-65535", cfg.Port)
	}

	// HQ_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("HQ_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("HQ_LOG_LEVEL: %w", err)
	}

	// HQ_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("HQ_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("HQ_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- PostgreSQL ---

	// HQ_DB_HOST — обязательный
	cfg.DBHost, err = getEnvRequired("HQ_DB_HOST")
	if err != nil {
		return nil, err
	}

	// HQ_DB_PORT — порт PostgreSQL (по умолчанию 5432)
	cfg.DBPort, err = getEnvInt("HQ_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("HQ_DB_PORT: %w", err)
	}

	// HQ_DB_NAME — обязательный
	cfg.DBName, err = getEnvRequired("HQ_DB_NAME")
	if err != nil {
		return nil, err
	}

	// HQ_DB_USER — обязательный
	cfg.DBUser, err = getEnvRequired("HQ_DB_USER")
	if err != nil {
		return nil, err
	}

	// HQ_DB_PASSWORD — обязательный
	cfg.DBPassword, err = getEnvRequired("HQ_DB_PASSWORD")
	if err != nil {
		return nil, err
	}

	// HQ_DB_SSL_MODE — режим SSL (по умолчанию disable)
	cfg.DBSSLMode = getEnvDefault("HQ_DB_SSL_MODE", "disable")
	validSSLModes := map[string]bool{
		"disable": true, "require": true, "verify-ca": true, "verify-full": true,
	}
	if !validSSLModes[cfg.DBSSLMode] {
		return nil, fmt.Errorf("HQ_DB_SSL_MODE: недопустимое значение %q, допустимые: disable, require, verify-ca, verify-full", cfg.DBSSLMode)
	}

	// --- Backend API ---

	// HQ_BACKEND_URL — обязательный
	cfg.BackendURL, err = getEnvRequired("HQ_BACKEND_URL")
	if err != nil {
		return nil, err
	}
	// Убираем trailing slash
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")

	// HQ_BACKEND_CA_CERT_PATH — путь к CA-сертификату backend (опционально)
	cfg.BackendCACertPath = getEnvDefault("HQ_BACKEND_CA_CERT_PATH", "")

	// HQ_BACKEND_TIMEOUT — таймаут запросов к backend (по умолчанию 30s)
	cfg.BackendTimeout, err = getEnvDuration("HQ_BACKEND_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("HQ_BACKEND_TIMEOUT: %w", err)
	}

	// --- JWT ---

	// HQ_JWT_JWKS_URL — обязательный
	cfg.JWTJWKSURL, err = getEnvRequired("HQ_JWT_JWKS_URL")
	if err != nil {
		return nil, err
	}

	// HQ_JWT_ISSUER — ожидаемый issuer (опционально)
	cfg.JWTIssuer = getEnvDefault("HQ_JWT_ISSUER", "")

	// HQ_JWT_JWKS_REFRESH_INTERVAL — интервал обновления JWKS (по умолчанию 1h)
	cfg.JWTJWKSRefreshInterval, err = getEnvDuration("HQ_JWT_JWKS_REFRESH_INTERVAL", time.Hour)
	if err != nil {
		return nil, fmt.Errorf("HQ_JWT_JWKS_REFRESH_INTERVAL: %w", err)
	}

	// HQ_JWT_LEEWAY — допуск расхождения часов (по умолчанию 30s)
	cfg.JWTLeeway, err = getEnvDuration("HQ_JWT_LEEWAY", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("HQ_JWT_LEEWAY: %w", err)
	}

	// --- Кэш статистики ---

	// HQ_STATS_CACHE_TTL — TTL записей кэша (по умолчанию 5m)
	cfg.StatsCacheTTL, err = getEnvDuration("HQ_STATS_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("HQ_STATS_CACHE_TTL: %w", err)
	}

	// HQ_STATS_CACHE_SIZE — размер кэша (по умолчанию 128)
	cfg.StatsCacheSize, err = getEnvInt("HQ_STATS_CACHE_SIZE", 128)
	if err != nil {
		return nil, fmt.Errorf("HQ_STATS_CACHE_SIZE: %w", err)
	}
	if cfg.StatsCacheSize < 1 || cfg.StatsCacheSize > 100000 {
		return nil, fmt.Errorf("HQ_STATS_CACHE_SIZE: значение %d вне допустимого диапазона 1-100000", cfg.StatsCacheSize)
	}

	// --- Dephealth ---

	// HQ_DEPHEALTH_GROUP — имя группы вершин в графе topologymetrics
	cfg.DephealthGroup = getEnvDefault("HQ_DEPHEALTH_GROUP", "haqnow")

	// HQ_DEPHEALTH_CHECK_INTERVAL — интервал проверки зависимостей (по умолчанию 15s)
	cfg.DephealthCheckInterval, err = getEnvDuration("HQ_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("HQ_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// --- Graceful shutdown ---

	// HQ_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("HQ_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("HQ_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// DatabaseDSN возвращает строку подключения к PostgreSQL.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode,
	)
}

// DatabaseURL возвращает URL подключения к PostgreSQL для dephealth.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
