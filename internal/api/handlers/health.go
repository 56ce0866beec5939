package handlers

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/main-salman/haqnow/admin-module/internal/config"
)

// ReadinessChecker проверяет готовность внешней зависимости.
type ReadinessChecker interface {
	// CheckReady возвращает статус ("ok", "degraded" или "fail")
	// и человекочитаемое сообщение.
	CheckReady() (status string, message string)
}

// HealthHandler — обработчики liveness/readiness и метрик.
type HealthHandler struct {
	pgChecker   ReadinessChecker
	authChecker ReadinessChecker
	promHandler http.Handler
}

// NewHealthHandler создаёт обработчик health-проверок.
func NewHealthHandler(pgChecker, authChecker ReadinessChecker) *HealthHandler {
	return &HealthHandler{
		pgChecker:   pgChecker,
		authChecker: authChecker,
		promHandler: promhttp.Handler(),
	}
}

type healthLiveResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Service   string `json:"service"`
}

type healthCheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type healthReadyResponse struct {
	Status    string                       `json:"status"`
	Timestamp string                       `json:"timestamp"`
	Version   string                       `json:"version"`
	Service   string                       `json:"service"`
	Checks    map[string]healthCheckResult `json:"checks"`
}

// Live обрабатывает GET /health/live. Отвечает 200, пока процесс жив.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthLiveResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   "admin-module",
	})
}

// Ready обрабатывает GET /health/ready. Проверяет PostgreSQL и JWKS
// auth-провайдера; при отказе критичной зависимости отвечает 503.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]healthCheckResult, 2)

	pgStatus, pgMsg := h.pgChecker.CheckReady()
	checks["postgresql"] = healthCheckResult{Status: pgStatus, Message: pgMsg}

	authStatus, authMsg := h.authChecker.CheckReady()
	checks["auth"] = healthCheckResult{Status: authStatus, Message: authMsg}

	overall := overallStatus(pgStatus, authStatus)

	httpStatus := http.StatusOK
	if overall == "fail" {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthReadyResponse{
		Status:    overall,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   "admin-module",
		Checks:    checks,
	})
}

// Metrics обрабатывает GET /metrics.
func (h *HealthHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	h.promHandler.ServeHTTP(w, r)
}

// overallStatus агрегирует статусы зависимостей: fail > degraded > ok.
func overallStatus(statuses ...string) string {
	overall := "ok"
	for _, s := range statuses {
		switch s {
		case "fail":
			return "fail"
		case "degraded":
			overall = "degraded"
		}
	}
	return overall
}
