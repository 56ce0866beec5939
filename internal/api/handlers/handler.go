// handler.go — основной обработчик API Admin Module.
// Объединяет доменные обработчики, регистрирует маршруты chi и
// делегирует запросы в сервисный слой.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/main-salman/haqnow/admin-module/internal/api/errors"
	"github.com/main-salman/haqnow/admin-module/internal/api/middleware"
	"github.com/main-salman/haqnow/admin-module/internal/repository"
	"github.com/main-salman/haqnow/admin-module/internal/service"
)

// APIHandler — основной обработчик API Admin Module.
type APIHandler struct {
	health       *HealthHandler
	documents    *service.DocumentService
	comments     *service.CommentService
	bannedWords  *service.BannedWordService
	admins       *service.AdminService
	apiKeys      *service.APIKeyService
	translations *service.TranslationService
	stats        *service.StatsService
	settings     *service.UISettingsService
	auditRepo    repository.AuditLogRepository
	logger       *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(
	health *HealthHandler,
	documents *service.DocumentService,
	comments *service.CommentService,
	bannedWords *service.BannedWordService,
	admins *service.AdminService,
	apiKeys *service.APIKeyService,
	translations *service.TranslationService,
	stats *service.StatsService,
	settings *service.UISettingsService,
	auditRepo repository.AuditLogRepository,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		health:       health,
		documents:    documents,
		comments:     comments,
		bannedWords:  bannedWords,
		admins:       admins,
		apiKeys:      apiKeys,
		translations: translations,
		stats:        stats,
		settings:     settings,
		auditRepo:    auditRepo,
		logger:       logger.With(slog.String("component", "api_handler")),
	}
}

// Routes регистрирует маршруты API на роутере.
// Маршруты /api/v1/admins и /api/v1/api-keys дополнительно требуют
// super admin.
func (h *APIHandler) Routes(r chi.Router) {
	if h.health != nil {
		r.Get("/health/live", h.health.Live)
		r.Get("/health/ready", h.health.Ready)
		r.Get("/metrics", h.health.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/documents", func(r chi.Router) {
			r.Get("/", h.ListDocuments)
			r.Get("/{id}", h.GetDocument)
			r.Put("/{id}", h.SaveDocumentMetadata)
			r.Delete("/{id}", h.DeleteDocument)
			r.Post("/{id}/approve", h.ApproveDocument)
			r.Post("/{id}/reject", h.RejectDocument)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/", h.ListAllComments)
			r.Get("/pending", h.ListPendingComments)
			r.Post("/{id}/approve", h.ApproveComment)
			r.Post("/{id}/reject", h.RejectComment)
			r.Delete("/{id}", h.DeleteComment)
		})

		r.Route("/banned-words", func(r chi.Router) {
			r.Get("/", h.ListBannedWords)
			r.Post("/", h.AddBannedWord)
			r.Delete("/{id}", h.DeleteBannedWord)
		})

		r.Route("/admins", func(r chi.Router) {
			r.Use(middleware.RequireSuperAdmin())
			r.Get("/", h.ListAdmins)
			r.Post("/", h.CreateAdmin)
			r.Put("/{id}", h.UpdateAdmin)
			r.Delete("/{id}", h.DeleteAdmin)
		})

		r.Route("/api-keys", func(r chi.Router) {
			r.Use(middleware.RequireSuperAdmin())
			r.Get("/", h.ListAPIKeys)
			r.Post("/", h.CreateAPIKey)
			r.Put("/{id}/active", h.SetAPIKeyActive)
			r.Delete("/{id}", h.DeleteAPIKey)
		})

		r.Route("/translations/{lang}", func(r chi.Router) {
			r.Get("/", h.ListTranslations)
			r.Post("/draft", h.SetTranslationDraft)
			r.Post("/save", h.SaveTranslations)
			r.Get("/export", h.ExportTranslations)
			r.Get("/faq", h.ListFAQ)
			r.Post("/faq", h.AddFAQ)
			r.Delete("/faq/{faqId}", h.DeleteFAQ)
		})

		r.Get("/stats/countries", h.CountryStats)
		r.Get("/audit", h.ListAuditLog)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.ListSettings)
			r.Get("/{key}", h.GetSetting)
			r.Put("/{key}", h.SetSetting)
			r.Delete("/{key}", h.DeleteSetting)
		})
	})
}

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// pathID извлекает числовой {id} из пути. При ошибке пишет 400 и
// возвращает false.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		apierrors.ValidationError(w, "некорректный ID: "+raw)
		return 0, false
	}
	return id, true
}

// actorFromContext возвращает идентификацию администратора из claims.
func actorFromContext(r *http.Request) (actorID int64, email string) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		return 0, ""
	}
	return claims.AdminID, claims.Email
}

// writeServiceError отображает ошибки сервисного слоя в HTTP-ответы.
func (h *APIHandler) writeServiceError(w http.ResponseWriter, err error) {
	var te *service.TransitionError
	switch {
	case errors.As(err, &te):
		if te.Saved {
			apierrors.TransitionFailedAfterSave(w,
				"метаданные сохранены, но смена статуса не прошла — перечитайте документ")
			return
		}
		apierrors.BackendUnavailable(w, "смена статуса не прошла")
	case errors.Is(err, service.ErrValidation):
		apierrors.ValidationError(w, err.Error())
	case errors.Is(err, service.ErrNotFound):
		apierrors.NotFound(w, err.Error())
	case errors.Is(err, service.ErrConflict):
		apierrors.Conflict(w, err.Error())
	case errors.Is(err, service.ErrSelfAction):
		apierrors.SelfAction(w, err.Error())
	case errors.Is(err, service.ErrOperationInFlight):
		apierrors.OperationInFlight(w, "над ресурсом уже выполняется операция")
	case errors.Is(err, service.ErrUnauthorized):
		apierrors.Unauthorized(w, "backend отклонил токен администратора")
	case errors.Is(err, service.ErrBackendUnavailable):
		apierrors.BackendUnavailable(w, "backend API недоступен")
	default:
		h.logger.Error("Внутренняя ошибка", slog.String("error", err.Error()))
		apierrors.InternalError(w, "внутренняя ошибка сервиса")
	}
}
