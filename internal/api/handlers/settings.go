package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/main-salman/haqnow/admin-module/internal/api/errors"
	"github.com/main-salman/haqnow/admin-module/internal/repository"
)

type uiSettingDTO struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

type settingsListResponse struct {
	Settings []uiSettingDTO `json:"settings"`
}

type setSettingRequest struct {
	Value string `json:"value"`
}

// ListSettings обрабатывает GET /api/v1/settings.
func (h *APIHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.List(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	dtos := make([]uiSettingDTO, 0, len(settings))
	for _, s := range settings {
		dtos = append(dtos, uiSettingToDTO(s))
	}
	writeJSON(w, http.StatusOK, settingsListResponse{Settings: dtos})
}

// GetSetting обрабатывает GET /api/v1/settings/{key}.
func (h *APIHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	setting, err := h.settings.Get(r.Context(), key)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, uiSettingToDTO(*setting))
}

// SetSetting обрабатывает PUT /api/v1/settings/{key} — upsert
// настройки с валидацией значения по ключу.
func (h *APIHandler) SetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req setSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса")
		return
	}

	_, actor := actorFromContext(r)
	if err := h.settings.Set(r.Context(), key, req.Value, actor); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteSetting обрабатывает DELETE /api/v1/settings/{key}.
func (h *APIHandler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if err := h.settings.Delete(r.Context(), key); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func uiSettingToDTO(s repository.UISetting) uiSettingDTO {
	return uiSettingDTO{
		Key:       s.Key,
		Value:     s.Value,
		UpdatedBy: s.UpdatedBy,
		UpdatedAt: s.UpdatedAt,
	}
}
