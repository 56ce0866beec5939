package handlers

import (
	"encoding/json"
	"net/http"

	apierrors "github.com/main-salman/haqnow/admin-module/internal/api/errors"
	"github.com/main-salman/haqnow/admin-module/internal/domain/model"
)

type apiKeysResponse struct {
	APIKeys []model.APIKey `json:"api_keys"`
}

type createAPIKeyRequest struct {
	Name   string              `json:"name"`
	Scopes []model.APIKeyScope `json:"scopes"`
}

type setAPIKeyActiveRequest struct {
	Active bool `json:"active"`
}

// ListAPIKeys обрабатывает GET /api/v1/api-keys. Только super admin.
func (h *APIHandler) ListAPIKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := h.apiKeys.List(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if keys == nil {
		keys = []model.APIKey{}
	}
	writeJSON(w, http.StatusOK, apiKeysResponse{APIKeys: keys})
}

// CreateAPIKey обрабатывает POST /api/v1/api-keys.
// Открытый ключ возвращается в ответе один раз и нигде не хранится.
func (h *APIHandler) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	var req createAPIKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса")
		return
	}

	_, actor := actorFromContext(r)
	created, err := h.apiKeys.Create(r.Context(), req.Name, req.Scopes, actor)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// SetAPIKeyActive обрабатывает PUT /api/v1/api-keys/{id}/active.
func (h *APIHandler) SetAPIKeyActive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req setAPIKeyActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса")
		return
	}

	_, actor := actorFromContext(r)
	if err := h.apiKeys.SetActive(r.Context(), id, req.Active, actor); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAPIKey обрабатывает DELETE /api/v1/api-keys/{id}.
func (h *APIHandler) DeleteAPIKey(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	_, actor := actorFromContext(r)
	if err := h.apiKeys.Delete(r.Context(), id, actor); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
