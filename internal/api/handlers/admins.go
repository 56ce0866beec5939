package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	apierrors "github.com/main-salman/haqnow/admin-module/internal/api/errors"
	"github.com/main-salman/haqnow/admin-module/internal/backend"
	"github.com/main-salman/haqnow/admin-module/internal/domain/model"
)

type adminsResponse struct {
	Admins []model.AdminAccount `json:"admins"`
}

type createAdminRequest struct {
	Email        openapi_types.Email `json:"email"`
	Name         string              `json:"name"`
	Password     string              `json:"password"`
	IsSuperAdmin bool                `json:"is_super_admin"`
}

type updateAdminRequest struct {
	Name         *string `json:"name,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
	IsSuperAdmin *bool   `json:"is_super_admin,omitempty"`
}

// ListAdmins обрабатывает GET /api/v1/admins. Только super admin.
func (h *APIHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.admins.List(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if admins == nil {
		admins = []model.AdminAccount{}
	}
	writeJSON(w, http.StatusOK, adminsResponse{Admins: admins})
}

// CreateAdmin обрабатывает POST /api/v1/admins.
func (h *APIHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req createAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса")
		return
	}

	_, actor := actorFromContext(r)
	admin, err := h.admins.Create(r.Context(),
		string(req.Email), req.Name, req.Password, req.IsSuperAdmin, actor)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.logger.Info("Создана учётная запись администратора",
		slog.Int64("admin_id", admin.ID),
		slog.String("actor", actor))
	writeJSON(w, http.StatusCreated, admin)
}

// UpdateAdmin обрабатывает PUT /api/v1/admins/{id}.
// Администратор не может снять super admin или деактивировать сам себя.
func (h *APIHandler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса")
		return
	}

	actorID, actor := actorFromContext(r)
	admin, err := h.admins.Update(r.Context(), id, backend.AdminUpdate{
		Name:         req.Name,
		IsActive:     req.IsActive,
		IsSuperAdmin: req.IsSuperAdmin,
	}, actorID, actor)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, admin)
}

// DeleteAdmin обрабатывает DELETE /api/v1/admins/{id}.
// Удаление собственной учётной записи запрещено.
func (h *APIHandler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	actorID, actor := actorFromContext(r)
	if err := h.admins.Delete(r.Context(), id, actorID, actor); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.logger.Info("Удалена учётная запись администратора",
		slog.Int64("admin_id", id),
		slog.String("actor", actor))
	w.WriteHeader(http.StatusNoContent)
}
