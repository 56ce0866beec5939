package handlers

import (
	"net/http"
	"strconv"
	"time"

	apierrors "github.com/main-salman/haqnow/admin-module/internal/api/errors"
	"github.com/main-salman/haqnow/admin-module/internal/repository"
)

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 500
)

type auditEntryDTO struct {
	ID         string    `json:"id"`
	Actor      string    `json:"actor"`
	EntityType string    `json:"entity_type"`
	EntityID   int64     `json:"entity_id"`
	Action     string    `json:"action"`
	FromStatus string    `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type auditListResponse struct {
	Entries []auditEntryDTO `json:"entries"`
	Total   int             `json:"total"`
}

// ListAuditLog обрабатывает GET /api/v1/audit — журнал модерации
// с фильтром по типу сущности и пагинацией.
func (h *APIHandler) ListAuditLog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entityType := q.Get("entity_type")

	limit := auditDefaultLimit
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > auditMaxLimit {
			apierrors.ValidationError(w, "некорректный limit: "+raw)
			return
		}
		limit = v
	}

	offset := 0
	if raw := q.Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			apierrors.ValidationError(w, "некорректный offset: "+raw)
			return
		}
		offset = v
	}

	entries, err := h.auditRepo.List(r.Context(), entityType, limit, offset)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	total, err := h.auditRepo.Count(r.Context(), entityType)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	dtos := make([]auditEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, auditEntryToDTO(e))
	}
	writeJSON(w, http.StatusOK, auditListResponse{Entries: dtos, Total: total})
}

func auditEntryToDTO(e repository.AuditEntry) auditEntryDTO {
	return auditEntryDTO{
		ID:         e.ID,
		Actor:      e.Actor,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Action:     e.Action,
		FromStatus: e.FromStatus,
		ToStatus:   e.ToStatus,
		Detail:     e.Detail,
		CreatedAt:  e.CreatedAt,
	}
}
