package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	apierrors "github.com/main-salman/haqnow/admin-module/internal/api/errors"
	"github.com/main-salman/haqnow/admin-module/internal/domain/model"
	"github.com/main-salman/haqnow/admin-module/internal/service"
)

// metadataEditRequest — частичное редактирование метаданных.
// Отсутствующее поле означает «оставить без изменений».
type metadataEditRequest struct {
	Title         *string   `json:"title,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Country       *string   `json:"country,omitempty"`
	State         *string   `json:"state,omitempty"`
	AdminLevel    *string   `json:"admin_level,omitempty"`
	GeneratedTags *[]string `json:"generated_tags,omitempty"`
}

func (r metadataEditRequest) toEdit() service.MetadataEdit {
	return service.MetadataEdit{
		Title:       r.Title,
		Description: r.Description,
		Country:     r.Country,
		State:       r.State,
		AdminLevel:  r.AdminLevel,
		Tags:        r.GeneratedTags,
	}
}

type documentListResponse struct {
	Documents []*model.Document `json:"documents"`
}

// ListDocuments обрабатывает GET /api/v1/documents.
// Параметр status фильтрует очередь модерации (по умолчанию pending).
func (h *APIHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	status := model.DocumentStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = model.StatusPending
	}
	if !status.Valid() {
		apierrors.ValidationError(w, "некорректный статус: "+string(status))
		return
	}

	docs, err := h.documents.List(r.Context(), status)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if docs == nil {
		docs = []*model.Document{}
	}
	writeJSON(w, http.StatusOK, documentListResponse{Documents: docs})
}

// GetDocument обрабатывает GET /api/v1/documents/{id}.
func (h *APIHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	doc, err := h.documents.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// SaveDocumentMetadata обрабатывает PUT /api/v1/documents/{id} —
// сохранение метаданных без смены статуса.
func (h *APIHandler) SaveDocumentMetadata(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req metadataEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса")
		return
	}

	_, actor := actorFromContext(r)
	doc, err := h.documents.SaveMetadata(r.Context(), id, actor, req.toEdit())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// ApproveDocument обрабатывает POST /api/v1/documents/{id}/approve.
// Тело запроса может содержать последние правки метаданных — они
// сохраняются до смены статуса.
func (h *APIHandler) ApproveDocument(w http.ResponseWriter, r *http.Request) {
	h.transitionDocument(w, r, h.documents.Approve)
}

// RejectDocument обрабатывает POST /api/v1/documents/{id}/reject.
func (h *APIHandler) RejectDocument(w http.ResponseWriter, r *http.Request) {
	h.transitionDocument(w, r, h.documents.Reject)
}

func (h *APIHandler) transitionDocument(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, id int64, actor string, edit service.MetadataEdit) (*model.Document, error),
) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	// Тело опционально: approve/reject без правок — валидный запрос.
	var req metadataEditRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apierrors.ValidationError(w, "некорректное тело запроса")
			return
		}
	}

	_, actor := actorFromContext(r)
	doc, err := fn(r.Context(), id, actor, req.toEdit())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// DeleteDocument обрабатывает DELETE /api/v1/documents/{id}.
func (h *APIHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	_, actor := actorFromContext(r)
	if err := h.documents.Delete(r.Context(), id, actor); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.logger.Info("Документ удалён", slog.Int64("document_id", id), slog.String("actor", actor))
	w.WriteHeader(http.StatusNoContent)
}
