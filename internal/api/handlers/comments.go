package handlers

import (
	"net/http"

	"github.com/main-salman/haqnow/admin-module/internal/domain/model"
)

type commentsByDocumentResponse struct {
	Comments []model.DocumentComments `json:"comments"`
}

type pendingCommentsResponse struct {
	Comments []model.Comment `json:"comments"`
}

// ListAllComments обрабатывает GET /api/v1/comments —
// все комментарии, сгруппированные по документам.
func (h *APIHandler) ListAllComments(w http.ResponseWriter, r *http.Request) {
	groups, err := h.comments.ListAll(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if groups == nil {
		groups = []model.DocumentComments{}
	}
	writeJSON(w, http.StatusOK, commentsByDocumentResponse{Comments: groups})
}

// ListPendingComments обрабатывает GET /api/v1/comments/pending —
// очередь модерации комментариев.
func (h *APIHandler) ListPendingComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListPending(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	writeJSON(w, http.StatusOK, pendingCommentsResponse{Comments: comments})
}

// ApproveComment обрабатывает POST /api/v1/comments/{id}/approve.
func (h *APIHandler) ApproveComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	_, actor := actorFromContext(r)
	if err := h.comments.Approve(r.Context(), id, actor); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RejectComment обрабатывает POST /api/v1/comments/{id}/reject.
func (h *APIHandler) RejectComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	_, actor := actorFromContext(r)
	if err := h.comments.Reject(r.Context(), id, actor); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteComment обрабатывает DELETE /api/v1/comments/{id}.
// Удаление идемпотентно: уже удалённый комментарий — не ошибка.
func (h *APIHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	_, actor := actorFromContext(r)
	if err := h.comments.Delete(r.Context(), id, actor); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
