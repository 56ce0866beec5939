package handlers

import (
	"encoding/json"
	"net/http"

	apierrors "github.com/main-salman/haqnow/admin-module/internal/api/errors"
	"github.com/main-salman/haqnow/admin-module/internal/domain/model"
)

type bannedWordsResponse struct {
	Words []model.BannedWord `json:"words"`
}

type addBannedWordRequest struct {
	Word   string `json:"word"`
	Reason string `json:"reason,omitempty"`
}

// ListBannedWords обрабатывает GET /api/v1/banned-words.
func (h *APIHandler) ListBannedWords(w http.ResponseWriter, r *http.Request) {
	words, err := h.bannedWords.List(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if words == nil {
		words = []model.BannedWord{}
	}
	writeJSON(w, http.StatusOK, bannedWordsResponse{Words: words})
}

// AddBannedWord обрабатывает POST /api/v1/banned-words.
// Дубликат (без учёта регистра) отклоняется с 409.
func (h *APIHandler) AddBannedWord(w http.ResponseWriter, r *http.Request) {
	var req addBannedWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса")
		return
	}

	_, actor := actorFromContext(r)
	word, err := h.bannedWords.Add(r.Context(), req.Word, req.Reason, actor)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, word)
}

// DeleteBannedWord обрабатывает DELETE /api/v1/banned-words/{id}.
func (h *APIHandler) DeleteBannedWord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	_, actor := actorFromContext(r)
	if err := h.bannedWords.Delete(r.Context(), id, actor); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
