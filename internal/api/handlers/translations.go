package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/main-salman/haqnow/admin-module/internal/api/errors"
	"github.com/main-salman/haqnow/admin-module/internal/domain/model"
)

// faqSection — секция хранилища переводов, в которой живут пары
// custom FAQ.
const faqSection = "faq"

type translationsResponse struct {
	Translations []model.Translation `json:"translations"`
	Unsaved      int                 `json:"unsaved"`
}

type setDraftRequest struct {
	Section string `json:"section"`
	Key     string `json:"key"`
	Value   string `json:"value"`
}

type saveTranslationsResponse struct {
	Saved int `json:"saved"`
}

type faqListResponse struct {
	Entries []model.FAQEntry `json:"entries"`
}

type addFAQRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ListTranslations обрабатывает GET /api/v1/translations/{lang} —
// сохранённые переводы языка плюс счётчик несохранённых правок.
func (h *APIHandler) ListTranslations(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")

	translations, err := h.translations.List(r.Context(), lang)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if translations == nil {
		translations = []model.Translation{}
	}
	writeJSON(w, http.StatusOK, translationsResponse{
		Translations: translations,
		Unsaved:      h.translations.UnsavedCount(lang),
	})
}

// SetTranslationDraft обрабатывает POST /api/v1/translations/{lang}/draft —
// записывает правку в черновик, не трогая backend.
func (h *APIHandler) SetTranslationDraft(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")

	var req setDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса")
		return
	}

	if err := h.translations.Set(lang, req.Section, req.Key, req.Value); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unsaved": h.translations.UnsavedCount(lang)})
}

// SaveTranslations обрабатывает POST /api/v1/translations/{lang}/save —
// сохраняет черновик bulk-запросами по секциям. При частичном сбое
// несохранённые правки остаются в черновике, ответ — 502 с числом
// успевших сохраниться секций в журнале.
func (h *APIHandler) SaveTranslations(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")

	saved, err := h.translations.SaveAll(r.Context(), lang)
	if err != nil {
		h.logger.Warn("Частичное сохранение переводов",
			slog.String("lang", lang),
			slog.Int("saved", saved),
			slog.String("error", err.Error()))
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saveTranslationsResponse{Saved: saved})
}

// ExportTranslations обрабатывает GET /api/v1/translations/{lang}/export —
// выгрузка переводов языка как JSON-файла.
func (h *APIHandler) ExportTranslations(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")

	data, err := h.translations.ExportJSON(r.Context(), lang)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="translations_`+lang+`.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ListFAQ обрабатывает GET /api/v1/translations/{lang}/faq.
func (h *APIHandler) ListFAQ(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")

	entries, err := h.translations.FAQ(r.Context(), lang)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []model.FAQEntry{}
	}
	writeJSON(w, http.StatusOK, faqListResponse{Entries: entries})
}

// AddFAQ обрабатывает POST /api/v1/translations/{lang}/faq.
func (h *APIHandler) AddFAQ(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")

	var req addFAQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса")
		return
	}

	entry, err := h.translations.AddFAQ(r.Context(), lang, faqSection, req.Question, req.Answer)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// DeleteFAQ обрабатывает DELETE /api/v1/translations/{lang}/faq/{faqId}.
func (h *APIHandler) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")
	faqID := chi.URLParam(r, "faqId")

	if err := h.translations.DeleteFAQ(r.Context(), lang, faqSection, faqID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
