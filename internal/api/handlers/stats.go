package handlers

import (
	"net/http"
)

// CountryStats обрабатывает GET /api/v1/stats/countries.
// Ответ кэшируется сервисом; fetched_at в теле — время фактической
// выборки из backend.
func (h *APIHandler) CountryStats(w http.ResponseWriter, r *http.Request) {
	entry, err := h.stats.CountryStats(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
