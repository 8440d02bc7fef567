package handler

import "net/http"

// GET /analytics — per-category engagement stats for the dashboard.
func (h *Handler) analyticsGet(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analytics.Overview(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"category": stats})
}

// GET /analytics/article?category= — the summary article for a category,
// generated on demand when the stored one is missing or stale.
func (h *Handler) analyticsArticleGet(w http.ResponseWriter, r *http.Request) {
	art, err := h.analytics.CategoryReport(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"article": art})
}
