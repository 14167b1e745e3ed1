package handlers

import (
	"net/http"

	"soap-storefront/internal/models"
	"soap-storefront/internal/services"
	"soap-storefront/web/templates/pages"
)

// Dashboard renders the admin stats for ?period=7|30|90 days
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	period := models.ParseDashboardPeriod(atoiOr(r.URL.Query().Get("period"), 0))
	view := pages.DashboardView{Period: period}

	stats, err := h.dashboard.Stats(r.Context(), token(r.Context()), period)
	if err != nil {
		if h.endIfUnauthorized(w, r, err) {
			return
		}
		logError(r, err, "load dashboard stats")
		view.Error = services.UserMessage(err, "Failed to load dashboard data")
	}
	view.Stats = stats

	render(w, r, http.StatusOK, pages.DashboardPage(h.adminMeta(w, r, "Dashboard"), view))
}
