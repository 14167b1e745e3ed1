package handlers

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"soap-storefront/internal/middleware"
	"soap-storefront/internal/models"
	"soap-storefront/internal/services"
	"soap-storefront/web/templates/components"
	"soap-storefront/web/templates/pages"
)

// Reviews lists reviews for moderation
func (h *AdminHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.AdminReviewFilter{
		Search: strings.TrimSpace(q.Get("search")),
		Status: q.Get("status"),
		Rating: atoiOr(q.Get("rating"), 0),
		Page:   pageParam(q),
		Limit:  adminPageSize,
	}
	if filter.Rating < 1 || filter.Rating > 5 {
		filter.Rating = 0
	}
	ticket := h.listTicket(r, "reviews")

	view := pages.AdminReviewsView{Filter: filter}
	page, err := h.reviews.AdminList(r.Context(), token(r.Context()), filter)
	if err != nil {
		if h.endIfUnauthorized(w, r, err) {
			return
		}
		logError(r, err, "list admin reviews")
		view.Error = services.UserMessage(err, "Failed to load reviews")
	}
	view.Page = page

	partial := pages.AdminReviewsList(view, middleware.GetCSRFToken(r.Context()))
	h.serveList(w, r, ticket, "Reviews", partial, func(meta components.PageMeta) templ.Component {
		return pages.AdminReviewsPage(meta, view)
	})
}

// ApproveReview sets or clears the approval flag
func (h *AdminHandler) ApproveReview(w http.ResponseWriter, r *http.Request) {
	approved := r.FormValue("approved") == "true"
	if err := h.reviews.Approve(r.Context(), token(r.Context()), chi.URLParam(r, "id"), approved); err != nil {
		h.mutationFailed(w, r, "reviews", err, "Failed to update review")
		return
	}
	message := "Review approved"
	if !approved {
		message = "Review unapproved"
	}
	h.mutated(w, r, "reviews", message)
}

// ConfirmDeleteReview shows the snapshot carried in the link's query, so
// moderation does not need a per-review fetch
func (h *AdminHandler) ConfirmDeleteReview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := chi.URLParam(r, "id")
	rows := []pages.SnapshotRow{}
	for _, f := range []struct{ key, label string }{
		{"author", "Author"},
		{"rating", "Rating"},
		{"title", "Title"},
		{"comment", "Comment"},
	} {
		if v := q.Get(f.key); v != "" {
			rows = append(rows, pages.SnapshotRow{Label: f.label, Value: v})
		}
	}
	h.confirmDelete(w, r, "review", "reviews", adminPath("reviews", id, "/delete"), rows)
}

func (h *AdminHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.reviews.Delete(r.Context(), token(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.mutationFailed(w, r, "reviews", err, "Failed to delete review")
		return
	}
	h.mutated(w, r, "reviews", "Review deleted")
}
