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

// reviewsView fetches reviews for the given sort and reveals show of them
func (h *ProductHandler) reviewsView(r *http.Request, productID string, sort models.ReviewSort, show int) pages.ReviewsView {
	view := pages.ReviewsView{
		ProductID: productID,
		Sort:      sort,
		Session:   middleware.GetSessionFromContext(r.Context()),
		Voted:     map[string]bool{},
		Errors:    models.ValidationErrors{},
		CSRFToken: middleware.GetCSRFToken(r.Context()),
	}

	page, err := h.reviews.ForProduct(r.Context(), productID, sort)
	if err != nil {
		logError(r, err, "load reviews")
		view.LoadError = "Reviews are unavailable right now."
		return view
	}

	view.Reviews = page.Reviews
	view.Stats = page.Stats
	view.Disclosure = models.NewDisclosure(len(page.Reviews), show)

	key := sessionKey(r)
	for _, review := range page.Reviews {
		if h.helpful.Voted(key, review.ID) {
			view.Voted[review.ID] = true
		}
	}
	return view
}

// viewParams reads sort and show from the query or the posted form
func viewParams(r *http.Request) (models.ReviewSort, int) {
	return models.ParseReviewSort(r.FormValue("sort")), atoiOr(r.FormValue("show"), 1)
}

// Reviews renders the review section for ?sort=&show=&edit=
func (h *ProductHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	sort, show := viewParams(r)
	view := h.reviewsView(r, chi.URLParam(r, "id"), sort, show)
	view.EditingID = r.URL.Query().Get("edit")
	render(w, r, http.StatusOK, pages.ReviewsSection(view))
}

func reviewFormFrom(r *http.Request, productID string) models.ReviewForm {
	return models.ReviewForm{
		ProductID: productID,
		Rating:    atoiOr(r.FormValue("rating"), 0),
		Title:     strings.TrimSpace(r.FormValue("title")),
		Comment:   strings.TrimSpace(r.FormValue("comment")),
		UserName:  strings.TrimSpace(r.FormValue("userName")),
		UserEmail: strings.TrimSpace(r.FormValue("userEmail")),
	}
}

// CreateReview posts a review. Signed-out visitors may review as guests.
func (h *ProductHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	productID := chi.URLParam(r, "id")
	sort, show := viewParams(r)

	form := reviewFormFrom(r, productID)
	if s := middleware.GetSessionFromContext(r.Context()); s != nil {
		form.UserName, form.UserEmail = s.Name, s.Email
	}

	if errs := form.Validate(); errs.HasErrors() {
		view := h.reviewsView(r, productID, sort, show)
		view.Form, view.Errors = form, errs
		render(w, r, http.StatusUnprocessableEntity, pages.ReviewsSection(view))
		return
	}

	if _, err := h.reviews.Create(r.Context(), token(r.Context()), form); err != nil {
		if h.endIfUnauthorized(w, r, err) {
			return
		}
		logError(r, err, "create review")
		view := h.reviewsView(r, productID, sort, show)
		view.Form = form
		view.Errors.Add("general", services.UserMessage(err, "We couldn't post your review. Please try again."))
		render(w, r, http.StatusOK, pages.ReviewsSection(view))
		return
	}

	h.reviewsMutated(w, r, productID, sort, show, "Thanks for your review!")
}

// UpdateReview edits the visitor's own review
func (h *ProductHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	productID, reviewID := chi.URLParam(r, "id"), chi.URLParam(r, "reviewID")
	sort, show := viewParams(r)

	form := reviewFormFrom(r, productID)
	if errs := form.Validate(); errs.HasErrors() {
		view := h.reviewsView(r, productID, sort, show)
		view.EditingID, view.Form, view.Errors = reviewID, form, errs
		render(w, r, http.StatusUnprocessableEntity, pages.ReviewsSection(view))
		return
	}

	if _, err := h.reviews.Update(r.Context(), token(r.Context()), reviewID, form); err != nil {
		if h.endIfUnauthorized(w, r, err) {
			return
		}
		h.reviewMutationFailed(w, r, productID, sort, show, err, "We couldn't update your review.")
		return
	}

	h.reviewsMutated(w, r, productID, sort, show, "Review updated")
}

// DeleteReview removes the visitor's own review
func (h *ProductHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	productID, reviewID := chi.URLParam(r, "id"), chi.URLParam(r, "reviewID")
	sort, show := viewParams(r)

	if err := h.reviews.Delete(r.Context(), token(r.Context()), reviewID); err != nil {
		if h.endIfUnauthorized(w, r, err) {
			return
		}
		h.reviewMutationFailed(w, r, productID, sort, show, err, "We couldn't delete your review.")
		return
	}

	h.reviewsMutated(w, r, productID, sort, show, "Review deleted")
}

// reviewsMutated re-fetches the section so stats and list reflect the server
func (h *ProductHandler) reviewsMutated(w http.ResponseWriter, r *http.Request, productID string, sort models.ReviewSort, show int, message string) {
	if !middleware.IsHTMXRequest(r) {
		h.flash(w, r, components.FlashSuccess, message)
		http.Redirect(w, r, "/products/"+productID, http.StatusSeeOther)
		return
	}
	view := h.reviewsView(r, productID, sort, show)
	render(w, r, http.StatusOK, reviewsWithToast(view, components.Flash{Kind: components.FlashSuccess, Message: message}))
}

func (h *ProductHandler) reviewMutationFailed(w http.ResponseWriter, r *http.Request, productID string, sort models.ReviewSort, show int, err error, fallback string) {
	logError(r, err, "review mutation")
	message := services.UserMessage(err, fallback+" Please try again.")
	if !middleware.IsHTMXRequest(r) {
		h.flash(w, r, components.FlashError, message)
		http.Redirect(w, r, "/products/"+productID, http.StatusSeeOther)
		return
	}
	view := h.reviewsView(r, productID, sort, show)
	render(w, r, http.StatusOK, reviewsWithToast(view, components.Flash{Kind: components.FlashError, Message: message}))
}

func reviewsWithToast(view pages.ReviewsView, flash components.Flash) templ.Component {
	return components.Join(pages.ReviewsSection(view), components.Toasts([]components.Flash{flash}, true))
}

// MarkHelpful records one helpful vote per browser and review. The slot is
// reserved before the backend call so rapid repeated clicks send one request.
func (h *ProductHandler) MarkHelpful(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewID")
	count := atoiOr(r.FormValue("count"), 0)
	key := sessionKey(r)

	if !h.helpful.TryMark(key, reviewID) {
		render(w, r, http.StatusOK, pages.HelpfulButton(reviewID, count, true))
		return
	}

	if err := h.reviews.MarkHelpful(r.Context(), reviewID); err != nil {
		h.helpful.Release(key, reviewID)
		logError(r, err, "mark review helpful")
		render(w, r, http.StatusOK, components.Join(
			pages.HelpfulButton(reviewID, count, false),
			components.Toasts([]components.Flash{{Kind: components.FlashError, Message: "We couldn't record your vote. Please try again."}}, true),
		))
		return
	}

	render(w, r, http.StatusOK, pages.HelpfulButton(reviewID, count+1, true))
}
