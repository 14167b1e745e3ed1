package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"soap-storefront/internal/logging"
	"soap-storefront/internal/middleware"
	"soap-storefront/internal/models"
	"soap-storefront/internal/services"
	"soap-storefront/web/templates/components"
	"soap-storefront/web/templates/pages"
)

const featuredLimit = 8

// PublicHandler handles the home page, the catalog and banner dismissal
type PublicHandler struct {
	*Base
	products    services.ProductServiceInterface
	generations *services.Generations
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(base *Base, products services.ProductServiceInterface, generations *services.Generations) *PublicHandler {
	return &PublicHandler{
		Base:        base,
		products:    products,
		generations: generations,
	}
}

// HomePage renders the featured products
func (h *PublicHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		logError(r, err, "load featured products")
		products = nil
	}

	featured := make([]models.Product, 0, featuredLimit)
	for _, p := range products {
		if p.Featured && len(featured) < featuredLimit {
			featured = append(featured, p)
		}
	}
	if len(featured) == 0 && len(products) > 0 {
		featured = products[:min(featuredLimit, len(products))]
	}

	render(w, r, http.StatusOK, pages.HomePage(h.meta(w, r, "Home"), featured))
}

// ShopPage renders the catalog. HTMX filter changes get only the grid, and a
// response overtaken by a newer filter change is dropped.
func (h *PublicHandler) ShopPage(w http.ResponseWriter, r *http.Request) {
	filter := parseCatalogFilter(r.URL.Query())
	ticket := h.generations.Begin(sessionKey(r) + ":catalog")

	view := pages.ShopView{Filter: filter}
	products, err := h.products.List(r.Context())
	if err != nil {
		logError(r, err, "load catalog")
		view.LoadError = "We couldn't load the catalog. Please try again."
	} else {
		view.Products = models.FilterProducts(products, filter)
		view.Categories = models.Categories(products)
		view.Total = len(products)
	}

	if middleware.IsHTMXRequest(r) {
		if !h.generations.Current(ticket) {
			dropStale(w)
			return
		}
		render(w, r, http.StatusOK, pages.ProductGrid(view, middleware.GetCSRFToken(r.Context())))
		return
	}

	render(w, r, http.StatusOK, pages.ShopPage(h.meta(w, r, "Shop"), view))
}

// DismissAnnouncement hides a banner for this browser
func (h *PublicHandler) DismissAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.dismiss(w, r, id); err != nil {
		logging.FromContext(r.Context()).WithError(err).Warn("failed to record dismissal")
	}

	if middleware.IsHTMXRequest(r) {
		w.WriteHeader(http.StatusOK)
		return
	}
	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func parseCatalogFilter(q url.Values) models.CatalogFilter {
	return models.CatalogFilter{
		Query:       strings.TrimSpace(q.Get("q")),
		Category:    q.Get("category"),
		MinPrice:    atoiOr(q.Get("min"), 0),
		MaxPrice:    atoiOr(q.Get("max"), 0),
		InStockOnly: q.Get("in_stock") != "",
		Sort:        models.CatalogSort(q.Get("sort")),
	}
}

// dropStale tells htmx to leave the page alone
func dropStale(w http.ResponseWriter) {
	w.Header().Set("HX-Reswap", "none")
	w.WriteHeader(http.StatusNoContent)
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

// ContactHandler handles the contact form
type ContactHandler struct {
	*Base
	contact services.ContactServiceInterface
}

func NewContactHandler(base *Base, contact services.ContactServiceInterface) *ContactHandler {
	return &ContactHandler{Base: base, contact: contact}
}

func (h *ContactHandler) ContactPage(w http.ResponseWriter, r *http.Request) {
	view := pages.ContactView{Errors: models.ValidationErrors{}}
	if s := middleware.GetSessionFromContext(r.Context()); s != nil {
		view.Form.Name, view.Form.Email = s.Name, s.Email
	}
	render(w, r, http.StatusOK, pages.ContactPage(h.meta(w, r, "Contact"), view))
}

// ContactSubmit forwards the message; the backend's answer is not shown beyond a toast
func (h *ContactHandler) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := models.ContactForm{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Email:   strings.TrimSpace(r.FormValue("email")),
		Phone:   strings.TrimSpace(r.FormValue("phone")),
		Subject: strings.TrimSpace(r.FormValue("subject")),
		Message: strings.TrimSpace(r.FormValue("message")),
	}
	if errs := form.Validate(); errs.HasErrors() {
		render(w, r, http.StatusUnprocessableEntity, pages.ContactPage(h.meta(w, r, "Contact"), pages.ContactView{Form: form, Errors: errs}))
		return
	}

	if err := h.contact.Submit(r.Context(), form); err != nil {
		logError(r, err, "submit contact form")
		h.flash(w, r, components.FlashError, services.UserMessage(err, "We couldn't send your message. Please try again."))
		render(w, r, http.StatusOK, pages.ContactPage(h.meta(w, r, "Contact"), pages.ContactView{Form: form, Errors: models.ValidationErrors{}}))
		return
	}

	h.flash(w, r, components.FlashSuccess, "Thanks! We'll get back to you soon.")
	redirect(w, r, "/contact")
}

// isNotFound matches both the generic and the resource-specific sentinel
func isNotFound(err error, specific error) bool {
	return errors.Is(err, models.ErrNotFound) || (specific != nil && errors.Is(err, specific))
}
