package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"soap-storefront/internal/models"
	"soap-storefront/internal/services"
	"soap-storefront/web/templates/pages"
)

// ProductHandler handles the product detail page and its reviews
type ProductHandler struct {
	*Base
	products services.ProductServiceInterface
	reviews  services.ReviewServiceInterface
	helpful  *services.HelpfulVoteGuard
}

func NewProductHandler(base *Base, products services.ProductServiceInterface, reviews services.ReviewServiceInterface, helpful *services.HelpfulVoteGuard) *ProductHandler {
	return &ProductHandler{
		Base:     base,
		products: products,
		reviews:  reviews,
		helpful:  helpful,
	}
}

// ProductDetail renders a product with the first review revealed
func (h *ProductHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	product, ok := h.loadProduct(w, r)
	if !ok {
		return
	}

	view := pages.ProductView{
		Product:  product,
		Quantity: 1,
		Reviews:  h.reviewsView(r, product.ID, models.SortNewest, 1),
	}
	render(w, r, http.StatusOK, pages.ProductPage(h.meta(w, r, product.Name), view))
}

// Quantity re-renders the stepper for ?q=N, bounded by stock
func (h *ProductHandler) Quantity(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err, models.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		logError(r, err, "load product for stepper")
		http.Error(w, "Failed to load product", http.StatusBadGateway)
		return
	}
	render(w, r, http.StatusOK, pages.QuantityStepper(product, atoiOr(r.URL.Query().Get("q"), 1)))
}

func (h *ProductHandler) loadProduct(w http.ResponseWriter, r *http.Request) (*models.Product, bool) {
	product, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err == nil {
		return product, true
	}
	if isNotFound(err, models.ErrProductNotFound) {
		h.notFound(w, r, "We couldn't find that product.")
		return nil, false
	}
	logError(r, err, "load product")
	h.notFound(w, r, "We couldn't load that product right now. Please try again.")
	return nil, false
}
