package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"soap-storefront/internal/middleware"
	"soap-storefront/internal/models"
	"soap-storefront/internal/services"
	"soap-storefront/web/templates/components"
	"soap-storefront/web/templates/pages"
)

// CartHandler handles shopping cart requests
type CartHandler struct {
	*Base
	products services.ProductServiceInterface
}

// NewCartHandler creates a new cart handler
func NewCartHandler(base *Base, products services.ProductServiceInterface) *CartHandler {
	return &CartHandler{Base: base, products: products}
}

// ViewCart renders the cart page
func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	cart := h.cart.Get(w, r)
	render(w, r, http.StatusOK, pages.CartPage(h.meta(w, r, "Cart"), cart))
}

// AddToCart adds quantity units of a product. The snapshot is taken from the
// product as it is now and kept for the life of the line.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	productID := strings.TrimSpace(r.FormValue("product_id"))
	if productID == "" {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := h.products.Get(r.Context(), productID)
	if err != nil {
		message := "We couldn't add that item. Please try again."
		if isNotFound(err, models.ErrProductNotFound) {
			message = "That product is no longer available."
		} else {
			logError(r, err, "load product for cart")
		}
		h.cartResponse(w, r, nil, components.Flash{Kind: components.FlashError, Message: message})
		return
	}

	if !product.InStock() {
		h.cartResponse(w, r, nil, components.Flash{
			Kind:    components.FlashError,
			Message: fmt.Sprintf("%s is out of stock.", product.Name),
		})
		return
	}

	quantity := product.ClampQuantity(atoiOr(r.FormValue("quantity"), 1))
	cart, err := h.cart.Add(w, r, product.Snapshot(), quantity)
	if err != nil {
		h.cartResponse(w, r, nil, components.Flash{
			Kind:    components.FlashError,
			Message: "Your cart is full. Please check out or remove an item first.",
		})
		return
	}

	h.cartResponse(w, r, cart, components.Flash{
		Kind:    components.FlashSuccess,
		Message: fmt.Sprintf("Added %d × %s to your cart", quantity, product.Name),
	})
}

// cartResponse answers an add: badge and toast for htmx, flash and redirect otherwise
func (h *CartHandler) cartResponse(w http.ResponseWriter, r *http.Request, cart *models.Cart, flash components.Flash) {
	if middleware.IsHTMXRequest(r) {
		if cart == nil {
			cart = h.cart.Get(w, r)
		}
		render(w, r, http.StatusOK, pages.AddedToCart(cart.GetCartItemsCount(), []components.Flash{flash}))
		return
	}
	h.flash(w, r, flash.Kind, flash.Message)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.updated(w, r, h.cart.Remove(w, r, chi.URLParam(r, "productID")))
}

func (h *CartHandler) IncrementItem(w http.ResponseWriter, r *http.Request) {
	h.updated(w, r, h.cart.Increment(w, r, chi.URLParam(r, "productID")))
}

// DecrementItem never drops below one; removal is explicit
func (h *CartHandler) DecrementItem(w http.ResponseWriter, r *http.Request) {
	h.updated(w, r, h.cart.Decrement(w, r, chi.URLParam(r, "productID")))
}

// UpdateQuantity sets an exact quantity; anything below one removes the line
// and the cart caps the rest at models.MaxLineQuantity
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	quantity := models.ClampLineQuantity(atoiOr(r.FormValue("quantity"), 0))
	h.updated(w, r, h.cart.UpdateQuantity(w, r, chi.URLParam(r, "productID"), quantity))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.updated(w, r, h.cart.Clear(w, r))
}

func (h *CartHandler) updated(w http.ResponseWriter, r *http.Request, cart *models.Cart) {
	if middleware.IsHTMXRequest(r) {
		render(w, r, http.StatusOK, pages.CartUpdate(cart, nil))
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
