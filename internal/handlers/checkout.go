package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"soap-storefront/internal/middleware"
	"soap-storefront/internal/models"
	"soap-storefront/internal/services"
	"soap-storefront/web/templates/components"
	"soap-storefront/web/templates/pages"
)

// CheckoutHandler places orders and tracks them
type CheckoutHandler struct {
	*Base
	orders services.OrderServiceInterface
}

func NewCheckoutHandler(base *Base, orders services.OrderServiceInterface) *CheckoutHandler {
	return &CheckoutHandler{Base: base, orders: orders}
}

// CheckoutPage renders the form, pre-filled from the session when signed in
func (h *CheckoutHandler) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	cart := h.cart.Get(w, r)
	if cart.IsEmpty() {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	view := pages.CheckoutView{Cart: cart, PaymentMethod: pages.PaymentMethods[0].Value, Errors: models.ValidationErrors{}}
	if s := middleware.GetSessionFromContext(r.Context()); s != nil {
		view.Customer.Name, view.Customer.Email = s.Name, s.Email
	}
	render(w, r, http.StatusOK, pages.CheckoutPage(h.meta(w, r, "Checkout"), view))
}

// PlaceOrder submits the cart. The cart is cleared only after the backend
// accepted the order; on failure it is kept so the visitor can retry.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	cart := h.cart.Get(w, r)
	if cart.IsEmpty() {
		h.flash(w, r, components.FlashInfo, "Your cart is empty.")
		redirect(w, r, "/cart")
		return
	}

	info := models.CustomerInfo{
		Name:  strings.TrimSpace(r.FormValue("name")),
		Email: strings.TrimSpace(r.FormValue("email")),
		Phone: strings.TrimSpace(r.FormValue("phone")),
		Address: models.Address{
			Street:  strings.TrimSpace(r.FormValue("street")),
			City:    strings.TrimSpace(r.FormValue("city")),
			State:   strings.TrimSpace(r.FormValue("state")),
			Pincode: strings.TrimSpace(r.FormValue("pincode")),
		},
	}
	req := models.NewPlaceOrderRequest(cart, info, r.FormValue("payment_method"), strings.TrimSpace(r.FormValue("notes")))

	view := pages.CheckoutView{Cart: cart, Customer: info, PaymentMethod: req.PaymentMethod, Notes: req.Notes}
	if errs := req.Validate(); errs.HasErrors() {
		view.Errors = errs
		render(w, r, http.StatusUnprocessableEntity, pages.CheckoutPage(h.meta(w, r, "Checkout"), view))
		return
	}

	order, err := h.orders.Place(r.Context(), token(r.Context()), req)
	if err != nil {
		if h.endIfUnauthorized(w, r, err) {
			return
		}
		logError(r, err, "place order")
		view.Errors = models.ValidationErrors{}
		h.flash(w, r, components.FlashError, services.UserMessage(err, "We couldn't place your order. Please try again."))
		render(w, r, http.StatusOK, pages.CheckoutPage(h.meta(w, r, "Checkout"), view))
		return
	}

	h.cart.Clear(w, r)
	h.flash(w, r, components.FlashSuccess, "Thank you! Your order "+order.OrderNumber+" has been placed.")
	redirect(w, r, "/track?order="+url.QueryEscape(order.OrderNumber))
}

// TrackOrder looks an order up by its number
func (h *CheckoutHandler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	view := pages.TrackView{OrderNumber: strings.TrimSpace(r.URL.Query().Get("order"))}

	if view.OrderNumber != "" {
		order, err := h.orders.Lookup(r.Context(), view.OrderNumber)
		switch {
		case err == nil:
			view.Order = order
		case isNotFound(err, models.ErrOrderNotFound):
			view.Error = "We couldn't find an order with that number. Please check it and try again."
		case errors.Is(err, models.ErrInvalidInput):
			view.Error = "Please enter an order number."
		default:
			logError(r, err, "lookup order")
			view.Error = "Something went wrong while looking up your order. Please try again."
		}
	}

	render(w, r, http.StatusOK, pages.TrackPage(h.meta(w, r, "Track order"), view))
}
