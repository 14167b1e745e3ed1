package handlers

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"soap-storefront/internal/models"
	"soap-storefront/internal/services"
	"soap-storefront/web/templates/components"
	"soap-storefront/web/templates/pages"
)

// Orders lists orders filtered by search, order status and payment status
func (h *AdminHandler) Orders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.AdminOrderFilter{
		Search:        strings.TrimSpace(q.Get("search")),
		Status:        q.Get("status"),
		PaymentStatus: q.Get("paymentStatus"),
		Page:          pageParam(q),
		Limit:         adminPageSize,
	}
	ticket := h.listTicket(r, "orders")

	view := pages.AdminOrdersView{Filter: filter}
	page, err := h.orders.AdminList(r.Context(), token(r.Context()), filter)
	if err != nil {
		if h.endIfUnauthorized(w, r, err) {
			return
		}
		logError(r, err, "list admin orders")
		view.Error = services.UserMessage(err, "Failed to load orders")
	}
	view.Page = page

	h.serveList(w, r, ticket, "Orders", pages.AdminOrdersList(view), func(meta components.PageMeta) templ.Component {
		return pages.AdminOrdersPage(meta, view)
	})
}

// loadOrder resolves the order number in the URL
func (h *AdminHandler) loadOrder(w http.ResponseWriter, r *http.Request) (*models.Order, bool) {
	order, err := h.orders.Lookup(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		h.lookupFailed(w, r, "orders", err, "order")
		return nil, false
	}
	return order, true
}

// Order shows one order with its status form
func (h *AdminHandler) Order(w http.ResponseWriter, r *http.Request) {
	order, ok := h.loadOrder(w, r)
	if !ok {
		return
	}
	view := pages.OrderDetailView{Order: order, Errors: models.ValidationErrors{}}
	render(w, r, http.StatusOK, pages.OrderDetailPage(h.adminMeta(w, r, "Order "+order.OrderNumber), view))
}

// UpdateOrderStatus changes the order and payment status
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	order, ok := h.loadOrder(w, r)
	if !ok {
		return
	}

	update := models.StatusUpdateRequest{
		OrderStatus:   models.OrderStatus(r.FormValue("orderStatus")),
		PaymentStatus: models.PaymentStatus(r.FormValue("paymentStatus")),
		Note:          strings.TrimSpace(r.FormValue("note")),
	}
	view := pages.OrderDetailView{Order: order, Update: update, Errors: models.ValidationErrors{}}
	if !models.ValidOrderStatus(update.OrderStatus) {
		view.Errors.Add("orderStatus", "Please choose a valid order status")
	}
	if update.PaymentStatus != "" && !models.ValidPaymentStatus(update.PaymentStatus) {
		view.Errors.Add("paymentStatus", "Please choose a valid payment status")
	}

	title := "Order " + order.OrderNumber
	page := func(meta components.PageMeta) templ.Component { return pages.OrderDetailPage(meta, view) }
	if view.Errors.HasErrors() {
		render(w, r, http.StatusUnprocessableEntity, page(h.adminMeta(w, r, title)))
		return
	}

	if _, err := h.orders.UpdateStatus(r.Context(), token(r.Context()), order.ID, update); err != nil {
		h.formFailed(w, r, "orders", err, "Failed to update order status", title, page)
		return
	}

	h.mutated(w, r, "orders", "Order "+order.OrderNumber+" updated")
}

// ConfirmDeleteOrder shows the order about to be removed
func (h *AdminHandler) ConfirmDeleteOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := h.loadOrder(w, r)
	if !ok {
		return
	}
	h.confirmDelete(w, r, "order", "orders", adminPath("orders", order.OrderNumber, "/delete"), []pages.SnapshotRow{
		{Label: "Order", Value: order.OrderNumber},
		{Label: "Customer", Value: order.CustomerInfo.Name + " <" + order.CustomerInfo.Email + ">"},
		{Label: "Total", Value: components.Price(order.TotalAmount)},
		{Label: "Status", Value: models.StatusDisplay(order.OrderStatus).Label},
		{Label: "Placed", Value: order.CreatedAt.Format("2 Jan 2006")},
	})
}

// DeleteOrder removes an order; the backend addresses orders by id
func (h *AdminHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := h.loadOrder(w, r)
	if !ok {
		return
	}
	if err := h.orders.Delete(r.Context(), token(r.Context()), order.ID); err != nil {
		h.mutationFailed(w, r, "orders", err, "Failed to delete order")
		return
	}
	h.mutated(w, r, "orders", "Order "+order.OrderNumber+" deleted")
}
