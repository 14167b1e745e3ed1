package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"soap-storefront/internal/models"
)

// OrderService places, looks up and administers orders
type OrderService struct {
	api *APIClient
}

func NewOrderService(api *APIClient) *OrderService {
	return &OrderService{api: api}
}

// Place submits the checkout. token may be empty for guest checkout.
func (s *OrderService) Place(ctx context.Context, token string, req models.PlaceOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, models.ErrEmptyCart
	}

	var order models.Order
	if err := s.api.do(ctx, http.MethodPost, "/api/orders", token, req, &order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	return &order, nil
}

// Lookup finds an order by its public order number
func (s *OrderService) Lookup(ctx context.Context, orderNumber string) (*models.Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, models.ErrInvalidInput
	}

	var order models.Order
	err := s.api.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(orderNumber), "", nil, &order)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("order %s: %w", orderNumber, errors.Join(models.ErrOrderNotFound, err))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up order %s: %w", orderNumber, err)
	}
	return &order, nil
}

func (s *OrderService) AdminList(ctx context.Context, token string, filter models.AdminOrderFilter) (*models.Page[models.Order], error) {
	query := listQuery(filter.Search, filter.Page, filter.Limit, map[string]string{
		"status":        filter.Status,
		"paymentStatus": filter.PaymentStatus,
	})
	page, err := getPage[models.Order](ctx, s.api, "/api/orders/admin/all", token, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin orders: %w", err)
	}
	return page, nil
}

// UpdateStatus changes the order and/or payment status. The server is authoritative;
// concurrent admin edits resolve last-write-wins there.
func (s *OrderService) UpdateStatus(ctx context.Context, token, id string, req models.StatusUpdateRequest) (*models.Order, error) {
	if !models.ValidOrderStatus(req.OrderStatus) {
		return nil, fmt.Errorf("unknown order status %q: %w", req.OrderStatus, models.ErrInvalidInput)
	}
	if req.PaymentStatus != "" && !models.ValidPaymentStatus(req.PaymentStatus) {
		return nil, fmt.Errorf("unknown payment status %q: %w", req.PaymentStatus, models.ErrInvalidInput)
	}

	var order models.Order
	path := "/api/orders/" + url.PathEscape(id) + "/status"
	if err := s.api.do(ctx, http.MethodPut, path, token, req, &order); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", id, err)
	}
	return &order, nil
}

func (s *OrderService) Delete(ctx context.Context, token, id string) error {
	if err := s.api.do(ctx, http.MethodDelete, "/api/orders/"+url.PathEscape(id), token, nil, nil); err != nil {
		return fmt.Errorf("failed to delete order %s: %w", id, err)
	}
	return nil
}
