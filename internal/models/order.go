package models

import (
	"strings"
	"time"
)

// OrderStatus is the server-authoritative lifecycle stage of an order
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// PaymentStatus represents the payment state the backend reports
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Address is the shipping address in customerInfo
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

func (a Address) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.City, a.State, a.Pincode} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}

// CustomerInfo is the buyer details attached to an order
type CustomerInfo struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`
}

// OrderItem is a frozen product snapshot inside an order
type OrderItem struct {
	Product  string `json:"product"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image,omitempty"`
}

// StatusHistoryEntry records one server-side transition
type StatusHistoryEntry struct {
	Status    OrderStatus `json:"status"`
	Note      string      `json:"note,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Order is read-only from the storefront's perspective; only the admin
// status update mutates it, and that goes through the API.
type Order struct {
	ID            string               `json:"_id"`
	OrderNumber   string               `json:"orderNumber"`
	OrderStatus   OrderStatus          `json:"orderStatus"`
	PaymentStatus PaymentStatus        `json:"paymentStatus"`
	PaymentMethod string               `json:"paymentMethod,omitempty"`
	CustomerInfo  CustomerInfo         `json:"customerInfo"`
	Items         []OrderItem          `json:"items"`
	Subtotal      int                  `json:"subtotal,omitempty"`
	ShippingCost  int                  `json:"shippingCost,omitempty"`
	TotalAmount   int                  `json:"totalAmount"`
	Notes         string               `json:"notes,omitempty"`
	StatusHistory []StatusHistoryEntry `json:"statusHistory,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// ItemCount returns the number of units across all items
func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// PlaceOrderRequest is the POST /api/orders body
type PlaceOrderRequest struct {
	CustomerInfo  CustomerInfo `json:"customerInfo"`
	Items         []OrderItem  `json:"items"`
	TotalAmount   int          `json:"totalAmount"`
	PaymentMethod string       `json:"paymentMethod"`
	Notes         string       `json:"notes,omitempty"`
}

// NewPlaceOrderRequest freezes the cart lines into order items.
func NewPlaceOrderRequest(cart *Cart, info CustomerInfo, paymentMethod, notes string) PlaceOrderRequest {
	items := make([]OrderItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, OrderItem{
			Product:  line.ProductID,
			Name:     line.Name,
			Price:    line.UnitPrice,
			Quantity: line.Quantity,
			Image:    line.ImageURL,
		})
	}
	return PlaceOrderRequest{
		CustomerInfo:  info,
		Items:         items,
		TotalAmount:   cart.GetCartTotal(),
		PaymentMethod: paymentMethod,
		Notes:         notes,
	}
}

// Validate checks the checkout form. Only required fields and the email shape are checked.
func (req *PlaceOrderRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}
	info := req.CustomerInfo

	if strings.TrimSpace(info.Name) == "" {
		errs.Add("name", "Name is required")
	}
	if strings.TrimSpace(info.Email) == "" {
		errs.Add("email", "Email is required")
	} else if !ValidEmail(info.Email) {
		errs.Add("email", "Please enter a valid email address")
	}
	if strings.TrimSpace(info.Phone) == "" {
		errs.Add("phone", "Phone is required")
	}
	if strings.TrimSpace(info.Address.Street) == "" {
		errs.Add("street", "Street address is required")
	}
	if strings.TrimSpace(info.Address.City) == "" {
		errs.Add("city", "City is required")
	}
	if strings.TrimSpace(info.Address.Pincode) == "" {
		errs.Add("pincode", "Pincode is required")
	}
	if req.PaymentMethod == "" {
		errs.Add("payment_method", "Payment method is required")
	}
	if len(req.Items) == 0 {
		errs.Add("general", "Your cart is empty")
	}

	return errs
}

// StatusUpdateRequest is the PUT /api/orders/:id/status body
type StatusUpdateRequest struct {
	OrderStatus   OrderStatus   `json:"orderStatus"`
	PaymentStatus PaymentStatus `json:"paymentStatus,omitempty"`
	Note          string        `json:"note,omitempty"`
}

// AdminOrderFilter drives the admin orders list
type AdminOrderFilter struct {
	Search        string
	Status        string
	PaymentStatus string
	Page          int
	Limit         int
}
