package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"soap-storefront/internal/models"
	"soap-storefront/internal/services"
)

func checkoutForm() url.Values {
	return url.Values{
		"name":           {"Asha Rao"},
		"email":          {"asha@example.com"},
		"phone":          {"9876543210"},
		"street":         {"12 MG Road"},
		"city":           {"Bengaluru"},
		"state":          {"Karnataka"},
		"pincode":        {"560001"},
		"payment_method": {"cod"},
	}
}

// cartWithNeem returns a recorder whose cookies hold two units of p1
func cartWithNeem(t *testing.T, env *testEnv) *httptest.ResponseRecorder {
	t.Helper()
	mockProductService := new(MockProductService)
	mockProductService.On("Get", mock.Anything, "p1").Return(testProduct(), nil)

	rr := httptest.NewRecorder()
	NewCartHandler(env.base, mockProductService).AddToCart(rr, newFormRequest(http.MethodPost, "/cart/add", url.Values{"product_id": {"p1"}, "quantity": {"2"}}))
	return rr
}

func TestCheckoutPage_EmptyCartRedirects(t *testing.T) {
	env := newTestEnv()
	handler := NewCheckoutHandler(env.base, new(MockOrderService))

	rr := httptest.NewRecorder()
	handler.CheckoutPage(rr, httptest.NewRequest(http.MethodGet, "/checkout", nil))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/cart", rr.Header().Get("Location"))
}

func TestPlaceOrder_Success(t *testing.T) {
	env := newTestEnv()
	mockOrderService := new(MockOrderService)
	handler := NewCheckoutHandler(env.base, mockOrderService)
	withCart := cartWithNeem(t, env)

	mockOrderService.On("Place", mock.Anything, "", mock.MatchedBy(func(req models.PlaceOrderRequest) bool {
		return len(req.Items) == 1 &&
			req.Items[0].Product == "p1" &&
			req.Items[0].Quantity == 2 &&
			req.TotalAmount == 240 &&
			req.PaymentMethod == "cod" &&
			req.CustomerInfo.Address.Pincode == "560001"
	})).Return(&models.Order{ID: "o1", OrderNumber: "SOAP-1001"}, nil)

	rr := httptest.NewRecorder()
	handler.PlaceOrder(rr, htmx(followUp(withCart, http.MethodPost, "/checkout", checkoutForm())))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "/track?order=SOAP-1001", rr.Header().Get("HX-Redirect"))
	assert.Contains(t, env.flashes(rr), "success|Thank you! Your order SOAP-1001 has been placed.")

	cart := env.base.cart.Get(httptest.NewRecorder(), followUp(rr, http.MethodGet, "/cart", nil))
	assert.True(t, cart.IsEmpty())

	mockOrderService.AssertExpectations(t)
}

func TestPlaceOrder_BackendFailureKeepsCart(t *testing.T) {
	env := newTestEnv()
	mockOrderService := new(MockOrderService)
	handler := NewCheckoutHandler(env.base, mockOrderService)
	withCart := cartWithNeem(t, env)

	mockOrderService.On("Place", mock.Anything, "", mock.AnythingOfType("models.PlaceOrderRequest")).
		Return(nil, &services.APIError{StatusCode: http.StatusBadRequest, Message: "Insufficient stock for Neem Soap"})

	rr := httptest.NewRecorder()
	handler.PlaceOrder(rr, followUp(withCart, http.MethodPost, "/checkout", checkoutForm()))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Insufficient stock for Neem Soap")
	assert.Contains(t, rr.Body.String(), "12 MG Road")

	cart := env.base.cart.Get(httptest.NewRecorder(), followUp(rr, http.MethodGet, "/cart", nil))
	assert.Equal(t, 2, cart.GetCartItemsCount())
}

func TestPlaceOrder_ValidationErrors(t *testing.T) {
	env := newTestEnv()
	mockOrderService := new(MockOrderService)
	handler := NewCheckoutHandler(env.base, mockOrderService)
	withCart := cartWithNeem(t, env)

	form := checkoutForm()
	form.Set("email", "not-an-email")
	form.Del("pincode")

	rr := httptest.NewRecorder()
	handler.PlaceOrder(rr, followUp(withCart, http.MethodPost, "/checkout", form))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "Please enter a valid email address")
	assert.Contains(t, rr.Body.String(), "Pincode is required")
	mockOrderService.AssertNotCalled(t, "Place", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	env := newTestEnv()
	mockOrderService := new(MockOrderService)
	handler := NewCheckoutHandler(env.base, mockOrderService)

	rr := httptest.NewRecorder()
	handler.PlaceOrder(rr, newFormRequest(http.MethodPost, "/checkout", checkoutForm()))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/cart", rr.Header().Get("Location"))
	assert.Contains(t, env.flashes(rr), "info|Your cart is empty.")
}

func TestPlaceOrder_ExpiredSessionSignsOut(t *testing.T) {
	env := newTestEnv()
	mockOrderService := new(MockOrderService)
	handler := NewCheckoutHandler(env.base, mockOrderService)
	withCart := cartWithNeem(t, env)

	mockOrderService.On("Place", mock.Anything, "stale-token", mock.AnythingOfType("models.PlaceOrderRequest")).
		Return(nil, &services.APIError{StatusCode: http.StatusUnauthorized, Message: "Token expired"})

	req := withSession(followUp(withCart, http.MethodPost, "/checkout", checkoutForm()), &models.Session{UserID: "u1", Token: "stale-token", Role: models.UserRoleCustomer})
	rr := httptest.NewRecorder()
	handler.PlaceOrder(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login?redirect=%2Fcheckout", rr.Header().Get("Location"))
	assert.Contains(t, env.flashes(rr), "error|Your session has expired. Please sign in again.")
}

func TestTrackOrder(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		setup      func(m *MockOrderService)
		wantInBody string
	}{
		{
			name:  "found",
			query: "?order=SOAP-1001",
			setup: func(m *MockOrderService) {
				m.On("Lookup", mock.Anything, "SOAP-1001").Return(&models.Order{
					ID:          "o1",
					OrderNumber: "SOAP-1001",
					OrderStatus: models.OrderShipped,
					TotalAmount: 240,
				}, nil)
			},
			wantInBody: "Shipped",
		},
		{
			name:  "not found",
			query: "?order=SOAP-9999",
			setup: func(m *MockOrderService) {
				m.On("Lookup", mock.Anything, "SOAP-9999").Return(nil, models.ErrOrderNotFound)
			},
			wantInBody: "We couldn&#39;t find an order with that number",
		},
		{
			name:  "backend down",
			query: "?order=SOAP-1002",
			setup: func(m *MockOrderService) {
				m.On("Lookup", mock.Anything, "SOAP-1002").Return(nil, errors.New("timeout"))
			},
			wantInBody: "Something went wrong while looking up your order",
		},
		{
			name:       "no order number",
			query:      "",
			setup:      func(m *MockOrderService) {},
			wantInBody: "Track",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			mockOrderService := new(MockOrderService)
			tt.setup(mockOrderService)
			handler := NewCheckoutHandler(env.base, mockOrderService)

			rr := httptest.NewRecorder()
			handler.TrackOrder(rr, httptest.NewRequest(http.MethodGet, "/track"+tt.query, nil))

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantInBody)
			mockOrderService.AssertExpectations(t)
		})
	}
}
