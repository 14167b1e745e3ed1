package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soap-storefront/internal/models"
)

var (
	soapA = models.ProductSnapshot{ProductID: "A", Name: "Neem", UnitPrice: 500, ImageURL: "/a.jpg"}
	soapB = models.ProductSnapshot{ProductID: "B", Name: "Tulsi", UnitPrice: 300, ImageURL: "/b.jpg"}
)

func TestCartStore_SessionBackendRoundTrip(t *testing.T) {
	store := NewCartStore(NewSessionCartBackend(newTestStore(), testSessionName))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/add", nil)
	store.Add(rec, req, soapA, 2)

	rec2 := httptest.NewRecorder()
	req2 := nextRequest(rec)
	cart, err := store.Add(rec2, req2, soapB, 1)
	require.NoError(t, err)
	assert.Equal(t, 1300, cart.GetCartTotal())

	req3 := nextRequest(rec2)
	reloaded := store.Get(httptest.NewRecorder(), req3)
	assert.Equal(t, 1300, reloaded.GetCartTotal())
	assert.Equal(t, 3, reloaded.GetCartItemsCount())
	require.Len(t, reloaded.Lines, 2)
	assert.Equal(t, "A", reloaded.Lines[0].ProductID)
}

func TestCartStore_Mutations(t *testing.T) {
	store := NewCartStore(NewSessionCartBackend(newTestStore(), testSessionName))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	store.Add(rec, req, soapA, 3)
	store.Add(rec, req, soapB, 1)

	cart := store.Decrement(rec, req, "A")
	line, _ := cart.Line("A")
	assert.Equal(t, 2, line.Quantity)

	cart = store.Increment(rec, req, "B")
	line, _ = cart.Line("B")
	assert.Equal(t, 2, line.Quantity)

	cart = store.UpdateQuantity(rec, req, "B", 0)
	_, ok := cart.Line("B")
	assert.False(t, ok)

	cart = store.Remove(rec, req, "A")
	assert.True(t, cart.IsEmpty())

	store.Add(rec, req, soapA, 1)
	cart = store.Clear(rec, req)
	assert.Equal(t, 0, cart.GetCartTotal())
	assert.True(t, store.Get(rec, req).IsEmpty())
}

type failingBackend struct {
	loadErr error
	saveErr error
	cart    *models.Cart
}

func (b *failingBackend) Load(w http.ResponseWriter, r *http.Request) (*models.Cart, error) {
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	if b.cart == nil {
		return models.NewCart(), nil
	}
	return b.cart, nil
}

func (b *failingBackend) Save(w http.ResponseWriter, r *http.Request, cart *models.Cart) error {
	return b.saveErr
}

func TestCartStore_DegradesSilently(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	loadFails := NewCartStore(&failingBackend{loadErr: errors.New("corrupt cookie")})
	assert.True(t, loadFails.Get(httptest.NewRecorder(), req).IsEmpty())

	saveFails := NewCartStore(&failingBackend{saveErr: errors.New("cookie too large")})
	cart, err := saveFails.Add(httptest.NewRecorder(), req, soapA, 2)
	assert.EqualError(t, err, "cookie too large")
	assert.Equal(t, 1000, cart.GetCartTotal())
}

func TestSessionCartBackend_RepairsStoredCart(t *testing.T) {
	cookieStore := newTestStore()
	backend := NewSessionCartBackend(cookieStore, testSessionName)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	session, _ := cookieStore.Get(req, CartCookieName(testSessionName))
	session.Values[sessionCartKey] = `{"items":[{"productId":"A","unitPrice":500,"quantity":1},{"productId":"A","unitPrice":500,"quantity":1},{"productId":"B","quantity":0}]}`
	require.NoError(t, session.Save(req, rec))

	cart, err := backend.Load(httptest.NewRecorder(), nextRequest(rec))
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
}

// newProductionStore mirrors the signed and encrypted store the server builds
func newProductionStore(t *testing.T) *sessions.CookieStore {
	t.Helper()
	hashKey := make([]byte, 64)
	blockKey := make([]byte, 32)
	_, err := rand.Read(hashKey)
	require.NoError(t, err)
	_, err = rand.Read(blockKey)
	require.NoError(t, err)
	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{Path: "/", MaxAge: 3600, HttpOnly: true}
	return store
}

func TestSessionCartBackend_FullCartDoesNotBlockLogin(t *testing.T) {
	cookieStore := newProductionStore(t)
	carts := NewCartStore(NewSessionCartBackend(cookieStore, testSessionName))
	holder := NewSessionHolder(cookieStore, testSessionName)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	var lastErr error
	for i := 0; i < 40 && lastErr == nil; i++ {
		rec := httptest.NewRecorder()
		_, lastErr = carts.Add(rec, req, models.ProductSnapshot{
			ProductID: fmt.Sprintf("65f1c2a9e4b0d3a1c8%06d", i),
			Name:      fmt.Sprintf("Handmade Cold Process Soap No. %d", i),
			UnitPrice: 249,
			ImageURL:  fmt.Sprintf("https://res.cloudinary.com/soap/image/upload/v1700000000/products/soap-%d.jpg", i),
		}, 2)
		if lastErr == nil {
			req = nextRequest(rec)
		}
	}
	require.Error(t, lastErr, "the cart cookie should eventually refuse more lines")

	persisted := carts.Get(httptest.NewRecorder(), req)
	require.NotEmpty(t, persisted.Lines)

	rec := httptest.NewRecorder()
	_, err := holder.Begin(rec, req, &models.AuthResponse{
		Token: "opaque-token",
		User:  models.User{ID: "u1", Name: "Asha Rao", Email: "asha@example.com", Role: models.UserRoleCustomer},
	})
	require.NoError(t, err)

	next := nextRequest(rec)
	for _, c := range req.Cookies() {
		if _, err := next.Cookie(c.Name); err != nil {
			next.AddCookie(c)
		}
	}
	current := holder.Current(next)
	require.NotNil(t, current)
	assert.Equal(t, "u1", current.UserID)
	assert.Len(t, carts.Get(httptest.NewRecorder(), next).Lines, len(persisted.Lines))
}

func TestSessionCartBackend_StoresOnlyRenderedFields(t *testing.T) {
	cookieStore := newTestStore()
	carts := NewCartStore(NewSessionCartBackend(cookieStore, testSessionName))

	rec := httptest.NewRecorder()
	withDescription := soapA
	withDescription.Description = strings.Repeat("Cold pressed neem oil and tulsi. ", 20)
	_, err := carts.Add(rec, httptest.NewRequest(http.MethodPost, "/cart/add", nil), withDescription, 1)
	require.NoError(t, err)

	req := nextRequest(rec)
	_, err = req.Cookie(testSessionName)
	assert.ErrorIs(t, err, http.ErrNoCookie, "the cart must not touch the auth session cookie")

	line, ok := carts.Get(httptest.NewRecorder(), req).Line("A")
	require.True(t, ok)
	assert.Empty(t, line.Description)
	assert.Equal(t, "Neem", line.Name)
}
