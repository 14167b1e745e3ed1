package services

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"soap-storefront/internal/logging"
	"soap-storefront/internal/models"
)

// CartBackend persists the cart for one browser
type CartBackend interface {
	Load(w http.ResponseWriter, r *http.Request) (*models.Cart, error)
	Save(w http.ResponseWriter, r *http.Request, cart *models.Cart) error
}

const sessionCartKey = "cart"

// CartCookieName is the cookie the session cart backend writes. It is kept
// apart from the auth session so a large cart can never stop a sign-in.
func CartCookieName(sessionName string) string {
	return sessionName + "-cart"
}

// SessionCartBackend keeps the cart as JSON inside its own signed cookie.
// Only the fields the cart pages render are stored.
type SessionCartBackend struct {
	store sessions.Store
	name  string
}

func NewSessionCartBackend(store sessions.Store, sessionName string) *SessionCartBackend {
	return &SessionCartBackend{store: store, name: CartCookieName(sessionName)}
}

func (b *SessionCartBackend) Load(w http.ResponseWriter, r *http.Request) (*models.Cart, error) {
	session, err := b.store.Get(r, b.name)
	if err != nil {
		return models.NewCart(), fmt.Errorf("failed to read session: %w", err)
	}

	raw, ok := session.Values[sessionCartKey].(string)
	if !ok || raw == "" {
		return models.NewCart(), nil
	}

	return decodeCart([]byte(raw))
}

func (b *SessionCartBackend) Save(w http.ResponseWriter, r *http.Request, cart *models.Cart) error {
	session, err := b.store.Get(r, b.name)
	if err != nil && session == nil {
		return fmt.Errorf("failed to read session: %w", err)
	}

	data, err := encodeCart(compactCart(cart))
	if err != nil {
		return err
	}

	session.Values[sessionCartKey] = string(data)
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func encodeCart(cart *models.Cart) ([]byte, error) {
	data, err := json.Marshal(cart)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart: %w", err)
	}
	return data, nil
}

// compactCart drops the product description, which no cart view renders
func compactCart(cart *models.Cart) *models.Cart {
	out := &models.Cart{Lines: make([]models.CartLine, len(cart.Lines))}
	for i, line := range cart.Lines {
		line.Description = ""
		out.Lines[i] = line
	}
	return out
}

func decodeCart(data []byte) (*models.Cart, error) {
	cart := models.NewCart()
	if err := json.Unmarshal(data, cart); err != nil {
		return models.NewCart(), fmt.Errorf("failed to decode cart: %w", err)
	}
	if cart.Lines == nil {
		cart.Lines = []models.CartLine{}
	}
	cart.Normalize()
	return cart, nil
}

// CartStore is the single owner of cart mutation. Every operation loads the
// cart, applies one models.Cart method and saves. A failed save is logged and
// the in-memory result is still returned; a failed load yields an empty cart.
type CartStore struct {
	backend CartBackend
}

func NewCartStore(backend CartBackend) *CartStore {
	return &CartStore{backend: backend}
}

func (s *CartStore) Get(w http.ResponseWriter, r *http.Request) *models.Cart {
	cart, err := s.backend.Load(w, r)
	if err != nil {
		logging.FromContext(r.Context()).WithError(err).Warn("cart load failed, starting empty")
	}
	if cart == nil {
		cart = models.NewCart()
	}
	return cart
}

// Add puts quantity units of the product in the cart, one AddToCart per unit.
// The cart is returned even when saving fails; the error lets the caller tell
// the shopper the item was not kept.
func (s *CartStore) Add(w http.ResponseWriter, r *http.Request, product models.ProductSnapshot, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}
	quantity = models.ClampLineQuantity(quantity)

	cart := s.Get(w, r)
	for i := 0; i < quantity; i++ {
		cart.AddToCart(product)
	}
	if err := s.backend.Save(w, r, cart); err != nil {
		logging.FromContext(r.Context()).WithError(err).Warn("cart save failed")
		return cart, err
	}
	return cart, nil
}

func (s *CartStore) Remove(w http.ResponseWriter, r *http.Request, productID string) *models.Cart {
	return s.mutate(w, r, func(c *models.Cart) { c.RemoveFromCart(productID) })
}

func (s *CartStore) UpdateQuantity(w http.ResponseWriter, r *http.Request, productID string, quantity int) *models.Cart {
	return s.mutate(w, r, func(c *models.Cart) { c.UpdateQuantity(productID, quantity) })
}

func (s *CartStore) Increment(w http.ResponseWriter, r *http.Request, productID string) *models.Cart {
	return s.mutate(w, r, func(c *models.Cart) { c.Increment(productID) })
}

func (s *CartStore) Decrement(w http.ResponseWriter, r *http.Request, productID string) *models.Cart {
	return s.mutate(w, r, func(c *models.Cart) { c.Decrement(productID) })
}

func (s *CartStore) Clear(w http.ResponseWriter, r *http.Request) *models.Cart {
	return s.mutate(w, r, func(c *models.Cart) { c.ClearCart() })
}

func (s *CartStore) mutate(w http.ResponseWriter, r *http.Request, fn func(*models.Cart)) *models.Cart {
	cart := s.Get(w, r)
	fn(cart)

	if err := s.backend.Save(w, r, cart); err != nil {
		logging.FromContext(r.Context()).WithError(err).Warn("cart save failed")
	}
	return cart
}
