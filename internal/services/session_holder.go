package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"

	"soap-storefront/internal/models"
)

const (
	sessionAuthKey = "auth"

	// Older cookies carried a bare token under one of these names.
	legacyAdminTokenKey    = "adminToken"
	legacyCustomerTokenKey = "customerToken"
)

// SessionHolder owns the signed-in identity. There is one Session value per
// browser; its role decides whether the admin area is reachable.
type SessionHolder struct {
	store sessions.Store
	name  string
	now   func() time.Time
}

func NewSessionHolder(store sessions.Store, sessionName string) *SessionHolder {
	return &SessionHolder{store: store, name: sessionName, now: time.Now}
}

// Begin records a successful login or signup and clears any legacy token keys.
func (h *SessionHolder) Begin(w http.ResponseWriter, r *http.Request, resp *models.AuthResponse) (*models.Session, error) {
	session, err := h.store.Get(r, h.name)
	if err != nil && session == nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	role := resp.User.Role
	if !role.Valid() {
		role = models.UserRoleCustomer
	}

	s := &models.Session{
		UserID:    resp.User.ID,
		Name:      resp.User.Name,
		Email:     resp.User.Email,
		Role:      role,
		Token:     resp.Token,
		ExpiresAt: tokenClaims(resp.Token).expiresAt,
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}

	session.Values[sessionAuthKey] = string(data)
	delete(session.Values, legacyAdminTokenKey)
	delete(session.Values, legacyCustomerTokenKey)

	if err := session.Save(r, w); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return s, nil
}

// Current returns the signed-in session, or nil. Expired tokens count as signed out.
func (h *SessionHolder) Current(r *http.Request) *models.Session {
	session, err := h.store.Get(r, h.name)
	if err != nil || session == nil {
		return nil
	}

	var s *models.Session
	if raw, ok := session.Values[sessionAuthKey].(string); ok && raw != "" {
		var decoded models.Session
		if err := json.Unmarshal([]byte(raw), &decoded); err == nil && decoded.Token != "" {
			s = &decoded
		}
	}
	if s == nil {
		s = legacySession(session.Values)
	}
	if s == nil {
		return nil
	}

	if s.ExpiresAt.IsZero() {
		s.ExpiresAt = tokenClaims(s.Token).expiresAt
	}
	if s.Expired(h.now()) {
		return nil
	}
	return s
}

// Token is the bearer to attach to backend calls, or "" when signed out.
func (h *SessionHolder) Token(r *http.Request) string {
	if s := h.Current(r); s != nil {
		return s.Token
	}
	return ""
}

// End signs out: the unified value and both legacy keys are removed.
func (h *SessionHolder) End(w http.ResponseWriter, r *http.Request) error {
	session, err := h.store.Get(r, h.name)
	if err != nil && session == nil {
		return fmt.Errorf("failed to read session: %w", err)
	}

	delete(session.Values, sessionAuthKey)
	delete(session.Values, legacyAdminTokenKey)
	delete(session.Values, legacyCustomerTokenKey)

	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// legacySession rebuilds a session from a bare token; the role comes from the key name.
// When both keys are present the admin token wins.
func legacySession(values map[interface{}]interface{}) *models.Session {
	for _, candidate := range []struct {
		key  string
		role models.UserRole
	}{
		{legacyAdminTokenKey, models.UserRoleAdmin},
		{legacyCustomerTokenKey, models.UserRoleCustomer},
	} {
		token, ok := values[candidate.key].(string)
		if !ok || token == "" {
			continue
		}
		claims := tokenClaims(token)
		return &models.Session{
			UserID:    claims.userID,
			Name:      claims.name,
			Email:     claims.email,
			Role:      candidate.role,
			Token:     token,
			ExpiresAt: claims.expiresAt,
		}
	}
	return nil
}

type bearerClaims struct {
	userID    string
	name      string
	email     string
	expiresAt time.Time
}

// tokenClaims reads a few claims without verifying the signature; the backend
// verifies the token on every call, this only drops obviously stale sessions.
func tokenClaims(token string) bearerClaims {
	var out bearerClaims
	if token == "" {
		return out
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return out
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.expiresAt = exp.Time
	}
	for _, key := range []string{"id", "userId", "_id"} {
		if v, ok := claims[key].(string); ok && v != "" {
			out.userID = v
			break
		}
	}
	if out.userID == "" {
		out.userID, _ = claims.GetSubject()
	}
	out.name, _ = claims["name"].(string)
	out.email, _ = claims["email"].(string)
	return out
}
