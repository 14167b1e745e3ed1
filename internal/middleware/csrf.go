package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gorilla/sessions"

	"soap-storefront/internal/logging"
)

const csrfSessionKey = "csrf_token"

type ctxKeyCSRF struct{}

// CSRFMiddleware provides CSRF protection functionality
type CSRFMiddleware struct {
	store sessions.Store
	name  string
}

// NewCSRFMiddleware creates a new CSRF middleware
func NewCSRFMiddleware(store sessions.Store, sessionName string) *CSRFMiddleware {
	return &CSRFMiddleware{
		store: store,
		name:  sessionName,
	}
}

// CSRFProtection rejects state-changing requests whose token does not match
// the one held in the session.
func (m *CSRFMiddleware) CSRFProtection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.store.Get(r, m.name)
		if err != nil {
			logging.FromContext(r.Context()).WithError(err).Warn("csrf: session unreadable")
			csrfFailure(w, r)
			return
		}

		sessionToken, _ := session.Values[csrfSessionKey].(string)

		requestToken := r.Header.Get("X-CSRF-Token")
		if requestToken == "" {
			requestToken = r.FormValue(csrfSessionKey)
		}

		if sessionToken == "" || subtle.ConstantTimeCompare([]byte(requestToken), []byte(sessionToken)) != 1 {
			logging.FromContext(r.Context()).Warn("csrf token mismatch")
			csrfFailure(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func csrfFailure(w http.ResponseWriter, r *http.Request) {
	if IsHTMXRequest(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`<div class="bg-red-50 border border-red-200 text-red-800 p-4 rounded-lg">` +
			`<p class="text-sm">Security token mismatch. Please refresh the page and try again.</p></div>`))
		return
	}
	http.Error(w, "CSRF token mismatch", http.StatusForbidden)
}

// EnsureCSRFToken makes sure the session holds a token and exposes it to
// templates through the request context.
func (m *CSRFMiddleware) EnsureCSRFToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, m.name)
		if err != nil {
			logging.FromContext(r.Context()).WithError(err).Warn("csrf: session unreadable")
			next.ServeHTTP(w, r)
			return
		}

		token, ok := session.Values[csrfSessionKey].(string)
		if !ok || token == "" {
			token = GenerateCSRFToken()
			session.Values[csrfSessionKey] = token
			if err := session.Save(r, w); err != nil {
				logging.FromContext(r.Context()).WithError(err).Warn("csrf: failed to save token")
			}
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyCSRF{}, token)))
	})
}

// GenerateCSRFToken generates a new CSRF token
func GenerateCSRFToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// GetCSRFToken returns the token EnsureCSRFToken stored, or ""
func GetCSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(ctxKeyCSRF{}).(string)
	return token
}

// SetCSRFToken stores a token in the context (for testing)
func SetCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKeyCSRF{}, token)
}
