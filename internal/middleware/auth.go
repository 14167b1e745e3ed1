package middleware

import (
	"context"
	"net/http"
	"net/url"

	"soap-storefront/internal/logging"
	"soap-storefront/internal/models"
	"soap-storefront/internal/services"
)

type contextKey string

const (
	SessionContextKey contextKey = "auth_session"
)

// SessionSource is what the auth middleware needs from the session holder
type SessionSource interface {
	Current(r *http.Request) *models.Session
}

var _ SessionSource = (*services.SessionHolder)(nil)

// AuthMiddleware provides authentication functionality
type AuthMiddleware struct {
	sessions SessionSource
}

func NewAuthMiddleware(sessions SessionSource) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// LoadSession puts the signed-in session, if any, into the request context
func (m *AuthMiddleware) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := m.sessions.Current(r)
		if s == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := SetSessionContext(r.Context(), s)
		ctx = logging.WithLogger(ctx, logging.FromContext(ctx).WithField("user", s.UserID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth sends signed-out visitors to the login page
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetSessionFromContext(r.Context()) == nil {
			redirectToLogin(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the session carries the required role
func (m *AuthMiddleware) RequireRole(role models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := GetSessionFromContext(r.Context())
			if s == nil {
				redirectToLogin(w, r)
				return
			}

			if s.Role != role {
				logging.FromContext(r.Context()).WithField("role", s.Role).Warn("access denied")
				if IsHTMXRequest(r) {
					w.WriteHeader(http.StatusForbidden)
					w.Write([]byte("Access denied"))
					return
				}
				http.Error(w, "Access denied", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := "/login?redirect=" + url.QueryEscape(r.URL.RequestURI())
	if IsHTMXRequest(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// GetSessionFromContext retrieves the signed-in session from request context
func GetSessionFromContext(ctx context.Context) *models.Session {
	s, ok := ctx.Value(SessionContextKey).(*models.Session)
	if !ok {
		return nil
	}
	return s
}

// SetSessionContext sets the session in the context
func SetSessionContext(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, SessionContextKey, s)
}

// IsHTMXRequest checks if the request is from HTMX
func IsHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
