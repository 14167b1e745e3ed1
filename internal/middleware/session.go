package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"soap-storefront/internal/logging"
)

type ctxKeySessionID struct{}

const sessionIDKey = "sid"

// SessionMiddleware gives every browser a stable anonymous id stored in the
// signed session cookie. Helpful votes and request generations are keyed by it.
type SessionMiddleware struct {
	store sessions.Store
	name  string
}

func NewSessionMiddleware(store sessions.Store, sessionName string) *SessionMiddleware {
	return &SessionMiddleware{store: store, name: sessionName}
}

func (m *SessionMiddleware) EnsureSessionID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, m.name)
		if session == nil {
			logging.FromContext(r.Context()).WithError(err).Warn("session unavailable")
			next.ServeHTTP(w, r)
			return
		}

		sid, ok := session.Values[sessionIDKey].(string)
		if !ok || sid == "" || err != nil {
			// a cookie that failed to decode is replaced wholesale
			if err != nil {
				session.Values = make(map[interface{}]interface{})
			}
			sid = uuid.NewString()
			session.Values[sessionIDKey] = sid
			if saveErr := session.Save(r, w); saveErr != nil {
				logging.FromContext(r.Context()).WithError(saveErr).Warn("failed to save session id")
			}
		}

		ctx := context.WithValue(r.Context(), ctxKeySessionID{}, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionID returns the anonymous browser id, or ""
func GetSessionID(ctx context.Context) string {
	sid, _ := ctx.Value(ctxKeySessionID{}).(string)
	return sid
}

// SetSessionID stores a browser id in the context (for testing)
func SetSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, ctxKeySessionID{}, sid)
}
