package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSessionID(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-secret-key"))
	m := NewSessionMiddleware(store, testSessionName)

	var seen string
	handler := m.EnsureSessionID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSessionID(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	first := seen
	require.NotEmpty(t, first)

	cookies := rr.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, first, seen, "the id is stable across requests")
}

func TestEnsureSessionID_ReplacesUnreadableCookie(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-secret-key"))
	m := NewSessionMiddleware(store, testSessionName)

	var seen string
	handler := m.EnsureSessionID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSessionID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testSessionName, Value: "garbage"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.NotEmpty(t, seen)
	assert.NotEmpty(t, rr.Result().Cookies())
}
