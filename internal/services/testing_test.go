package services

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
)

const testSessionName = "session"

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}

// newTestAPI starts a backend stub and returns a client pointed at it
func newTestAPI(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewAPIClientWithHTTPClient(server.URL, server.Client(), quietLogger())
}

func newTestStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte("test-secret-key"))
	store.Options = &sessions.Options{Path: "/", MaxAge: 3600, HttpOnly: true}
	return store
}

// nextRequest builds a request carrying the last value of each cookie set on rec
func nextRequest(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	latest := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		latest[c.Name] = c
	}
	for _, c := range latest {
		req.AddCookie(c)
	}
	return req
}
