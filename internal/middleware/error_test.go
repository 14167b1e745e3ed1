package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecoverer_NoPanic(t *testing.T) {
	rr := httptest.NewRecorder()
	Recoverer(okHandler()).ServeHTTP(rr, httptest.NewRequest("GET", "/test", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestRecoverer_Panic(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	})

	rr := httptest.NewRecorder()
	Recoverer(handler).ServeHTTP(rr, httptest.NewRequest("GET", "/test", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Internal Server Error")

	req := httptest.NewRequest("POST", "/test", nil)
	req.Header.Set("HX-Request", "true")
	rr = httptest.NewRecorder()
	Recoverer(handler).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Something went wrong")
}

func TestNotFoundHandler(t *testing.T) {
	page := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("full page"))
	})

	rr := httptest.NewRecorder()
	NotFoundHandler(page).ServeHTTP(rr, httptest.NewRequest("GET", "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "full page", rr.Body.String())

	req := httptest.NewRequest("GET", "/nope", nil)
	req.Header.Set("HX-Request", "true")
	rr = httptest.NewRecorder()
	NotFoundHandler(page).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Page Not Found")
}

func TestMethodNotAllowedHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	MethodNotAllowedHandler().ServeHTTP(rr, httptest.NewRequest("DELETE", "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
