package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"soap-storefront/internal/models"
)

// MockSessionSource is a mock implementation of SessionSource
type MockSessionSource struct {
	mock.Mock
}

func (m *MockSessionSource) Current(r *http.Request) *models.Session {
	args := m.Called(r)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.Session)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
}

func TestLoadSession(t *testing.T) {
	source := new(MockSessionSource)
	session := &models.Session{UserID: "u1", Role: models.UserRoleCustomer, Token: "t"}
	source.On("Current", mock.Anything).Return(session).Once()

	var seen *models.Session
	handler := NewAuthMiddleware(source).LoadSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSessionFromContext(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, session, seen)
	source.AssertExpectations(t)
}

func TestLoadSession_SignedOut(t *testing.T) {
	source := new(MockSessionSource)
	source.On("Current", mock.Anything).Return(nil)

	var seen *models.Session
	handler := NewAuthMiddleware(source).LoadSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSessionFromContext(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, seen)
}

func TestRequireAuth(t *testing.T) {
	m := NewAuthMiddleware(new(MockSessionSource))

	t.Run("redirects signed-out visitors", func(t *testing.T) {
		rr := httptest.NewRecorder()
		m.RequireAuth(okHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/checkout", nil))

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/login?redirect=%2Fcheckout", rr.Header().Get("Location"))
	})

	t.Run("htmx gets HX-Redirect", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
		req.Header.Set("HX-Request", "true")
		rr := httptest.NewRecorder()
		m.RequireAuth(okHandler()).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "/login?redirect=%2Fcheckout", rr.Header().Get("HX-Redirect"))
	})

	t.Run("passes signed-in visitors", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/checkout", nil)
		req = req.WithContext(SetSessionContext(req.Context(), &models.Session{UserID: "u1"}))
		rr := httptest.NewRecorder()
		m.RequireAuth(okHandler()).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestRequireRole(t *testing.T) {
	m := NewAuthMiddleware(new(MockSessionSource))

	tests := []struct {
		name       string
		session    *models.Session
		wantStatus int
	}{
		{name: "admin allowed", session: &models.Session{UserID: "a", Role: models.UserRoleAdmin}, wantStatus: http.StatusOK},
		{name: "customer denied", session: &models.Session{UserID: "c", Role: models.UserRoleCustomer}, wantStatus: http.StatusForbidden},
		{name: "signed out redirected", session: nil, wantStatus: http.StatusSeeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.session != nil {
				req = req.WithContext(SetSessionContext(req.Context(), tt.session))
			}
			rr := httptest.NewRecorder()
			m.RequireRole(models.UserRoleAdmin)(okHandler()).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestIsHTMXRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, IsHTMXRequest(req))

	req.Header.Set("HX-Request", "true")
	assert.True(t, IsHTMXRequest(req))
}
