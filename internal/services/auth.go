package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"soap-storefront/internal/models"
)

// AuthService exchanges credentials for a backend bearer token
type AuthService struct {
	api *APIClient
}

func NewAuthService(api *APIClient) *AuthService {
	return &AuthService{api: api}
}

// ErrInvalidCredentials is returned for a rejected login
var ErrInvalidCredentials = errors.New("invalid email or password")

func (s *AuthService) CustomerLogin(ctx context.Context, form models.LoginForm) (*models.AuthResponse, error) {
	form.Email = strings.TrimSpace(strings.ToLower(form.Email))

	var resp models.AuthResponse
	err := s.api.do(ctx, http.MethodPost, "/api/auth/customer-login", "", form, whole{&resp})
	if errors.Is(err, models.ErrUnauthorized) || errors.Is(err, models.ErrInvalidInput) {
		return nil, errors.Join(ErrInvalidCredentials, err)
	}
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return checkAuthResponse(&resp)
}

func (s *AuthService) CustomerSignup(ctx context.Context, form models.SignupForm) (*models.AuthResponse, error) {
	form.Email = strings.TrimSpace(strings.ToLower(form.Email))

	var resp models.AuthResponse
	if err := s.api.do(ctx, http.MethodPost, "/api/auth/customer-signup", "", form, whole{&resp}); err != nil {
		return nil, fmt.Errorf("signup failed: %w", err)
	}
	return checkAuthResponse(&resp)
}

func checkAuthResponse(resp *models.AuthResponse) (*models.AuthResponse, error) {
	if resp.Token == "" {
		msg := resp.Message
		if msg == "" {
			msg = "no token in response"
		}
		return nil, &APIError{StatusCode: http.StatusUnauthorized, Message: msg}
	}
	if resp.User.Role == "" {
		resp.User.Role = models.UserRoleCustomer
	}
	return resp, nil
}
