package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"soap-storefront/internal/models"
)

// UserService is the admin users API
type UserService struct {
	api *APIClient
}

func NewUserService(api *APIClient) *UserService {
	return &UserService{api: api}
}

func (s *UserService) List(ctx context.Context, token string, filter models.AdminUserFilter) (*models.Page[models.User], error) {
	query := listQuery(filter.Search, filter.Page, filter.Limit, map[string]string{"role": filter.Role})
	page, err := getPage[models.User](ctx, s.api, "/api/users", token, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return page, nil
}

func (s *UserService) Get(ctx context.Context, token, id string) (*models.User, error) {
	var user models.User
	if err := s.api.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), token, nil, &user); err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return &user, nil
}

func (s *UserService) Create(ctx context.Context, token string, form models.UserForm) (*models.User, error) {
	var user models.User
	if err := s.api.do(ctx, http.MethodPost, "/api/users", token, form, &user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Update sends the form; an empty password is omitted so the stored one is kept.
func (s *UserService) Update(ctx context.Context, token, id string, form models.UserForm) (*models.User, error) {
	var user models.User
	if err := s.api.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id), token, form, &user); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}
	return &user, nil
}

func (s *UserService) Delete(ctx context.Context, token, id string) error {
	if err := s.api.do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), token, nil, nil); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return nil
}
