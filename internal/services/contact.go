package services

import (
	"context"
	"fmt"
	"net/http"

	"soap-storefront/internal/models"
)

type ContactService struct {
	api *APIClient
}

func NewContactService(api *APIClient) *ContactService {
	return &ContactService{api: api}
}

// Submit forwards the contact form; the response body is ignored.
func (s *ContactService) Submit(ctx context.Context, form models.ContactForm) error {
	if err := s.api.do(ctx, http.MethodPost, "/api/contact", "", form, nil); err != nil {
		return fmt.Errorf("failed to submit contact form: %w", err)
	}
	return nil
}
