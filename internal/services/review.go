package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"soap-storefront/internal/models"
)

// ReviewService wraps the reviews endpoints
type ReviewService struct {
	api *APIClient
}

func NewReviewService(api *APIClient) *ReviewService {
	return &ReviewService{api: api}
}

// ForProduct returns every approved review for a product plus the server-side aggregate.
func (s *ReviewService) ForProduct(ctx context.Context, productID string, sort models.ReviewSort) (*models.ReviewPage, error) {
	path := "/api/reviews/product/" + url.PathEscape(productID) + "?sort=" + url.QueryEscape(string(sort))

	var page models.ReviewPage
	if err := s.api.do(ctx, http.MethodGet, path, "", nil, &page); err != nil {
		return nil, fmt.Errorf("failed to load reviews for %s: %w", productID, err)
	}
	if page.Reviews == nil {
		page.Reviews = []models.Review{}
	}
	if page.Stats.TotalReviews == 0 && len(page.Reviews) > 0 {
		page.Stats.TotalReviews = len(page.Reviews)
	}
	return &page, nil
}

// Create posts a review. token is optional: guests supply name and email in the form.
func (s *ReviewService) Create(ctx context.Context, token string, form models.ReviewForm) (*models.Review, error) {
	var review models.Review
	if err := s.api.do(ctx, http.MethodPost, "/api/reviews", token, form, &review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &review, nil
}

func (s *ReviewService) Update(ctx context.Context, token, id string, form models.ReviewForm) (*models.Review, error) {
	if token == "" {
		return nil, models.ErrUnauthorized
	}
	var review models.Review
	if err := s.api.do(ctx, http.MethodPut, "/api/reviews/"+url.PathEscape(id), token, form, &review); err != nil {
		return nil, fmt.Errorf("failed to update review %s: %w", id, err)
	}
	return &review, nil
}

func (s *ReviewService) Delete(ctx context.Context, token, id string) error {
	if token == "" {
		return models.ErrUnauthorized
	}
	if err := s.api.do(ctx, http.MethodDelete, "/api/reviews/"+url.PathEscape(id), token, nil, nil); err != nil {
		return fmt.Errorf("failed to delete review %s: %w", id, err)
	}
	return nil
}

// MarkHelpful increments the helpful counter server-side. Callers gate it with HelpfulVoteGuard.
func (s *ReviewService) MarkHelpful(ctx context.Context, id string) error {
	path := "/api/reviews/" + url.PathEscape(id) + "/helpful"
	if err := s.api.do(ctx, http.MethodPost, path, "", nil, nil); err != nil {
		return fmt.Errorf("failed to mark review %s helpful: %w", id, err)
	}
	return nil
}

func (s *ReviewService) AdminList(ctx context.Context, token string, filter models.AdminReviewFilter) (*models.Page[models.Review], error) {
	rating := ""
	if filter.Rating >= 1 && filter.Rating <= 5 {
		rating = strconv.Itoa(filter.Rating)
	}
	query := listQuery(filter.Search, filter.Page, filter.Limit, map[string]string{
		"status": filter.Status,
		"rating": rating,
	})
	page, err := getPage[models.Review](ctx, s.api, "/api/reviews/admin/all", token, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin reviews: %w", err)
	}
	return page, nil
}

// Approve sets the moderation flag on a review
func (s *ReviewService) Approve(ctx context.Context, token, id string, approved bool) error {
	path := "/api/reviews/" + url.PathEscape(id) + "/approve"
	body := map[string]bool{"isApproved": approved}
	if err := s.api.do(ctx, http.MethodPut, path, token, body, nil); err != nil {
		return fmt.Errorf("failed to moderate review %s: %w", id, err)
	}
	return nil
}
