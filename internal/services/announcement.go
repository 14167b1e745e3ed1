package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"soap-storefront/internal/models"
)

type AnnouncementService struct {
	api *APIClient
}

func NewAnnouncementService(api *APIClient) *AnnouncementService {
	return &AnnouncementService{api: api}
}

// ListActive is the public banner feed, highest priority first
func (s *AnnouncementService) ListActive(ctx context.Context) ([]models.Announcement, error) {
	var announcements []models.Announcement
	if err := s.api.do(ctx, http.MethodGet, "/api/announcements?active=true", "", nil, &announcements); err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	sort.SliceStable(announcements, func(i, j int) bool {
		return announcements[i].Priority > announcements[j].Priority
	})
	return announcements, nil
}

func (s *AnnouncementService) List(ctx context.Context, token string, filter models.AdminAnnouncementFilter) (*models.Page[models.Announcement], error) {
	query := listQuery(filter.Search, filter.Page, filter.Limit, map[string]string{
		"type":   filter.Type,
		"status": filter.Status,
	})
	page, err := getPage[models.Announcement](ctx, s.api, "/api/announcements", token, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin announcements: %w", err)
	}
	return page, nil
}

func (s *AnnouncementService) Get(ctx context.Context, token, id string) (*models.Announcement, error) {
	var a models.Announcement
	if err := s.api.do(ctx, http.MethodGet, "/api/announcements/"+url.PathEscape(id), token, nil, &a); err != nil {
		return nil, fmt.Errorf("failed to get announcement %s: %w", id, err)
	}
	return &a, nil
}

func (s *AnnouncementService) Create(ctx context.Context, token string, form models.AnnouncementForm) (*models.Announcement, error) {
	var a models.Announcement
	if err := s.api.do(ctx, http.MethodPost, "/api/announcements", token, form, &a); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}
	return &a, nil
}

func (s *AnnouncementService) Update(ctx context.Context, token, id string, form models.AnnouncementForm) (*models.Announcement, error) {
	var a models.Announcement
	if err := s.api.do(ctx, http.MethodPut, "/api/announcements/"+url.PathEscape(id), token, form, &a); err != nil {
		return nil, fmt.Errorf("failed to update announcement %s: %w", id, err)
	}
	return &a, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, token, id string) error {
	if err := s.api.do(ctx, http.MethodDelete, "/api/announcements/"+url.PathEscape(id), token, nil, nil); err != nil {
		return fmt.Errorf("failed to delete announcement %s: %w", id, err)
	}
	return nil
}
