package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"soap-storefront/internal/models"
)

type DashboardService struct {
	api *APIClient
}

func NewDashboardService(api *APIClient) *DashboardService {
	return &DashboardService{api: api}
}

// Stats loads the admin dashboard aggregates for the last periodDays days
func (s *DashboardService) Stats(ctx context.Context, token string, periodDays int) (*models.DashboardStats, error) {
	periodDays = models.ParseDashboardPeriod(periodDays)

	var stats models.DashboardStats
	path := "/api/dashboard/stats?period=" + strconv.Itoa(periodDays)
	if err := s.api.do(ctx, http.MethodGet, path, token, nil, &stats); err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	if stats.PeriodDays == 0 {
		stats.PeriodDays = periodDays
	}
	return &stats, nil
}
