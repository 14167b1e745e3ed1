package models

import "strings"

// Pagination is the envelope the admin list endpoints return
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }

// Page is a paginated admin list
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// ContactForm is the POST /api/contact body
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (f *ContactForm) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs.Add("name", "Name is required")
	}
	if strings.TrimSpace(f.Email) == "" {
		errs.Add("email", "Email is required")
	} else if !ValidEmail(f.Email) {
		errs.Add("email", "Please enter a valid email address")
	}
	if strings.TrimSpace(f.Message) == "" {
		errs.Add("message", "Message is required")
	}
	return errs
}

// DashboardStats is the GET /api/dashboard/stats response
type DashboardStats struct {
	TotalRevenue    int              `json:"totalRevenue"`
	TotalOrders     int              `json:"totalOrders"`
	TotalProducts   int              `json:"totalProducts"`
	TotalUsers      int              `json:"totalUsers"`
	PendingOrders   int              `json:"pendingOrders"`
	LowStock        []Product        `json:"lowStockProducts"`
	RecentOrders    []Order          `json:"recentOrders"`
	OrdersByStatus  map[string]int   `json:"ordersByStatus"`
	RevenueByDay    []RevenuePoint   `json:"revenueByDay"`
	TopProducts     []TopProductStat `json:"topProducts"`
	PeriodDays      int              `json:"period"`
}

// RevenuePoint is one day of the revenue chart
type RevenuePoint struct {
	Date    string `json:"date"`
	Revenue int    `json:"revenue"`
	Orders  int    `json:"orders"`
}

// TopProductStat is a best seller row
type TopProductStat struct {
	ProductID string `json:"_id"`
	Name      string `json:"name"`
	Sold      int    `json:"totalSold"`
	Revenue   int    `json:"revenue"`
}

// DashboardPeriods are the selectable chart windows in days
var DashboardPeriods = []int{7, 30, 90}

// ParseDashboardPeriod returns one of DashboardPeriods, defaulting to 30
func ParseDashboardPeriod(days int) int {
	for _, p := range DashboardPeriods {
		if p == days {
			return p
		}
	}
	return 30
}

// MaxRevenue is the chart's y-axis ceiling
func (s *DashboardStats) MaxRevenue() int {
	max := 0
	for _, p := range s.RevenueByDay {
		if p.Revenue > max {
			max = p.Revenue
		}
	}
	return max
}
