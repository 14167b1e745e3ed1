package services

import (
	"context"

	"soap-storefront/internal/models"
)

// ProductServiceInterface defines the catalog and admin product operations
type ProductServiceInterface interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	AdminList(ctx context.Context, token string, filter models.AdminProductFilter) (*models.Page[models.Product], error)
	Create(ctx context.Context, token string, form models.ProductForm, image *ImageUpload) (*models.Product, error)
	Update(ctx context.Context, token, id string, form models.ProductForm, image *ImageUpload) (*models.Product, error)
	Delete(ctx context.Context, token, id string) error
}

// OrderServiceInterface defines checkout, tracking and admin order operations
type OrderServiceInterface interface {
	Place(ctx context.Context, token string, req models.PlaceOrderRequest) (*models.Order, error)
	Lookup(ctx context.Context, orderNumber string) (*models.Order, error)
	AdminList(ctx context.Context, token string, filter models.AdminOrderFilter) (*models.Page[models.Order], error)
	UpdateStatus(ctx context.Context, token, id string, req models.StatusUpdateRequest) (*models.Order, error)
	Delete(ctx context.Context, token, id string) error
}

// ReviewServiceInterface defines the review operations
type ReviewServiceInterface interface {
	ForProduct(ctx context.Context, productID string, sort models.ReviewSort) (*models.ReviewPage, error)
	Create(ctx context.Context, token string, form models.ReviewForm) (*models.Review, error)
	Update(ctx context.Context, token, id string, form models.ReviewForm) (*models.Review, error)
	Delete(ctx context.Context, token, id string) error
	MarkHelpful(ctx context.Context, id string) error
	AdminList(ctx context.Context, token string, filter models.AdminReviewFilter) (*models.Page[models.Review], error)
	Approve(ctx context.Context, token, id string, approved bool) error
}

// UserServiceInterface defines the admin user operations
type UserServiceInterface interface {
	List(ctx context.Context, token string, filter models.AdminUserFilter) (*models.Page[models.User], error)
	Get(ctx context.Context, token, id string) (*models.User, error)
	Create(ctx context.Context, token string, form models.UserForm) (*models.User, error)
	Update(ctx context.Context, token, id string, form models.UserForm) (*models.User, error)
	Delete(ctx context.Context, token, id string) error
}

// AnnouncementServiceInterface defines the banner feed and its admin operations
type AnnouncementServiceInterface interface {
	ListActive(ctx context.Context) ([]models.Announcement, error)
	List(ctx context.Context, token string, filter models.AdminAnnouncementFilter) (*models.Page[models.Announcement], error)
	Get(ctx context.Context, token, id string) (*models.Announcement, error)
	Create(ctx context.Context, token string, form models.AnnouncementForm) (*models.Announcement, error)
	Update(ctx context.Context, token, id string, form models.AnnouncementForm) (*models.Announcement, error)
	Delete(ctx context.Context, token, id string) error
}

// AuthServiceInterface defines customer login and signup
type AuthServiceInterface interface {
	CustomerLogin(ctx context.Context, form models.LoginForm) (*models.AuthResponse, error)
	CustomerSignup(ctx context.Context, form models.SignupForm) (*models.AuthResponse, error)
}

type ContactServiceInterface interface {
	Submit(ctx context.Context, form models.ContactForm) error
}

type DashboardServiceInterface interface {
	Stats(ctx context.Context, token string, periodDays int) (*models.DashboardStats, error)
}

var (
	_ ProductServiceInterface      = (*ProductService)(nil)
	_ OrderServiceInterface        = (*OrderService)(nil)
	_ ReviewServiceInterface       = (*ReviewService)(nil)
	_ UserServiceInterface         = (*UserService)(nil)
	_ AnnouncementServiceInterface = (*AnnouncementService)(nil)
	_ AuthServiceInterface         = (*AuthService)(nil)
	_ ContactServiceInterface      = (*ContactService)(nil)
	_ DashboardServiceInterface    = (*DashboardService)(nil)
	_ CartBackend                  = (*SessionCartBackend)(nil)
	_ CartBackend                  = (*RedisCartBackend)(nil)
)
