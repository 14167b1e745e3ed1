package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/mock"

	"soap-storefront/internal/middleware"
	"soap-storefront/internal/models"
	"soap-storefront/internal/services"
)

const testSessionName = "soap-test"

// MockProductService is a mock implementation of ProductServiceInterface
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) AdminList(ctx context.Context, token string, filter models.AdminProductFilter) (*models.Page[models.Product], error) {
	args := m.Called(ctx, token, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page[models.Product]), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, token string, form models.ProductForm, image *services.ImageUpload) (*models.Product, error) {
	args := m.Called(ctx, token, form, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, token, id string, form models.ProductForm, image *services.ImageUpload) (*models.Product, error) {
	args := m.Called(ctx, token, id, form, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, token, id string) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

// MockOrderService is a mock implementation of OrderServiceInterface
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Place(ctx context.Context, token string, req models.PlaceOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) Lookup(ctx context.Context, orderNumber string) (*models.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) AdminList(ctx context.Context, token string, filter models.AdminOrderFilter) (*models.Page[models.Order], error) {
	args := m.Called(ctx, token, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page[models.Order]), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, token, id string, req models.StatusUpdateRequest) (*models.Order, error) {
	args := m.Called(ctx, token, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, token, id string) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

// MockReviewService is a mock implementation of ReviewServiceInterface
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ForProduct(ctx context.Context, productID string, sort models.ReviewSort) (*models.ReviewPage, error) {
	args := m.Called(ctx, productID, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewPage), args.Error(1)
}

func (m *MockReviewService) Create(ctx context.Context, token string, form models.ReviewForm) (*models.Review, error) {
	args := m.Called(ctx, token, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, token, id string, form models.ReviewForm) (*models.Review, error) {
	args := m.Called(ctx, token, id, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, token, id string) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func (m *MockReviewService) MarkHelpful(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewService) AdminList(ctx context.Context, token string, filter models.AdminReviewFilter) (*models.Page[models.Review], error) {
	args := m.Called(ctx, token, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page[models.Review]), args.Error(1)
}

func (m *MockReviewService) Approve(ctx context.Context, token, id string, approved bool) error {
	args := m.Called(ctx, token, id, approved)
	return args.Error(0)
}

// MockAnnouncementService is a mock implementation of AnnouncementServiceInterface
type MockAnnouncementService struct {
	mock.Mock
}

func (m *MockAnnouncementService) ListActive(ctx context.Context) ([]models.Announcement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Announcement), args.Error(1)
}

func (m *MockAnnouncementService) List(ctx context.Context, token string, filter models.AdminAnnouncementFilter) (*models.Page[models.Announcement], error) {
	args := m.Called(ctx, token, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page[models.Announcement]), args.Error(1)
}

func (m *MockAnnouncementService) Get(ctx context.Context, token, id string) (*models.Announcement, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Announcement), args.Error(1)
}

func (m *MockAnnouncementService) Create(ctx context.Context, token string, form models.AnnouncementForm) (*models.Announcement, error) {
	args := m.Called(ctx, token, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Announcement), args.Error(1)
}

func (m *MockAnnouncementService) Update(ctx context.Context, token, id string, form models.AnnouncementForm) (*models.Announcement, error) {
	args := m.Called(ctx, token, id, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Announcement), args.Error(1)
}

func (m *MockAnnouncementService) Delete(ctx context.Context, token, id string) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

// MockUserService is a mock implementation of UserServiceInterface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, token string, filter models.AdminUserFilter) (*models.Page[models.User], error) {
	args := m.Called(ctx, token, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page[models.User]), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, token, id string) (*models.User, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, token string, form models.UserForm) (*models.User, error) {
	args := m.Called(ctx, token, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, token, id string, form models.UserForm) (*models.User, error) {
	args := m.Called(ctx, token, id, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, token, id string) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

// MockAuthService is a mock implementation of AuthServiceInterface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) CustomerLogin(ctx context.Context, form models.LoginForm) (*models.AuthResponse, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockAuthService) CustomerSignup(ctx context.Context, form models.SignupForm) (*models.AuthResponse, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

// MockContactService is a mock implementation of ContactServiceInterface
type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) Submit(ctx context.Context, form models.ContactForm) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}

// testEnv wires a Base over a cookie store the way main does
type testEnv struct {
	store sessions.Store
	base  *Base
}

func newTestEnv() *testEnv {
	store := sessions.NewCookieStore([]byte("test-secret"))
	holder := services.NewSessionHolder(store, testSessionName)
	cart := services.NewCartStore(services.NewSessionCartBackend(store, testSessionName))
	return &testEnv{
		store: store,
		base:  NewBase(store, testSessionName, holder, cart, nil),
	}
}

// flashes reads the flash messages a response left in its session cookie
func (e *testEnv) flashes(rec *httptest.ResponseRecorder) []string {
	req := followUp(rec, http.MethodGet, "/", nil)
	var out []string
	for _, f := range e.base.popFlashes(httptest.NewRecorder(), req) {
		out = append(out, f.Kind+"|"+f.Message)
	}
	return out
}

// followUp builds a request carrying the cookies rec set. A handler may save
// the session more than once; the last Set-Cookie wins like in a browser.
func followUp(rec *httptest.ResponseRecorder, method, target string, form url.Values) *http.Request {
	req := newFormRequest(method, target, form)
	latest := map[string]*http.Cookie{}
	var order []string
	for _, c := range rec.Result().Cookies() {
		if _, seen := latest[c.Name]; !seen {
			order = append(order, c.Name)
		}
		latest[c.Name] = c
	}
	for _, name := range order {
		req.AddCookie(latest[name])
	}
	return req
}

func newFormRequest(method, target string, form url.Values) *http.Request {
	if form == nil {
		return httptest.NewRequest(method, target, nil)
	}
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func htmx(req *http.Request) *http.Request {
	req.Header.Set("HX-Request", "true")
	return req
}

func withURLParams(req *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func withSession(req *http.Request, s *models.Session) *http.Request {
	return req.WithContext(middleware.SetSessionContext(req.Context(), s))
}

func withBrowser(req *http.Request, sid string) *http.Request {
	return req.WithContext(middleware.SetSessionID(req.Context(), sid))
}

func adminSession() *models.Session {
	return &models.Session{UserID: "admin-1", Name: "Meera Iyer", Email: "meera@example.com", Role: models.UserRoleAdmin, Token: "admin-token"}
}
