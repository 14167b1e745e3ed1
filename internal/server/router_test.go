package server

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soap-storefront/internal/config"
	"soap-storefront/internal/handlers"
	"soap-storefront/internal/logging"
	"soap-storefront/internal/middleware"
	"soap-storefront/internal/services"
)

const testSessionName = "soap-router-test"

// newTestSite runs the full router against a fake storefront API
func newTestSite(t *testing.T) *httptest.Server {
	t.Helper()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/api/products":
			w.Write([]byte(`{"success":true,"data":[{"_id":"p1","name":"Neem Soap","price":120,"category":"herbal","stock":5,"isActive":true,"featured":true}]}`))
		case r.URL.Path == "/api/products/p1":
			w.Write([]byte(`{"_id":"p1","name":"Neem Soap","price":120,"category":"herbal","stock":5,"isActive":true}`))
		case r.URL.Path == "/api/announcements":
			w.Write([]byte(`{"success":true,"data":[]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Not found"}`))
		}
	}))
	t.Cleanup(backend.Close)

	log := logging.NewWithOutput("error", io.Discard)
	store := sessions.NewCookieStore([]byte("router-test-secret"))
	store.Options = &sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode}

	api := services.NewAPIClient(config.APIConfig{BaseURL: backend.URL, Timeout: 5 * time.Second}, log)
	products := services.NewProductService(api)
	orders := services.NewOrderService(api)
	reviews := services.NewReviewService(api)
	announcements := services.NewAnnouncementService(api)

	holder := services.NewSessionHolder(store, testSessionName)
	cart := services.NewCartStore(services.NewSessionCartBackend(store, testSessionName))
	generations := services.NewGenerations()

	base := handlers.NewBase(store, testSessionName, holder, cart, announcements)
	h := Handlers{
		Base:     base,
		Public:   handlers.NewPublicHandler(base, products, generations),
		Product:  handlers.NewProductHandler(base, products, reviews, services.NewHelpfulVoteGuard()),
		Cart:     handlers.NewCartHandler(base, products),
		Checkout: handlers.NewCheckoutHandler(base, orders),
		Auth:     handlers.NewAuthHandler(base, services.NewAuthService(api)),
		Contact:  handlers.NewContactHandler(base, services.NewContactService(api)),
		Admin: handlers.NewAdminHandler(base, handlers.AdminServices{
			Products:      products,
			Orders:        orders,
			Users:         services.NewUserService(api),
			Announcements: announcements,
			Reviews:       reviews,
			Dashboard:     services.NewDashboardService(api),
		}, services.NewImagePreparer(config.UploadConfig{MaxImageBytes: 1 << 20}), generations),
	}

	limiter := middleware.NewLoginRateLimiter(3, time.Minute)
	t.Cleanup(limiter.Stop)

	site := httptest.NewServer(NewRouter(h, Options{
		Store:       store,
		SessionName: testSessionName,
		Sessions:    holder,
		RateLimiter: limiter,
		Log:         log,
		ServiceName: "soap-storefront-test",
	}))
	t.Cleanup(site.Close)
	return site
}

func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

var csrfHeader = regexp.MustCompile(`"X-CSRF-Token": "([^"]+)"`)

func get(t *testing.T, client *http.Client, target string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(target)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestRouter_Health(t *testing.T) {
	site := newTestSite(t)

	resp, body := get(t, newBrowser(t), site.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"status":"ok"`)
}

func TestRouter_ShopRendersCatalog(t *testing.T) {
	site := newTestSite(t)

	resp, body := get(t, newBrowser(t), site.URL+"/shop")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Neem Soap")
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestRouter_AddToCartNeedsCSRFToken(t *testing.T) {
	site := newTestSite(t)
	browser := newBrowser(t)

	_, page := get(t, browser, site.URL+"/shop")
	match := csrfHeader.FindStringSubmatch(page)
	require.Len(t, match, 2)

	resp, err := browser.PostForm(site.URL+"/cart/add", url.Values{"product_id": {"p1"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = browser.PostForm(site.URL+"/cart/add", url.Values{"product_id": {"p1"}, "quantity": {"2"}, "csrf_token": {match[1]}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/cart", resp.Header.Get("Location"))

	_, cartPage := get(t, browser, site.URL+"/cart")
	assert.Contains(t, cartPage, "Neem Soap")
	assert.Contains(t, cartPage, `id="cart-count" class="ml-1 rounded-full bg-emerald-700 text-white text-xs px-2">2</span>`)
}

func TestRouter_AdminRequiresSignIn(t *testing.T) {
	site := newTestSite(t)

	resp, _ := get(t, newBrowser(t), site.URL+"/admin/products?page=2")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login?redirect="+url.QueryEscape("/admin/products?page=2"), resp.Header.Get("Location"))
}

func TestRouter_UnknownPage(t *testing.T) {
	site := newTestSite(t)

	resp, body := get(t, newBrowser(t), site.URL+"/definitely/not/here")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.True(t, strings.Contains(body, "<!DOCTYPE html>"))
}
