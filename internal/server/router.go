package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"soap-storefront/internal/handlers"
	"soap-storefront/internal/middleware"
	"soap-storefront/internal/models"
	"soap-storefront/internal/services"
)

// Handlers is everything the router mounts
type Handlers struct {
	Base     *handlers.Base
	Public   *handlers.PublicHandler
	Product  *handlers.ProductHandler
	Cart     *handlers.CartHandler
	Checkout *handlers.CheckoutHandler
	Auth     *handlers.AuthHandler
	Contact  *handlers.ContactHandler
	Admin    *handlers.AdminHandler
}

// Options configures the middleware chain
type Options struct {
	Store       sessions.Store
	SessionName string
	Sessions    *services.SessionHolder
	RateLimiter *middleware.LoginRateLimiter
	Log         logrus.FieldLogger
	ServiceName string
	TrustProxy  bool
}

// NewRouter wires routes and middleware. The result is wrapped in an
// otelhttp handler so every request starts a span.
func NewRouter(h Handlers, opts Options) http.Handler {
	sessionMiddleware := middleware.NewSessionMiddleware(opts.Store, opts.SessionName)
	authMiddleware := middleware.NewAuthMiddleware(opts.Sessions)
	csrfMiddleware := middleware.NewCSRFMiddleware(opts.Store, opts.SessionName)

	r := chi.NewRouter()

	r.Use(chimiddleware.CleanPath)
	if opts.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(sessionMiddleware.EnsureSessionID)
	r.Use(middleware.RequestLogger(opts.Log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(authMiddleware.LoadSession)
	r.Use(csrfMiddleware.EnsureCSRFToken)
	r.Use(csrfMiddleware.CSRFProtection)

	r.NotFound(middleware.NotFoundHandler(http.HandlerFunc(h.Base.NotFound)).ServeHTTP)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler().ServeHTTP)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"soap-storefront"}`))
	})

	// Public routes
	r.Get("/", h.Public.HomePage)
	r.Get("/shop", h.Public.ShopPage)
	r.Post("/announcements/{id}/dismiss", h.Public.DismissAnnouncement)
	r.Get("/contact", h.Contact.ContactPage)
	r.Post("/contact", h.Contact.ContactSubmit)

	// Product detail and reviews
	r.Route("/products/{id}", func(r chi.Router) {
		r.Get("/", h.Product.ProductDetail)
		r.Get("/quantity", h.Product.Quantity)
		r.Get("/reviews", h.Product.Reviews)
		r.Post("/reviews", h.Product.CreateReview)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Post("/reviews/{reviewID}", h.Product.UpdateReview)
			r.Post("/reviews/{reviewID}/delete", h.Product.DeleteReview)
		})
	})
	r.Post("/reviews/{reviewID}/helpful", h.Product.MarkHelpful)

	// Cart belongs to the browser; no sign-in needed
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.Cart.ViewCart)
		r.Post("/add", h.Cart.AddToCart)
		r.Post("/clear", h.Cart.ClearCart)
		r.Post("/{productID}/remove", h.Cart.RemoveItem)
		r.Post("/{productID}/increment", h.Cart.IncrementItem)
		r.Post("/{productID}/decrement", h.Cart.DecrementItem)
		r.Post("/{productID}/quantity", h.Cart.UpdateQuantity)
	})

	r.Get("/checkout", h.Checkout.CheckoutPage)
	r.Post("/checkout", h.Checkout.PlaceOrder)
	r.Get("/track", h.Checkout.TrackOrder)

	// Auth routes
	r.Group(func(r chi.Router) {
		if opts.RateLimiter != nil {
			r.Use(middleware.LoginRateLimit(opts.RateLimiter))
		}
		r.Get("/login", h.Auth.LoginPage)
		r.Post("/login", h.Auth.LoginSubmit)
		r.Get("/signup", h.Auth.SignupPage)
		r.Post("/signup", h.Auth.SignupSubmit)
	})
	r.Post("/logout", h.Auth.Logout)

	// Admin routes
	r.Route("/admin", func(r chi.Router) {
		r.Use(authMiddleware.RequireRole(models.UserRoleAdmin))

		r.Get("/", h.Admin.Dashboard)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Admin.Products)
			r.Get("/new", h.Admin.NewProduct)
			r.Post("/", h.Admin.CreateProduct)
			r.Get("/{id}/edit", h.Admin.EditProduct)
			r.Post("/{id}", h.Admin.UpdateProduct)
			r.Get("/{id}/delete", h.Admin.ConfirmDeleteProduct)
			r.Post("/{id}/delete", h.Admin.DeleteProduct)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.Admin.Orders)
			r.Get("/{number}", h.Admin.Order)
			r.Post("/{number}/status", h.Admin.UpdateOrderStatus)
			r.Get("/{number}/delete", h.Admin.ConfirmDeleteOrder)
			r.Post("/{number}/delete", h.Admin.DeleteOrder)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.Admin.Users)
			r.Get("/new", h.Admin.NewUser)
			r.Post("/", h.Admin.CreateUser)
			r.Get("/{id}/edit", h.Admin.EditUser)
			r.Post("/{id}", h.Admin.UpdateUser)
			r.Get("/{id}/delete", h.Admin.ConfirmDeleteUser)
			r.Post("/{id}/delete", h.Admin.DeleteUser)
		})

		r.Route("/announcements", func(r chi.Router) {
			r.Get("/", h.Admin.Announcements)
			r.Get("/new", h.Admin.NewAnnouncement)
			r.Post("/", h.Admin.CreateAnnouncement)
			r.Get("/{id}/edit", h.Admin.EditAnnouncement)
			r.Post("/{id}", h.Admin.UpdateAnnouncement)
			r.Get("/{id}/delete", h.Admin.ConfirmDeleteAnnouncement)
			r.Post("/{id}/delete", h.Admin.DeleteAnnouncement)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", h.Admin.Reviews)
			r.Post("/{id}/approve", h.Admin.ApproveReview)
			r.Get("/{id}/delete", h.Admin.ConfirmDeleteReview)
			r.Post("/{id}/delete", h.Admin.DeleteReview)
		})
	})

	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = "soap-storefront"
	}
	return otelhttp.NewHandler(r, serviceName)
}
