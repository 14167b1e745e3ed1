package main

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/hkdf"

	"soap-storefront/internal/config"
	"soap-storefront/internal/handlers"
	"soap-storefront/internal/logging"
	"soap-storefront/internal/middleware"
	"soap-storefront/internal/server"
	"soap-storefront/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log := logging.New(cfg.Log.Level)
	logrus.SetFormatter(log.Formatter)
	logrus.SetLevel(log.Level)

	shutdownTracing, err := server.InitTracing(cfg.Tracing, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize tracing")
	}

	sessionStore, err := newSessionStore(cfg.Session)
	if err != nil {
		log.WithError(err).Fatal("Failed to create session store")
	}

	cartBackend, closeCart, err := newCartBackend(cfg, sessionStore, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize cart storage")
	}
	defer closeCart()

	// Initialize API-backed services
	api := services.NewAPIClient(cfg.API, log)
	productService := services.NewProductService(api)
	orderService := services.NewOrderService(api)
	reviewService := services.NewReviewService(api)
	userService := services.NewUserService(api)
	announcementService := services.NewAnnouncementService(api)
	authService := services.NewAuthService(api)
	contactService := services.NewContactService(api)
	dashboardService := services.NewDashboardService(api)

	// Per-browser state
	sessionHolder := services.NewSessionHolder(sessionStore, cfg.Session.Name)
	cartStore := services.NewCartStore(cartBackend)
	generations := services.NewGenerations()
	helpfulVotes := services.NewHelpfulVoteGuard()
	imagePreparer := services.NewImagePreparer(cfg.Upload)

	// Initialize handlers
	base := handlers.NewBase(sessionStore, cfg.Session.Name, sessionHolder, cartStore, announcementService)
	h := server.Handlers{
		Base:     base,
		Public:   handlers.NewPublicHandler(base, productService, generations),
		Product:  handlers.NewProductHandler(base, productService, reviewService, helpfulVotes),
		Cart:     handlers.NewCartHandler(base, productService),
		Checkout: handlers.NewCheckoutHandler(base, orderService),
		Auth:     handlers.NewAuthHandler(base, authService),
		Contact:  handlers.NewContactHandler(base, contactService),
		Admin: handlers.NewAdminHandler(base, handlers.AdminServices{
			Products:      productService,
			Orders:        orderService,
			Users:         userService,
			Announcements: announcementService,
			Reviews:       reviewService,
			Dashboard:     dashboardService,
		}, imagePreparer, generations),
	}

	rateLimiter := middleware.NewLoginRateLimiter(10, 15*time.Minute)
	defer rateLimiter.Stop()

	router := server.NewRouter(h, server.Options{
		Store:       sessionStore,
		SessionName: cfg.Session.Name,
		Sessions:    sessionHolder,
		RateLimiter: rateLimiter,
		Log:         log,
		ServiceName: cfg.Tracing.ServiceName,
		TrustProxy:  cfg.Server.TrustProxy,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go generations.Sweep(ctx, time.Minute, 10*time.Minute)
	go helpfulVotes.Sweep(ctx, time.Hour, 24*time.Hour)

	go func() {
		log.WithFields(logrus.Fields{
			"addr": srv.Addr,
			"env":  cfg.Server.Env,
			"api":  cfg.API.BaseURL,
			"cart": cfg.Cart.Backend,
		}).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("Graceful shutdown failed")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.WithError(err).Warn("Failed to flush traces")
	}
}

// newSessionStore derives separate signing and encryption keys from the
// configured secret
func newSessionStore(cfg config.SessionConfig) (*sessions.CookieStore, error) {
	kdf := hkdf.New(sha256.New, []byte(cfg.Secret), nil, []byte("soap-storefront session"))
	hashKey := make([]byte, 64)
	blockKey := make([]byte, 32)
	if _, err := io.ReadFull(kdf, hashKey); err != nil {
		return nil, fmt.Errorf("failed to derive hash key: %w", err)
	}
	if _, err := io.ReadFull(kdf, blockKey); err != nil {
		return nil, fmt.Errorf("failed to derive block key: %w", err)
	}

	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store, nil
}

// newCartBackend picks the cookie or Redis cart storage. The returned func
// releases the Redis client.
func newCartBackend(cfg *config.Config, store sessions.Store, log logrus.FieldLogger) (services.CartBackend, func(), error) {
	if cfg.Cart.Backend != config.CartBackendRedis {
		log.Info("Cart stored in the session cookie")
		return services.NewSessionCartBackend(store, cfg.Session.Name), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("redis unreachable: %w", err)
	}

	log.WithField("ttl", cfg.Cart.TTL.String()).Info("Cart stored in Redis")
	closeFn := func() {
		if err := client.Close(); err != nil {
			log.WithError(err).Warn("Failed to close redis client")
		}
	}
	return services.NewRedisCartBackend(client, store, cfg.Session.Name, cfg.Cart.TTL), closeFn, nil
}
