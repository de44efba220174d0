package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"

	"abarrotes-backend/config"
	"abarrotes-backend/internal/delivery/http/middleware"
	v1 "abarrotes-backend/internal/delivery/http/v1"
	"abarrotes-backend/internal/infrastructure/cache"
	"abarrotes-backend/internal/repository/docstore"
	"abarrotes-backend/internal/usecase"
	"abarrotes-backend/pkg/logger"
	"abarrotes-backend/pkg/storage"
	"abarrotes-backend/pkg/utils"
)

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Initialize Database
	pgxPool, err := docstore.NewPgxPool(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	store := docstore.NewStore(pgxPool)
	if err := store.EnsureSchema(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure document schema")
	}
	log.Info().Msg("Successfully connected to PostgreSQL")

	// Initialize Repositories
	productRepo := docstore.NewProductRepository(store)
	userRepo := docstore.NewUserRepository(store)
	orderRepo := docstore.NewOrderRepository(store)
	cartRepo := docstore.NewCartRepository(store)
	couponRepo := docstore.NewCouponRepository(store)
	settingsRepo := docstore.NewSettingsRepository(store)

	// Initialize Cache (In-Memory)
	// Default expiration 30m, cleanup every 60m
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	// Set up Router
	mux := http.NewServeMux()

	// --- Modules Initialization ---

	// Storage Module (R2)
	r2Storage, err := storage.NewR2Storage(
		context.Background(),
		cfg.R2AccountID,
		cfg.R2AccessKeyID,
		cfg.R2AccessKeySecret,
		cfg.R2BucketName,
		cfg.R2PublicURL,
		cfg.R2UploadTimeout,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize R2 Storage")
	}
	uploadHandler := v1.NewUploadHandler(r2Storage, cfg.MaxUploadSizeMB)

	// Catalog Module
	catalogUC := usecase.NewCatalogUsecase(productRepo, memCache, cfg.CacheCatalogTTL, cfg.PageSize)
	catalogHandler := v1.NewCatalogHandler(catalogUC)
	adminCatalogHandler := v1.NewAdminCatalogHandler(catalogUC)

	// Cart Module
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo, cfg.MaxCartQuantity)
	cartHandler := v1.NewCartHandler(cartUC)

	// Checkout Module
	checkoutUC := usecase.NewCheckoutUsecase(cartRepo, userRepo, orderRepo, couponRepo, settingsRepo, cfg.WhatsAppPhone)
	checkoutHandler := v1.NewCheckoutHandler(checkoutUC)

	// Coupon Module
	couponUC := usecase.NewCouponUsecase(couponRepo, userRepo)
	couponHandler := v1.NewCouponHandler(couponUC)
	adminCouponHandler := v1.NewAdminCouponHandler(couponUC)

	// Orders (Admin)
	adminOrderHandler := v1.NewAdminOrderHandler(orderRepo)

	// Settings
	configHandler := v1.NewConfigHandler(settingsRepo)
	adminConfigHandler := v1.NewAdminConfigHandler(settingsRepo)

	// Admin (Protected)
	adminMiddleware := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(middleware.AdminMiddleware(h))
	}

	// Catalog (Public)
	mux.HandleFunc("GET /api/v1/products", catalogHandler.Browse)
	mux.HandleFunc("GET /api/v1/products/{id}", catalogHandler.GetProduct)

	// Settings (Public)
	mux.HandleFunc("GET /api/v1/config", configHandler.GetSettings)

	// Cart (Protected)
	mux.Handle("GET /api/v1/cart", middleware.AuthMiddleware(http.HandlerFunc(cartHandler.GetCart)))
	mux.Handle("POST /api/v1/cart/items", middleware.AuthMiddleware(http.HandlerFunc(cartHandler.AddItem)))
	mux.Handle("POST /api/v1/cart/bulk", middleware.AuthMiddleware(http.HandlerFunc(cartHandler.AddBulk)))
	mux.Handle("POST /api/v1/cart/combos", middleware.AuthMiddleware(http.HandlerFunc(cartHandler.AddCombo)))
	mux.Handle("PATCH /api/v1/cart/items/{index}", middleware.AuthMiddleware(http.HandlerFunc(cartHandler.UpdateQuantity)))
	mux.Handle("DELETE /api/v1/cart/items/{index}", middleware.AuthMiddleware(http.HandlerFunc(cartHandler.RemoveItem)))

	// Checkout (Protected)
	mux.Handle("POST /api/v1/checkout/quote", middleware.AuthMiddleware(http.HandlerFunc(checkoutHandler.Quote)))
	mux.Handle("POST /api/v1/checkout", middleware.AuthMiddleware(http.HandlerFunc(checkoutHandler.Confirm)))
	mux.Handle("GET /api/v1/orders", middleware.AuthMiddleware(http.HandlerFunc(checkoutHandler.GetMyOrders)))

	// Rewards (Protected)
	mux.Handle("POST /api/v1/coupons/redeem", middleware.AuthMiddleware(http.HandlerFunc(couponHandler.Redeem)))

	// Uploads
	mux.Handle("POST /api/v1/upload", adminMiddleware(uploadHandler.UploadImage))

	// Admin Product Management
	mux.Handle("POST /api/v1/admin/products", adminMiddleware(adminCatalogHandler.CreateProduct))
	mux.Handle("PUT /api/v1/admin/products/{id}", adminMiddleware(adminCatalogHandler.UpdateProduct))
	mux.Handle("DELETE /api/v1/admin/products/{id}", adminMiddleware(adminCatalogHandler.DeleteProduct))

	// Admin Coupons
	mux.Handle("GET /api/v1/admin/coupons", adminMiddleware(adminCouponHandler.ListCoupons))
	mux.Handle("POST /api/v1/admin/coupons", adminMiddleware(adminCouponHandler.CreateCoupon))
	mux.Handle("DELETE /api/v1/admin/coupons/{id}", adminMiddleware(adminCouponHandler.DeleteCoupon))
	mux.Handle("POST /api/v1/admin/coupons/{id}/grant", adminMiddleware(adminCouponHandler.GrantCoupon))

	// Admin Orders
	mux.Handle("GET /api/v1/admin/orders", adminMiddleware(adminOrderHandler.ListOrders))
	mux.Handle("GET /api/v1/admin/orders/{id}", adminMiddleware(adminOrderHandler.GetOrder))
	mux.Handle("PATCH /api/v1/admin/orders/{id}/status", adminMiddleware(adminOrderHandler.UpdateStatus))

	// Admin Settings
	mux.Handle("PUT /api/v1/admin/config", adminMiddleware(adminConfigHandler.UpdateSettings))

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok", "db": "connected"}`))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Support root health check for Load Balancers

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Initialize Rate Limiter with lifecycle management
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		middleware.RateLimit(cfg.RateLimitPerSecond),
		cfg.RateLimitBurst,
		time.Minute,   // cleanup period
		3*time.Minute, // client TTL
	)

	// Apply CORS (with config injection), Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart("abarrotes-backend", "1.0.0", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	pgxPool.Close()
	logger.ServiceStop("abarrotes-backend")
}
