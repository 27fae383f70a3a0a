package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"fooddash/internal/auth"
	"fooddash/internal/cache"
	"fooddash/internal/config"
	"fooddash/internal/database"
	"fooddash/internal/logger"
	"fooddash/internal/messaging"
	"fooddash/internal/ratelim"
	"fooddash/internal/services/cart"
	"fooddash/internal/services/catalog"
	"fooddash/internal/services/checkout"
	"fooddash/internal/services/coupon"
	"fooddash/internal/services/customer"
	"fooddash/internal/services/dashboard"
	"fooddash/internal/services/notification"
	"fooddash/internal/services/order"
	"fooddash/internal/web"
)

func main() {
	var (
		mode     = flag.String("mode", "", "Service mode (storefront-service, admin-service, notification-subscriber)")
		port     = flag.Int("port", 0, "HTTP port override")
		prefetch = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	// Optional .env for local development secrets
	godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
	})

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "storefront-service":
		if err := runStorefrontService(ctx, cfg, log, *port); err != nil {
			log.Error("service_failed", "Storefront service failed", requestID, err, nil)
			os.Exit(1)
		}
	case "admin-service":
		if err := runAdminService(ctx, cfg, log, *port); err != nil {
			log.Error("service_failed", "Admin service failed", requestID, err, nil)
			os.Exit(1)
		}
	case "notification-subscriber":
		if err := runNotificationSubscriber(ctx, cfg, log, *prefetch); err != nil {
			log.Error("service_failed", "Notification subscriber failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runStorefrontService runs the public customer-facing API
func runStorefrontService(ctx context.Context, cfg *config.Config, log *logger.Logger, portOverride int) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	sessions, err := cache.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	defer sessions.Close()

	log.Info("redis_connected", "Connected to Redis", requestID, nil)

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)

	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	authService := auth.NewService(db, issuer, log)
	authHandler := auth.NewHandler(authService, log)

	catalogService := catalog.NewService(db, log)
	catalogHandler := catalog.NewHandler(catalogService, log)

	cartStore := cart.NewStore(sessions, log)
	cartHandler := cart.NewHandler(cartStore, catalogService, log)

	couponStore := coupon.NewStore(sessions, log)
	couponHandler := coupon.NewHandler(couponStore, log)

	customerService := customer.NewService(db, log)

	checkoutService := checkout.NewService(db, cartStore, couponStore, customerService, publisher, log)
	checkoutHandler := checkout.NewHandler(checkoutService, log)

	orderService := order.NewService(db, publisher, log)
	orderHandler := order.NewHandler(orderService, customerService, cfg.HTTP.BaseURL, log)

	// Per-IP limits: tight on auth, looser on order placement
	loginLimiter := ratelim.New(1, 5)
	orderLimiter := ratelim.New(2, 10)

	router := httprouter.New()

	router.POST("/auth/signup", loginLimiter.Limit(authHandler.Signup))
	router.POST("/auth/login", loginLimiter.Limit(authHandler.Login))
	router.GET("/auth/me", issuer.Authenticate(authHandler.Me))

	router.GET("/menu", catalogHandler.ListMenu)
	router.GET("/menu/:id", catalogHandler.GetMenuItem)
	router.GET("/categories", catalogHandler.ListCategories)
	router.GET("/promotions", couponHandler.ListPromotions)

	router.GET("/cart", issuer.OptionalAuth(cartHandler.Get))
	router.POST("/cart/items", issuer.OptionalAuth(cartHandler.AddItem))
	router.PATCH("/cart/items/:lineID", issuer.OptionalAuth(cartHandler.UpdateItem))
	router.DELETE("/cart/items/:lineID", issuer.OptionalAuth(cartHandler.RemoveItem))
	router.DELETE("/cart", issuer.OptionalAuth(cartHandler.Clear))

	router.GET("/cart/coupon", issuer.OptionalAuth(couponHandler.GetApplied))
	router.POST("/cart/coupon", issuer.OptionalAuth(couponHandler.Apply))
	router.DELETE("/cart/coupon", issuer.OptionalAuth(couponHandler.Remove))

	router.GET("/checkout/summary", issuer.OptionalAuth(checkoutHandler.GetSummary))
	router.POST("/checkout/orders", orderLimiter.Limit(issuer.Authenticate(checkoutHandler.PlaceOrder)))

	router.GET("/orders/:number/track", orderHandler.Track)
	router.GET("/orders/:number/history", orderHandler.History)
	router.GET("/orders/:number/qr", orderHandler.TrackingQR)
	router.GET("/profile/orders", issuer.Authenticate(orderHandler.MyOrders))

	router.GET("/health", healthHandler("storefront-service", db, sessions))

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Session-ID"},
		AllowCredentials: false,
	})

	port := cfg.HTTP.StorefrontPort
	if portOverride != 0 {
		port = portOverride
	}

	return serveHTTP(ctx, log, "Storefront", port,
		corsMiddleware.Handler(web.WithLogging(log, router)))
}

// runAdminService runs the back-office API
func runAdminService(ctx context.Context, cfg *config.Config, log *logger.Logger, portOverride int) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)

	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	authService := auth.NewService(db, issuer, log)
	authHandler := auth.NewHandler(authService, log)

	catalogService := catalog.NewService(db, log)
	catalogHandler := catalog.NewHandler(catalogService, log)

	customerService := customer.NewService(db, log)
	customerHandler := customer.NewHandler(customerService, log)

	orderService := order.NewService(db, publisher, log)
	orderHandler := order.NewHandler(orderService, customerService, cfg.HTTP.BaseURL, log)

	dashboardService := dashboard.NewService(db, log)
	dashboardHandler := dashboard.NewHandler(dashboardService, log)

	loginLimiter := ratelim.New(1, 5)

	router := httprouter.New()

	router.POST("/auth/login", loginLimiter.Limit(authHandler.Login))
	router.GET("/auth/me", issuer.Authenticate(authHandler.Me))

	router.GET("/admin/dashboard", issuer.RequireAdmin(dashboardHandler.GetOverview))
	router.GET("/admin/reports/revenue", issuer.RequireAdmin(dashboardHandler.GetRevenueReport))

	router.GET("/admin/orders", issuer.RequireAdmin(orderHandler.List))
	router.GET("/admin/orders/:number", issuer.RequireAdmin(orderHandler.Get))
	router.PATCH("/admin/orders/:number/status", issuer.RequireAdmin(orderHandler.UpdateStatus))
	router.PATCH("/admin/orders/:number/payment", issuer.RequireAdmin(orderHandler.UpdatePaymentStatus))
	router.POST("/admin/orders/:number/cancel", issuer.RequireAdmin(orderHandler.Cancel))

	router.GET("/admin/menu", issuer.RequireAdmin(catalogHandler.ListAll))
	router.POST("/admin/menu", issuer.RequireAdmin(catalogHandler.Create))
	router.PUT("/admin/menu/:id", issuer.RequireAdmin(catalogHandler.Update))
	router.PATCH("/admin/menu/:id/availability", issuer.RequireAdmin(catalogHandler.ToggleAvailability))
	router.DELETE("/admin/menu/:id", issuer.RequireAdmin(catalogHandler.Delete))

	router.GET("/admin/customers", issuer.RequireAdmin(customerHandler.List))
	router.GET("/admin/customers/:id", issuer.RequireAdmin(customerHandler.Get))
	router.GET("/admin/stats/customers", issuer.RequireAdmin(customerHandler.Stats))

	router.GET("/admin/promotions", issuer.RequireAdmin(
		func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			web.RespondJSON(w, http.StatusOK, coupon.Catalog())
		}))

	router.GET("/health", healthHandler("admin-service", db, nil))

	port := cfg.HTTP.AdminPort
	if portOverride != 0 {
		port = portOverride
	}

	return serveHTTP(ctx, log, "Admin", port, web.WithLogging(log, router))
}

// runNotificationSubscriber consumes status updates from the fanout exchange
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}

	consumer := messaging.NewConsumer(conn, log, messaging.NotificationsQueue, "notification-subscriber", prefetch)
	subscriber := notification.NewSubscriber(consumer, log)

	return subscriber.Start(ctx)
}

func serveHTTP(ctx context.Context, log *logger.Logger, name string, port int, handler http.Handler) error {
	requestID := logger.GenerateRequestID()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler,
	}

	go func() {
		log.Info("service_started", fmt.Sprintf("%s service started on port %d", name, port), requestID, map[string]interface{}{
			"port": port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

func healthHandler(service string, db *database.DB, sessions *cache.Client) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		healthy := db.Ping(r.Context()) == nil
		if sessions != nil && sessions.Ping(r.Context()) != nil {
			healthy = false
		}

		response := map[string]interface{}{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   service,
			"healthy":   healthy,
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
			response["status"] = "unhealthy"
		}

		web.RespondJSON(w, status, response)
	}
}
