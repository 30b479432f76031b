package main

import (
	"encoding/gob"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aurora-market/internal/config"
	"aurora-market/internal/handlers"
	"aurora-market/internal/middleware"
	"aurora-market/internal/models"
	"aurora-market/internal/repositories"
	"aurora-market/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Register types for session serialization
	gob.Register(&models.Cart{})
	gob.Register(models.CartItem{})
	gob.Register([]models.CartItem{})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Create session store
	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30, // 30 days
		HttpOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: http.SameSiteLaxMode,
	}

	// Pick the rate snapshot store: redis when configured, memory otherwise
	var rateStore repositories.RateSnapshotStore
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rateStore = repositories.NewRedisRateStore(client)
		log.Printf("Using redis rate snapshot store at %s", cfg.Redis.Addr)
	} else {
		rateStore = repositories.NewMemoryRateStore()
		log.Println("Using in-memory rate snapshot store")
	}

	// Initialize services
	catalogService := services.NewCatalogService()
	cartService := services.NewCartService()
	rateService := services.NewRateService(
		cfg.Rates.APIURL,
		cfg.Rates.FallbackEURXMR,
		time.Duration(cfg.Rates.FetchTimeoutSec)*time.Second,
		rateStore,
	)
	checkoutService := services.NewCheckoutService(rateService, cartService, cfg.Checkout.Addresses)

	// Start the twice-daily rate refresh schedule
	rateService.Start()
	defer rateService.Stop()

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(catalogService, cartService, sessionStore)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, sessionStore)
	ratesHandler := handlers.NewRatesHandler(rateService)

	// Set up routes
	r := chi.NewRouter()
	r.Use(middleware.ErrorHandlingMiddleware)
	r.Use(middleware.LoggingMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/featured", catalogHandler.FeaturedProducts)
		r.Get("/products/{id}", catalogHandler.GetProduct)

		r.Get("/cart", cartHandler.ViewCart)
		r.Post("/cart/items", cartHandler.AddToCart)
		r.Post("/cart/items/{id}/quantity", cartHandler.ChangeQuantity)
		r.Delete("/cart/items/{id}", cartHandler.RemoveFromCart)

		r.Get("/checkout", checkoutHandler.Checkout)
		r.Post("/checkout/confirm", checkoutHandler.ConfirmOrder)
		r.Get("/notifications", checkoutHandler.Notifications)

		r.Get("/rates/xmr", ratesHandler.GetXMRRate)
	})

	r.NotFound(middleware.NotFoundHandler().ServeHTTP)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Printf("Server starting on http://%s (env: %s)", addr, cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed:", err)
		}
	}()

	// Wait for interrupt, then stop the rate scheduler and the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	rateService.Stop()
	if err := server.Close(); err != nil {
		log.Printf("Server close error: %v", err)
	}
}
