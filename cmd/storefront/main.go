package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/mw"
	"storefront/internal/service"
	"storefront/internal/store"
)

func main() {
	cfg := config.New()

	db, err := database.NewDB(cfg.DatabaseURI)
	if err != nil {
		slog.Error("failed to connect to DB", "error", err)
		os.Exit(1)
	}
	defer database.CloseDB(context.Background(), db)

	if err := database.InitSchema(db); err != nil {
		slog.Error("failed to init DB schema", "error", err)
		os.Exit(1)
	}

	// Stores
	users := store.NewUserStore(db)
	products := store.NewProductStore(db)
	orders := store.NewOrderStore(db)

	// Services
	authSvc := service.NewAuthService(users, cfg.JWTSecret)
	catalogSvc := service.NewCatalogService(products)
	orderSvc := service.NewOrderService(orders, users, products)

	// Router
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Every request passes the gate; resolution failures fall through as
	// anonymous rather than rejecting.
	r.Use(mw.Auth(authSvc))

	r.Post("/api/auth/signup", handler.SignUpHandler(authSvc))
	r.Post("/api/auth/signin", handler.SignInHandler(authSvc))
	r.Post("/api/auth/signout", handler.SignOutHandler())

	r.Get("/api/products", handler.ListProductsHandler(catalogSvc))
	r.Get("/api/products/{id}", handler.GetProductHandler(catalogSvc))
	r.Post("/api/products", handler.CreateProductHandler(catalogSvc))
	r.Put("/api/products/{id}", handler.UpdateProductHandler(catalogSvc))
	r.Delete("/api/products/{id}", handler.DeleteProductHandler(catalogSvc))

	r.Get("/api/orders", handler.ListOrdersHandler(orderSvc))
	r.Get("/api/orders/{id}", handler.GetOrderHandler(orderSvc))
	r.Get("/api/users/{id}/orders", handler.UserOrdersHandler(orderSvc))
	r.Post("/api/orders", handler.CreateOrderHandler(orderSvc))
	r.Patch("/api/orders/{id}/status", handler.UpdateOrderStatusHandler(orderSvc))
	r.Delete("/api/orders/{id}", handler.DeleteOrderHandler(orderSvc))

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-quit
	slog.Info("shutting down...")

	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
