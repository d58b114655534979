// Package server assembles the HTTP router from the module handlers.
package server

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/georgemunganga/shopstock-backend/internal/config"
	"github.com/georgemunganga/shopstock-backend/internal/database"
	"github.com/georgemunganga/shopstock-backend/internal/httpx"
	"github.com/georgemunganga/shopstock-backend/internal/logger"
	"github.com/georgemunganga/shopstock-backend/internal/metrics"
	"github.com/georgemunganga/shopstock-backend/internal/modules/auth"
	"github.com/georgemunganga/shopstock-backend/internal/modules/billing"
	"github.com/georgemunganga/shopstock-backend/internal/modules/catalog"
	"github.com/georgemunganga/shopstock-backend/internal/modules/inventory"
	"github.com/georgemunganga/shopstock-backend/internal/modules/order"
	"github.com/georgemunganga/shopstock-backend/internal/modules/party"
	"github.com/georgemunganga/shopstock-backend/internal/modules/shop"
	"github.com/georgemunganga/shopstock-backend/internal/modules/user"
)

// NewRouter wires every module over the given database.
func NewRouter(db *sql.DB, cfg *config.Config) http.Handler {
	tx := database.NewTransactor(db)

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo, tx)
	authService := auth.NewService(userRepo, cfg.JWT)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logger.Middleware)
	router.Use(middleware.Recoverer)
	router.Use(metrics.Middleware)
	router.Use(auth.Authenticate(authService))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Get("/readyz", readiness(db))
	router.Handle("/metrics", metrics.Handler())

	auth.NewHandler(authService).RegisterRoutes(router)
	user.NewHandler(userService).RegisterRoutes(router)
	shop.NewHandler(shop.NewService(shop.NewPostgresRepository(db))).RegisterRoutes(router)

	// ── Catalog & Inventory ─────────────────────────────────
	productRepo := catalog.NewPostgresRepository(db)
	catalog.NewHandler(catalog.NewService(productRepo, tx)).RegisterRoutes(router)

	inventoryService := inventory.NewService(
		inventory.NewWarehousePostgresRepository(db),
		inventory.NewStockPostgresRepository(db),
		productRepo,
		tx,
	)
	inventory.NewHandler(inventoryService).RegisterRoutes(router)

	// ── Customers, Vendors & Transactions ───────────────────
	partyService := party.NewService(party.NewPostgresRepository(db))
	party.NewHandler(partyService).RegisterRoutes(router)

	orderRepo := order.NewPostgresRepository(db)
	billingService := billing.NewService(billing.NewPostgresRepository(db), orderRepo, tx)
	billing.NewHandler(billingService).RegisterRoutes(router)

	orderService := order.NewService(orderRepo, partyService, productRepo, inventoryService, billingService, tx)
	order.NewHandler(orderService).RegisterRoutes(router)

	return router
}

// Pinger is the part of *sql.DB the readiness probe needs.
type Pinger interface {
	PingContext(ctx context.Context) error
}

func readiness(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			logger.FromContext(r.Context()).Warn("readiness check failed", zap.Error(err))
			httpx.JSONError(w, http.StatusServiceUnavailable, "database unavailable", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
