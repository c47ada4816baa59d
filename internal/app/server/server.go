package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"salon/internal/domain/auth"
	"salon/internal/domain/billing"
	"salon/internal/domain/booking"
	"salon/internal/domain/core"
	"salon/internal/domain/inventory"
	"salon/internal/domain/leave"
	"salon/internal/domain/lending"
	"salon/internal/domain/notifications"
	"salon/internal/domain/schedule"
	"salon/internal/platform/config"
	"salon/internal/platform/db"
	authhandler "salon/internal/transport/http/handlers/auth"
	billinghandler "salon/internal/transport/http/handlers/billing"
	bookinghandler "salon/internal/transport/http/handlers/booking"
	corehandler "salon/internal/transport/http/handlers/core"
	inventoryhandler "salon/internal/transport/http/handlers/inventory"
	leavehandler "salon/internal/transport/http/handlers/leave"
	lendinghandler "salon/internal/transport/http/handlers/lending"
	notificationshandler "salon/internal/transport/http/handlers/notifications"
	schedulehandler "salon/internal/transport/http/handlers/schedule"
	"salon/internal/transport/http/middleware"
)

// New assembles the full router against an existing pool. Integration tests
// use it to serve the API without going through Run.
func New(cfg config.Config, pool *pgxpool.Pool) http.Handler {
	authStore := auth.NewStore(pool)
	notifySvc := notifications.New(notifications.NewStore(pool))

	scheduleSvc := schedule.NewService(schedule.NewStore(pool))
	leaveSvc := leave.NewService(leave.NewStore(pool), notifySvc)
	lendingSvc := lending.NewService(lending.NewStore(pool), notifySvc)
	bookingSvc := booking.NewService(booking.NewStore(pool), scheduleSvc, notifySvc)
	billingSvc := billing.NewService(billing.NewStore(pool), cfg.ReceiptPrefix)
	inventorySvc := inventory.NewService(inventory.NewStore(pool), notifySvc)
	coreStore := core.NewStore(pool)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authStore, cfg.JWTSecret).RegisterRoutes(r)
		corehandler.NewHandler(coreStore, authStore).RegisterRoutes(r)
		schedulehandler.NewHandler(scheduleSvc, authStore).RegisterRoutes(r)
		leavehandler.NewHandler(leaveSvc, authStore).RegisterRoutes(r)
		lendinghandler.NewHandler(lendingSvc, authStore).RegisterRoutes(r)
		bookinghandler.NewHandler(bookingSvc, authStore).RegisterRoutes(r)
		billinghandler.NewHandler(billingSvc, authStore).RegisterRoutes(r)
		inventoryhandler.NewHandler(inventorySvc, authStore).RegisterRoutes(r)
		notificationshandler.NewHandler(notifySvc, authStore).RegisterRoutes(r)
	})

	return router
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	router := New(cfg, pool)

	log.Printf("salon server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
