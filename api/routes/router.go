package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hanifwidodo/merchorder-backend/api/controllers"
	"github.com/hanifwidodo/merchorder-backend/api/middleware"
	"github.com/hanifwidodo/merchorder-backend/internal/adminfeed"
	"github.com/hanifwidodo/merchorder-backend/internal/catalog"
	"github.com/hanifwidodo/merchorder-backend/internal/orders"
	"github.com/hanifwidodo/merchorder-backend/pkg/auth/session"
	"github.com/hanifwidodo/merchorder-backend/pkg/config"
	"github.com/hanifwidodo/merchorder-backend/pkg/logger"
	"github.com/hanifwidodo/merchorder-backend/pkg/redis"
)

type sessionManager interface {
	session.Checker
	Begin(ctx context.Context) (string, error)
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	manager sessionManager,
	cat *catalog.Catalog,
	ordersSvc orders.Service,
	feed *adminfeed.Feed,
	readiness map[string]controllers.Pinger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Post("/api/v1/session", controllers.SessionStart(manager, cfg.Session, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Session, manager, logg))

		r.Get("/ping", controllers.PrivatePing())
		r.Get("/catalog", controllers.Catalog(cat))

		r.Post("/orders/estimate", controllers.OrdersEstimate(ordersSvc, logg))
		r.With(middleware.SubmitRateLimit(cfg.SubmitLimit, redisClient, logg)).
			Post("/orders", controllers.OrdersSubmit(ordersSvc, logg))

		r.Route("/admin/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrders(feed, logg))
			r.Post("/{id}/request-delete", controllers.AdminOrderRequestDelete(feed, logg))
			r.Post("/{id}/confirm-delete", controllers.AdminOrderConfirmDelete(feed, logg))
			r.Post("/cancel-delete", controllers.AdminOrderCancelDelete(feed, logg))
		})
	})

	return r
}
