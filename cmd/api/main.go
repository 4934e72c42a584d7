package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hanifwidodo/merchorder-backend/api/controllers"
	"github.com/hanifwidodo/merchorder-backend/api/routes"
	"github.com/hanifwidodo/merchorder-backend/internal/adminfeed"
	"github.com/hanifwidodo/merchorder-backend/internal/catalog"
	"github.com/hanifwidodo/merchorder-backend/internal/orders"
	"github.com/hanifwidodo/merchorder-backend/pkg/auth/session"
	"github.com/hanifwidodo/merchorder-backend/pkg/config"
	"github.com/hanifwidodo/merchorder-backend/pkg/db"
	"github.com/hanifwidodo/merchorder-backend/pkg/logger"
	"github.com/hanifwidodo/merchorder-backend/pkg/metrics"
	"github.com/hanifwidodo/merchorder-backend/pkg/migrate"
	"github.com/hanifwidodo/merchorder-backend/pkg/pubsub"
	"github.com/hanifwidodo/merchorder-backend/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(rootCtx, cfg.DB, logg)
	if err != nil {
		logg.Error(rootCtx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(rootCtx, cfg, logg, dbClient); err != nil {
		logg.Error(rootCtx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(rootCtx, cfg.Redis, logg)
	if err != nil {
		logg.Error(rootCtx, "failed to bootstrap redis", err)
		os.Exit(1)
	}

	pubsubClient, err := pubsub.NewClient(rootCtx, cfg.GCP, cfg.PubSub, logg)
	if err != nil {
		logg.Error(rootCtx, "failed to bootstrap pubsub", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.Session)
	if err != nil {
		logg.Error(rootCtx, "failed to create session manager", err)
		os.Exit(1)
	}

	orderMetrics := metrics.NewOrderMetrics(prometheus.DefaultRegisterer)

	notifier, err := orders.NewPubSubNotifier(pubsubClient.OrdersPublisher())
	if err != nil {
		logg.Error(rootCtx, "failed to create change notifier", err)
		os.Exit(1)
	}

	cat := catalog.Default()
	ordersRepo := orders.NewRepository(dbClient.DB())
	ordersSvc, err := orders.NewService(cat, ordersRepo, dbClient, notifier, orderMetrics, logg, cfg.Orders.CollectionPath)
	if err != nil {
		logg.Error(rootCtx, "failed to create orders service", err)
		os.Exit(1)
	}

	feed, err := adminfeed.NewFeed(ordersSvc, orderMetrics, logg)
	if err != nil {
		logg.Error(rootCtx, "failed to create admin feed", err)
		os.Exit(1)
	}

	watcher, err := orders.NewWatcher(
		pubsubClient.OrdersSubscription(),
		ordersSvc,
		feed.ApplySnapshot,
		cfg.Orders.RefreshEvery,
		logg,
	)
	if err != nil {
		logg.Error(rootCtx, "failed to create orders watcher", err)
		os.Exit(1)
	}

	if err := feed.Subscribe(rootCtx); err != nil {
		logg.Error(rootCtx, "failed to subscribe admin feed", err)
		os.Exit(1)
	}
	go func() {
		if err := watcher.Run(rootCtx); err != nil && rootCtx.Err() == nil {
			logg.Error(rootCtx, "orders watcher stopped", err)
			feed.SetError(rootCtx)
		}
	}()

	readiness := map[string]controllers.Pinger{
		"database": dbClient,
		"redis":    redisClient,
		"pubsub":   pubsubClient,
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(rootCtx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, redisClient, sessionManager, cat, ordersSvc, feed, readiness),
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-rootCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "server shutdown failed", err)
	}

	closeErr := multierr.Combine(
		pubsubClient.Close(),
		redisClient.Close(),
		dbClient.Close(),
	)
	if closeErr != nil {
		logg.Error(ctx, "error closing resources", closeErr)
	}
	logg.Info(ctx, "api server stopped")
}
