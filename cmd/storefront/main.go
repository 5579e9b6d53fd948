package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shopvue/storefront/api/routes"
	"github.com/shopvue/storefront/internal/account"
	"github.com/shopvue/storefront/internal/addresses"
	"github.com/shopvue/storefront/internal/auth"
	"github.com/shopvue/storefront/internal/cart"
	"github.com/shopvue/storefront/internal/catalog"
	"github.com/shopvue/storefront/internal/checkout"
	"github.com/shopvue/storefront/internal/orders"
	"github.com/shopvue/storefront/pkg/commerce"
	"github.com/shopvue/storefront/pkg/config"
	"github.com/shopvue/storefront/pkg/logger"
	"github.com/shopvue/storefront/pkg/metrics"
	"github.com/shopvue/storefront/pkg/redis"
	"github.com/shopvue/storefront/pkg/session"
	"github.com/shopvue/storefront/pkg/store"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	storeClient, err := store.New(context.Background(), cfg.Store, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap local store", err)
		os.Exit(1)
	}
	defer func() {
		if err := storeClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing local store", err)
		}
	}()

	var redisClient *redis.Client
	var cachePinger redis.Pinger
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		cachePinger = redisClient
	} else {
		logg.Warn(context.Background(), "redis not configured, catalog caching disabled")
	}

	commerceClient, err := commerce.NewClient(cfg.Commerce)
	if err != nil {
		logg.Error(context.Background(), "failed to create commerce client", err)
		os.Exit(1)
	}

	sessionProvider, err := session.NewProvider(cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session provider", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	cartService, err := cart.NewService(cart.NewRepository(storeClient.DB()), storeClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	reconciler, err := cart.NewReconciler(commerceClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart reconciler", err)
		os.Exit(1)
	}

	var catalogService catalog.Service
	if redisClient != nil {
		catalogService, err = catalog.NewService(commerceClient, redisClient, cfg.Catalog, logg)
	} else {
		catalogService, err = catalog.NewService(commerceClient, nil, cfg.Catalog, logg)
	}
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	addressService, err := addresses.NewService(
		addresses.NewRepository(storeClient.DB()), storeClient, commerceClient, cfg.Checkout, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create address service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.NewRepository(storeClient.DB()), commerceClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(
		cartService, reconciler, commerceClient, addressService, orderService,
		cfg.Checkout, logg, checkoutMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(
		auth.NewRepository(storeClient.DB()), commerceClient, sessionProvider, cfg.Password, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	accountService, err := account.NewService(account.NewRepository(storeClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create account service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront gateway")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg, logg, storeClient, cachePinger, sessionProvider, registry,
			catalogService, cartService, reconciler, checkoutService,
			orderService, addressService, authService, accountService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "storefront gateway stopped unexpectedly", err)
		os.Exit(1)
	}
}
