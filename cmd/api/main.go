package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/autocalc-backend/api/controllers"
	"github.com/angelmondragon/autocalc-backend/api/routes"
	"github.com/angelmondragon/autocalc-backend/internal/jurisdictions"
	"github.com/angelmondragon/autocalc-backend/internal/quotes"
	"github.com/angelmondragon/autocalc-backend/internal/vehicles"
	"github.com/angelmondragon/autocalc-backend/pkg/config"
	"github.com/angelmondragon/autocalc-backend/pkg/instance"
	"github.com/angelmondragon/autocalc-backend/pkg/logger"
	"github.com/angelmondragon/autocalc-backend/pkg/metrics"
	"github.com/angelmondragon/autocalc-backend/pkg/redis"
	"github.com/angelmondragon/autocalc-backend/pkg/vpic"
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

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry, err := jurisdictions.LoadDefault(cfg.Catalogs.DefaultJurisdiction, cfg.Catalogs.Dir)
	if err != nil {
		return err
	}
	logg.Info(logg.WithFields(ctx, map[string]any{
		"jurisdictions": registry.Codes(),
		"default":       registry.DefaultCode(),
	}), "fee catalogs loaded")
	for _, code := range registry.Codes() {
		if catalog, err := registry.Catalog(code); err == nil {
			logg.Debug(logg.WithFields(ctx, map[string]any{
				"jurisdiction": code,
				"rules":        catalog.RuleIDs(),
			}), "fee catalog rules")
		}
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	engineMetrics := metrics.NewEngineMetrics(promRegistry)

	var (
		redisPinger controllers.Pinger
		vinCache    *redis.Client
	)
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		redisPinger = redisClient
		vinCache = redisClient
	} else {
		logg.Warn(ctx, "redis not configured, vin decodes will not be cached")
	}

	vehicleParams := vehicles.ServiceParams{
		Decoder:  vpic.NewClient(vpic.WithBaseURL(cfg.VPIC.BaseURL), vpic.WithTimeout(cfg.VPIC.Timeout)),
		Engines:  registry,
		Logger:   logg,
		Metrics:  engineMetrics,
		CacheTTL: cfg.VINCache.TTL,
	}
	if vinCache != nil {
		vehicleParams.Cache = vinCache
	}
	vehicleService, err := vehicles.NewService(vehicleParams)
	if err != nil {
		return err
	}

	quoteService, err := quotes.NewService(quotes.ServiceParams{
		Engines: registry,
		Weights: vehicleService,
		Logger:  logg,
		Metrics: engineMetrics,
	})
	if err != nil {
		return err
	}

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Dependencies{
			Quotes:        quoteService,
			Vehicles:      vehicleService,
			Jurisdictions: registry,
			RedisPinger:   redisPinger,
			Gatherer:      promRegistry,
		}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
	})
	logg.Info(logCtx, "starting api server")

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		logg.Info(logCtx, "shutting down api server")
		return server.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
