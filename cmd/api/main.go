package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"

	"github.com/cotizaplus/cotiza-backend/api/controllers"
	"github.com/cotizaplus/cotiza-backend/api/routes"
	"github.com/cotizaplus/cotiza-backend/internal/documents"
	"github.com/cotizaplus/cotiza-backend/internal/financingplans"
	"github.com/cotizaplus/cotiza-backend/internal/leads"
	"github.com/cotizaplus/cotiza-backend/internal/quotes"
	"github.com/cotizaplus/cotiza-backend/internal/reports"
	"github.com/cotizaplus/cotiza-backend/pkg/config"
	"github.com/cotizaplus/cotiza-backend/pkg/db"
	"github.com/cotizaplus/cotiza-backend/pkg/logger"
	"github.com/cotizaplus/cotiza-backend/pkg/metrics"
	"github.com/cotizaplus/cotiza-backend/pkg/migrate"
	"github.com/cotizaplus/cotiza-backend/pkg/redis"
	"github.com/cotizaplus/cotiza-backend/pkg/storage/gcs"
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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap gcs", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	docMetrics := metrics.NewDocumentMetrics(registry)

	planService, err := financingplans.NewService(financingplans.ServiceParams{
		Repo: financingplans.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create financing plan service", err)
		os.Exit(1)
	}

	defaultIVA := decimal.NewFromInt(int64(cfg.Pricing.DefaultIVAPercent))
	quoteRepo := quotes.NewRepository(dbClient.DB())
	quoteService, err := quotes.NewService(quotes.ServiceParams{
		Repo:              quoteRepo,
		Plans:             planService,
		DefaultIVAPercent: &defaultIVA,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create quote service", err)
		os.Exit(1)
	}

	assetCache := documents.NewAssetCache(redisClient, nil, cfg.Docs.AssetCacheTTL, cfg.Docs.AssetMaxBytes, logg)
	documentService := documents.NewService(
		quoteService,
		documents.NewRepository(dbClient.DB()),
		gcsClient,
		assetCache,
		cfg.Docs.LogoURL,
		docMetrics,
		logg,
	)

	leadService := leads.NewService(leads.NewRepository(dbClient.DB()), logg)
	reportService := reports.NewService(reportSource{repo: quoteRepo, quotes: quoteService})

	deps := map[string]controllers.Pinger{
		"db":    dbClient,
		"redis": redisClient,
		"gcs":   gcsClient,
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
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, deps, routes.Services{
			Quotes:    quoteService,
			Plans:     planService,
			Leads:     leadService,
			Reports:   reportService,
			Documents: documentService,
		}, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
