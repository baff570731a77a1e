package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cataloghandler "takeon/internal/catalog/handler"
	catalogservice "takeon/internal/catalog/service"
	catalogstore "takeon/internal/catalog/store"
	departmenthandler "takeon/internal/department/handler"
	departmentservice "takeon/internal/department/service"
	departmentstore "takeon/internal/department/store"
	"takeon/internal/platform/config"
	"takeon/internal/platform/httpserver"
	"takeon/internal/platform/logger"
	"takeon/internal/platform/middleware"
	"takeon/internal/platform/postgres"
	platformredis "takeon/internal/platform/redis"
	progresshandler "takeon/internal/progress/handler"
	progressmetrics "takeon/internal/progress/metrics"
	progressservice "takeon/internal/progress/service"
	progressstore "takeon/internal/progress/store"
	"takeon/internal/report"
	reportmetrics "takeon/internal/report/metrics"
	schemehandler "takeon/internal/scheme/handler"
	schememetrics "takeon/internal/scheme/metrics"
	schemeservice "takeon/internal/scheme/service"
	schemestore "takeon/internal/scheme/store"
	"takeon/pkg/platform/audit"
	auditkafka "takeon/pkg/platform/audit/kafka"
	"takeon/pkg/platform/httputil"
)

// main wires storage, services, and the HTTP router, and keeps the server
// lifecycle small. Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx := context.Background()

	// Storage. Postgres when configured, in-memory otherwise so the service
	// can run locally with zero infrastructure.
	var (
		catalogStore    catalogservice.Store
		catalogReader   progressservice.CatalogReader
		schemeStore     schemeservice.Store
		progressStore   progressservice.Store
		departmentStore departmentservice.Store
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Error("failed to apply schema", "error", err)
			os.Exit(1)
		}
		pgCatalog := catalogstore.NewPostgres(db)
		catalogStore = pgCatalog
		catalogReader = pgCatalog
		schemeStore = schemestore.NewPostgres(db)
		progressStore = progressstore.NewPostgres(db)
		departmentStore = departmentstore.NewPostgres(db)
		log.Info("using postgres storage")
	} else {
		memCatalog := catalogstore.NewInMemory()
		catalogStore = memCatalog
		catalogReader = memCatalog
		schemeStore = schemestore.NewInMemory()
		progressStore = progressstore.NewInMemory()
		departmentStore = departmentstore.NewInMemory()
		log.Warn("DATABASE_URL not set, using in-memory storage")
	}

	cache, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if cache != nil {
		defer cache.Close()
	}

	var publisher audit.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := auditkafka.New(cfg.KafkaBrokers)
		if err != nil {
			log.Error("failed to connect to kafka", "error", err)
			os.Exit(1)
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}
	emitter := audit.NewEmitter(publisher, log)

	// Services.
	catalogSvc := catalogservice.New(catalogStore,
		catalogservice.WithLogger(log),
		catalogservice.WithAuditEmitter(emitter),
	)
	progressSvc, err := progressservice.New(progressStore, catalogReader,
		progressservice.WithLogger(log),
		progressservice.WithMetrics(progressmetrics.New()),
		progressservice.WithAuditEmitter(emitter),
	)
	if err != nil {
		log.Error("failed to build progress service", "error", err)
		os.Exit(1)
	}
	schemeSvc, err := schemeservice.New(schemeStore, catalogReader, progressSvc,
		schemeservice.WithLogger(log),
		schemeservice.WithMetrics(schememetrics.New()),
		schemeservice.WithAuditEmitter(emitter),
	)
	if err != nil {
		log.Error("failed to build scheme service", "error", err)
		os.Exit(1)
	}
	reportOpts := []report.Option{
		report.WithLogger(log),
		report.WithMetrics(reportmetrics.New()),
		report.WithAuditEmitter(emitter),
	}
	if cache != nil {
		reportOpts = append(reportOpts, report.WithCache(cache))
	}
	reportSvc, err := report.NewService(schemeSvc, progressSvc, reportOpts...)
	if err != nil {
		log.Error("failed to build report service", "error", err)
		os.Exit(1)
	}
	departmentSvc := departmentservice.New(departmentStore,
		departmentservice.WithLogger(log),
		departmentservice.WithAuditEmitter(emitter),
	)

	// Router.
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.RequestMetadata)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	catalogHandler := cataloghandler.New(catalogSvc, log)
	schemeHandler := schemehandler.New(schemeSvc, log)
	progressHandler := progresshandler.New(progressSvc, log)
	reportHandler := report.NewHandler(reportSvc, log)
	departmentHandler := departmenthandler.New(departmentSvc, log)

	validator := middleware.NewHMACValidator(cfg.JWTSigningKey)
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, log))
		catalogHandler.Register(r)
		schemeHandler.Register(r)
		progressHandler.Register(r)
		reportHandler.Register(r)
		departmentHandler.Register(r)
	})

	router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdminToken(cfg.AdminToken, log))
		catalogHandler.RegisterAdmin(r)
		departmentHandler.RegisterAdmin(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting takeon server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
