package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/go-shorts-platform/internal/auth"
	"github.com/pribylovaa/go-shorts-platform/internal/cache"
	"github.com/pribylovaa/go-shorts-platform/internal/config"
	httpapi "github.com/pribylovaa/go-shorts-platform/internal/http"
	"github.com/pribylovaa/go-shorts-platform/internal/http/handlers"
	"github.com/pribylovaa/go-shorts-platform/internal/metrics"
	"github.com/pribylovaa/go-shorts-platform/internal/service"
	"github.com/pribylovaa/go-shorts-platform/internal/storage/minio"
	"github.com/pribylovaa/go-shorts-platform/internal/storage/mongo"
	"github.com/pribylovaa/go-shorts-platform/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting shorts-service", "env", cfg.Env)

	if err := run(cfg, log); err != nil {
		log.Error("service_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("service_stopped")
}

func run(cfg *config.Config, log *slog.Logger) error {
	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	defer dbCancel()

	mongoStore, err := mongo.New(dbCtx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = mongoStore.Close(context.Background()) }()
	log.Info("mongo_connected")

	pgStore, err := postgres.New(dbCtx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pgStore.Close()
	log.Info("postgres_connected")

	objects, err := minio.New(dbCtx, cfg)
	if err != nil {
		return err
	}
	log.Info("s3_connected", slog.String("bucket", cfg.S3.Bucket))

	viewCache := cache.New(rootCtx, cfg, log)
	defer func() { _ = viewCache.Close() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	tokens := auth.NewManager(cfg.Auth)

	svc := service.New(service.Deps{
		Comments: mongoStore.Comments,
		Videos:   mongoStore.Videos,
		Users:    pgStore,
		Objects:  objects,
		Cache:    viewCache,
		Tokens:   tokens,
		Metrics:  m,
	}, *cfg)
	log.Info("service_initialized")

	if cfg.Reconciler.Enabled {
		go func() {
			if err := svc.StartReconciler(rootCtx); err != nil {
				log.Error("reconciler_failed", slog.String("err", err.Error()))
			}
		}()
	}

	// Служебный HTTP: liveness/readiness/metrics.
	var ready atomic.Bool

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if !ready.Load() {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := mongoStore.Ping(ctx); err != nil {
			http.Error(w, "mongo unavailable", http.StatusServiceUnavailable)
			return
		}
		if err := pgStore.Ping(ctx); err != nil {
			http.Error(w, "postgres unavailable", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	opsSrv := &http.Server{
		Addr:              cfg.Metrics.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	apiSrv := &http.Server{
		Addr: cfg.HTTP.Addr(),
		Handler: httpapi.NewRouter(svc, httpapi.Options{
			Logger:         log,
			Timeout:        cfg.Timeouts.Service,
			Verifier:       tokens,
			Metrics:        m,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			RateLimit:      cfg.RateLimit.Requests,
			RateWindow:     cfg.RateLimit.Window,
			Handlers: handlers.Options{
				MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
				MaxThumbnailBytes: cfg.Upload.MaxThumbnailBytes,
			},
		}),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	serveErrCh := make(chan error, 2)
	serve := func(name string, srv *http.Server) {
		log.Info(name+"_listen_start", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
	}
	go serve("ops", opsSrv)
	go serve("http", apiSrv)

	ready.Store(true)

	var serveErr error
	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case serveErr = <-serveErrCh:
		log.Error("http_serve_failed", slog.String("err", serveErr.Error()))
	}

	ready.Store(false)
	rootCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Timeouts.Shutdown)
	defer shutdownCancel()

	if err := apiSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_force_stop", slog.String("err", err.Error()))
		_ = apiSrv.Close()
	}
	_ = opsSrv.Shutdown(shutdownCtx)

	return serveErr
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
