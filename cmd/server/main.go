// Package main runs the dashboard data service: artifact loading,
// normalization, the equity simulator, the HTTP API, and the websocket
// reload hub, wired together from a YAML config with flag/env overrides.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"forex-dashboard/internal/artifact"
	"forex-dashboard/internal/config"
	"forex-dashboard/internal/dashboard"
	"forex-dashboard/internal/observability"
	"forex-dashboard/internal/server"
	"forex-dashboard/internal/storage"
	"forex-dashboard/internal/storage/migrations"
	pgstore "forex-dashboard/internal/storage/postgres"
)

func main() {
	logger := log.New(os.Stdout, "[dashboard] ", log.LstdFlags)

	configPath := flag.String("config", os.Getenv("DASHBOARD_CONFIG"), "path to YAML config file")
	listenAddr := flag.String("listen", os.Getenv("DASHBOARD_LISTEN"), "HTTP listen address")
	artifactDir := flag.String("artifact-dir", os.Getenv("ARTIFACT_DIR"), "directory containing the artifact JSON files")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "read artifacts from PostgreSQL instead of the filesystem")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	// Flags and env override the file.
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}
	if *artifactDir != "" {
		cfg.ArtifactDir = *artifactDir
	}
	if *postgresDSN != "" {
		cfg.PostgresDSN = *postgresDSN
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, cleanup, err := buildSource(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("artifact source: %v", err)
	}
	defer cleanup()

	metrics := observability.NewMetrics(cfg.MetricsNamespace)
	hub := server.NewHub(logger, metrics)

	loader := artifact.NewLoader(artifact.LoaderOptions{
		Source:  source,
		Timeout: time.Duration(cfg.ArtifactTimeoutSeconds) * time.Second,
	})

	svc := dashboard.New(dashboard.Options{
		Loader:   loader,
		Metrics:  metrics,
		OnReload: hub.NotifyReload,
	})

	// Initial load. Failure is not fatal: the API serves its fallback
	// payload and an invalidate retries.
	if err := svc.LoadAll(ctx); err != nil {
		logger.Printf("initial load failed, serving fallback: %v", err)
	} else {
		logger.Printf("model loaded, generation %s", svc.Generation())
	}

	srv := server.New(server.Options{
		Service: svc,
		Hub:     hub,
		Metrics: metrics,
		Logger:  logger,
	})

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Printf("listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown: %v", err)
	}
}

// buildSource picks the artifact source: PostgreSQL when a DSN is
// configured, the artifact directory otherwise.
func buildSource(ctx context.Context, cfg config.Config, logger *log.Logger) (artifact.Source, func(), error) {
	if cfg.PostgresDSN != "" {
		pool, err := pgstore.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Println("reading artifacts from PostgreSQL")
		return storage.NewArtifactSource(pgstore.NewArtifactStore(pool)), pool.Close, nil
	}

	logger.Printf("reading artifacts from %s", cfg.ArtifactDir)
	return artifact.NewFilesystemSource(cfg.ArtifactDir), func() {}, nil
}
