package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bryanwahyu/esg-responder/internal/bootstrap"
	"github.com/bryanwahyu/esg-responder/internal/config"
	"github.com/bryanwahyu/esg-responder/internal/infra/httpserver"
	"github.com/bryanwahyu/esg-responder/internal/middleware"
	"github.com/bryanwahyu/esg-responder/internal/pkg/logger"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// storage backend
	backend, err := bootstrap.OpenBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal("storage init error", "driver", cfg.Storage.Driver, "error", err)
	}
	defer backend.Close()

	// init services
	svc, err := bootstrap.Build(ctx, cfg, backend, log)
	if err != nil {
		log.Fatal("service init error", "error", err)
	}

	health := map[string]middleware.HealthChecker{
		"storage": middleware.PingChecker{Target: backend},
	}
	if svc.Objects != nil {
		health["objects"] = middleware.PingChecker{Target: svc.Objects}
	}

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateRefill)
	defer limiter.Stop()

	// init router
	mux := chi.NewRouter()
	mux.Mount("/", httpserver.NewRouter(svc, httpserver.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		Limiter:     limiter,
		Health:      health,
		Log:         log.With("component", "http"),
	}))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Info("server listening", "addr", addr, "storage", cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", "error", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("shutting down server")

	ctx2, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Error("shutdown error", "error", err)
	}
}
