// cmd/sheetsmith/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"go.uber.org/zap"

	"sheetsmith/internal/common/config"
	apihttp "sheetsmith/internal/common/http"
	"sheetsmith/internal/common/logger"
	"sheetsmith/internal/common/observability"
	"sheetsmith/pkg/registry"

	bix "sheetsmith/internal/workers/spreadsheet/build-invoice-xlsx"
	cht "sheetsmith/internal/workers/spreadsheet/convert-html-table"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Options{Level: "info", Format: "console"})
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
		Fields: map[string]interface{}{
			"service": cfg.App.Name,
			"version": cfg.App.Version,
		},
	})
	defer zapLog.Sync()

	log := logger.Wrap(zapLog)

	zapLog.Info("Starting sheetsmith...", zap.String("environment", cfg.App.Environment))

	obs := observability.NewNoop()
	if cfg.Metrics.Enabled {
		obs, err = observability.New(cfg.App.Name)
		if err != nil {
			zapLog.Warn("otel metrics disabled", zap.Error(err))
		}
	}
	if cfg.Tracing.Enabled {
		tp, err := observability.NewTracerProvider(observability.TracingOptions{
			ServiceName: cfg.App.Name,
			Version:     cfg.App.Version,
			Exporter:    cfg.Tracing.Exporter,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if err != nil {
			zapLog.Warn("tracing disabled", zap.Error(err))
		} else {
			obs.EnableTracing(tp)
			zapLog.Info("tracing enabled", zap.String("exporter", cfg.Tracing.Exporter))
		}
	}
	defer obs.Shutdown()

	reg, err := buildRegistry(cfg, log, obs)
	if err != nil {
		zapLog.Fatal("endpoint registration failed", zap.Error(err))
	}

	ready := &atomic.Bool{}
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}

	router := apihttp.NewRouter(apihttp.RouterOptions{
		Logger:       log,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		MetricsPath:  metricsPath,
		Ready:        ready,
	})
	router.Get("/registry", func(w http.ResponseWriter, _ *http.Request) {
		apihttp.WriteJSON(w, http.StatusOK, reg.Catalog())
	})
	reg.Mount(router)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	errCh := make(chan error, 1)
	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	ready.Store(true)

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zapLog.Info("Shutdown signal received, draining requests...", zap.String("signal", sig.String()))
	case err := <-errCh:
		zapLog.Error("HTTP server failed", zap.Error(err))
	}

	ready.Store(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("sheetsmith stopped gracefully")
}

// buildRegistry creates every renderer and registers its endpoint.
func buildRegistry(cfg *config.Config, log logger.Logger, obs *observability.Observability) (*registry.Registry, error) {
	reg := registry.New(cfg.App.Name, cfg.App.Version)

	invoice := bix.NewHandler(bix.LoadConfig(cfg), log, obs)
	if err := reg.Register(invoice.Endpoint()); err != nil {
		return nil, err
	}

	html := cht.NewHandler(cht.LoadConfig(cfg), log, obs)
	if err := reg.Register(html.Endpoint()); err != nil {
		return nil, err
	}

	for _, ep := range reg.Endpoints() {
		log.Info("endpoint registered", map[string]interface{}{
			"taskType": ep.TaskType,
			"method":   ep.Method,
			"path":     ep.Path,
			"enabled":  ep.Enabled,
		})
	}
	return reg, nil
}
