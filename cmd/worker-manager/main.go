// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"credit-evaluator/internal/common/camunda"
	"credit-evaluator/internal/common/config"
	"credit-evaluator/internal/common/logger"
	"credit-evaluator/internal/common/observability"

	ec "credit-evaluator/internal/workers/lending/evaluate-credit"
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
	})
	defer func() { _ = zapLog.Sync() }()

	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"app":     cfg.App.Name,
		"version": cfg.App.Version,
	})
	log.Info("Starting worker manager...", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	obs, err := observability.New(observability.Options{
		ServiceName:    cfg.App.Name,
		JaegerEndpoint: cfg.Observability.JaegerEndpoint,
		SampleRatio:    cfg.Observability.SampleRatio,
		Registerer:     prometheus.DefaultRegisterer,
	})
	if err != nil {
		// Metrics and tracing are optional; the worker runs without them.
		log.Warn("observability disabled", map[string]interface{}{"error": err})
		obs = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := camunda.Connect(ctx, camunda.ClientConfigFrom(cfg.Camunda), log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}

	handler, err := ec.NewHandler(ec.ConfigFrom(cfg), obs, log)
	if err != nil {
		zapLog.Fatal("failed to create evaluate-credit handler", zap.Error(err))
	}
	evaluateCredit := camunda.StartWorker(
		client.GetClient(),
		ec.TaskType,
		config.GetWorkerConfig(cfg, ec.TaskType),
		handler.Handle,
		log,
	)

	server := &http.Server{
		Addr:              cfg.Observability.MetricsAddress,
		Handler:           newServeMux(client.HealthCheck),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("Health/Metrics server listening", map[string]interface{}{
			"address": server.Addr,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Health/Metrics server failed", map[string]interface{}{"error": err})
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received, stopping workers...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	evaluateCredit.Stop()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Error stopping health server", map[string]interface{}{"error": err})
	}
	if err := client.Close(); err != nil {
		log.Error("Error closing Zeebe client", map[string]interface{}{"error": err})
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Error("Error flushing telemetry", map[string]interface{}{"error": err})
	}

	log.Info("Worker manager stopped gracefully", nil)
}
