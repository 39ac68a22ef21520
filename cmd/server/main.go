package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	paymentapp "zuora-checkout/internal/application/payment"
	"zuora-checkout/internal/infrastructure/config"
	otelinfra "zuora-checkout/internal/infrastructure/observability/otel"
	"zuora-checkout/internal/infrastructure/zuora"
	"zuora-checkout/internal/presentation/rest"
)

func main() {
	// 設定の読み込み（必須項目が欠けている場合は起動しない）
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// OpenTelemetryの初期化
	otelShutdown, err := otelinfra.Setup(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown OpenTelemetry: %v", err)
		}
	}()

	// ロガーとメトリクスの初期化
	logger := otelinfra.NewLogger(otelinfra.Tracer("zuora-checkout"))
	defer func() { _ = logger.Sync() }()
	metrics, err := otelinfra.NewMetrics("zuora-checkout")
	if err != nil {
		log.Fatalf("Failed to create metrics: %v", err)
	}

	// Zuoraクライアントの初期化
	gateway, err := zuora.NewClient(&cfg.Zuora, logger, metrics)
	if err != nil {
		log.Fatalf("Failed to create Zuora client: %v", err)
	}

	paymentAppService := paymentapp.NewPaymentApplicationService(
		gateway,
		cfg.Checkout,
		cfg.PaymentSession,
		logger,
		metrics,
	)

	router, err := rest.NewRouter(cfg, logger, metrics, paymentAppService)
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	address := cfg.Server.Address()
	go func() {
		logger.Info(context.Background(), "Checkout server starting", map[string]interface{}{
			"address":     address,
			"zuora_url":   gateway.BaseURL(),
			"static_dir":  cfg.Server.StaticDir,
			"environment": cfg.Environment,
		})
		if err := router.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Checkout server error: %v", err)
		}
	}()

	<-quit
	logger.Info(context.Background(), "Shutting down checkout server", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := router.Shutdown(shutdownCtx); err != nil {
		logger.Error(context.Background(), "Error shutting down checkout server", err, nil)
	}

	logger.Info(context.Background(), "Checkout server stopped", nil)
}
