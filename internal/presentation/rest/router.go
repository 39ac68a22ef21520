package rest

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	paymentapp "zuora-checkout/internal/application/payment"
	"zuora-checkout/internal/infrastructure/config"
	otelinfra "zuora-checkout/internal/infrastructure/observability/otel"
	"zuora-checkout/internal/presentation/rest/handler"
	restmiddleware "zuora-checkout/internal/presentation/rest/middleware"
)

// Router REST APIルーター
type Router struct {
	echo                  *echo.Echo
	configHandler         *handler.ConfigHandler
	paymentSessionHandler *handler.PaymentSessionHandler
}

// NewRouter 新しいRouterを作成
func NewRouter(
	cfg *config.Config,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
	paymentService *paymentapp.PaymentApplicationService,
) (*Router, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	// エラーはErrorHandlerMiddlewareで処理される
	e.HTTPErrorHandler = func(err error, c echo.Context) {}

	setupMiddleware(e, logger, metrics)

	configHandler := handler.NewConfigHandler(paymentService)
	paymentSessionHandler := handler.NewPaymentSessionHandler(paymentService)

	setupRoutes(e, cfg, configHandler, paymentSessionHandler)

	// Swagger UI / ReDoc統合
	SetupSwagger(e)

	return &Router{
		echo:                  e,
		configHandler:         configHandler,
		paymentSessionHandler: paymentSessionHandler,
	}, nil
}

// setupMiddleware ミドルウェアを設定
func setupMiddleware(e *echo.Echo, logger *otelinfra.Logger, metrics *otelinfra.Metrics) {
	e.Use(middleware.Recover())

	// チェックアウトページと同一オリジンで配信するため、外部オリジンはGET/POSTのみ許可
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	e.Use(middleware.RequestID())
	e.Use(restmiddleware.SecurityHeadersMiddleware())
	e.Use(restmiddleware.TracingMiddleware())
	e.Use(restmiddleware.LoggingMiddleware(logger))
	if metrics != nil {
		e.Use(restmiddleware.MetricsMiddleware(metrics))
	}
	e.Use(restmiddleware.ErrorHandlerMiddleware(logger))
}

// setupRoutes ルーティングを設定
func setupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	configHandler *handler.ConfigHandler,
	paymentSessionHandler *handler.PaymentSessionHandler,
) {
	// 決済フォームが呼び出すエンドポイント（認証不要）
	e.GET("/config", configHandler.GetConfig)
	e.POST("/create-payment-session", paymentSessionHandler.CreatePaymentSession)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, handler.HealthResponse{Status: "ok"})
	})

	// チェックアウトページ（index.html, checkout.js, return.html）
	if cfg.Server.StaticDir != "" {
		e.Static("/", cfg.Server.StaticDir)
	}
}

// Handler http.Handlerとしてのルーター
func (r *Router) Handler() http.Handler {
	return r.echo
}

// Start サーバーを起動
func (r *Router) Start(address string) error {
	return r.echo.Start(address)
}

// Shutdown 処理中のリクエストを待ってサーバーを停止
func (r *Router) Shutdown(ctx context.Context) error {
	return r.echo.Shutdown(ctx)
}
