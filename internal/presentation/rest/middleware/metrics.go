package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	otelinfra "zuora-checkout/internal/infrastructure/observability/otel"
)

// MetricsMiddleware メトリクス記録ミドルウェア
func MetricsMiddleware(metrics *otelinfra.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			ctx := c.Request().Context()
			method := c.Request().Method

			err := next(c)

			// 静的ファイルはルートのパターンで集計する
			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}
			metrics.RecordRequest(ctx, method, route)
			metrics.RecordResponseTime(ctx, method, route, time.Since(start).Seconds())

			// ErrorHandlerMiddlewareが内側にあるためステータスコードで判定する
			status := c.Response().Status
			if err != nil && status < 400 {
				status = 500
			}
			switch {
			case status >= 500:
				metrics.RecordError(ctx, "server_error")
			case status >= 400:
				metrics.RecordError(ctx, "client_error")
			}

			return err
		}
	}
}
