package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"zuora-checkout/internal/domain/billing"
	"zuora-checkout/internal/domain/checkout"
	otelinfra "zuora-checkout/internal/infrastructure/observability/otel"
)

// ErrorResponse エラーレスポンス
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorHandlerMiddleware エラーハンドリングミドルウェア
func ErrorHandlerMiddleware(logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			return handleError(c, err, logger)
		}
	}
}

// domainError ドメインエラーとHTTPレスポンスの対応
type domainError struct {
	target  error
	status  int
	code    string
	logMsg  string
	message string
}

// 上から順に評価される
var domainErrors = []domainError{
	{
		target: checkout.ErrInvalidSessionRequest,
		status: http.StatusBadRequest,
		code:   "invalid_request",
		logMsg: "Invalid payment session request",
	},
	{
		target: billing.ErrInvalidAccount,
		status: http.StatusBadRequest,
		code:   "invalid_account",
		logMsg: "Invalid billing account",
	},
	{
		target:  billing.ErrGatewayUnavailable,
		status:  http.StatusServiceUnavailable,
		code:    "gateway_unavailable",
		logMsg:  "Billing gateway unavailable",
		message: "The billing gateway is temporarily unavailable",
	},
	{
		target: billing.ErrGatewayRejected,
		status: http.StatusBadGateway,
		code:   "gateway_rejected",
		logMsg: "Billing gateway rejected the request",
	},
}

// handleError エラーを処理して適切なHTTPレスポンスを返す
func handleError(c echo.Context, err error, logger *otelinfra.Logger) error {
	ctx := c.Request().Context()

	for _, de := range domainErrors {
		if !errors.Is(err, de.target) {
			continue
		}
		fields := map[string]interface{}{
			"error": err.Error(),
			"path":  c.Request().URL.Path,
		}
		if de.status >= http.StatusInternalServerError {
			logger.Error(ctx, de.logMsg, err, fields)
		} else {
			logger.Warn(ctx, de.logMsg, fields)
		}
		message := de.message
		if message == "" {
			message = err.Error()
		}
		return c.JSON(de.status, ErrorResponse{
			Error:   de.code,
			Message: message,
		})
	}

	// EchoのHTTPエラー
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		logger.Warn(ctx, "HTTP error", map[string]interface{}{
			"status_code": httpErr.Code,
			"message":     httpErr.Message,
			"path":        c.Request().URL.Path,
		})
		message, ok := httpErr.Message.(string)
		if !ok {
			message = http.StatusText(httpErr.Code)
		}
		return c.JSON(httpErr.Code, ErrorResponse{
			Error:   http.StatusText(httpErr.Code),
			Message: message,
		})
	}

	// 予期しないエラー
	logger.Error(ctx, "Internal server error", err, map[string]interface{}{
		"path": c.Request().URL.Path,
	})
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_server_error",
		Message: "An unexpected error occurred",
	})
}
