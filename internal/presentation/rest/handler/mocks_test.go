package handler

import (
	"context"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	paymentapp "zuora-checkout/internal/application/payment"
	"zuora-checkout/internal/domain/billing"
	"zuora-checkout/internal/infrastructure/config"
	otelinfra "zuora-checkout/internal/infrastructure/observability/otel"
	restmiddleware "zuora-checkout/internal/presentation/rest/middleware"
)

// MockGateway モック課金ゲートウェイ
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateAccount(ctx context.Context, account *billing.NewAccount) (*billing.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Account), args.Error(1)
}

func (m *MockGateway) CreatePaymentSession(ctx context.Context, params *billing.PaymentSessionParams) (*billing.PaymentSession, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.PaymentSession), args.Error(1)
}

// newTestService テスト用のアプリケーションサービスを作成
func newTestService(t *testing.T, gateway billing.Gateway, checkoutCfg config.CheckoutConfig) *paymentapp.PaymentApplicationService {
	t.Helper()
	logger := otelinfra.NewLogger(noop.NewTracerProvider().Tracer("test"))
	metrics, err := otelinfra.NewMetrics("test")
	require.NoError(t, err)

	return paymentapp.NewPaymentApplicationService(gateway, checkoutCfg, config.PaymentSessionConfig{
		PaymentGatewayID:   "gw-1",
		AuthAmount:         decimal.RequireFromString("0.01"),
		StorePaymentMethod: true,
	}, logger, metrics)
}

// withErrorHandler ErrorHandlerMiddlewareを通してハンドラーを実行する
func withErrorHandler(h echo.HandlerFunc) echo.HandlerFunc {
	logger := otelinfra.NewLogger(noop.NewTracerProvider().Tracer("test"))
	return restmiddleware.ErrorHandlerMiddleware(logger)(h)
}
