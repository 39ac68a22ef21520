package payment

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"zuora-checkout/internal/domain/billing"
	"zuora-checkout/internal/domain/checkout"
	"zuora-checkout/internal/infrastructure/config"
	otelinfra "zuora-checkout/internal/infrastructure/observability/otel"
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

func newTestService(t *testing.T, gateway billing.Gateway, checkoutCfg config.CheckoutConfig, sessionCfg config.PaymentSessionConfig) *PaymentApplicationService {
	t.Helper()
	logger := otelinfra.NewLogger(noop.NewTracerProvider().Tracer("test"))
	metrics, err := otelinfra.NewMetrics("test")
	require.NoError(t, err)
	return NewPaymentApplicationService(gateway, checkoutCfg, sessionCfg, logger, metrics)
}

func validRequest() *checkout.PaymentSessionRequest {
	req := checkout.NewPaymentSessionRequest(checkout.Customer{
		FirstName: "John",
		LastName:  "Doe",
		Address:   "123 Main St",
		City:      "Denver",
		State:     "CO",
		Country:   "United States",
		Zip:       "80201",
		Email:     "test@zuora.io",
	}, "USD", decimal.RequireFromString("36.00"), checkout.PaymentSessionContext{PaymentMethodType: "creditcard"})
	return &req
}

func defaultSessionConfig() config.PaymentSessionConfig {
	return config.PaymentSessionConfig{
		PaymentGatewayID:   "gw-1",
		AuthAmount:         decimal.RequireFromString("0.01"),
		ProcessPayment:     false,
		StorePaymentMethod: true,
	}
}

func TestPaymentApplicationService_PublicConfig(t *testing.T) {
	tests := []struct {
		name        string
		checkoutCfg config.CheckoutConfig
		want        PublicConfig
	}{
		{
			name:        "正常系: 設定値をそのまま返す",
			checkoutCfg: config.CheckoutConfig{PublishableKey: "pk", ProfileID: "PF-1"},
			want:        PublicConfig{PublishableKey: "pk", Profile: "PF-1"},
		},
		{
			name:        "正常系: プロファイル未設定はデフォルト",
			checkoutCfg: config.CheckoutConfig{PublishableKey: "pk"},
			want:        PublicConfig{PublishableKey: "pk", Profile: config.DefaultProfileID},
		},
		{
			name:        "正常系: 公開可能キー未設定は空文字",
			checkoutCfg: config.CheckoutConfig{ProfileID: "PF-1"},
			want:        PublicConfig{PublishableKey: "", Profile: "PF-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, new(MockGateway), tt.checkoutCfg, defaultSessionConfig())
			got := svc.PublicConfig(context.Background())
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestPaymentApplicationService_CreatePaymentSession(t *testing.T) {
	t.Run("正常系: アカウントとセッションを作成", func(t *testing.T) {
		gateway := new(MockGateway)
		gateway.On("CreateAccount", mock.Anything, mock.MatchedBy(func(a *billing.NewAccount) bool {
			return a.Name == "John Doe" &&
				a.Currency == "USD" &&
				a.BillTo.ZipCode == "80201" &&
				a.BillTo.WorkEmail == "test@zuora.io" &&
				a.BillTo.Address1 == "123 Main St" &&
				a.SoldToSameAsBillTo && !a.AutoPay
		})).Return(&billing.Account{ID: "acc-1", Number: "A001"}, nil)
		gateway.On("CreatePaymentSession", mock.Anything, mock.MatchedBy(func(p *billing.PaymentSessionParams) bool {
			return p.AccountID == "acc-1" &&
				p.Currency == "USD" &&
				p.Amount.Equal(decimal.RequireFromString("0.01")) &&
				!p.ProcessPayment && p.StorePaymentMethod &&
				p.PaymentGatewayID == "gw-1"
		})).Return(&billing.PaymentSession{Token: "tok-1"}, nil)

		svc := newTestService(t, gateway, config.CheckoutConfig{}, defaultSessionConfig())
		resp, err := svc.CreatePaymentSession(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, "tok-1", resp.Token)
		assert.Equal(t, "acc-1", resp.AccountID)
		assert.Equal(t, "A001", resp.AccountNumber)
		gateway.AssertExpectations(t)
	})

	t.Run("正常系: ゲートウェイ未設定はデフォルトを使う", func(t *testing.T) {
		gateway := new(MockGateway)
		gateway.On("CreateAccount", mock.Anything, mock.Anything).Return(&billing.Account{ID: "acc-1"}, nil)
		gateway.On("CreatePaymentSession", mock.Anything, mock.MatchedBy(func(p *billing.PaymentSessionParams) bool {
			return p.PaymentGatewayID == config.DefaultPaymentGatewayID
		})).Return(&billing.PaymentSession{Token: "tok-1"}, nil)

		sessionCfg := defaultSessionConfig()
		sessionCfg.PaymentGatewayID = ""
		svc := newTestService(t, gateway, config.CheckoutConfig{}, sessionCfg)
		_, err := svc.CreatePaymentSession(context.Background(), validRequest())
		require.NoError(t, err)
		gateway.AssertExpectations(t)
	})

	t.Run("異常系: 無効なリクエストはゲートウェイを呼ばない", func(t *testing.T) {
		gateway := new(MockGateway)
		req := validRequest()
		req.Currency = ""

		svc := newTestService(t, gateway, config.CheckoutConfig{}, defaultSessionConfig())
		resp, err := svc.CreatePaymentSession(context.Background(), req)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, checkout.ErrInvalidSessionRequest)
		gateway.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
	})

	t.Run("異常系: アカウント作成に失敗", func(t *testing.T) {
		gateway := new(MockGateway)
		gateway.On("CreateAccount", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: boom", billing.ErrGatewayRejected))

		svc := newTestService(t, gateway, config.CheckoutConfig{}, defaultSessionConfig())
		_, err := svc.CreatePaymentSession(context.Background(), validRequest())
		assert.ErrorIs(t, err, billing.ErrGatewayRejected)
		assert.Contains(t, err.Error(), "failed to create account")
		gateway.AssertNotCalled(t, "CreatePaymentSession", mock.Anything, mock.Anything)
	})

	t.Run("異常系: セッション作成に失敗", func(t *testing.T) {
		gateway := new(MockGateway)
		gateway.On("CreateAccount", mock.Anything, mock.Anything).Return(&billing.Account{ID: "acc-1"}, nil)
		gateway.On("CreatePaymentSession", mock.Anything, mock.Anything).
			Return(nil, billing.ErrGatewayUnavailable)

		svc := newTestService(t, gateway, config.CheckoutConfig{}, defaultSessionConfig())
		_, err := svc.CreatePaymentSession(context.Background(), validRequest())
		assert.True(t, errors.Is(err, billing.ErrGatewayUnavailable))
		assert.Contains(t, err.Error(), "failed to create payment session")
	})
}
