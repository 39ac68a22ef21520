package payment

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"zuora-checkout/internal/domain/billing"
	"zuora-checkout/internal/domain/checkout"
	"zuora-checkout/internal/infrastructure/config"
	otelinfra "zuora-checkout/internal/infrastructure/observability/otel"
)

// PaymentApplicationService チェックアウトバックエンドのアプリケーションサービス
type PaymentApplicationService struct {
	gateway     billing.Gateway
	checkoutCfg config.CheckoutConfig
	sessionCfg  config.PaymentSessionConfig
	logger      *otelinfra.Logger
	metrics     *otelinfra.Metrics
	tracer      trace.Tracer
}

// NewPaymentApplicationService 新しいPaymentApplicationServiceを作成
func NewPaymentApplicationService(
	gateway billing.Gateway,
	checkoutCfg config.CheckoutConfig,
	sessionCfg config.PaymentSessionConfig,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *PaymentApplicationService {
	return &PaymentApplicationService{
		gateway:     gateway,
		checkoutCfg: checkoutCfg,
		sessionCfg:  sessionCfg,
		logger:      logger,
		metrics:     metrics,
		tracer:      otel.Tracer("payment-service"),
	}
}

// PublicConfig 公開可能キーとプロファイルを返す
// プロファイルが未設定の場合はデフォルトのプロファイルを返す
func (s *PaymentApplicationService) PublicConfig(ctx context.Context) *PublicConfig {
	profile := strings.TrimSpace(s.checkoutCfg.ProfileID)
	if profile == "" {
		profile = config.DefaultProfileID
	}

	s.metrics.RecordConfigRequest(ctx, profile)

	return &PublicConfig{
		PublishableKey: s.checkoutCfg.PublishableKey,
		Profile:        profile,
	}
}

// CreatePaymentSession 顧客アカウントを作成し、そのアカウントの決済セッションを作成
func (s *PaymentApplicationService) CreatePaymentSession(ctx context.Context, req *checkout.PaymentSessionRequest) (*CreatePaymentSessionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "PaymentApplicationService.CreatePaymentSession")
	defer span.End()

	span.SetAttributes(
		attribute.String("payment_method_type", req.PaymentMethodType),
		attribute.String("currency", req.Currency),
	)

	if err := req.Validate(); err != nil {
		s.fail(ctx, span, req, "invalid", err)
		return nil, err
	}

	s.logger.Info(ctx, "Creating payment session", map[string]interface{}{
		"payment_method_type": req.PaymentMethodType,
		"currency":            req.Currency,
		"country":             req.Country,
	})

	customer := req.Customer()
	newAccount, err := billing.NewCustomerAccount(billing.Contact{
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
		Address1:  customer.Address,
		City:      customer.City,
		State:     customer.State,
		ZipCode:   customer.Zip,
		WorkEmail: customer.Email,
		Country:   customer.Country,
	}, req.Currency)
	if err != nil {
		s.fail(ctx, span, req, "invalid", err)
		return nil, err
	}

	account, err := s.gateway.CreateAccount(ctx, newAccount)
	if err != nil {
		s.fail(ctx, span, req, "account_failed", err)
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	span.SetAttributes(attribute.String("account_id", account.ID))

	session, err := s.gateway.CreatePaymentSession(ctx, &billing.PaymentSessionParams{
		AccountID:          account.ID,
		Currency:           req.Currency,
		Amount:             s.sessionCfg.AuthAmount,
		ProcessPayment:     s.sessionCfg.ProcessPayment,
		StorePaymentMethod: s.sessionCfg.StorePaymentMethod,
		PaymentGatewayID:   s.paymentGateway(),
	})
	if err != nil {
		s.fail(ctx, span, req, "session_failed", err)
		return nil, fmt.Errorf("failed to create payment session: %w", err)
	}

	s.metrics.RecordPaymentSession(ctx, req.PaymentMethodType, "created")
	s.logger.Info(ctx, "Payment session created", map[string]interface{}{
		"account_id":          account.ID,
		"account_number":      account.Number,
		"payment_method_type": req.PaymentMethodType,
	})

	return &CreatePaymentSessionResponse{
		AccountID:     account.ID,
		AccountNumber: account.Number,
		Token:         session.Token,
	}, nil
}

// paymentGateway セッションに使う決済ゲートウェイ
// 設定がなければ全ての支払い方法でデフォルトのゲートウェイを使う
func (s *PaymentApplicationService) paymentGateway() string {
	if s.sessionCfg.PaymentGatewayID != "" {
		return s.sessionCfg.PaymentGatewayID
	}
	return config.DefaultPaymentGatewayID
}

func (s *PaymentApplicationService) fail(ctx context.Context, span trace.Span, req *checkout.PaymentSessionRequest, outcome string, err error) {
	span.RecordError(err)
	span.SetStatus(otelcodes.Error, err.Error())
	s.metrics.RecordPaymentSession(ctx, req.PaymentMethodType, outcome)
	s.logger.Error(ctx, "Error occurred while creating payment session", err, map[string]interface{}{
		"payment_method_type": req.PaymentMethodType,
		"outcome":             outcome,
	})
}
