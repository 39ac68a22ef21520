package checkout

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"zuora-checkout/internal/domain/checkout"
)

// CheckoutBootstrapper 設定取得、SDK生成、決済フォームのマウントを行う
type CheckoutBootstrapper struct {
	source    ConfigSource
	sessions  SessionCreator
	newSDK    SDKFactory
	navigator Navigator
	logger    Logger
	settings  Settings
	tracer    trace.Tracer
}

// NewCheckoutBootstrapper 新しいCheckoutBootstrapperを作成
func NewCheckoutBootstrapper(
	source ConfigSource,
	sessions SessionCreator,
	newSDK SDKFactory,
	navigator Navigator,
	logger Logger,
	settings Settings,
) *CheckoutBootstrapper {
	if settings.MountSelector == "" {
		settings.MountSelector = DefaultMountSelector
	}
	return &CheckoutBootstrapper{
		source:    source,
		sessions:  sessions,
		newSDK:    newSDK,
		navigator: navigator,
		logger:    logger,
		settings:  settings,
		tracer:    otel.Tracer("checkout-bootstrapper"),
	}
}

// Initialize チェックアウトを初期化する
// profileがない場合のみErrProfileMissingを返す。それ以外の失敗はログに記録して握りつぶす
func (b *CheckoutBootstrapper) Initialize(ctx context.Context) error {
	ctx, span := b.tracer.Start(ctx, "CheckoutBootstrapper.Initialize")
	defer span.End()

	cfg := b.loadConfig(ctx)

	// profileはサーバー側の設定で必須
	if err := cfg.Validate(); err != nil {
		b.logger.Error(ctx, "Required configuration `profile` is missing from /config. Aborting initialization.", err, nil)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}
	span.SetAttributes(attribute.String("checkout.profile", cfg.Profile))

	sdk, err := b.newSDK(cfg.PublishableKey)
	if err != nil {
		b.logger.Error(ctx, "Error occurred while creating payment SDK client.", err, nil)
		span.RecordError(err)
		return nil
	}

	form, err := sdk.CreatePaymentForm(ctx, b.formConfiguration(cfg))
	if err != nil {
		b.logger.Error(ctx, "Error occurred while creating payment form.", err, nil)
		span.RecordError(err)
		return nil
	}

	if err := form.Mount(ctx, b.settings.MountSelector); err != nil {
		b.logger.Error(ctx, "Error occurred while mounting payment form.", err, map[string]interface{}{
			"selector": b.settings.MountSelector,
		})
		span.RecordError(err)
		return nil
	}

	b.logger.Info(ctx, "Payment form mounted", map[string]interface{}{
		"profile":  cfg.Profile,
		"selector": b.settings.MountSelector,
	})
	return nil
}

// loadConfig /configを取得し、失敗時はデフォルト設定を返す
func (b *CheckoutBootstrapper) loadConfig(ctx context.Context) checkout.RemoteConfig {
	cfg, err := b.source.FetchConfig(ctx)
	switch {
	case err == nil:
		return cfg
	case errors.Is(err, checkout.ErrConfigUnavailable):
		b.logger.Warn(ctx, "/config endpoint returned non-ok status; using defaults", map[string]interface{}{
			"error": err.Error(),
		})
	case errors.Is(err, checkout.ErrConfigMalformed):
		b.logger.Error(ctx, "Failed to parse /config response", err, nil)
	default:
		b.logger.Error(ctx, "Failed to fetch /config", err, nil)
	}
	return checkout.DefaultRemoteConfig()
}

// formConfiguration SDKに渡す設定を組み立てる
func (b *CheckoutBootstrapper) formConfiguration(cfg checkout.RemoteConfig) *FormConfiguration {
	return &FormConfiguration{
		Profile:              cfg.Profile,
		Locale:               b.settings.Locale,
		Region:               b.settings.Region,
		Currency:             b.settings.Currency,
		Amount:               b.settings.Amount,
		CreatePaymentSession: b.createPaymentSession,
		OnComplete:           b.onComplete,
	}
}

// createPaymentSession 支払いボタン押下時に決済セッションを作成する
func (b *CheckoutBootstrapper) createPaymentSession(ctx context.Context, sessionCtx checkout.PaymentSessionContext) (checkout.PaymentSessionToken, error) {
	ctx, span := b.tracer.Start(ctx, "CheckoutBootstrapper.CreatePaymentSession")
	defer span.End()

	b.logger.Info(ctx, "paymentSessionContext", map[string]interface{}{
		"payment_method_type": sessionCtx.PaymentMethodType,
	})

	req := checkout.NewPaymentSessionRequest(b.settings.Customer, b.settings.Currency, b.settings.Amount, sessionCtx)
	token, err := b.sessions.CreatePaymentSession(ctx, req)
	if err != nil {
		b.logger.Error(ctx, "Error occurred while creating payment session.", err, map[string]interface{}{
			"payment_method_type": sessionCtx.PaymentMethodType,
		})
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return checkout.PaymentSessionToken{}, fmt.Errorf("create payment session: %w", err)
	}
	return token, nil
}

// onComplete 決済結果に応じて遷移または通知する
func (b *CheckoutBootstrapper) onComplete(ctx context.Context, result checkout.PaymentResult) {
	b.logger.Info(ctx, "Payment Result", map[string]interface{}{
		"success":    result.Success,
		"payment_id": result.PaymentID,
		"error":      result.ErrorMessage(),
	})

	if result.Success {
		if err := b.navigator.Redirect(ctx, result.ReturnURL()); err != nil {
			b.logger.Error(ctx, "Failed to redirect after payment", err, nil)
		}
		return
	}

	if err := b.navigator.Alert(ctx, result.FailureMessage()); err != nil {
		b.logger.Error(ctx, "Failed to show payment failure", err, nil)
	}
}
