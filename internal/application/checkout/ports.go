package checkout

import (
	"context"

	"zuora-checkout/internal/domain/checkout"
)

// Logger ブートストラップ処理が使うロガー
type Logger interface {
	Info(ctx context.Context, message string, fields map[string]interface{})
	Warn(ctx context.Context, message string, fields map[string]interface{})
	Error(ctx context.Context, message string, err error, fields map[string]interface{})
}

// ConfigSource GET /config の取得元
// 非2xxはErrConfigUnavailable、解釈できないボディはErrConfigMalformedを返す
type ConfigSource interface {
	FetchConfig(ctx context.Context) (checkout.RemoteConfig, error)
}

// SessionCreator POST /create-payment-session の送信先
// 非2xxはErrSessionRejectedを返す
type SessionCreator interface {
	CreatePaymentSession(ctx context.Context, req checkout.PaymentSessionRequest) (checkout.PaymentSessionToken, error)
}

// SDKFactory 公開可能キーから決済フォームSDKのクライアントを作成する
type SDKFactory func(publishableKey string) (PaymentSDK, error)

// PaymentSDK ホスト型決済フォームSDK
type PaymentSDK interface {
	CreatePaymentForm(ctx context.Context, cfg *FormConfiguration) (PaymentForm, error)
}

// PaymentForm SDKが作成した決済フォーム
type PaymentForm interface {
	Mount(ctx context.Context, selector string) error
}

// Navigator ページ遷移とユーザーへの通知
type Navigator interface {
	Redirect(ctx context.Context, url string) error
	Alert(ctx context.Context, message string) error
}
