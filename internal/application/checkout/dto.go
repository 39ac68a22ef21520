package checkout

import (
	"context"

	"github.com/shopspring/decimal"

	"zuora-checkout/internal/domain/checkout"
)

// DefaultMountSelector 決済フォームのマウント先
const DefaultMountSelector = "#zuora-payment-form"

// Settings チェックアウトの表示設定と顧客情報
type Settings struct {
	Locale        string
	Region        string
	Currency      string
	Amount        decimal.Decimal
	Customer      checkout.Customer
	MountSelector string
}

// FormConfiguration SDKに渡す決済フォーム設定
type FormConfiguration struct {
	Profile  string
	Locale   string
	Region   string
	Currency string
	Amount   decimal.Decimal

	// CreatePaymentSession 支払いボタン押下時にSDKから呼ばれる
	// 必ずトークンかエラーのどちらかを返す
	CreatePaymentSession func(ctx context.Context, sessionCtx checkout.PaymentSessionContext) (checkout.PaymentSessionToken, error)

	// OnComplete 決済完了時にSDKから一度だけ呼ばれる
	OnComplete func(ctx context.Context, result checkout.PaymentResult)
}
