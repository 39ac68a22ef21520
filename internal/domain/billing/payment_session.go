package billing

import "github.com/shopspring/decimal"

// PaymentSessionParams 決済セッション作成パラメータ
type PaymentSessionParams struct {
	AccountID          string
	Currency           string
	Amount             decimal.Decimal
	ProcessPayment     bool
	StorePaymentMethod bool
	PaymentGatewayID   string // 空の場合はテナントのデフォルト
}

// PaymentSession 作成済み決済セッション
type PaymentSession struct {
	Token string
}
