package payment

// PublicConfig フロントエンドに公開するチェックアウト設定
type PublicConfig struct {
	PublishableKey string
	Profile        string
}

// CreatePaymentSessionResponse 決済セッション作成結果
type CreatePaymentSessionResponse struct {
	AccountID     string
	AccountNumber string
	Token         string
}
