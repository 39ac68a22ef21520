package billing

import "context"

// Gateway 課金システムへのポート
type Gateway interface {
	CreateAccount(ctx context.Context, account *NewAccount) (*Account, error)
	CreatePaymentSession(ctx context.Context, params *PaymentSessionParams) (*PaymentSession, error)
}
