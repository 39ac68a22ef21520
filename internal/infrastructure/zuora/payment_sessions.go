package zuora

import (
	"context"
	"encoding/json"
	"fmt"

	"zuora-checkout/internal/domain/billing"
)

// CreatePaymentSession ホスト型決済フォーム用のセッションを作成
func (c *Client) CreatePaymentSession(ctx context.Context, params *billing.PaymentSessionParams) (*billing.PaymentSession, error) {
	req := createPaymentSessionRequest{
		AccountID:          params.AccountID,
		Amount:             json.Number(params.Amount.String()),
		Currency:           params.Currency,
		ProcessPayment:     params.ProcessPayment,
		StorePaymentMethod: params.StorePaymentMethod,
		PaymentGateway:     params.PaymentGatewayID,
	}

	var resp createPaymentSessionResponse
	if err := c.do(ctx, "create_payment_session", "/web-payments/sessions", req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("%w: create_payment_session returned no token", billing.ErrGatewayRejected)
	}

	return &billing.PaymentSession{Token: resp.Token}, nil
}
