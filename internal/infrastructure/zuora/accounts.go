package zuora

import (
	"context"
	"fmt"

	"zuora-checkout/internal/domain/billing"
)

// CreateAccount 請求先連絡先付きのアカウントを作成
func (c *Client) CreateAccount(ctx context.Context, account *billing.NewAccount) (*billing.Account, error) {
	req := createAccountRequest{
		Name: account.Name,
		BillToContact: contact{
			FirstName: account.BillTo.FirstName,
			LastName:  account.BillTo.LastName,
			Address1:  account.BillTo.Address1,
			City:      account.BillTo.City,
			State:     account.BillTo.State,
			ZipCode:   account.BillTo.ZipCode,
			WorkEmail: account.BillTo.WorkEmail,
			Country:   account.BillTo.Country,
		},
		BillCycleDay:       account.BillCycleDay,
		SoldToSameAsBillTo: account.SoldToSameAsBillTo,
		AutoPay:            account.AutoPay,
		Currency:           account.Currency,
	}

	var resp createAccountResponse
	if err := c.do(ctx, "create_account", "/v1/accounts", req, &resp); err != nil {
		return nil, err
	}
	if resp.AccountID == "" {
		return nil, fmt.Errorf("%w: create_account returned no accountId", billing.ErrGatewayRejected)
	}

	return &billing.Account{
		ID:     resp.AccountID,
		Number: resp.AccountNumber,
	}, nil
}
