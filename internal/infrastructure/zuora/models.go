package zuora

import "encoding/json"

// commonResponse Zuora APIの共通レスポンス
type commonResponse struct {
	Success *bool    `json:"success,omitempty"`
	Reasons []reason `json:"reasons,omitempty"`
}

type reason struct {
	Code    interface{} `json:"code"`
	Message string      `json:"message"`
}

type contact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address1  string `json:"address1,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	ZipCode   string `json:"zipCode,omitempty"`
	WorkEmail string `json:"workEmail,omitempty"`
	Country   string `json:"country,omitempty"`
}

type createAccountRequest struct {
	Name               string  `json:"name"`
	BillToContact      contact `json:"billToContact"`
	BillCycleDay       int     `json:"billCycleDay"`
	SoldToSameAsBillTo bool    `json:"soldToSameAsBillTo"`
	AutoPay            bool    `json:"autoPay"`
	Currency           string  `json:"currency"`
}

type createAccountResponse struct {
	AccountID     string `json:"accountId"`
	AccountNumber string `json:"accountNumber"`
}

type createPaymentSessionRequest struct {
	AccountID          string      `json:"accountId"`
	Amount             json.Number `json:"amount"`
	Currency           string      `json:"currency"`
	ProcessPayment     bool        `json:"processPayment"`
	StorePaymentMethod bool        `json:"storePaymentMethod"`
	PaymentGateway     string      `json:"paymentGateway,omitempty"`
}

type createPaymentSessionResponse struct {
	Token string `json:"token"`
}
