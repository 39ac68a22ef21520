package handler

// CreatePaymentSessionRequest 決済セッション作成リクエスト
// @Description 支払いボタン押下時に送信される顧客情報と支払い方法
type CreatePaymentSessionRequest struct {
	FirstName         string `json:"firstName" example:"John"`
	LastName          string `json:"lastName" example:"Doe"`
	Currency          string `json:"currency" example:"USD"`
	Address           string `json:"address" example:"123 Main St"`
	City              string `json:"city" example:"Denver"`
	State             string `json:"state" example:"CO"`
	Country           string `json:"country" example:"United States"`
	Zip               string `json:"zip" example:"80201"`
	Email             string `json:"email" example:"test@zuora.io"`
	Amount            string `json:"amount" example:"36.00"`
	PaymentMethodType string `json:"paymentMethodType" example:"creditcard"`
}
