package checkout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Customer 決済セッション作成時に送信する顧客情報
type Customer struct {
	FirstName string
	LastName  string
	Address   string
	City      string
	State     string
	Country   string
	Zip       string
	Email     string
}

// FullName 請求先アカウント名
func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// PaymentSessionContext 決済フォームがセッション作成時に渡すコンテキスト
type PaymentSessionContext struct {
	PaymentMethodType string `json:"paymentMethodType"`
}

// PaymentSessionRequest POST /create-payment-session のボディ
type PaymentSessionRequest struct {
	FirstName         string `json:"firstName" validate:"required,max=100"`
	LastName          string `json:"lastName" validate:"required,max=100"`
	Currency          string `json:"currency" validate:"required,len=3,alpha"`
	Address           string `json:"address" validate:"max=255"`
	City              string `json:"city" validate:"max=40"`
	State             string `json:"state" validate:"max=40"`
	Country           string `json:"country" validate:"required,max=64"`
	Zip               string `json:"zip" validate:"max=20"`
	Email             string `json:"email" validate:"omitempty,email"`
	Amount            string `json:"amount" validate:"omitempty,numeric"`
	PaymentMethodType string `json:"paymentMethodType" validate:"max=64"`
}

// NewPaymentSessionRequest 顧客情報とフォームのコンテキストからリクエストを組み立てる
func NewPaymentSessionRequest(customer Customer, currency string, amount decimal.Decimal, sessionCtx PaymentSessionContext) PaymentSessionRequest {
	return PaymentSessionRequest{
		FirstName:         customer.FirstName,
		LastName:          customer.LastName,
		Currency:          currency,
		Address:           customer.Address,
		City:              customer.City,
		State:             customer.State,
		Country:           customer.Country,
		Zip:               customer.Zip,
		Email:             customer.Email,
		Amount:            amount.StringFixed(2),
		PaymentMethodType: sessionCtx.PaymentMethodType,
	}
}

// Customer リクエストから顧客情報を取り出す
func (r PaymentSessionRequest) Customer() Customer {
	return Customer{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Address:   r.Address,
		City:      r.City,
		State:     r.State,
		Country:   r.Country,
		Zip:       r.Zip,
		Email:     r.Email,
	}
}

// Validate リクエストを検証
func (r PaymentSessionRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidSessionRequest, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidSessionRequest, strings.Join(fields, ", "))
}
