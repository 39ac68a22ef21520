package billing

import (
	"fmt"
	"strings"
)

// Contact 請求先連絡先
type Contact struct {
	FirstName string
	LastName  string
	Address1  string
	City      string
	State     string
	ZipCode   string
	WorkEmail string
	Country   string
}

// NewAccount 課金アカウント作成要求
type NewAccount struct {
	Name               string
	BillTo             Contact
	BillCycleDay       int
	SoldToSameAsBillTo bool
	AutoPay            bool
	Currency           string
}

// NewCustomerAccount チェックアウト顧客用のアカウント作成要求を組み立てる
// 請求日は0（自動設定）、自動支払いは無効
func NewCustomerAccount(contact Contact, currency string) (*NewAccount, error) {
	name := strings.TrimSpace(strings.Join([]string{contact.FirstName, contact.LastName}, " "))
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidAccount)
	}
	if currency == "" {
		return nil, fmt.Errorf("%w: currency is required", ErrInvalidAccount)
	}
	return &NewAccount{
		Name:               name,
		BillTo:             contact,
		BillCycleDay:       0,
		SoldToSameAsBillTo: true,
		AutoPay:            false,
		Currency:           currency,
	}, nil
}

// Account 作成済みアカウント
type Account struct {
	ID     string
	Number string
}
