package headless

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	appcheckout "zuora-checkout/internal/application/checkout"
	"zuora-checkout/internal/domain/checkout"
)

// Outcome 決済の模擬結果
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFail    Outcome = "fail"
)

// DefaultDeclineMessage 失敗時の既定メッセージ
const DefaultDeclineMessage = "declined"

var (
	// ErrElementNotFound マウント先が見つからない
	ErrElementNotFound = errors.New("mount element not found")
	// ErrInvalidFormConfiguration フォーム設定が不正
	ErrInvalidFormConfiguration = errors.New("invalid payment form configuration")
	// ErrAlreadyMounted 同じフォームを二度マウントした
	ErrAlreadyMounted = errors.New("payment form already mounted")
)

// Options 模擬SDKの挙動
type Options struct {
	// PaymentMethodType 押下された支払い方法
	PaymentMethodType string
	Outcome           Outcome
	// PaymentID 成功時の決済ID。空の場合は生成する
	PaymentID      string
	DeclineMessage string
	// Elements マウント可能なセレクター。空の場合は#で始まる任意のID
	Elements []string
}

// ParseOutcome 文字列からOutcomeを解釈する
func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(strings.ToLower(strings.TrimSpace(s))) {
	case OutcomeSuccess:
		return OutcomeSuccess, nil
	case OutcomeFail:
		return OutcomeFail, nil
	default:
		return "", fmt.Errorf("unknown outcome %q (want success or fail)", s)
	}
}

// SDK ブラウザを使わずに決済フォームの振る舞いを再現するSDK
type SDK struct {
	publishableKey string
	opts           Options
}

// NewSDKFactory 模擬SDKを作成するファクトリ
func NewSDKFactory(opts Options) appcheckout.SDKFactory {
	if opts.PaymentMethodType == "" {
		opts.PaymentMethodType = "creditcard"
	}
	if opts.Outcome == "" {
		opts.Outcome = OutcomeSuccess
	}
	if opts.DeclineMessage == "" {
		opts.DeclineMessage = DefaultDeclineMessage
	}
	return func(publishableKey string) (appcheckout.PaymentSDK, error) {
		return &SDK{publishableKey: publishableKey, opts: opts}, nil
	}
}

// PublishableKey SDKの作成に使われた公開可能キー
func (s *SDK) PublishableKey() string {
	return s.publishableKey
}

// CreatePaymentForm 決済フォームを作成
func (s *SDK) CreatePaymentForm(_ context.Context, cfg *appcheckout.FormConfiguration) (appcheckout.PaymentForm, error) {
	switch {
	case cfg == nil:
		return nil, fmt.Errorf("%w: nil configuration", ErrInvalidFormConfiguration)
	case strings.TrimSpace(cfg.Profile) == "":
		return nil, fmt.Errorf("%w: profile is required", ErrInvalidFormConfiguration)
	case cfg.CreatePaymentSession == nil:
		return nil, fmt.Errorf("%w: createPaymentSession callback is required", ErrInvalidFormConfiguration)
	case cfg.OnComplete == nil:
		return nil, fmt.Errorf("%w: onComplete callback is required", ErrInvalidFormConfiguration)
	case len(cfg.Currency) != 3:
		return nil, fmt.Errorf("%w: currency %q", ErrInvalidFormConfiguration, cfg.Currency)
	case !cfg.Amount.IsPositive():
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidFormConfiguration)
	}
	return &Form{cfg: cfg, opts: s.opts}, nil
}

// Form 模擬決済フォーム
// マウントすると支払いボタンを一度押下したものとして処理する
type Form struct {
	cfg  *appcheckout.FormConfiguration
	opts Options

	mu      sync.Mutex
	mounted bool
}

// Mount フォームをマウントし支払いを実行する
func (f *Form) Mount(ctx context.Context, selector string) error {
	if !f.hasElement(selector) {
		return fmt.Errorf("%w: %s", ErrElementNotFound, selector)
	}

	f.mu.Lock()
	if f.mounted {
		f.mu.Unlock()
		return ErrAlreadyMounted
	}
	f.mounted = true
	f.mu.Unlock()

	f.cfg.OnComplete(ctx, f.pay(ctx))
	return nil
}

// pay 支払いボタン押下からonCompleteまでの処理
func (f *Form) pay(ctx context.Context) checkout.PaymentResult {
	token, err := f.cfg.CreatePaymentSession(ctx, checkout.PaymentSessionContext{
		PaymentMethodType: f.opts.PaymentMethodType,
	})
	if err != nil {
		return failure(err.Error())
	}
	if token.IsZero() {
		return failure("empty payment session token")
	}

	if f.opts.Outcome == OutcomeFail {
		return failure(f.opts.DeclineMessage)
	}

	paymentID := f.opts.PaymentID
	if paymentID == "" {
		paymentID = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return checkout.PaymentResult{Success: true, PaymentID: paymentID}
}

func (f *Form) hasElement(selector string) bool {
	if len(f.opts.Elements) == 0 {
		return len(selector) > 1 && strings.HasPrefix(selector, "#")
	}
	for _, e := range f.opts.Elements {
		if e == selector {
			return true
		}
	}
	return false
}

func failure(message string) checkout.PaymentResult {
	return checkout.PaymentResult{
		Success: false,
		Error:   &checkout.PaymentError{Message: message},
	}
}
