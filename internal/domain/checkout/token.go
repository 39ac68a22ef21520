package checkout

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PaymentSessionToken バックエンドが返す決済セッショントークン
// 中身は解釈せず、受け取ったJSONをそのままSDKへ渡す
type PaymentSessionToken struct {
	raw json.RawMessage
}

// NewPaymentSessionToken 文字列トークンからPaymentSessionTokenを作成
func NewPaymentSessionToken(token string) PaymentSessionToken {
	raw, _ := json.Marshal(token)
	return PaymentSessionToken{raw: raw}
}

// ParsePaymentSessionToken レスポンスボディをトークンとして解釈する
func ParsePaymentSessionToken(data []byte) (PaymentSessionToken, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return PaymentSessionToken{}, fmt.Errorf("%w: %q", ErrMalformedToken, string(data))
	}
	raw := make(json.RawMessage, len(trimmed))
	copy(raw, trimmed)
	return PaymentSessionToken{raw: raw}, nil
}

// Raw トークンのJSON表現
func (t PaymentSessionToken) Raw() json.RawMessage {
	return t.raw
}

// IsZero トークンが未設定か
func (t PaymentSessionToken) IsZero() bool {
	return len(t.raw) == 0
}

// String JSON文字列なら中身を、それ以外はJSONのまま返す
func (t PaymentSessionToken) String() string {
	var s string
	if err := json.Unmarshal(t.raw, &s); err == nil {
		return s
	}
	return string(t.raw)
}

// MarshalJSON json.Marshaler
func (t PaymentSessionToken) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return t.raw, nil
}

// UnmarshalJSON json.Unmarshaler
func (t *PaymentSessionToken) UnmarshalJSON(data []byte) error {
	parsed, err := ParsePaymentSessionToken(data)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
