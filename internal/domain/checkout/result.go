package checkout

import "net/url"

// ReturnPage 決済成功時の遷移先
const ReturnPage = "return.html"

// PaymentError 決済失敗の詳細
type PaymentError struct {
	Message string `json:"message"`
}

// PaymentResult 決済フォームの完了コールバックに渡される結果
type PaymentResult struct {
	Success   bool          `json:"success"`
	PaymentID string        `json:"paymentId,omitempty"`
	Error     *PaymentError `json:"error,omitempty"`
}

// ReturnURL 成功時の遷移先URL
func (r PaymentResult) ReturnURL() string {
	q := url.Values{}
	q.Set("pid", r.PaymentID)
	return ReturnPage + "?" + q.Encode()
}

// ErrorMessage 失敗理由（未設定の場合は空文字）
func (r PaymentResult) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}
	return r.Error.Message
}

// FailureMessage 失敗時にユーザーへ表示するメッセージ
func (r PaymentResult) FailureMessage() string {
	return "Payment fail: " + r.ErrorMessage()
}
