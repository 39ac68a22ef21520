package billing

import "errors"

var (
	// ErrGatewayRejected 課金ゲートウェイがリクエストを拒否したエラー
	ErrGatewayRejected = errors.New("billing gateway rejected request")
	// ErrGatewayUnavailable 課金ゲートウェイに到達できないエラー
	ErrGatewayUnavailable = errors.New("billing gateway unavailable")
	// ErrInvalidAccount 無効なアカウント作成要求
	ErrInvalidAccount = errors.New("invalid billing account")
)
