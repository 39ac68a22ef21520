package checkout

import "errors"

var (
	// ErrProfileMissing /configにprofileが含まれないエラー（初期化を中断する）
	ErrProfileMissing = errors.New("required configuration `profile` is missing")
	// ErrConfigUnavailable /configが成功ステータスを返さなかったエラー
	ErrConfigUnavailable = errors.New("checkout configuration unavailable")
	// ErrConfigMalformed /configのレスポンスを解釈できないエラー
	ErrConfigMalformed = errors.New("checkout configuration malformed")
	// ErrSessionRejected 決済セッション作成が成功ステータスを返さなかったエラー
	ErrSessionRejected = errors.New("payment session rejected")
	// ErrInvalidSessionRequest 無効な決済セッションリクエストエラー
	ErrInvalidSessionRequest = errors.New("invalid payment session request")
	// ErrMalformedToken 決済セッショントークンを解釈できないエラー
	ErrMalformedToken = errors.New("malformed payment session token")
)
