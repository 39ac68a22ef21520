package handler

// ConfigResponse チェックアウト設定レスポンス
// @Description 決済フォームの初期化に使う公開設定
type ConfigResponse struct {
	PublishableKey string `json:"publishableKey" example:"pk_test_abc123"`
	Profile        string `json:"profile" example:"PF-00000002"`
}
