package handler

// ErrorResponse エラーレスポンス
// @Description エラーレスポンス
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message" example:"invalid request body"`
}

// HealthResponse ヘルスチェックレスポンス
// @Description ヘルスチェックレスポンス
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
