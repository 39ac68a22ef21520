package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	paymentapp "zuora-checkout/internal/application/payment"
)

// ConfigHandler チェックアウト設定ハンドラー
type ConfigHandler struct {
	paymentService *paymentapp.PaymentApplicationService
}

// NewConfigHandler 新しいConfigHandlerを作成
func NewConfigHandler(paymentService *paymentapp.PaymentApplicationService) *ConfigHandler {
	return &ConfigHandler{
		paymentService: paymentService,
	}
}

// GetConfig 公開設定取得ハンドラー
// @Summary チェックアウト設定を取得
// @Description 決済フォームの初期化に必要な公開可能キーとプロファイルを返します（認証不要）
// @Tags checkout
// @Produce json
// @Success 200 {object} ConfigResponse "取得成功"
// @Router /config [get]
func (h *ConfigHandler) GetConfig(c echo.Context) error {
	cfg := h.paymentService.PublicConfig(c.Request().Context())

	return c.JSON(http.StatusOK, ConfigResponse{
		PublishableKey: cfg.PublishableKey,
		Profile:        cfg.Profile,
	})
}
