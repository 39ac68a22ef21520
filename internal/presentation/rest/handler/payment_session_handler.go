package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	paymentapp "zuora-checkout/internal/application/payment"
	"zuora-checkout/internal/domain/checkout"
)

// PaymentSessionHandler 決済セッションハンドラー
type PaymentSessionHandler struct {
	paymentService *paymentapp.PaymentApplicationService
}

// NewPaymentSessionHandler 新しいPaymentSessionHandlerを作成
func NewPaymentSessionHandler(paymentService *paymentapp.PaymentApplicationService) *PaymentSessionHandler {
	return &PaymentSessionHandler{
		paymentService: paymentService,
	}
}

// CreatePaymentSession 決済セッション作成ハンドラー
// @Summary 決済セッションを作成
// @Description 顧客アカウントを作成し、そのアカウントの決済セッショントークンをJSON文字列で返します
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body CreatePaymentSessionRequest true "決済セッション作成リクエスト"
// @Success 200 {string} string "決済セッショントークン"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 502 {object} ErrorResponse "課金ゲートウェイが拒否"
// @Failure 503 {object} ErrorResponse "課金ゲートウェイに接続できない"
// @Router /create-payment-session [post]
func (h *PaymentSessionHandler) CreatePaymentSession(c echo.Context) error {
	var reqBody CreatePaymentSessionRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	req := &checkout.PaymentSessionRequest{
		FirstName:         reqBody.FirstName,
		LastName:          reqBody.LastName,
		Currency:          reqBody.Currency,
		Address:           reqBody.Address,
		City:              reqBody.City,
		State:             reqBody.State,
		Country:           reqBody.Country,
		Zip:               reqBody.Zip,
		Email:             reqBody.Email,
		Amount:            reqBody.Amount,
		PaymentMethodType: reqBody.PaymentMethodType,
	}

	resp, err := h.paymentService.CreatePaymentSession(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp.Token)
}
