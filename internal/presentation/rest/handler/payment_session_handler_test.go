package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"zuora-checkout/internal/domain/billing"
	"zuora-checkout/internal/infrastructure/config"
)

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"firstName":         "John",
		"lastName":          "Doe",
		"currency":          "USD",
		"address":           "123 Main St",
		"city":              "Denver",
		"state":             "CO",
		"country":           "United States",
		"zip":               "80201",
		"email":             "test@zuora.io",
		"amount":            "36.00",
		"paymentMethodType": "creditcard",
	}
}

func TestPaymentSessionHandler_CreatePaymentSession(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockGateway)
		expectedStatus int
		expectedBody   string
		expectedError  string
	}{
		{
			name: "正常系: トークンをJSON文字列で返す",
			body: mustJSON(t, validBody()),
			setupMock: func(m *MockGateway) {
				m.On("CreateAccount", mock.Anything, mock.MatchedBy(func(a *billing.NewAccount) bool {
					return a.Name == "John Doe" && a.BillTo.City == "Denver" && a.Currency == "USD"
				})).Return(&billing.Account{ID: "acc-1", Number: "A001"}, nil)
				m.On("CreatePaymentSession", mock.Anything, mock.MatchedBy(func(p *billing.PaymentSessionParams) bool {
					return p.AccountID == "acc-1" && p.PaymentGatewayID == "gw-1"
				})).Return(&billing.PaymentSession{Token: "tok123"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"tok123"`,
		},
		{
			name:           "異常系: JSONでないボディ",
			body:           `{"firstName":`,
			setupMock:      func(m *MockGateway) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Bad Request",
		},
		{
			name: "異常系: 必須項目の欠落",
			body: func() string {
				b := validBody()
				delete(b, "firstName")
				return mustJSON(t, b)
			}(),
			setupMock:      func(m *MockGateway) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid_request",
		},
		{
			name: "異常系: 不正なメールアドレス",
			body: func() string {
				b := validBody()
				b["email"] = "not-an-email"
				return mustJSON(t, b)
			}(),
			setupMock:      func(m *MockGateway) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid_request",
		},
		{
			name: "異常系: アカウント作成をゲートウェイが拒否",
			body: mustJSON(t, validBody()),
			setupMock: func(m *MockGateway) {
				m.On("CreateAccount", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: createAccount (status 400): [53100020] Invalid currency", billing.ErrGatewayRejected))
			},
			expectedStatus: http.StatusBadGateway,
			expectedError:  "gateway_rejected",
		},
		{
			name: "異常系: セッション作成時にゲートウェイに接続できない",
			body: mustJSON(t, validBody()),
			setupMock: func(m *MockGateway) {
				m.On("CreateAccount", mock.Anything, mock.Anything).Return(&billing.Account{ID: "acc-1"}, nil)
				m.On("CreatePaymentSession", mock.Anything, mock.Anything).Return(nil, billing.ErrGatewayUnavailable)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedError:  "gateway_unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := new(MockGateway)
			tt.setupMock(gateway)

			e := echo.New()
			h := NewPaymentSessionHandler(newTestService(t, gateway, config.CheckoutConfig{}))

			req := httptest.NewRequest(http.MethodPost, "/create-payment-session", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, withErrorHandler(h.CreatePaymentSession)(c))
			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			}
			if tt.expectedError != "" {
				var resp ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp.Error)
			}
			gateway.AssertExpectations(t)
		})
	}
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(v))
	return buf.String()
}
