package checkoutapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	appcheckout "zuora-checkout/internal/application/checkout"
	"zuora-checkout/internal/domain/checkout"
)

const (
	configPath         = "/config"
	paymentSessionPath = "/create-payment-session"
)

// Client チェックアウトバックエンドのHTTPクライアント
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

var (
	_ appcheckout.ConfigSource   = (*Client)(nil)
	_ appcheckout.SessionCreator = (*Client)(nil)
)

// Option Clientのオプション
type Option func(*Client)

// WithHTTPClient http.Clientを差し替える
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient 新しいClientを作成
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tracer: otel.Tracer("checkout-api-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchConfig GET /config
func (c *Client) FetchConfig(ctx context.Context) (cfg checkout.RemoteConfig, err error) {
	ctx, span := c.tracer.Start(ctx, "checkoutapi.FetchConfig", trace.WithSpanKind(trace.SpanKindClient))
	defer func() {
		endSpan(span, err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+configPath, nil)
	if err != nil {
		return checkout.DefaultRemoteConfig(), fmt.Errorf("failed to build config request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	status, body, err := c.send(req)
	if err != nil {
		return checkout.DefaultRemoteConfig(), err
	}
	span.SetAttributes(attribute.Int("http.status_code", status))

	if !isOK(status) {
		return checkout.DefaultRemoteConfig(), fmt.Errorf("%w: status %d", checkout.ErrConfigUnavailable, status)
	}
	return checkout.ParseRemoteConfig(body)
}

// CreatePaymentSession POST /create-payment-session
func (c *Client) CreatePaymentSession(ctx context.Context, sessionReq checkout.PaymentSessionRequest) (token checkout.PaymentSessionToken, err error) {
	ctx, span := c.tracer.Start(ctx, "checkoutapi.CreatePaymentSession", trace.WithSpanKind(trace.SpanKindClient))
	defer func() {
		endSpan(span, err)
	}()
	span.SetAttributes(attribute.String("checkout.payment_method_type", sessionReq.PaymentMethodType))

	payload, err := json.Marshal(sessionReq)
	if err != nil {
		return checkout.PaymentSessionToken{}, fmt.Errorf("failed to encode payment session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+paymentSessionPath, bytes.NewReader(payload))
	if err != nil {
		return checkout.PaymentSessionToken{}, fmt.Errorf("failed to build payment session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	status, body, err := c.send(req)
	if err != nil {
		return checkout.PaymentSessionToken{}, err
	}
	span.SetAttributes(attribute.Int("http.status_code", status))

	if !isOK(status) {
		return checkout.PaymentSessionToken{}, fmt.Errorf("%w: status %d", checkout.ErrSessionRejected, status)
	}
	return checkout.ParsePaymentSessionToken(body)
}

// send リクエストを送信しステータスとボディを返す
func (c *Client) send(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read %s response: %w", req.URL.Path, err)
	}
	return resp.StatusCode, body, nil
}

func isOK(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
	}
	span.End()
}
