package zuora

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"zuora-checkout/internal/domain/billing"
	"zuora-checkout/internal/infrastructure/config"
	otelinfra "zuora-checkout/internal/infrastructure/observability/otel"
)

// 環境ごとのREST APIエンドポイント
var baseURLs = map[string]string{
	"CSBX": "https://rest.test.zuora.com",
}

// BaseURLFor 環境名からAPIのベースURLを返す
func BaseURLFor(env string) (string, error) {
	u, ok := baseURLs[strings.ToUpper(env)]
	if !ok {
		return "", fmt.Errorf("unsupported zuora environment: %s", env)
	}
	return u, nil
}

// Client Zuora REST APIクライアント
type Client struct {
	baseURL    string
	orgIDs     string
	debug      bool
	httpClient *http.Client
	logger     *otelinfra.Logger
	metrics    *otelinfra.Metrics
	tracer     trace.Tracer
}

var _ billing.Gateway = (*Client)(nil)

type options struct {
	baseHTTPClient *http.Client
}

// Option Clientのオプション
type Option func(*options)

// WithHTTPClient トークン取得とAPI呼び出しに使う下位のhttp.Clientを差し替える（テスト用）
func WithHTTPClient(base *http.Client) Option {
	return func(o *options) {
		o.baseHTTPClient = base
	}
}

// NewClient 新しいClientを作成
// 認証はOAuth2クライアントクレデンシャルで行い、トークンは期限まで再利用する
func NewClient(cfg *config.ZuoraConfig, logger *otelinfra.Logger, metrics *otelinfra.Metrics, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		u, err := BaseURLFor(cfg.Env)
		if err != nil {
			return nil, err
		}
		baseURL = u
	}

	c := &Client{
		baseURL: baseURL,
		orgIDs:  cfg.OrgIDs,
		debug:   cfg.Debug,
		logger:  logger,
		metrics: metrics,
		tracer:  otel.Tracer("zuora-client"),
	}

	o := options{
		baseHTTPClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(&o)
	}
	base := o.baseHTTPClient

	credentials := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     baseURL + "/oauth/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	c.httpClient = credentials.Client(tokenCtx)
	c.httpClient.Timeout = cfg.Timeout

	return c, nil
}

// BaseURL 接続先のベースURL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do JSONリクエストを送信し、レスポンスをoutにデコードする
func (c *Client) do(ctx context.Context, operation, path string, in, out interface{}) (err error) {
	ctx, span := c.tracer.Start(ctx, "zuora."+operation, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	start := time.Now()
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "failure"
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
		}
		if c.metrics != nil {
			c.metrics.RecordGatewayCall(ctx, operation, outcome, time.Since(start).Seconds())
		}
	}()

	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", operation, err)
	}
	trackID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Zuora-Track-Id", trackID)
	if c.orgIDs != "" {
		req.Header.Set("Zuora-Org-Ids", c.orgIDs)
	}
	span.SetAttributes(
		attribute.String("zuora.track_id", trackID),
		attribute.String("http.url", req.URL.String()),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return fmt.Errorf("%w: authentication failed: %s", billing.ErrGatewayRejected, retrieveErr.Error())
		}
		return fmt.Errorf("%w: %s: %v", billing.ErrGatewayUnavailable, operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read %s response: %v", billing.ErrGatewayUnavailable, operation, err)
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if c.debug && c.logger != nil {
		c.logger.Debug(ctx, "Zuora API call", map[string]interface{}{
			"operation":   operation,
			"path":        path,
			"status_code": resp.StatusCode,
			"track_id":    trackID,
			"response":    string(respBody),
		})
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return rejection(operation, resp.StatusCode, respBody)
	}

	var envelope commonResponse
	if err := json.Unmarshal(respBody, &envelope); err == nil && envelope.Success != nil && !*envelope.Success {
		return rejection(operation, resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", operation, err)
		}
	}
	return nil
}

// rejection エラーレスポンスをbilling.ErrGatewayRejectedに変換
func rejection(operation string, status int, body []byte) error {
	var envelope commonResponse
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Reasons) > 0 {
		msgs := make([]string, 0, len(envelope.Reasons))
		for _, r := range envelope.Reasons {
			msgs = append(msgs, fmt.Sprintf("[%v] %s", r.Code, r.Message))
		}
		return fmt.Errorf("%w: %s (status %d): %s", billing.ErrGatewayRejected, operation, status, strings.Join(msgs, "; "))
	}
	return fmt.Errorf("%w: %s (status %d)", billing.ErrGatewayRejected, operation, status)
}
