package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics メトリクス定義
type Metrics struct {
	// リクエスト数
	RequestCount metric.Int64Counter

	// レスポンス時間
	ResponseTime metric.Float64Histogram

	// エラー率
	ErrorCount metric.Int64Counter

	// /config の配信数
	ConfigRequestCount metric.Int64Counter

	// 決済セッション作成数（結果別）
	PaymentSessionCount metric.Int64Counter

	// 課金ゲートウェイ呼び出し数
	GatewayCallCount metric.Int64Counter

	// 課金ゲートウェイ呼び出し時間
	GatewayCallDuration metric.Float64Histogram
}

// NewMetrics 新しいMetricsを作成
func NewMetrics(meterName string) (*Metrics, error) {
	meter := otel.Meter(meterName)

	requestCount, err := meter.Int64Counter(
		"requests_total",
		metric.WithDescription("Total number of requests"),
	)
	if err != nil {
		return nil, err
	}

	responseTime, err := meter.Float64Histogram(
		"response_time_seconds",
		metric.WithDescription("Response time in seconds"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return nil, err
	}

	configRequestCount, err := meter.Int64Counter(
		"checkout_config_requests_total",
		metric.WithDescription("Total number of checkout configuration requests"),
	)
	if err != nil {
		return nil, err
	}

	paymentSessionCount, err := meter.Int64Counter(
		"payment_sessions_total",
		metric.WithDescription("Total number of payment session creations by outcome"),
	)
	if err != nil {
		return nil, err
	}

	gatewayCallCount, err := meter.Int64Counter(
		"billing_gateway_calls_total",
		metric.WithDescription("Total number of billing gateway calls"),
	)
	if err != nil {
		return nil, err
	}

	gatewayCallDuration, err := meter.Float64Histogram(
		"billing_gateway_call_seconds",
		metric.WithDescription("Billing gateway call duration in seconds"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCount:        requestCount,
		ResponseTime:        responseTime,
		ErrorCount:          errorCount,
		ConfigRequestCount:  configRequestCount,
		PaymentSessionCount: paymentSessionCount,
		GatewayCallCount:    gatewayCallCount,
		GatewayCallDuration: gatewayCallDuration,
	}, nil
}

// RecordRequest リクエストを記録
func (m *Metrics) RecordRequest(ctx context.Context, method, path string) {
	m.RequestCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordResponseTime レスポンス時間を記録
func (m *Metrics) RecordResponseTime(ctx context.Context, method, path string, duration float64) {
	m.ResponseTime.Record(ctx, duration,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordError エラーを記録
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	m.ErrorCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("error_type", errorType),
		),
	)
}

// RecordConfigRequest /config の配信を記録
func (m *Metrics) RecordConfigRequest(ctx context.Context, profile string) {
	m.ConfigRequestCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("profile", profile),
		),
	)
}

// RecordPaymentSession 決済セッション作成結果を記録
func (m *Metrics) RecordPaymentSession(ctx context.Context, paymentMethodType, outcome string) {
	m.PaymentSessionCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("payment_method_type", paymentMethodType),
			attribute.String("outcome", outcome),
		),
	)
}

// RecordGatewayCall 課金ゲートウェイ呼び出しを記録
func (m *Metrics) RecordGatewayCall(ctx context.Context, operation, outcome string, duration float64) {
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	)
	m.GatewayCallCount.Add(ctx, 1, attrs)
	m.GatewayCallDuration.Record(ctx, duration, attrs)
}
