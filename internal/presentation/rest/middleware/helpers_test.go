package middleware

import (
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	otelinfra "zuora-checkout/internal/infrastructure/observability/otel"
)

func newObservedLogger() (*otelinfra.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return otelinfra.NewLoggerWithCore(noop.NewTracerProvider().Tracer("test"), core), logs
}
