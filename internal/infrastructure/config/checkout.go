package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// DriverConfig ヘッドレスチェックアウトドライバーの設定
type DriverConfig struct {
	BaseURL       string
	Locale        string
	Region        string
	Currency      string
	Amount        decimal.Decimal
	Timeout       time.Duration
	Customer      CustomerConfig
	OpenTelemetry OpenTelemetryConfig
}

// CustomerConfig 決済セッション作成時に送信する顧客情報
type CustomerConfig struct {
	FirstName string
	LastName  string
	Address   string
	City      string
	State     string
	Country   string
	Zip       string
	Email     string
}

// LoadCheckout ドライバー設定を読み込む
// 顧客情報のデフォルトはデモ用の値
func LoadCheckout() (*DriverConfig, error) {
	_ = godotenv.Load()

	amount, err := decimal.NewFromString(getEnv("CHECKOUT_AMOUNT", "36.00"))
	if err != nil {
		return nil, fmt.Errorf("invalid CHECKOUT_AMOUNT: %w", err)
	}

	cfg := &DriverConfig{
		BaseURL:  getEnv("CHECKOUT_BASE_URL", "http://localhost:8888"),
		Locale:   getEnv("CHECKOUT_LOCALE", "en"),
		Region:   getEnv("CHECKOUT_REGION", "US"),
		Currency: getEnv("CHECKOUT_CURRENCY", "USD"),
		Amount:   amount,
		Timeout:  getEnvAsDuration("CHECKOUT_TIMEOUT", 30*time.Second),
		Customer: CustomerConfig{
			FirstName: getEnv("CUSTOMER_FIRST_NAME", "John"),
			LastName:  getEnv("CUSTOMER_LAST_NAME", "Doe"),
			Address:   getEnv("CUSTOMER_ADDRESS", "123 Main St"),
			City:      getEnv("CUSTOMER_CITY", "Denver"),
			State:     getEnv("CUSTOMER_STATE", "CO"),
			Country:   getEnv("CUSTOMER_COUNTRY", "United States"),
			Zip:       getEnv("CUSTOMER_ZIP", "80201"),
			Email:     getEnv("CUSTOMER_EMAIL", "test@zuora.io"),
		},
		OpenTelemetry: OpenTelemetryConfig{
			Enabled:         getEnvAsBool("OTEL_ENABLED", false),
			ServiceName:     getEnv("OTEL_SERVICE_NAME", "zuora-checkout-driver"),
			ServiceVersion:  getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			OTLPInsecure:    getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			TraceExporter:   getEnv("OTEL_TRACES_EXPORTER", "otlp"),
			MetricsExporter: getEnv("OTEL_METRICS_EXPORTER", "otlp"),
		},
	}

	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid CHECKOUT_BASE_URL: %w", err)
	}
	if !cfg.Amount.IsPositive() {
		return nil, fmt.Errorf("CHECKOUT_AMOUNT must be positive")
	}

	return cfg, nil
}
