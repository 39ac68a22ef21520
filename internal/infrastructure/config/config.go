package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// DefaultProfileID PROFILE_IDが空の場合に/configで返すプロファイル
const DefaultProfileID = "PF-00000002"

// DefaultPaymentGatewayID PAYMENT_GATEWAY_IDが空の場合に使う決済ゲートウェイ
const DefaultPaymentGatewayID = "8a8aa26697aeaa8b0197b17b1cde6ed6"

// Config チェックアウトサーバー全体の設定
type Config struct {
	Server         ServerConfig
	Zuora          ZuoraConfig
	Checkout       CheckoutConfig
	PaymentSession PaymentSessionConfig
	OpenTelemetry  OpenTelemetryConfig
	Environment    string
}

// ServerConfig サーバー設定
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	StaticDir    string
}

// ZuoraConfig Zuora API接続設定
type ZuoraConfig struct {
	ClientID     string
	ClientSecret string
	Env          string
	BaseURL      string // 空の場合はEnvから決定
	OrgIDs       string
	Timeout      time.Duration
	Debug        bool
}

// CheckoutConfig フロントエンドへ公開する設定
type CheckoutConfig struct {
	PublishableKey string
	ProfileID      string
}

// PaymentSessionConfig 決済セッション作成時の設定
type PaymentSessionConfig struct {
	PaymentGatewayID   string
	AuthAmount         decimal.Decimal
	ProcessPayment     bool
	StorePaymentMethod bool
}

// OpenTelemetryConfig OpenTelemetry設定
type OpenTelemetryConfig struct {
	Enabled         bool
	ServiceName     string
	ServiceVersion  string
	OTLPEndpoint    string
	OTLPInsecure    bool
	TraceExporter   string // "otlp", "stdout"
	MetricsExporter string // "otlp", "stdout"
}

// requiredKeys 起動に必須の環境変数
var requiredKeys = []string{
	"CLIENT_ID",
	"CLIENT_SECRET",
	"ZUORA_ENV",
	"ORG_IDS",
	"PAYMENT_GATEWAY_ID",
	"PUBLISHABLE_KEY",
	"PROFILE_ID",
}

// Load 設定を読み込む
func Load() (*Config, error) {
	// .envファイルを読み込む（存在しない場合は無視）
	// 既に設定されている環境変数は上書きしない
	_ = godotenv.Load()

	if missing := missingKeys(requiredKeys); len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration variables: %s", strings.Join(missing, ", "))
	}

	authAmount, err := decimal.NewFromString(getEnv("SESSION_AUTH_AMOUNT", "0.01"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_AUTH_AMOUNT: %w", err)
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnvAsInt("SERVER_PORT", 8888),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			StaticDir:    getEnv("STATIC_DIR", "public"),
		},
		Zuora: ZuoraConfig{
			ClientID:     getEnv("CLIENT_ID", ""),
			ClientSecret: getEnv("CLIENT_SECRET", ""),
			Env:          getEnv("ZUORA_ENV", ""),
			BaseURL:      getEnv("ZUORA_BASE_URL", ""),
			OrgIDs:       getEnv("ORG_IDS", ""),
			Timeout:      getEnvAsDuration("ZUORA_TIMEOUT", 30*time.Second),
			Debug:        getEnvAsBool("ZUORA_DEBUG", true),
		},
		Checkout: CheckoutConfig{
			PublishableKey: getEnv("PUBLISHABLE_KEY", ""),
			ProfileID:      getEnv("PROFILE_ID", DefaultProfileID),
		},
		PaymentSession: PaymentSessionConfig{
			PaymentGatewayID:   getEnv("PAYMENT_GATEWAY_ID", DefaultPaymentGatewayID),
			AuthAmount:         authAmount,
			ProcessPayment:     getEnvAsBool("SESSION_PROCESS_PAYMENT", false),
			StorePaymentMethod: getEnvAsBool("SESSION_STORE_PAYMENT_METHOD", true),
		},
		OpenTelemetry: OpenTelemetryConfig{
			Enabled:         getEnvAsBool("OTEL_ENABLED", false),
			ServiceName:     getEnv("OTEL_SERVICE_NAME", "zuora-checkout"),
			ServiceVersion:  getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			OTLPInsecure:    getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			TraceExporter:   getEnv("OTEL_TRACES_EXPORTER", "otlp"),
			MetricsExporter: getEnv("OTEL_METRICS_EXPORTER", "otlp"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate 設定の検証
func (c *Config) validate() error {
	if !strings.EqualFold(c.Zuora.Env, "CSBX") && c.Zuora.BaseURL == "" {
		return fmt.Errorf("unsupported ZUORA_ENV: %s. Only 'CSBX' is supported", c.Zuora.Env)
	}
	if c.PaymentSession.AuthAmount.IsNegative() {
		return fmt.Errorf("SESSION_AUTH_AMOUNT must not be negative")
	}
	return nil
}

// Address 待ち受けアドレスを返す
func (c *ServerConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// missingKeys 未設定または空白のみの環境変数を列挙
func missingKeys(keys []string) []string {
	var missing []string
	for _, k := range keys {
		if strings.TrimSpace(os.Getenv(k)) == "" {
			missing = append(missing, k)
		}
	}
	return missing
}

// getEnv 環境変数を取得（デフォルト値付き）
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt 環境変数を整数として取得
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool 環境変数を真偽値として取得
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration 環境変数を時間として取得
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
