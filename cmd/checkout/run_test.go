package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zuora-checkout/internal/infrastructure/config"
)

// sessionLog テスト用サーバーが受け取った決済セッション作成リクエスト
type sessionLog struct {
	mu     sync.Mutex
	bodies []map[string]interface{}
}

func (l *sessionLog) add(body map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bodies = append(l.bodies, body)
}

func (l *sessionLog) all() []map[string]interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]map[string]interface{}(nil), l.bodies...)
}

// fakeCheckoutServer /configと/create-payment-sessionを返すテスト用サーバー
func fakeCheckoutServer(t *testing.T, configBody string, sessionStatus int) (*httptest.Server, *sessionLog) {
	t.Helper()
	sessions := &sessionLog{}

	mux := http.NewServeMux()
	mux.HandleFunc("/config", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, configBody)
	})
	mux.HandleFunc("/create-payment-session", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		sessions.add(body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(sessionStatus)
		if sessionStatus == http.StatusOK {
			_, _ = io.WriteString(w, `"tok123"`)
			return
		}
		_, _ = io.WriteString(w, `{"error":"gateway_rejected"}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, sessions
}

func driverConfig(baseURL string) *config.DriverConfig {
	return &config.DriverConfig{
		BaseURL:  baseURL,
		Locale:   "en",
		Region:   "US",
		Currency: "USD",
		Amount:   decimal.RequireFromString("36.00"),
		Timeout:  5 * time.Second,
		Customer: config.CustomerConfig{
			FirstName: "John",
			LastName:  "Doe",
			Address:   "123 Main St",
			City:      "Denver",
			State:     "CO",
			Country:   "United States",
			Zip:       "80201",
			Email:     "test@zuora.io",
		},
	}
}

func defaultRunOptions() *runOptions {
	return &runOptions{
		method:     "creditcard",
		simulate:   "success",
		selector:   "#zuora-payment-form",
		outputJSON: true,
	}
}

func decodeSummary(t *testing.T, out *bytes.Buffer) runSummary {
	t.Helper()
	var summary runSummary
	require.NoError(t, json.Unmarshal(out.Bytes(), &summary))
	return summary
}

func TestNewRootCmd(t *testing.T) {
	root := newRootCmd()
	assert.Equal(t, "checkout", root.Use)

	run, _, err := root.Find([]string{"run"})
	require.NoError(t, err)
	assert.Equal(t, "run", run.Name())

	for _, name := range []string{"base-url", "method", "simulate", "payment-id", "selector", "json", "no-color"} {
		assert.NotNil(t, run.Flags().Lookup(name), "missing flag: %s", name)
	}
	assert.Equal(t, "creditcard", run.Flags().Lookup("method").DefValue)
	assert.Equal(t, "success", run.Flags().Lookup("simulate").DefValue)
}

func TestRunCheckout(t *testing.T) {
	t.Run("正常系: 決済完了で完了ページへ遷移", func(t *testing.T) {
		srv, sessions := fakeCheckoutServer(t, `{"publishableKey":"k","profile":"p1"}`, http.StatusOK)
		opts := defaultRunOptions()
		opts.paymentID = "abc"

		var out, errOut bytes.Buffer
		err := runCheckout(context.Background(), driverConfig(srv.URL), opts, &out, &errOut)
		require.NoError(t, err)

		summary := decodeSummary(t, &out)
		assert.True(t, summary.Success)
		assert.Equal(t, srv.URL+"/return.html?pid=abc", summary.Redirect)

		bodies := sessions.all()
		require.Len(t, bodies, 1)
		assert.Equal(t, "creditcard", bodies[0]["paymentMethodType"])
		assert.Equal(t, "John", bodies[0]["firstName"])
		assert.Equal(t, "36.00", bodies[0]["amount"])
	})

	t.Run("異常系: 拒否された決済は通知して失敗", func(t *testing.T) {
		srv, _ := fakeCheckoutServer(t, `{"publishableKey":"k","profile":"p1"}`, http.StatusOK)
		opts := defaultRunOptions()
		opts.simulate = "fail"

		var out bytes.Buffer
		err := runCheckout(context.Background(), driverConfig(srv.URL), opts, &out, io.Discard)
		assert.EqualError(t, err, "Payment fail: declined")

		summary := decodeSummary(t, &out)
		assert.False(t, summary.Success)
		assert.Equal(t, "Payment fail: declined", summary.Alert)
	})

	t.Run("異常系: 決済セッション作成が拒否された", func(t *testing.T) {
		srv, _ := fakeCheckoutServer(t, `{"publishableKey":"k","profile":"p1"}`, http.StatusBadGateway)

		var out bytes.Buffer
		err := runCheckout(context.Background(), driverConfig(srv.URL), defaultRunOptions(), &out, io.Discard)
		require.Error(t, err)

		summary := decodeSummary(t, &out)
		assert.Contains(t, summary.Alert, "payment session rejected")
	})

	t.Run("異常系: profileがない場合は中断", func(t *testing.T) {
		srv, sessions := fakeCheckoutServer(t, `{"publishableKey":"k","profile":""}`, http.StatusOK)

		var out, errOut bytes.Buffer
		err := runCheckout(context.Background(), driverConfig(srv.URL), defaultRunOptions(), &out, &errOut)
		require.Error(t, err)

		summary := decodeSummary(t, &out)
		assert.False(t, summary.Success)
		assert.Contains(t, summary.Error, "profile")
		assert.Empty(t, sessions.all())
		assert.Contains(t, errOut.String(), "Aborting initialization")
	})

	t.Run("異常系: マウント先が不正", func(t *testing.T) {
		srv, _ := fakeCheckoutServer(t, `{"publishableKey":"k","profile":"p1"}`, http.StatusOK)
		opts := defaultRunOptions()
		opts.selector = "zuora-payment-form"

		var out bytes.Buffer
		err := runCheckout(context.Background(), driverConfig(srv.URL), opts, &out, io.Discard)
		require.Error(t, err)
		assert.Equal(t, errPaymentNotCompleted.Error(), decodeSummary(t, &out).Error)
	})

	t.Run("異常系: 不明な結果", func(t *testing.T) {
		opts := defaultRunOptions()
		opts.simulate = "maybe"

		err := runCheckout(context.Background(), driverConfig("http://localhost:8888"), opts, io.Discard, io.Discard)
		assert.Error(t, err)
	})
}

func TestReport_Text(t *testing.T) {
	tests := []struct {
		name    string
		summary runSummary
		want    string
	}{
		{"成功", runSummary{Success: true, Redirect: "http://localhost:8888/return.html?pid=abc"}, "Payment complete: http://localhost:8888/return.html?pid=abc"},
		{"通知", runSummary{Alert: "Payment fail: declined", Error: "Payment fail: declined"}, "Payment fail: declined"},
		{"中断", runSummary{Error: "required configuration `profile` is missing"}, "Checkout aborted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, report(&out, tt.summary, false))
			assert.Contains(t, out.String(), tt.want)
		})
	}
}
