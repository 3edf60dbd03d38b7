package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerdash/internal/config"
)

func testConfig(url string) *config.Config {
	return &config.Config{
		DashboardURL:      url,
		DashboardToken:    "tok",
		RequestTimeout:    time.Second,
		Locale:            "id-ID",
		CurrencyPrefix:    "Rp",
		AlertDismissDelay: 10 * time.Millisecond,
		ToastDelay:        time.Second,
	}
}

func backend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{
			"user": {"id": 7, "full_name": "Ani", "balance": 100000},
			"transactions": [{"id": 1, "type": "credit", "amount": 100000, "created_at": "2024-05-01"}],
			"users": [],
			"notifications": [{"id": 1, "message": "Welcome back"}, {"id": 2, "message": "Report ready"}],
			"charts": {"transactions": {"element": "transactionChart", "type": "doughnut", "title": "Transactions (Credit vs Debit)", "labels": ["Credit", "Debit"], "datasets": [{"data": [1, 0]}]}}
		}`))
	})
	mux.HandleFunc("/topup", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["amount"] == "abc" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"ok":false,"error":"Invalid amount"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"message":"Top-up successful","balance":150000}`))
	})
	mux.HandleFunc("/transactions", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true,"message":"Transaction successful","balance":90000,
			"transactions":[{"id":2,"type":"debit","amount":10000},{"id":1,"type":"credit","amount":100000,"created_at":"2024-05-01"}]}`))
	})
	mux.HandleFunc("/request-report", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true,"message":"Report created"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_Show(t *testing.T) {
	srv := backend(t)
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), testConfig(srv.URL), []string{"show"}, &out))

	assert.Contains(t, out.String(), "Balance: Rp 100.000")
	assert.Contains(t, out.String(), "Credit")
	assert.Contains(t, out.String(), "Transactions (Credit vs Debit)")
}

func TestRun_TopUp(t *testing.T) {
	srv := backend(t)
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), testConfig(srv.URL), []string{"topup", "50000"}, &out))

	assert.Contains(t, out.String(), "✅ Top-up successful\n")
	assert.Contains(t, out.String(), "Balance: Rp 150.000")
}

func TestRun_TopUpRejected(t *testing.T) {
	srv := backend(t)
	var out bytes.Buffer

	err := run(context.Background(), testConfig(srv.URL), []string{"topup", "abc"}, &out)

	assert.ErrorIs(t, err, errFailed)
	assert.ErrorContains(t, err, "Invalid amount")
	assert.Contains(t, out.String(), "❌ Invalid amount\n")
	assert.Contains(t, out.String(), "Balance: Rp 100.000")
}

func TestRun_Transaction(t *testing.T) {
	srv := backend(t)
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), testConfig(srv.URL), []string{"tx", "debit", "10000"}, &out))

	text := out.String()
	assert.Contains(t, text, "✅ Transaction successful")
	assert.Contains(t, text, "Balance: Rp 90.000")
	assert.Contains(t, text, "Rp 10.000")
	assert.Contains(t, text, "—")
}

func TestRun_Report(t *testing.T) {
	srv := backend(t)
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), testConfig(srv.URL), []string{"report"}, &out))

	assert.Equal(t, "✅ Report created\n", out.String())
}

func TestRun_ReportRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/dashboard" {
			_, _ = w.Write([]byte(`{"user":{"id":7,"balance":0},"transactions":[]}`))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"ok":false,"error":"API Gateway unreachable"}`))
	}))
	defer srv.Close()
	var out bytes.Buffer

	err := run(context.Background(), testConfig(srv.URL), []string{"report"}, &out)

	assert.ErrorIs(t, err, errFailed)
	assert.Equal(t, "❌ API Gateway unreachable\n", out.String())
}

func TestRun_Watch(t *testing.T) {
	srv := backend(t)
	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, run(ctx, testConfig(srv.URL), []string{"watch"}, &out))

	text := out.String()
	assert.Contains(t, text, "[!] Welcome back")
	assert.Contains(t, text, "[!] Report ready")
	assert.Contains(t, text, "alerts dismissed")
}

func TestRun_Usage(t *testing.T) {
	srv := backend(t)

	for _, args := range [][]string{nil, {"topup"}, {"tx", "credit"}, {"nope"}} {
		err := run(context.Background(), testConfig(srv.URL), args, &bytes.Buffer{})
		assert.ErrorIs(t, err, errUsage, "args %v", args)
	}
}

func TestRun_BackendDown(t *testing.T) {
	err := run(context.Background(), testConfig("http://127.0.0.1:1"), []string{"show"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "load dashboard")
}
