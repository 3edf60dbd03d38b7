package server

import (
	"context"
	"encoding/json"
	"strings"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerdash/internal/auth"
	"ledgerdash/internal/config"
	"ledgerdash/internal/dashboard"
	"ledgerdash/internal/gateway"
	"ledgerdash/internal/money"
	"ledgerdash/internal/view"
)

// fakeGateway stands in for the API gateway with a single user whose
// balance moves with top-ups and transactions.
type fakeGateway struct {
	mu      sync.Mutex
	balance float64
	txs     []map[string]interface{}
}

func (f *fakeGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var body map[string]interface{}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	switch r.Method + " " + r.URL.Path {
	case "GET /users/7":
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": 7, "full_name": "Ani", "role": "user", "balance": f.balance})
	case "POST /users/7/topup":
		f.balance += body["amount"].(float64)
		writeJSON(w, http.StatusOK, map[string]interface{}{"message": "ok"})
	case "POST /transactions":
		amount := body["amount"].(float64)
		if body["type"] == "debit" {
			if amount > f.balance {
				writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "Insufficient balance"})
				return
			}
			amount = -amount
		}
		f.balance += amount
		f.txs = append([]map[string]interface{}{{
			"id": len(f.txs) + 1, "user_id": 7, "type": body["type"], "amount": body["amount"],
			"created_at": "2024-05-01T10:00:00",
		}}, f.txs...)
		writeJSON(w, http.StatusCreated, map[string]interface{}{"id": len(f.txs)})
	case "GET /transactions":
		writeJSON(w, http.StatusOK, f.txs)
	case "GET /notifications":
		writeJSON(w, http.StatusOK, []interface{}{})
	case "POST /reports":
		writeJSON(w, http.StatusCreated, map[string]interface{}{"id": 1})
	case "POST /users":
		writeJSON(w, http.StatusCreated, map[string]interface{}{"id": 8})
	case "DELETE /users/8":
		w.WriteHeader(http.StatusNoContent)
	case "POST /sync/all":
		writeJSON(w, http.StatusOK, map[string]interface{}{"synced": 2})
	default:
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"error": "not found"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type surfaces struct {
	toasts []string
	hidden []string
}

func (s *surfaces) Toast(message string, _ bool) { s.toasts = append(s.toasts, message) }
func (s *surfaces) Show(string)                  {}
func (s *surfaces) Hide(id string)               { s.hidden = append(s.hidden, id) }

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret",
		RateLimitRPS:   100,
		RateLimitBurst: 100,
		InFlightTTL:    time.Second,
	}
}

func startStack(t *testing.T) (*dashboard.Controller, *view.State, *surfaces) {
	t.Helper()

	upstream := httptest.NewServer(&fakeGateway{balance: 100000})
	t.Cleanup(upstream.Close)

	srv := New(testConfig(), gateway.New(upstream.URL, "svc", time.Second), nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	token, err := auth.GenerateAccessToken(7, "ani@example.com", "user", "test-secret")
	require.NoError(t, err)

	state := view.NewState(money.Rupiah())
	ui := &surfaces{}
	ctrl := dashboard.New(dashboard.NewClient(ts.URL, token, time.Second), state, ui, ui)
	return ctrl, state, ui
}

func TestServer_Health(t *testing.T) {
	srv := New(testConfig(), gateway.New("http://127.0.0.1:1", "svc", time.Second), nil)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestServer_Metrics(t *testing.T) {
	srv := New(testConfig(), gateway.New("http://127.0.0.1:1", "svc", time.Second), nil)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ledgerdash_")
}

func TestServer_RequiresLogin(t *testing.T) {
	srv := New(testConfig(), gateway.New("http://127.0.0.1:1", "svc", time.Second), nil)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/topup", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServer_DashboardFlow(t *testing.T) {
	ctrl, state, ui := startStack(t)
	ctx := context.Background()

	_, err := ctrl.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Rp 100.000", state.BalanceText())
	assert.Empty(t, state.Rows())

	res := ctrl.SubmitTopUp(ctx, "50000")
	assert.True(t, res.OK)
	assert.Equal(t, "Rp 150.000", state.BalanceText())

	res = ctrl.SubmitTransaction(ctx, "debit", "20000")
	assert.True(t, res.OK)
	assert.Equal(t, "Rp 130.000", state.BalanceText())
	rows := state.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Debit", rows[0].Type)
	assert.Equal(t, "Rp 20.000", rows[0].Amount)

	res = ctrl.SubmitTransaction(ctx, "debit", "999999")
	assert.False(t, res.OK)
	assert.Equal(t, "Rp 130.000", state.BalanceText())
	assert.Len(t, state.Rows(), 1)

	res = ctrl.SubmitTopUp(ctx, "0")
	assert.False(t, res.OK)

	res = ctrl.RequestReport(ctx)
	assert.True(t, res.OK)

	assert.Equal(t, []string{
		"✅ Top-up successful",
		"✅ Transaction successful",
		"❌ Insufficient balance",
		"❌ Invalid amount",
		"✅ Report created",
	}, ui.toasts)
	assert.Equal(t, []string{
		dashboard.TopUpModal,
		dashboard.TransactionModal,
		dashboard.TransactionModal,
		dashboard.TopUpModal,
	}, ui.hidden)
}

func TestServer_GatewayDown(t *testing.T) {
	srv := New(testConfig(), gateway.New("http://127.0.0.1:1", "svc", time.Second), nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	token, err := auth.GenerateAccessToken(7, "ani@example.com", "user", "test-secret")
	require.NoError(t, err)
	ui := &surfaces{}
	ctrl := dashboard.New(dashboard.NewClient(ts.URL, token, time.Second), view.NewState(money.Rupiah()), ui, ui)

	res := ctrl.RequestReport(context.Background())

	assert.False(t, res.OK)
	assert.Equal(t, "API Gateway unreachable", res.Message)
}

func TestServer_AdminRoutes(t *testing.T) {
	upstream := httptest.NewServer(&fakeGateway{})
	t.Cleanup(upstream.Close)
	h := New(testConfig(), gateway.New(upstream.URL, "svc", time.Second), nil).Handler()

	adminToken, err := auth.GenerateAccessToken(1, "root@example.com", "admin", "test-secret")
	require.NoError(t, err)
	userToken, err := auth.GenerateAccessToken(7, "ani@example.com", "user", "test-secret")
	require.NoError(t, err)

	send := func(method, path, body, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	user := `{"full_name":"Budi","email":"budi@example.com","password":"secret1"}`

	w := send(http.MethodPost, "/users", user, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = send(http.MethodPost, "/users", user, adminToken)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "User added")

	w = send(http.MethodDelete, "/users/8", "", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = send(http.MethodPost, "/sync/all", "", userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = send(http.MethodPost, "/sync/all", "", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"synced":2}`, w.Body.String())
}
