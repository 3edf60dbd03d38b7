package wallet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerdash/internal/api"
	"ledgerdash/internal/gateway"
	"ledgerdash/internal/ledger"
)

func setupUpstream(t *testing.T, handler http.HandlerFunc) Repository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRepository(gateway.New(srv.URL, "svc", time.Second))
}

func TestRepository_GetUser(t *testing.T) {
	repo := setupUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/7", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":7,"full_name":"Ani","balance":125000}`))
	})

	u, err := repo.GetUser(context.Background(), 7, "tok")

	require.NoError(t, err)
	assert.Equal(t, "Ani", u.FullName)
	assert.Equal(t, 125000.0, u.BalanceOrZero())
}

func TestRepository_TopUp(t *testing.T) {
	repo := setupUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/7/topup", r.URL.Path)
		var body map[string]float64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 5000.0, body["amount"])
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})

	require.NoError(t, repo.TopUp(context.Background(), 7, 5000, "tok"))
}

func TestRepository_CreateTransaction_UpstreamError(t *testing.T) {
	repo := setupUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 7.0, body["user_id"])
		assert.Equal(t, "debit", body["type"])
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Insufficient balance"}`))
	})

	err := repo.CreateTransaction(context.Background(), 7, "debit", 99999, "tok")

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Insufficient balance", apiErr.Message)
}

func TestRepository_ListTransactions_KeepsOrder(t *testing.T) {
	repo := setupUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":3,"user_id":7,"type":"debit","amount":1},{"id":1,"user_id":7,"type":"credit","amount":"2"}]`))
	})

	txs, err := repo.ListTransactions(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, []ledger.ID{"3", "1"}, []ledger.ID{txs[0].ID, txs[1].ID})
	assert.Equal(t, ledger.Amount(2), txs[1].Amount)
}

func TestRepository_ListNotifications_BadJSON(t *testing.T) {
	repo := setupUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	})

	_, err := repo.ListNotifications(context.Background(), "tok")

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestRepository_ListUsers_Forbidden(t *testing.T) {
	repo := setupUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := repo.ListUsers(context.Background(), "tok")

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "Empty response from upstream", apiErr.Message)
}
