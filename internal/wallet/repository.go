package wallet

import (
	"context"
	"fmt"
	"net/http"

	"ledgerdash/internal/api"
	"ledgerdash/internal/gateway"
	"ledgerdash/internal/ledger"
)

type Gateway interface {
	Get(ctx context.Context, path, token string) (*gateway.Response, error)
	Post(ctx context.Context, path string, payload any, token string) (*gateway.Response, error)
}

type repository struct {
	gw Gateway
}

func NewRepository(gw Gateway) Repository {
	return &repository{gw: gw}
}

func (r *repository) GetUser(ctx context.Context, userID int, token string) (*ledger.User, error) {
	u := &ledger.User{}
	if err := r.get(ctx, fmt.Sprintf("/users/%d", userID), token, "User not found", u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repository) ListUsers(ctx context.Context, token string) ([]ledger.User, error) {
	var users []ledger.User
	if err := r.get(ctx, "/users", token, "Failed to load users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repository) TopUp(ctx context.Context, userID int, amount ledger.Amount, token string) error {
	path := fmt.Sprintf("/users/%d/topup", userID)
	return r.post(ctx, path, topUpPayload{Amount: float64(amount)}, token, "Top-up failed")
}

func (r *repository) CreateTransaction(ctx context.Context, userID int, txType string, amount ledger.Amount, token string) error {
	payload := newTransaction{UserID: userID, Type: txType, Amount: float64(amount)}
	return r.post(ctx, "/transactions", payload, token, "Failed")
}

// ListTransactions returns transactions in the order the transaction service
// sent them.
func (r *repository) ListTransactions(ctx context.Context, token string) ([]ledger.Transaction, error) {
	var txs []ledger.Transaction
	if err := r.get(ctx, "/transactions", token, "Failed to load transactions", &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *repository) ListNotifications(ctx context.Context, token string) ([]ledger.Notification, error) {
	var ns []ledger.Notification
	if err := r.get(ctx, "/notifications", token, "Failed to load notifications", &ns); err != nil {
		return nil, err
	}
	return ns, nil
}

func (r *repository) get(ctx context.Context, path, token, fallback string, into any) error {
	resp, err := r.gw.Get(ctx, path, token)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return api.NewError(resp.StatusCode, resp.ErrorMessage(fallback))
	}
	if err := resp.Decode(into); err != nil {
		return api.NewError(http.StatusBadGateway, err.Error())
	}
	return nil
}

func (r *repository) post(ctx context.Context, path string, payload any, token, fallback string) error {
	resp, err := r.gw.Post(ctx, path, payload, token)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return api.NewError(resp.StatusCode, resp.ErrorMessage(fallback))
	}
	return nil
}
