package wallet

import (
	"context"
	"net/http"

	"ledgerdash/internal/api"
	"ledgerdash/internal/auth"
	"ledgerdash/internal/charts"
	"ledgerdash/internal/ledger"
	"ledgerdash/internal/logger"
	"ledgerdash/internal/metrics"
)

var (
	ErrInvalidAmount    = api.NewError(http.StatusBadRequest, "Invalid amount")
	ErrPermissionDenied = api.NewError(http.StatusForbidden, "Permission denied")
)

type Service interface {
	TopUp(ctx context.Context, who auth.Identity, amount ledger.Amount) (*Outcome, error)
	CreateTransaction(ctx context.Context, who auth.Identity, req TransactionRequest) (*Outcome, error)
	Dashboard(ctx context.Context, who auth.Identity) (*api.DashboardResponse, error)
	Notifications(ctx context.Context, who auth.Identity) []ledger.Notification
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) TopUp(ctx context.Context, who auth.Identity, amount ledger.Amount) (*Outcome, error) {
	if !amount.Positive() {
		metrics.RecordWalletTopUp(metrics.Outcome(false))
		return nil, ErrInvalidAmount
	}

	if err := s.repo.TopUp(ctx, who.UserID, amount, who.Token); err != nil {
		metrics.RecordWalletTopUp(metrics.Outcome(false))
		return nil, err
	}
	metrics.RecordWalletTopUp(metrics.Outcome(true))

	return &Outcome{
		Message: "Top-up successful",
		Balance: s.balance(ctx, who.UserID, who.Token),
	}, nil
}

func (s *service) CreateTransaction(ctx context.Context, who auth.Identity, req TransactionRequest) (*Outcome, error) {
	if errs := api.Validate(req); len(errs) > 0 {
		return nil, api.NewError(http.StatusBadRequest, api.Summary(errs))
	}
	if !req.Amount.Positive() {
		return nil, ErrInvalidAmount
	}

	userID := req.UserID
	if userID == 0 {
		userID = who.UserID
	}
	if userID != who.UserID && !who.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	if err := s.repo.CreateTransaction(ctx, userID, req.Type, req.Amount, who.Token); err != nil {
		return nil, err
	}
	metrics.RecordTransactionCreated(req.Type)

	out := &Outcome{
		Message: "Transaction successful",
		Balance: s.balance(ctx, userID, who.Token),
	}

	txs, err := s.repo.ListTransactions(ctx, who.Token)
	if err != nil {
		logger.WithError(err).Warn("transaction list unavailable after create", "user_id", userID)
		return out, nil
	}
	out.Transactions = ownedBy(txs, userID)
	return out, nil
}

func (s *service) Dashboard(ctx context.Context, who auth.Identity) (*api.DashboardResponse, error) {
	user, err := s.repo.GetUser(ctx, who.UserID, who.Token)
	if err != nil {
		return nil, err
	}

	resp := &api.DashboardResponse{
		User:          *user,
		Transactions:  []ledger.Transaction{},
		Users:         []ledger.User{},
		Notifications: []ledger.Notification{},
	}

	if txs, err := s.repo.ListTransactions(ctx, who.Token); err != nil {
		logger.WithError(err).Warn("dashboard transactions unavailable", "user_id", who.UserID)
	} else if who.IsAdmin() {
		resp.Transactions = txs
	} else {
		resp.Transactions = ownedBy(txs, who.UserID)
	}

	if ns, err := s.repo.ListNotifications(ctx, who.Token); err != nil {
		logger.WithError(err).Warn("dashboard notifications unavailable", "user_id", who.UserID)
	} else if ns != nil {
		resp.Notifications = ns
	}

	if who.IsAdmin() {
		if users, err := s.repo.ListUsers(ctx, who.Token); err != nil {
			logger.WithError(err).Warn("dashboard users unavailable")
		} else if users != nil {
			resp.Users = users
		}
	}

	resp.Charts = charts.Build(resp.Transactions, resp.Users)
	return resp, nil
}

// Notifications never fails; an unavailable notification service reads as
// an empty list.
func (s *service) Notifications(ctx context.Context, who auth.Identity) []ledger.Notification {
	ns, err := s.repo.ListNotifications(ctx, who.Token)
	if err != nil {
		logger.WithError(err).Warn("notifications unavailable", "user_id", who.UserID)
		return []ledger.Notification{}
	}
	if ns == nil {
		return []ledger.Notification{}
	}
	return ns
}

// balance re-reads the user after a mutation. A failed read leaves the
// balance out of the reply rather than failing a committed mutation.
func (s *service) balance(ctx context.Context, userID int, token string) *ledger.Amount {
	u, err := s.repo.GetUser(ctx, userID, token)
	if err != nil {
		logger.WithError(err).Warn("balance refresh failed", "user_id", userID)
		return nil
	}
	return u.Balance
}

func ownedBy(txs []ledger.Transaction, userID int) []ledger.Transaction {
	out := make([]ledger.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}
