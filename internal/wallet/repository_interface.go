package wallet

import (
	"context"

	"ledgerdash/internal/ledger"
)

// Repository reads and mutates the ledger through the upstream services.
type Repository interface {
	GetUser(ctx context.Context, userID int, token string) (*ledger.User, error)
	ListUsers(ctx context.Context, token string) ([]ledger.User, error)
	TopUp(ctx context.Context, userID int, amount ledger.Amount, token string) error
	CreateTransaction(ctx context.Context, userID int, txType string, amount ledger.Amount, token string) error
	ListTransactions(ctx context.Context, token string) ([]ledger.Transaction, error)
	ListNotifications(ctx context.Context, token string) ([]ledger.Notification, error)
}
