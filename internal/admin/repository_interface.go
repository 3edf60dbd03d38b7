package admin

import (
	"context"

	"ledgerdash/internal/ledger"
)

type Repository interface {
	CreateUser(ctx context.Context, req CreateUserRequest, token string) error
	UpdateUser(ctx context.Context, userID int, req UpdateUserRequest, token string) (*ledger.User, error)
	DeleteUser(ctx context.Context, userID int, token string) error
	SendNotification(ctx context.Context, req NotificationRequest, token string) error
	SyncAll(ctx context.Context, token string) (*SyncResult, error)
}
