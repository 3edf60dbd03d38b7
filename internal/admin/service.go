package admin

import (
	"context"
	"net/http"
	"strings"

	"ledgerdash/internal/api"
	"ledgerdash/internal/auth"
	"ledgerdash/internal/ledger"
	"ledgerdash/internal/logger"
	"ledgerdash/internal/metrics"
)

var (
	ErrAdminOnly        = api.NewError(http.StatusForbidden, "Admin only")
	ErrPermissionDenied = api.NewError(http.StatusForbidden, "Permission denied")
	ErrNotification     = api.NewError(http.StatusBadRequest, "user_id and message are required")
	ErrInvalidUserID    = api.NewError(http.StatusBadRequest, "Invalid user id")
)

type Service interface {
	CreateUser(ctx context.Context, who auth.Identity, req CreateUserRequest) error
	UpdateUser(ctx context.Context, who auth.Identity, userID int, req UpdateUserRequest) (*ledger.User, error)
	DeleteUser(ctx context.Context, who auth.Identity, userID int) error
	SendNotification(ctx context.Context, who auth.Identity, req NotificationRequest) error
	SyncAll(ctx context.Context, who auth.Identity) (*SyncResult, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateUser(ctx context.Context, who auth.Identity, req CreateUserRequest) error {
	if !who.IsAdmin() {
		return ErrAdminOnly
	}
	if errs := api.Validate(req); len(errs) > 0 {
		return api.NewError(http.StatusBadRequest, api.Summary(errs))
	}
	err := s.repo.CreateUser(ctx, req, who.Token)
	record("create_user", err)
	if err == nil {
		logger.Info("user added", "by", who.UserID, "email", req.Email)
	}
	return err
}

// UpdateUser lets admins edit anyone and users edit themselves. Only admins
// may change a role.
func (s *service) UpdateUser(ctx context.Context, who auth.Identity, userID int, req UpdateUserRequest) (*ledger.User, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	if !who.IsAdmin() && (who.UserID != userID || req.Role != nil) {
		return nil, ErrPermissionDenied
	}
	if errs := api.Validate(req); len(errs) > 0 {
		return nil, api.NewError(http.StatusBadRequest, api.Summary(errs))
	}
	u, err := s.repo.UpdateUser(ctx, userID, req, who.Token)
	record("update_user", err)
	return u, err
}

func (s *service) DeleteUser(ctx context.Context, who auth.Identity, userID int) error {
	if !who.IsAdmin() {
		return ErrAdminOnly
	}
	if userID <= 0 {
		return ErrInvalidUserID
	}
	err := s.repo.DeleteUser(ctx, userID, who.Token)
	record("delete_user", err)
	if err == nil {
		logger.Info("user deleted", "by", who.UserID, "user_id", userID)
	}
	return err
}

func (s *service) SendNotification(ctx context.Context, who auth.Identity, req NotificationRequest) error {
	if !who.IsAdmin() {
		return ErrAdminOnly
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.UserID <= 0 || req.Message == "" {
		return ErrNotification
	}
	err := s.repo.SendNotification(ctx, req, who.Token)
	record("send_notification", err)
	return err
}

func (s *service) SyncAll(ctx context.Context, who auth.Identity) (*SyncResult, error) {
	if !who.IsAdmin() {
		return nil, ErrAdminOnly
	}
	res, err := s.repo.SyncAll(ctx, who.Token)
	record("sync_all", err)
	return res, err
}

func record(operation string, err error) {
	metrics.RecordAdminOperation(operation, metrics.Outcome(err == nil))
	if err != nil {
		logger.WithError(err).Warn("admin operation failed", "operation", operation)
	}
}
