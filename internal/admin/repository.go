package admin

import (
	"context"
	"fmt"
	"net/http"

	"ledgerdash/internal/api"
	"ledgerdash/internal/gateway"
	"ledgerdash/internal/ledger"
)

type Gateway interface {
	Post(ctx context.Context, path string, payload any, token string) (*gateway.Response, error)
	Put(ctx context.Context, path string, payload any, token string) (*gateway.Response, error)
	Delete(ctx context.Context, path, token string) (*gateway.Response, error)
}

type repository struct {
	gw Gateway
}

func NewRepository(gw Gateway) Repository {
	return &repository{gw: gw}
}

func (r *repository) CreateUser(ctx context.Context, req CreateUserRequest, token string) error {
	resp, err := r.gw.Post(ctx, "/users", req, token)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return api.NewError(resp.StatusCode, resp.ErrorMessage("Failed to add user"))
	}
	return nil
}

// UpdateUser returns the user as the user service echoes it, or nil when
// the reply carries none.
func (r *repository) UpdateUser(ctx context.Context, userID int, req UpdateUserRequest, token string) (*ledger.User, error) {
	resp, err := r.gw.Put(ctx, fmt.Sprintf("/users/%d", userID), req, token)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, api.NewError(resp.StatusCode, resp.ErrorMessage("Failed to update"))
	}
	var body updatedUser
	if err := resp.Decode(&body); err != nil {
		return nil, nil
	}
	return body.User, nil
}

func (r *repository) DeleteUser(ctx context.Context, userID int, token string) error {
	resp, err := r.gw.Delete(ctx, fmt.Sprintf("/users/%d", userID), token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return api.NewError(resp.StatusCode, resp.ErrorMessage("Failed to delete user"))
	}
	return nil
}

func (r *repository) SendNotification(ctx context.Context, req NotificationRequest, token string) error {
	resp, err := r.gw.Post(ctx, "/notifications", req, token)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return api.NewError(resp.StatusCode, resp.ErrorMessage("Failed to send notification"))
	}
	return nil
}

// SyncAll forwards the sync trigger. Any JSON reply without an error field
// is handed back with the upstream status.
func (r *repository) SyncAll(ctx context.Context, token string) (*SyncResult, error) {
	resp, err := r.gw.Post(ctx, "/sync/all", nil, token)
	if err != nil {
		return nil, err
	}
	var body struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := resp.Decode(&body); err != nil {
		status := resp.StatusCode
		if resp.OK() {
			status = http.StatusBadGateway
		}
		return nil, api.NewError(status, resp.ErrorMessage("Sync failed"))
	}
	if body.Error != "" && !body.OK {
		return nil, api.NewError(resp.StatusCode, body.Error)
	}
	return &SyncResult{Status: resp.StatusCode, Body: resp.Body}, nil
}
