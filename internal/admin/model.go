package admin

import (
	"encoding/json"

	"ledgerdash/internal/ledger"
)

type CreateUserRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}

// UpdateUserRequest carries only the fields being changed.
type UpdateUserRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}

type NotificationRequest struct {
	UserID  int    `json:"user_id"`
	Message string `json:"message"`
}

// SyncResult is the report service's sync reply, passed through as is.
type SyncResult struct {
	Status int
	Body   json.RawMessage
}

type updatedUser struct {
	User *ledger.User `json:"user"`
}
