package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerdash/internal/charts"
	"ledgerdash/internal/ledger"
)

type ErrorResponse struct {
	OK    bool   `json:"ok" example:"false"`
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	OK      bool   `json:"ok" example:"true"`
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// DashboardResponse is everything the dashboard page needs on first load.
type DashboardResponse struct {
	User          ledger.User           `json:"user"`
	Transactions  []ledger.Transaction  `json:"transactions"`
	Users         []ledger.User         `json:"users"`
	Notifications []ledger.Notification `json:"notifications"`
	Charts        charts.Dashboard      `json:"charts"`
}

// Error carries the HTTP status a handler should reply with.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Fail writes {ok:false, error} using the status carried by err, or 500.
func Fail(c *gin.Context, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, ErrorResponse{Error: apiErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}
