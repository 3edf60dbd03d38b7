package wallet

import (
	"net/http"

	"ledgerdash/internal/api"
	"ledgerdash/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// TopUp godoc
// @Summary      Top up balance
// @Tags         wallet
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      TopUpRequest  true  "Amount to add"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  api.ErrorResponse
// @Router       /topup [post]
func (h *Handler) TopUp(c *gin.Context) {
	who, ok := auth.CurrentIdentity(c)
	if !ok {
		api.Fail(c, api.NewError(http.StatusUnauthorized, "user not authenticated"))
		return
	}

	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, ErrInvalidAmount)
		return
	}

	out, err := h.service.TopUp(c.Request.Context(), who, req.Amount)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, outcomeBody(out))
}

// CreateTransaction godoc
// @Summary      Create a credit or debit transaction
// @Tags         wallet
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      TransactionRequest  true  "Transaction"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  api.ErrorResponse
// @Failure      403      {object}  api.ErrorResponse
// @Router       /transactions [post]
func (h *Handler) CreateTransaction(c *gin.Context) {
	who, ok := auth.CurrentIdentity(c)
	if !ok {
		api.Fail(c, api.NewError(http.StatusUnauthorized, "user not authenticated"))
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, ErrInvalidAmount)
		return
	}

	out, err := h.service.CreateTransaction(c.Request.Context(), who, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, outcomeBody(out))
}

// Dashboard godoc
// @Summary      Dashboard page state
// @Tags         wallet
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  api.DashboardResponse
// @Router       /dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	who, ok := auth.CurrentIdentity(c)
	if !ok {
		api.Fail(c, api.NewError(http.StatusUnauthorized, "user not authenticated"))
		return
	}

	resp, err := h.service.Dashboard(c.Request.Context(), who)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Notifications godoc
// @Summary      List notifications
// @Tags         wallet
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  ledger.Notification
// @Router       /notifications [get]
func (h *Handler) Notifications(c *gin.Context) {
	who, ok := auth.CurrentIdentity(c)
	if !ok {
		api.Fail(c, api.NewError(http.StatusUnauthorized, "user not authenticated"))
		return
	}

	c.JSON(http.StatusOK, h.service.Notifications(c.Request.Context(), who))
}

func outcomeBody(out *Outcome) gin.H {
	body := gin.H{"ok": true, "message": out.Message}
	if out.Balance != nil {
		body["balance"] = *out.Balance
	}
	if out.Transactions != nil {
		body["transactions"] = out.Transactions
	}
	return body
}
