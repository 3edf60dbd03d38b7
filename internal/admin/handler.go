package admin

import (
	"net/http"
	"strconv"

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

// CreateUser godoc
// @Summary      Add a user
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateUserRequest  true  "New user"
// @Success      201      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      403      {object}  api.ErrorResponse
// @Router       /users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, api.NewError(http.StatusBadRequest, "Invalid request body"))
		return
	}

	if err := h.service.CreateUser(c.Request.Context(), who, req); err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, api.MessageResponse{OK: true, Message: "User added"})
}

// UpdateUser godoc
// @Summary      Update a user
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                true  "User ID"
// @Param        request  body      UpdateUserRequest  true  "Changed fields"
// @Success      200      {object}  map[string]interface{}
// @Failure      403      {object}  api.ErrorResponse
// @Router       /users/{id} [put]
func (h *Handler) UpdateUser(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}

	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Fail(c, ErrInvalidUserID)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, api.NewError(http.StatusBadRequest, "Invalid request body"))
		return
	}

	u, err := h.service.UpdateUser(c.Request.Context(), who, userID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	body := gin.H{"ok": true, "message": "User updated"}
	if u != nil {
		body["user"] = u
	}
	c.JSON(http.StatusOK, body)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      403  {object}  api.ErrorResponse
// @Router       /users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}

	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Fail(c, ErrInvalidUserID)
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), who, userID); err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{OK: true, Message: "User deleted"})
}

// SendNotification godoc
// @Summary      Send a notification to a user
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      NotificationRequest  true  "Notification"
// @Success      201      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      403      {object}  api.ErrorResponse
// @Router       /notifications [post]
func (h *Handler) SendNotification(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}

	var req NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, ErrNotification)
		return
	}

	if err := h.service.SendNotification(c.Request.Context(), who, req); err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, api.MessageResponse{OK: true, Message: "Notification sent successfully"})
}

// SyncAll godoc
// @Summary      Sync all reports
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  api.ErrorResponse
// @Router       /sync/all [post]
func (h *Handler) SyncAll(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}

	res, err := h.service.SyncAll(c.Request.Context(), who)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.Data(res.Status, "application/json; charset=utf-8", res.Body)
}

func identity(c *gin.Context) (auth.Identity, bool) {
	who, ok := auth.CurrentIdentity(c)
	if !ok {
		api.Fail(c, api.NewError(http.StatusUnauthorized, "user not authenticated"))
	}
	return who, ok
}
