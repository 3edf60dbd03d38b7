package report

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

// RequestReport godoc
// @Summary      Request a statement report
// @Tags         report
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  api.MessageResponse
// @Failure      400  {object}  api.ErrorResponse
// @Router       /request-report [post]
func (h *Handler) RequestReport(c *gin.Context) {
	who, ok := auth.CurrentIdentity(c)
	if !ok {
		api.Fail(c, api.NewError(http.StatusUnauthorized, "user not authenticated"))
		return
	}

	msg, err := h.service.Request(c.Request.Context(), who)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{OK: true, Message: msg})
}
