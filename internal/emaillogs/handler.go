// Package emaillogs exposes the outbound email delivery log to admins.
package emaillogs

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/response"
)

// Lister reads email logs. *Repository implements it.
type Lister interface {
	List(ctx context.Context, f Filter) ([]models.EmailLog, error)
}

// Handler handles email log HTTP endpoints.
type Handler struct {
	repo   Lister
	logger *zap.Logger
}

// NewHandler creates an email logs handler.
func NewHandler(repo Lister, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /admin/email-logs?status=&recipient=&limit=.
// Call after RequireRole(admin).
func (h *Handler) List(c *gin.Context) {
	f := Filter{Recipient: c.Query("recipient")}
	if v := c.Query("status"); v != "" {
		st, err := models.ParseEmailStatus(v)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		f.Status = st
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			response.BadRequest(c, "invalid limit")
			return
		}
		f.Limit = n
	}
	logs, err := h.repo.List(c.Request.Context(), f)
	if err != nil {
		h.logger.Error("list email logs failed", zap.Error(err))
		response.Internal(c, "Failed to load email logs")
		return
	}
	response.OK(c, gin.H{"logs": logs})
}
