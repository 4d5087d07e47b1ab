package members

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/apperr"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/auth"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/response"
)

// UpdateProfileRequest is the body for PUT /members/profile.
type UpdateProfileRequest struct {
	FullName            *string `json:"full_name"`
	FirstName           *string `json:"first_name"`
	PhoneNumber         *string `json:"phone_number"`
	DietaryRequirements *string `json:"dietary_requirements"`
	NotificationEnabled *bool   `json:"notification_enabled"`
}

// Handler handles /members endpoints. Every route needs a session.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a members handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) fail(c *gin.Context, msg string, err error) {
	if apperr.Is(err, apperr.KindUpstream) {
		h.logger.Error(msg, zap.String("member_id", auth.MustMemberID(c).String()), zap.Error(err))
	}
	response.Error(c, err)
}

// GetProfile handles GET /members/profile.
func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.svc.GetProfile(c.Request.Context(), auth.MustMemberID(c))
	if err != nil {
		h.fail(c, "get profile failed", err)
		return
	}
	response.OK(c, p)
}

// UpdateProfile handles PUT /members/profile.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	p, err := h.svc.UpdateProfile(c.Request.Context(), auth.MustMemberID(c), UpdateInput{
		FullName:            req.FullName,
		FirstName:           req.FirstName,
		PhoneNumber:         req.PhoneNumber,
		DietaryRequirements: req.DietaryRequirements,
		NotificationEnabled: req.NotificationEnabled,
	})
	if err != nil {
		h.fail(c, "update profile failed", err)
		return
	}
	response.OK(c, p)
}

// Bookings handles GET /members/bookings.
func (h *Handler) Bookings(c *gin.Context) {
	list, err := h.svc.UpcomingBookings(c.Request.Context(), auth.MustMemberID(c))
	if err != nil {
		h.fail(c, "get bookings failed", err)
		return
	}
	response.OK(c, gin.H{"bookings": list})
}

// Reservations handles GET /members/reservations.
func (h *Handler) Reservations(c *gin.Context) {
	list, err := h.svc.UpcomingReservations(c.Request.Context(), auth.MustMemberID(c))
	if err != nil {
		h.fail(c, "get reservations failed", err)
		return
	}
	response.OK(c, gin.H{"reservations": list})
}

// LoiRequests handles GET /members/loi-requests.
func (h *Handler) LoiRequests(c *gin.Context) {
	list, err := h.svc.LoiRequests(c.Request.Context(), auth.MustMemberID(c))
	if err != nil {
		h.fail(c, "get LOI requests failed", err)
		return
	}
	response.OK(c, gin.H{"requests": list})
}
