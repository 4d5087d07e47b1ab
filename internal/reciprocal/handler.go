package reciprocal

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/apperr"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/auth"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/response"
)

// CreateLoiRequest is the body for POST /reciprocal/loi-requests.
type CreateLoiRequest struct {
	ClubID          string  `json:"club_id" binding:"required"`
	ArrivalDate     string  `json:"arrival_date" binding:"required"`
	DepartureDate   string  `json:"departure_date" binding:"required"`
	Purpose         string  `json:"purpose" binding:"required"`
	SpecialRequests *string `json:"special_requests"`
}

// Handler handles reciprocal club HTTP endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a reciprocal handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) fail(c *gin.Context, msg string, err error) {
	if apperr.Is(err, apperr.KindUpstream) {
		h.logger.Error(msg, zap.Error(err))
	}
	response.Error(c, err)
}

// ListClubs handles GET /reciprocal/clubs?region=&country=&search=.
func (h *Handler) ListClubs(c *gin.Context) {
	list, err := h.svc.ListClubs(c.Request.Context(), ClubFilter{
		Region:  c.Query("region"),
		Country: c.Query("country"),
		Search:  c.Query("search"),
	})
	if err != nil {
		h.fail(c, "list clubs failed", err)
		return
	}
	response.OK(c, gin.H{"clubs": list})
}

// GetClub handles GET /reciprocal/clubs/:id.
func (h *Handler) GetClub(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Club not found")
		return
	}
	club, err := h.svc.GetClub(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get club failed", err)
		return
	}
	response.OK(c, gin.H{"club": club})
}

// ListLois handles GET /reciprocal/loi-requests?status=.
func (h *Handler) ListLois(c *gin.Context) {
	f := LoiFilter{MemberID: auth.MustMemberID(c)}
	if v := c.Query("status"); v != "" {
		st, err := models.ParseLoiStatus(v)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		f.Status = st
	}
	list, err := h.svc.ListLois(c.Request.Context(), f)
	if err != nil {
		h.fail(c, "list loi requests failed", err)
		return
	}
	response.OK(c, gin.H{"requests": list})
}

// CreateLoi handles POST /reciprocal/loi-requests.
func (h *Handler) CreateLoi(c *gin.Context) {
	var req CreateLoiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	clubID, err := uuid.Parse(req.ClubID)
	if err != nil {
		response.BadRequest(c, "invalid club_id")
		return
	}
	arrival, err := models.ParseDate(req.ArrivalDate)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	departure, err := models.ParseDate(req.DepartureDate)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	purpose, err := models.ParseVisitPurpose(req.Purpose)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	l, err := h.svc.CreateLoi(c.Request.Context(), CreateLoiInput{
		MemberID:        auth.MustMemberID(c),
		ClubID:          clubID,
		ArrivalDate:     arrival,
		DepartureDate:   departure,
		Purpose:         purpose,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		h.fail(c, "create loi request failed", err)
		return
	}
	response.Created(c, gin.H{"request": l, "message": "LOI request submitted successfully"})
}

// CancelLoi handles PUT /reciprocal/loi-requests/:id/cancel.
func (h *Handler) CancelLoi(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "LOI request not found")
		return
	}
	l, err := h.svc.CancelLoi(c.Request.Context(), id, auth.MustMemberID(c))
	if err != nil {
		h.fail(c, "cancel loi request failed", err)
		return
	}
	response.OK(c, gin.H{"request": l, "message": "LOI request cancelled successfully"})
}
