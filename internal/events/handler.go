package events

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/apperr"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/auth"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/response"
)

// BookRequest is the body for POST /events/:id/book.
type BookRequest struct {
	MealOption      *string `json:"meal_option"`
	GuestCount      int     `json:"guest_count"`
	SpecialRequests *string `json:"special_requests"`
}

// Handler handles event HTTP endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates an events handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// List handles GET /events?date=&type=&upcoming=true.
func (h *Handler) List(c *gin.Context) {
	var f ListFilter
	if v := c.Query("date"); v != "" {
		d, err := models.ParseDate(v)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		f.Date = &d
	}
	if v := c.Query("type"); v != "" {
		t, err := models.ParseEventType(v)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		f.Type = t
	}
	if c.Query("upcoming") == "true" {
		today := h.svc.Today()
		f.From = &today
	}

	list, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		h.logger.Error("list events failed", zap.Error(err))
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"events": list})
}

// Get handles GET /events/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Event not found")
		return
	}
	e, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"event": e})
}

// Book handles POST /events/:id/book.
func (h *Handler) Book(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Event not found")
		return
	}
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	in := BookInput{
		EventID:         eventID,
		MemberID:        auth.MustMemberID(c),
		GuestCount:      req.GuestCount,
		SpecialRequests: req.SpecialRequests,
	}
	if req.MealOption != nil && *req.MealOption != "" {
		m, err := models.ParseMealOption(*req.MealOption)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		in.MealOption = &m
	}

	b, err := h.svc.Book(c.Request.Context(), in)
	if err != nil {
		if apperr.Is(err, apperr.KindUpstream) {
			h.logger.Error("book event failed", zap.String("event_id", eventID.String()), zap.Error(err))
		}
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"booking": b, "message": "Booking created successfully"})
}

// MyBookings handles GET /events/:id/bookings (the caller's own bookings).
func (h *Handler) MyBookings(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Event not found")
		return
	}
	list, err := h.svc.MemberBookings(c.Request.Context(), BookingFilter{
		MemberID: auth.MustMemberID(c),
		EventID:  eventID,
	})
	if err != nil {
		h.logger.Error("list event bookings failed", zap.Error(err))
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"bookings": list})
}

// Cancel handles PUT /events/bookings/:bookingId/cancel.
func (h *Handler) Cancel(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.NotFound(c, "Booking not found")
		return
	}
	b, err := h.svc.Cancel(c.Request.Context(), bookingID, auth.MustMemberID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"booking": b, "message": "Booking cancelled successfully"})
}
