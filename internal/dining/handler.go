package dining

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/apperr"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/auth"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/response"
)

// CreateRequest is the body for POST /dining/reservations.
type CreateRequest struct {
	ReservationDate string  `json:"reservation_date" binding:"required"`
	ReservationTime string  `json:"reservation_time" binding:"required"`
	MealType        string  `json:"meal_type" binding:"required"`
	GuestCount      int     `json:"guest_count"`
	TablePreference *string `json:"table_preference"`
	SpecialRequests *string `json:"special_requests"`
}

// UpdateRequest is the body for PUT /dining/reservations/:id. Omitted fields are unchanged.
type UpdateRequest struct {
	ReservationDate *string `json:"reservation_date"`
	ReservationTime *string `json:"reservation_time"`
	MealType        *string `json:"meal_type"`
	GuestCount      *int    `json:"guest_count"`
	TablePreference *string `json:"table_preference"`
	SpecialRequests *string `json:"special_requests"`
	Status          *string `json:"status"`
}

// Handler handles dining HTTP endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a dining handler.
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

// List handles GET /dining/reservations?date=&status=.
func (h *Handler) List(c *gin.Context) {
	f := ListFilter{MemberID: auth.MustMemberID(c)}
	if v := c.Query("date"); v != "" {
		d, err := models.ParseDate(v)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		f.Date = &d
	}
	if v := c.Query("status"); v != "" {
		st, err := models.ParseReservationStatus(v)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		f.Statuses = []models.ReservationStatus{st}
	}
	list, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, "list reservations failed", err)
		return
	}
	response.OK(c, gin.H{"reservations": list})
}

// Create handles POST /dining/reservations.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	date, err := models.ParseDate(req.ReservationDate)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	mealType, err := models.ParseDiningMealType(req.MealType)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	res, err := h.svc.Create(c.Request.Context(), CreateInput{
		MemberID:        auth.MustMemberID(c),
		Date:            date,
		Time:            req.ReservationTime,
		MealType:        mealType,
		GuestCount:      req.GuestCount,
		TablePreference: req.TablePreference,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		h.fail(c, "create reservation failed", err)
		return
	}
	response.Created(c, gin.H{"reservation": res, "message": "Reservation created successfully"})
}

// Update handles PUT /dining/reservations/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Reservation not found")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	in := UpdateInput{
		Time:            req.ReservationTime,
		GuestCount:      req.GuestCount,
		TablePreference: req.TablePreference,
		SpecialRequests: req.SpecialRequests,
	}
	if req.ReservationDate != nil && *req.ReservationDate != "" {
		d, err := models.ParseDate(*req.ReservationDate)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		in.Date = &d
	}
	if req.MealType != nil && *req.MealType != "" {
		m, err := models.ParseDiningMealType(*req.MealType)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		in.MealType = &m
	}
	if req.Status != nil && *req.Status != "" {
		st, err := models.ParseReservationStatus(*req.Status)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		in.Status = &st
	}

	res, err := h.svc.Update(c.Request.Context(), id, auth.MustMemberID(c), in)
	if err != nil {
		h.fail(c, "update reservation failed", err)
		return
	}
	response.OK(c, gin.H{"reservation": res, "message": "Reservation updated successfully"})
}

// Cancel handles DELETE /dining/reservations/:id.
func (h *Handler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Reservation not found")
		return
	}
	res, err := h.svc.Cancel(c.Request.Context(), id, auth.MustMemberID(c))
	if err != nil {
		h.fail(c, "cancel reservation failed", err)
		return
	}
	response.OK(c, gin.H{"reservation": res, "message": "Reservation cancelled successfully"})
}
