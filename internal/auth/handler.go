package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/response"
)

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Email            string  `json:"email" binding:"required,email"`
	Password         string  `json:"password" binding:"required,min=6"`
	FullName         string  `json:"full_name" binding:"required"`
	FirstName        string  `json:"first_name"`
	PhoneNumber      *string `json:"phone_number"`
	MembershipNumber string  `json:"membership_number" binding:"required"`
	MembershipType   string  `json:"membership_type"`
	Role             string  `json:"role"`
}

// ForgotPasswordRequest is the body for POST /auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest is the body for POST /auth/reset-password.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ChangePasswordRequest is the body for POST /auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// SessionResponse is the session part of the login response.
type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginResponse is the body returned by a successful login.
type LoginResponse struct {
	Member  models.MemberPublic `json:"member"`
	Session SessionResponse     `json:"session"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidateResponse is the body returned by POST /auth/validate.
type ValidateResponse struct {
	Valid     bool      `json:"valid"`
	MemberID  string    `json:"member_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	svc    *Service
	authn  *Authenticator
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(svc *Service, authn *Authenticator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, authn: authn, logger: logger}
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	res, err := h.svc.Login(c.Request.Context(), req.Email, req.Password, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, LoginResponse{
		Member:  res.Member,
		Session: SessionResponse{Token: res.Session.Token, ExpiresAt: res.Session.ExpiresAt},
	})
}

// Logout handles POST /auth/logout. Any bearer token is accepted so repeated
// logout with an already revoked token still succeeds.
func (h *Handler) Logout(c *gin.Context) {
	token, ok := BearerToken(c.GetHeader("Authorization"))
	if !ok {
		response.Unauthorized(c, "No token provided")
		return
	}
	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		response.Error(c, err)
		return
	}
	response.OK(c, MessageResponse{Message: "Logged out successfully"})
}

// Me handles GET /auth/me.
func (h *Handler) Me(c *gin.Context) {
	m, err := h.svc.Me(c.Request.Context(), MustMemberID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"member": m})
}

// Validate handles POST /auth/validate.
func (h *Handler) Validate(c *gin.Context) {
	res := h.authn.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
	switch {
	case res.Status == Authenticated:
		response.OK(c, ValidateResponse{
			Valid:     true,
			MemberID:  res.Identity.MemberID.String(),
			ExpiresAt: res.Identity.ExpiresAt,
		})
	case res.Err != nil:
		response.Internal(c, res.Reason)
	default:
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "error": res.Reason})
	}
}

// Register handles POST /auth/register (admin only).
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	in := RegisterInput{
		Email:            req.Email,
		Password:         req.Password,
		FullName:         req.FullName,
		FirstName:        req.FirstName,
		PhoneNumber:      req.PhoneNumber,
		MembershipNumber: req.MembershipNumber,
	}
	if req.MembershipType != "" {
		mt, err := models.ParseMembershipType(req.MembershipType)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		in.MembershipType = mt
	}
	if req.Role != "" {
		role := models.Role(req.Role)
		if !role.Valid() {
			response.BadRequest(c, "invalid role")
			return
		}
		in.Role = role
	}

	m, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"member": m.ToPublic()})
}

// ForgotPassword handles POST /auth/forgot-password. The reply is identical
// whether or not the email is registered.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := h.svc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.logger.Error("password reset request failed", zap.Error(err))
		response.Error(c, err)
		return
	}
	response.OK(c, MessageResponse{Message: "If the email exists, a reset link has been sent"})
}

// ResetPassword handles POST /auth/reset-password.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := h.svc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, MessageResponse{Message: "Password reset successfully"})
}

// ChangePassword handles POST /auth/change-password.
func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := h.svc.ChangePassword(c.Request.Context(), MustMemberID(c), req.CurrentPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, MessageResponse{Message: "Password changed successfully"})
}
