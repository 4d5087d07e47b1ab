package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
)

const (
	// ContextMemberID is the gin context key for the authenticated member ID.
	ContextMemberID = "member_id"
	// ContextMemberRole is the gin context key for the authenticated member role.
	ContextMemberRole = "member_role"
	// ContextToken is the gin context key for the presented bearer token.
	ContextToken = "session_token"
)

// SetIdentity binds id to the request context.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(ContextMemberID, id.MemberID)
	c.Set(ContextMemberRole, id.Role)
	c.Set(ContextToken, id.Token)
}

// CurrentMemberID returns the authenticated member, if any.
func CurrentMemberID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextMemberID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// MustMemberID returns the authenticated member and panics when called on a
// route not behind the mandatory session middleware.
func MustMemberID(c *gin.Context) uuid.UUID {
	return c.MustGet(ContextMemberID).(uuid.UUID)
}

// CurrentRole returns the authenticated member's role, if any.
func CurrentRole(c *gin.Context) (models.Role, bool) {
	v, ok := c.Get(ContextMemberRole)
	if !ok {
		return "", false
	}
	r, ok := v.(models.Role)
	return r, ok
}
