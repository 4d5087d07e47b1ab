package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/auth"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/response"
)

// RequireSession rejects requests without a valid bearer session and binds the
// member identity to the context.
func RequireSession(authn *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := authn.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		switch {
		case res.Status == auth.Authenticated:
			auth.SetIdentity(c, res.Identity)
			c.Next()
		case res.Err != nil:
			response.Internal(c, res.Reason)
			c.Abort()
		default:
			response.Unauthorized(c, res.Reason)
			c.Abort()
		}
	}
}

// OptionalSession binds the member identity when a valid session is presented
// and otherwise lets the request through anonymously.
func OptionalSession(authn *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := authn.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if res.Status == auth.Authenticated {
			auth.SetIdentity(c, res.Identity)
		}
		c.Next()
	}
}
