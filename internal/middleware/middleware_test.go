package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/auth"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSessions struct {
	sessions map[string]*auth.ActiveSession
}

func (s *stubSessions) FindActiveSession(_ context.Context, token string, _ time.Time) (*auth.ActiveSession, error) {
	return s.sessions[token], nil
}

func (s *stubSessions) TouchSession(context.Context, string, time.Time) error { return nil }

func newAuthenticator() (*auth.Authenticator, uuid.UUID, uuid.UUID) {
	memberID, adminID := uuid.New(), uuid.New()
	store := &stubSessions{sessions: map[string]*auth.ActiveSession{
		"member-token": {MemberID: memberID, Role: models.RoleMember, ExpiresAt: time.Now().Add(time.Hour)},
		"admin-token":  {MemberID: adminID, Role: models.RoleAdmin, ExpiresAt: time.Now().Add(time.Hour)},
	}}
	return auth.NewAuthenticator(store, nil), memberID, adminID
}

func get(r http.Handler, path, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireSession(t *testing.T) {
	authn, memberID, _ := newAuthenticator()
	r := gin.New()
	r.GET("/me", RequireSession(authn), func(c *gin.Context) {
		c.String(http.StatusOK, auth.MustMemberID(c).String())
	})

	w := get(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"No token provided"}`, w.Body.String())

	w = get(r, "/me", "Bearer wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired token"}`, w.Body.String())

	w = get(r, "/me", "Bearer member-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, memberID.String(), w.Body.String())
}

func TestOptionalSession(t *testing.T) {
	authn, memberID, _ := newAuthenticator()
	r := gin.New()
	r.GET("/events", OptionalSession(authn), func(c *gin.Context) {
		if id, ok := auth.CurrentMemberID(c); ok {
			c.String(http.StatusOK, id.String())
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	assert.Equal(t, "anonymous", get(r, "/events", "").Body.String())
	assert.Equal(t, "anonymous", get(r, "/events", "Bearer wrong").Body.String())
	assert.Equal(t, memberID.String(), get(r, "/events", "Bearer member-token").Body.String())
}

func TestRequireRole(t *testing.T) {
	authn, _, _ := newAuthenticator()
	r := gin.New()
	r.GET("/admin", RequireSession(authn), RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusForbidden, get(r, "/admin", "Bearer member-token").Code)
	assert.Equal(t, http.StatusOK, get(r, "/admin", "Bearer admin-token").Code)

	bare := gin.New()
	bare.GET("/admin", RequireRole(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusUnauthorized, get(bare, "/admin", "").Code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS("https://club.example.com, http://localhost:5173"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://club.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://club.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	open := gin.New()
	open.Use(CORS("*"))
	open.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	w = get(open, "/x", "")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoginRateLimiter(t *testing.T) {
	rl := NewLoginRateLimiter(1, 2, nil)
	r := gin.New()
	r.GET("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, get(r, "/login", "").Code)
	assert.Equal(t, http.StatusOK, get(r, "/login", "").Code)
	w := get(r, "/login", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many requests")

	rl.Cleanup(time.Now().Add(time.Hour))
	assert.Empty(t, rl.visitors)
	assert.Equal(t, http.StatusOK, get(r, "/login", "").Code)
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/events/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	get(r, "/events/123", "")
	get(r, "/nope", "")

	body := get(r, "/metrics", "").Body.String()
	assert.True(t, strings.Contains(body, `cityuniclub_http_requests_total{method="GET",route="/events/:id",status="200"} 1`), body)
	assert.Contains(t, body, `route="unmatched"`)
}
