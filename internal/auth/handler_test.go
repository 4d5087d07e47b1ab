package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T) (*gin.Engine, *fakeStore, *models.Member) {
	t.Helper()
	store := newFakeStore()
	alice := store.addMember(t, "alice@example.com", "secret1", true)
	svc := NewService(store, &fakeNotifier{}, Options{}, nil)
	authn := NewAuthenticator(store, nil)
	authn.touch = func(string, time.Time) {}
	h := NewHandler(svc, authn, nil)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	r.POST("/auth/validate", h.Validate)
	r.POST("/auth/forgot-password", h.ForgotPassword)
	r.POST("/auth/reset-password", h.ResetPassword)
	withAlice := func(c *gin.Context) { SetIdentity(c, Identity{MemberID: alice.ID, Role: alice.Role}) }
	r.GET("/auth/me", withAlice, h.Me)
	r.POST("/auth/change-password", withAlice, h.ChangePassword)
	r.POST("/auth/register", h.Register)
	return r, store, alice
}

func doJSON(r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerLoginAndValidate(t *testing.T) {
	r, _, alice := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/auth/login", "", gin.H{"email": "alice@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	var body LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, alice.ID, body.Member.ID)
	assert.Equal(t, "Alice", body.Member.FirstName)
	require.NotEmpty(t, body.Session.Token)

	w = doJSON(r, http.MethodPost, "/auth/validate", body.Session.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var v ValidateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.True(t, v.Valid)
	assert.Equal(t, alice.ID.String(), v.MemberID)

	w = doJSON(r, http.MethodPost, "/auth/validate", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"valid":false,"error":"No token provided"}`, w.Body.String())
}

func TestHandlerLoginWrongPassword(t *testing.T) {
	r, _, _ := setupRouter(t)

	wrong := doJSON(r, http.MethodPost, "/auth/login", "", gin.H{"email": "alice@example.com", "password": "bad"})
	unknown := doJSON(r, http.MethodPost, "/auth/login", "", gin.H{"email": "who@example.com", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, wrong.Code, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
	assert.JSONEq(t, `{"error":"Invalid email or password"}`, wrong.Body.String())
}

func TestHandlerLoginBadBody(t *testing.T) {
	r, _, _ := setupRouter(t)
	w := doJSON(r, http.MethodPost, "/auth/login", "", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerLogoutTwice(t *testing.T) {
	r, store, _ := setupRouter(t)
	w := doJSON(r, http.MethodPost, "/auth/login", "", gin.H{"email": "alice@example.com", "password": "secret1"})
	var body LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	for i := 0; i < 2; i++ {
		w = doJSON(r, http.MethodPost, "/auth/logout", body.Session.Token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Logged out successfully"}`, w.Body.String())
	}
	assert.Equal(t, 0, store.sessionCount())

	w = doJSON(r, http.MethodPost, "/auth/validate", body.Session.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandlerForgotPasswordSameReply(t *testing.T) {
	r, _, _ := setupRouter(t)
	known := doJSON(r, http.MethodPost, "/auth/forgot-password", "", gin.H{"email": "alice@example.com"})
	unknown := doJSON(r, http.MethodPost, "/auth/forgot-password", "", gin.H{"email": "who@example.com"})
	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
}

func TestHandlerResetPasswordInvalidToken(t *testing.T) {
	r, _, _ := setupRouter(t)
	w := doJSON(r, http.MethodPost, "/auth/reset-password", "", gin.H{"token": "nope", "new_password": "brandnew"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired token"}`, w.Body.String())
}

func TestHandlerMeAndChangePassword(t *testing.T) {
	r, _, alice := setupRouter(t)

	w := doJSON(r, http.MethodGet, "/auth/me", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), alice.Email)
	assert.NotContains(t, w.Body.String(), "password")

	w = doJSON(r, http.MethodPost, "/auth/change-password", "", gin.H{"current_password": "wrong", "new_password": "secret22"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/change-password", "", gin.H{"current_password": "secret1", "new_password": "secret22"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandlerRegister(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/auth/register", "", gin.H{
		"email": "dan@example.com", "password": "secret1", "full_name": "Dan Brown",
		"membership_number": "CUC-0003", "membership_type": "Senior Membership",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"membership_type":"Senior Membership"`)

	w = doJSON(r, http.MethodPost, "/auth/register", "", gin.H{
		"email": "alice@example.com", "password": "secret1", "full_name": "Alice", "membership_number": "X",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Email already registered"}`, w.Body.String())

	w = doJSON(r, http.MethodPost, "/auth/register", "", gin.H{
		"email": "eve@example.com", "password": "secret1", "full_name": "Eve", "membership_number": "X",
		"membership_type": "Platinum",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
