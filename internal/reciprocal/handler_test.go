package reciprocal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/auth"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(store *fakeStore) *gin.Engine {
	h := NewHandler(NewService(store, &fakeNotifier{}, "secretary@example.com", nil), nil)
	r := gin.New()
	g := r.Group("/api/reciprocal", func(c *gin.Context) {
		id, err := uuid.Parse(c.GetHeader("X-Test-Member"))
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		auth.SetIdentity(c, auth.Identity{MemberID: id, Role: models.RoleMember})
	})
	g.GET("/clubs", h.ListClubs)
	g.GET("/clubs/:id", h.GetClub)
	g.GET("/loi-requests", h.ListLois)
	g.POST("/loi-requests", h.CreateLoi)
	g.PUT("/loi-requests/:id/cancel", h.CancelLoi)
	return r
}

func call(r http.Handler, method, path string, member uuid.UUID, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-Member", member.String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoiRequestFlow(t *testing.T) {
	store := newFakeStore()
	club := store.addClub("Harvard Club", "Boston", "North America", "USA", true)
	inactive := store.addClub("Closed Club", "Paris", "Europe", "France", false)
	r := setupRouter(store)
	owner, other := uuid.New(), uuid.New()

	w := call(r, http.MethodPost, "/api/reciprocal/loi-requests", owner, gin.H{
		"club_id": inactive.ID.String(), "arrival_date": "2030-06-01", "departure_date": "2030-06-03", "purpose": "Business",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Club not found"}`, w.Body.String())

	w = call(r, http.MethodPost, "/api/reciprocal/loi-requests", owner, gin.H{
		"club_id": club.ID.String(), "arrival_date": "2030-06-01", "departure_date": "2030-06-03", "purpose": "Golf",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(r, http.MethodPost, "/api/reciprocal/loi-requests", owner, gin.H{
		"club_id": club.ID.String(), "arrival_date": "2030-06-01", "departure_date": "2030-06-03", "purpose": "Leisure",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Request models.LoiRequest `json:"request"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, models.LoiPending, created.Request.Status)
	assert.Contains(t, w.Body.String(), `"reciprocal_clubs":{`)

	w = call(r, http.MethodGet, "/api/reciprocal/loi-requests?status=pending", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Requests []models.LoiRequest `json:"requests"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed.Requests, 1)

	cancel := "/api/reciprocal/loi-requests/" + created.Request.ID.String() + "/cancel"
	w = call(r, http.MethodPut, cancel, other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(r, http.MethodPut, cancel, owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"rejected"`)

	w = call(r, http.MethodPut, cancel, owner, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClubsEndpoints(t *testing.T) {
	store := newFakeStore()
	club := store.addClub("Tanglin Club", "Singapore", "Asia", "Singapore", true)
	r := setupRouter(store)
	member := uuid.New()

	w := call(r, http.MethodGet, "/api/reciprocal/clubs?region=All", member, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tanglin Club")

	w = call(r, http.MethodGet, "/api/reciprocal/clubs/"+club.ID.String(), member, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"club":{`)

	w = call(r, http.MethodGet, "/api/reciprocal/clubs/"+uuid.New().String(), member, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
