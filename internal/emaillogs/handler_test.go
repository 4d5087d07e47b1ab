package emaillogs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeLister struct {
	got Filter
	err error
}

func (f *fakeLister) List(_ context.Context, flt Filter) ([]models.EmailLog, error) {
	f.got = flt
	if f.err != nil {
		return nil, f.err
	}
	return []models.EmailLog{{JobID: "j1", Status: models.EmailSent}}, nil
}

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/admin/email-logs", h.List)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestListPassesFilter(t *testing.T) {
	l := &fakeLister{}
	w := serve(NewHandler(l, nil), "/admin/email-logs?status=failed&recipient=a@x.com&limit=5")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.EmailFailed, l.got.Status)
	assert.Equal(t, "a@x.com", l.got.Recipient)
	assert.Equal(t, 5, l.got.Limit)
	assert.Contains(t, w.Body.String(), `"job_id":"j1"`)
}

func TestListRejectsBadQuery(t *testing.T) {
	h := NewHandler(&fakeLister{}, nil)
	assert.Equal(t, http.StatusBadRequest, serve(h, "/admin/email-logs?status=bounced").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "/admin/email-logs?limit=-1").Code)
}

func TestListStoreFailure(t *testing.T) {
	w := serve(NewHandler(&fakeLister{err: errors.New("db down")}, nil), "/admin/email-logs")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to load email logs"}`, w.Body.String())
}
