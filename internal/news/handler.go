package news

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/apperr"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/response"
)

// CreateRequest is the body for POST /news.
type CreateRequest struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Category      string `json:"category"`
	PublishedDate string `json:"published_date"`
	IsFeatured    bool   `json:"is_featured"`
}

// UpdateRequest is the body for PUT /news/:id. Omitted fields are unchanged.
type UpdateRequest struct {
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	Category      *string `json:"category"`
	PublishedDate *string `json:"published_date"`
	IsFeatured    *bool   `json:"is_featured"`
	IsActive      *bool   `json:"is_active"`
}

// Handler handles news HTTP endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a news handler.
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

// List handles GET /news?category=&featured=true&limit=.
func (h *Handler) List(c *gin.Context) {
	var f ListFilter
	if v := c.Query("category"); v != "" {
		cat, err := models.ParseNewsCategory(v)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		f.Category = cat
	}
	f.FeaturedOnly = c.Query("featured") == "true"
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			response.BadRequest(c, "invalid limit")
			return
		}
		f.Limit = n
	}
	list, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, "list news failed", err)
		return
	}
	response.OK(c, gin.H{"news": list})
}

// Get handles GET /news/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Article not found")
		return
	}
	n, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get article failed", err)
		return
	}
	response.OK(c, gin.H{"article": n})
}

// Create handles POST /news (admin only).
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	in := CreateInput{Title: req.Title, Content: req.Content, IsFeatured: req.IsFeatured}
	if req.Category != "" {
		cat, err := models.ParseNewsCategory(req.Category)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		in.Category = cat
	}
	if req.PublishedDate != "" {
		d, err := models.ParseDate(req.PublishedDate)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		in.PublishedDate = &d
	}
	n, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "create article failed", err)
		return
	}
	response.Created(c, gin.H{"article": n, "message": "News article created successfully"})
}

// Update handles PUT /news/:id (admin only).
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Article not found")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	in := UpdateInput{Title: req.Title, Content: req.Content, IsFeatured: req.IsFeatured, IsActive: req.IsActive}
	if req.Category != nil && *req.Category != "" {
		cat, err := models.ParseNewsCategory(*req.Category)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		in.Category = &cat
	}
	if req.PublishedDate != nil && *req.PublishedDate != "" {
		d, err := models.ParseDate(*req.PublishedDate)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		in.PublishedDate = &d
	}
	n, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, "update article failed", err)
		return
	}
	response.OK(c, gin.H{"article": n, "message": "News article updated successfully"})
}

// Delete handles DELETE /news/:id (admin only, soft delete).
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Article not found")
		return
	}
	n, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "delete article failed", err)
		return
	}
	response.OK(c, gin.H{"article": n, "message": "News article deleted successfully"})
}
