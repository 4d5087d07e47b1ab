// Package news serves club news articles.
package news

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/apperr"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
)

// ListFilter narrows the article listing. Limit <= 0 returns every match.
type ListFilter struct {
	Category     models.NewsCategory
	FeaturedOnly bool
	Limit        int
}

// Store is the persistence the news service needs. *Repository implements it.
type Store interface {
	List(ctx context.Context, f ListFilter) ([]models.ClubNews, error)
	Get(ctx context.Context, id uuid.UUID) (*models.ClubNews, error)
	Create(ctx context.Context, n *models.ClubNews) error
	Update(ctx context.Context, n *models.ClubNews) (*models.ClubNews, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (*models.ClubNews, error)
}

// Service implements news reads and admin writes.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a news service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// List returns active articles matching f.
func (s *Service) List(ctx context.Context, f ListFilter) ([]models.ClubNews, error) {
	list, err := s.store.List(ctx, f)
	if err != nil {
		return nil, apperr.Upstream("Failed to get news", err)
	}
	return list, nil
}

// Get returns an active article.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.ClubNews, error) {
	n, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, apperr.Upstream("Failed to get article", err)
	}
	if n == nil || !n.IsActive {
		return nil, apperr.NotFound("Article not found")
	}
	return n, nil
}

// CreateInput is a new article. A nil PublishedDate means today.
type CreateInput struct {
	Title         string
	Content       string
	Category      models.NewsCategory
	PublishedDate *models.Date
	IsFeatured    bool
}

// Create stores a new active article.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.ClubNews, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" || in.Category == "" {
		return nil, apperr.InvalidRequest("Title, content, and category are required")
	}
	n := &models.ClubNews{
		Title:         in.Title,
		Content:       in.Content,
		Category:      in.Category,
		PublishedDate: models.DateOf(s.now()),
		IsFeatured:    in.IsFeatured,
		IsActive:      true,
	}
	if in.PublishedDate != nil {
		n.PublishedDate = *in.PublishedDate
	}
	if err := s.store.Create(ctx, n); err != nil {
		return nil, apperr.Upstream("Failed to create news article", err)
	}
	s.logger.Info("news article created", zap.String("article_id", n.ID.String()))
	return n, nil
}

// UpdateInput holds the fields to change. Nil fields are left as they are.
type UpdateInput struct {
	Title         *string
	Content       *string
	Category      *models.NewsCategory
	PublishedDate *models.Date
	IsFeatured    *bool
	IsActive      *bool
}

// Update applies in to an article, active or not.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*models.ClubNews, error) {
	n, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, apperr.Upstream("Failed to update news article", err)
	}
	if n == nil {
		return nil, apperr.NotFound("Article not found")
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		n.Title = *in.Title
	}
	if in.Content != nil && strings.TrimSpace(*in.Content) != "" {
		n.Content = *in.Content
	}
	if in.Category != nil {
		n.Category = *in.Category
	}
	if in.PublishedDate != nil {
		n.PublishedDate = *in.PublishedDate
	}
	if in.IsFeatured != nil {
		n.IsFeatured = *in.IsFeatured
	}
	if in.IsActive != nil {
		n.IsActive = *in.IsActive
	}
	updated, err := s.store.Update(ctx, n)
	if err != nil {
		return nil, apperr.Upstream("Failed to update news article", err)
	}
	if updated == nil {
		return nil, apperr.NotFound("Article not found")
	}
	return updated, nil
}

// Delete hides an article by clearing its active flag.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*models.ClubNews, error) {
	n, err := s.store.SoftDelete(ctx, id)
	if err != nil {
		return nil, apperr.Upstream("Failed to delete news article", err)
	}
	if n == nil {
		return nil, apperr.NotFound("Article not found")
	}
	s.logger.Info("news article deleted", zap.String("article_id", id.String()))
	return n, nil
}
