package news

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
)

const newsColumns = `id, title, content, category, published_date, is_featured, is_active, created_at, updated_at`

// Repository handles club news persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a news repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanArticle(row pgx.Row) (*models.ClubNews, error) {
	var n models.ClubNews
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.Category, &n.PublishedDate, &n.IsFeatured, &n.IsActive,
		&n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// List returns active articles matching f, newest first.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]models.ClubNews, error) {
	conds := []string{"is_active"}
	var args []interface{}
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, "category = $"+strconv.Itoa(len(args)))
	}
	if f.FeaturedOnly {
		conds = append(conds, "is_featured")
	}
	q := `SELECT ` + newsColumns + ` FROM club_news WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY published_date DESC, created_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []models.ClubNews{}
	for rows.Next() {
		n, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *n)
	}
	return list, rows.Err()
}

// Get returns the article with id regardless of is_active, or nil.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*models.ClubNews, error) {
	return scanArticle(r.pool.QueryRow(ctx, `SELECT `+newsColumns+` FROM club_news WHERE id = $1`, id))
}

// Create inserts n and fills its generated fields.
func (r *Repository) Create(ctx context.Context, n *models.ClubNews) error {
	const q = `INSERT INTO club_news (title, content, category, published_date, is_featured, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, n.Title, n.Content, n.Category, n.PublishedDate, n.IsFeatured, n.IsActive).
		Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

// Update writes every mutable column of n and returns the stored row.
func (r *Repository) Update(ctx context.Context, n *models.ClubNews) (*models.ClubNews, error) {
	const q = `UPDATE club_news SET title = $2, content = $3, category = $4, published_date = $5,
		is_featured = $6, is_active = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + newsColumns
	return scanArticle(r.pool.QueryRow(ctx, q, n.ID, n.Title, n.Content, n.Category, n.PublishedDate,
		n.IsFeatured, n.IsActive))
}

// SoftDelete clears is_active and returns the stored row, or nil.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) (*models.ClubNews, error) {
	return scanArticle(r.pool.QueryRow(ctx,
		`UPDATE club_news SET is_active = FALSE, updated_at = NOW() WHERE id = $1 RETURNING `+newsColumns, id))
}
