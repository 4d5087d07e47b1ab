package emaillogs

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
)

// DefaultLimit caps the listing when no limit is given.
const DefaultLimit = 100

// Filter narrows the email log listing.
type Filter struct {
	Status    models.EmailStatus
	Recipient string
	Limit     int
}

// Repository handles email_logs persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an email logs repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Record inserts one delivery attempt.
func (r *Repository) Record(ctx context.Context, l *models.EmailLog) error {
	const q = `INSERT INTO email_logs (job_id, email_type, recipient_email, subject, status, attempt, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q, l.JobID, l.EmailType, l.RecipientEmail, l.Subject, l.Status, l.Attempt, l.ErrorMessage).
		Scan(&l.ID, &l.CreatedAt)
}

// List returns email logs matching f, newest first.
func (r *Repository) List(ctx context.Context, f Filter) ([]models.EmailLog, error) {
	var conds []string
	var args []interface{}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, "status = $"+strconv.Itoa(len(args)))
	}
	if f.Recipient != "" {
		args = append(args, f.Recipient)
		conds = append(conds, "lower(recipient_email) = lower($"+strconv.Itoa(len(args))+")")
	}
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	args = append(args, limit)

	q := `SELECT id, job_id, email_type, recipient_email, subject, status, attempt, error_message, created_at
		FROM email_logs`
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []models.EmailLog{}
	for rows.Next() {
		var el models.EmailLog
		if err := rows.Scan(&el.ID, &el.JobID, &el.EmailType, &el.RecipientEmail, &el.Subject, &el.Status,
			&el.Attempt, &el.ErrorMessage, &el.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, el)
	}
	return list, rows.Err()
}
