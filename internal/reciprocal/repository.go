package reciprocal

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

const clubColumns = `id, name, location, region, country, note, contact_email, contact_phone,
	is_active, created_at, updated_at`

const loiColumns = `l.id, l.member_id, l.club_id, l.arrival_date, l.departure_date, l.purpose,
	l.special_requests, l.status, l.secretary_notes, l.requested_at, l.processed_at,
	l.created_at, l.updated_at, c.id, c.name, c.location, c.country, c.note`

// Repository handles reciprocal club and LOI request persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a reciprocal repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanClub(row pgx.Row) (*models.ReciprocalClub, error) {
	var c models.ReciprocalClub
	err := row.Scan(&c.ID, &c.Name, &c.Location, &c.Region, &c.Country, &c.Note, &c.ContactEmail, &c.ContactPhone,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanLoi(row pgx.Row) (*models.LoiRequest, error) {
	var l models.LoiRequest
	var c models.ClubSummary
	err := row.Scan(&l.ID, &l.MemberID, &l.ClubID, &l.ArrivalDate, &l.DepartureDate, &l.Purpose,
		&l.SpecialRequests, &l.Status, &l.SecretaryNotes, &l.RequestedAt, &l.ProcessedAt,
		&l.CreatedAt, &l.UpdatedAt, &c.ID, &c.Name, &c.Location, &c.Country, &c.Note)
	if err != nil {
		return nil, err
	}
	l.Club = &c
	return &l, nil
}

// escapeLike escapes LIKE wildcards in s.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ListClubs returns active clubs matching f ordered by region, country and name.
func (r *Repository) ListClubs(ctx context.Context, f ClubFilter) ([]models.ReciprocalClub, error) {
	conds := []string{"is_active"}
	var args []interface{}
	if f.Region != "" {
		args = append(args, f.Region)
		conds = append(conds, "region = $"+strconv.Itoa(len(args)))
	}
	if f.Country != "" {
		args = append(args, f.Country)
		conds = append(conds, "country = $"+strconv.Itoa(len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := "$" + strconv.Itoa(len(args))
		conds = append(conds, "(name ILIKE "+n+" OR location ILIKE "+n+")")
	}
	q := `SELECT ` + clubColumns + ` FROM reciprocal_clubs WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY region ASC, country ASC, name ASC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []models.ReciprocalClub{}
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *c)
	}
	return list, rows.Err()
}

// GetActiveClub returns the active club with id, or nil.
func (r *Repository) GetActiveClub(ctx context.Context, id uuid.UUID) (*models.ReciprocalClub, error) {
	c, err := scanClub(r.pool.QueryRow(ctx,
		`SELECT `+clubColumns+` FROM reciprocal_clubs WHERE id = $1 AND is_active`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

// CreateLoi inserts l and reloads it with its club summary.
func (r *Repository) CreateLoi(ctx context.Context, l *models.LoiRequest) error {
	const q = `WITH ins AS (
		INSERT INTO loi_requests (member_id, club_id, arrival_date, departure_date, purpose, special_requests, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING *
	)
	SELECT ` + loiColumns + ` FROM ins l JOIN reciprocal_clubs c ON c.id = l.club_id`
	got, err := scanLoi(r.pool.QueryRow(ctx, q, l.MemberID, l.ClubID, l.ArrivalDate, l.DepartureDate,
		l.Purpose, l.SpecialRequests, l.Status))
	if err != nil {
		return err
	}
	*l = *got
	return nil
}

// GetLoi returns the LOI request with id, or nil.
func (r *Repository) GetLoi(ctx context.Context, id uuid.UUID) (*models.LoiRequest, error) {
	l, err := scanLoi(r.pool.QueryRow(ctx,
		`SELECT `+loiColumns+` FROM loi_requests l JOIN reciprocal_clubs c ON c.id = l.club_id WHERE l.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return l, err
}

// CancelLoi moves a pending request to rejected. It returns nil when the
// request is no longer pending.
func (r *Repository) CancelLoi(ctx context.Context, id uuid.UUID) (*models.LoiRequest, error) {
	const q = `WITH upd AS (
		UPDATE loi_requests SET status = 'rejected', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING *
	)
	SELECT ` + loiColumns + ` FROM upd l JOIN reciprocal_clubs c ON c.id = l.club_id`
	l, err := scanLoi(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return l, err
}

// ListLois returns the member's LOI requests, newest first.
func (r *Repository) ListLois(ctx context.Context, f LoiFilter) ([]models.LoiRequest, error) {
	q := `SELECT ` + loiColumns + ` FROM loi_requests l JOIN reciprocal_clubs c ON c.id = l.club_id
		WHERE l.member_id = $1`
	args := []interface{}{f.MemberID}
	if f.Status != "" {
		args = append(args, f.Status)
		q += ` AND l.status = $2`
	}
	q += ` ORDER BY l.requested_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []models.LoiRequest{}
	for rows.Next() {
		l, err := scanLoi(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *l)
	}
	return list, rows.Err()
}

// MemberContact returns the full name and email of a member.
func (r *Repository) MemberContact(ctx context.Context, id uuid.UUID) (string, string, error) {
	var name, email string
	err := r.pool.QueryRow(ctx, `SELECT full_name, email FROM members WHERE id = $1`, id).Scan(&name, &email)
	return name, email, err
}
