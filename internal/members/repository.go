package members

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

const memberColumns = `id, email, full_name, first_name, phone_number, membership_number,
	membership_type, member_since, member_until, role, is_active, created_at, updated_at`

const profileColumns = `member_id, dietary_requirements, preferences, notification_enabled, updated_at`

// Repository handles member profile persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a members repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanMember(row pgx.Row) (*models.Member, error) {
	var m models.Member
	err := row.Scan(&m.ID, &m.Email, &m.FullName, &m.FirstName, &m.PhoneNumber, &m.MembershipNumber,
		&m.MembershipType, &m.MemberSince, &m.MemberUntil, &m.Role, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanProfile(row pgx.Row) (*models.MemberProfile, error) {
	var p models.MemberProfile
	err := row.Scan(&p.MemberID, &p.DietaryRequirements, &p.Preferences, &p.NotificationEnabled, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetMember returns the member with id, or nil.
func (r *Repository) GetMember(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	return scanMember(r.pool.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1`, id))
}

// UpdateMember applies the non-nil fields of u and returns the updated row, or nil.
func (r *Repository) UpdateMember(ctx context.Context, id uuid.UUID, u MemberUpdate) (*models.Member, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id}
	if u.FullName != nil {
		args = append(args, *u.FullName)
		sets = append(sets, "full_name = $"+strconv.Itoa(len(args)))
	}
	if u.FirstName != nil {
		args = append(args, *u.FirstName)
		sets = append(sets, "first_name = $"+strconv.Itoa(len(args)))
	}
	if u.PhoneNumber != nil {
		args = append(args, *u.PhoneNumber)
		sets = append(sets, "phone_number = NULLIF($"+strconv.Itoa(len(args))+", '')")
	}
	q := `UPDATE members SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + memberColumns
	return scanMember(r.pool.QueryRow(ctx, q, args...))
}

// GetProfile returns the member's profile row, or nil.
func (r *Repository) GetProfile(ctx context.Context, memberID uuid.UUID) (*models.MemberProfile, error) {
	return scanProfile(r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM member_profiles WHERE member_id = $1`, memberID))
}

// UpsertProfile creates or updates the member's profile. Nil fields keep their
// current value, or the column default on insert.
func (r *Repository) UpsertProfile(ctx context.Context, memberID uuid.UUID, u ProfileUpdate) (*models.MemberProfile, error) {
	const q = `INSERT INTO member_profiles (member_id, dietary_requirements, notification_enabled)
		VALUES ($1, NULLIF($2, ''), COALESCE($3, TRUE))
		ON CONFLICT (member_id) DO UPDATE SET
			dietary_requirements = CASE WHEN $4 THEN EXCLUDED.dietary_requirements ELSE member_profiles.dietary_requirements END,
			notification_enabled = COALESCE($3, member_profiles.notification_enabled),
			updated_at = NOW()
		RETURNING ` + profileColumns
	return scanProfile(r.pool.QueryRow(ctx, q,
		memberID, u.DietaryRequirements, u.NotificationEnabled, u.DietaryRequirements != nil))
}
