package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
)

const memberColumns = `id, email, password_hash, full_name, first_name, phone_number,
	membership_number, membership_type, member_since, member_until, role, is_active,
	created_at, updated_at`

// Repository handles member credential, session and reset token persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanMember(row pgx.Row) (*models.Member, error) {
	var m models.Member
	err := row.Scan(&m.ID, &m.Email, &m.PasswordHash, &m.FullName, &m.FirstName, &m.PhoneNumber,
		&m.MembershipNumber, &m.MembershipType, &m.MemberSince, &m.MemberUntil, &m.Role, &m.IsActive,
		&m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMemberByEmail returns the member with email, or nil.
func (r *Repository) GetMemberByEmail(ctx context.Context, email string) (*models.Member, error) {
	return scanMember(r.pool.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM members WHERE lower(email) = lower($1)`, email))
}

// GetMemberByID returns the member with id, or nil.
func (r *Repository) GetMemberByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	return scanMember(r.pool.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = $1`, id))
}

// CreateMember inserts m and fills its generated fields.
func (r *Repository) CreateMember(ctx context.Context, m *models.Member) error {
	const q = `INSERT INTO members (email, password_hash, full_name, first_name, phone_number,
		membership_number, membership_type, member_since, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, m.Email, m.PasswordHash, m.FullName, m.FirstName, m.PhoneNumber,
		m.MembershipNumber, m.MembershipType, m.MemberSince, m.Role, m.IsActive).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

// CreateProfile inserts an empty profile for memberID if none exists.
func (r *Repository) CreateProfile(ctx context.Context, memberID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO member_profiles (member_id) VALUES ($1) ON CONFLICT (member_id) DO NOTHING`, memberID)
	return err
}

// UpdatePasswordHash replaces the member's password hash.
func (r *Repository) UpdatePasswordHash(ctx context.Context, memberID uuid.UUID, hash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE members SET password_hash = $2, updated_at = NOW() WHERE id = $1`, memberID, hash)
	return err
}

// CreateSession inserts s and fills its generated fields.
func (r *Repository) CreateSession(ctx context.Context, s *models.Session) error {
	const q = `INSERT INTO sessions (member_id, token, device_info, ip_address, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, last_active_at`
	return r.pool.QueryRow(ctx, q, s.MemberID, s.Token, s.DeviceInfo, s.IPAddress, s.ExpiresAt).
		Scan(&s.ID, &s.CreatedAt, &s.LastActiveAt)
}

// FindActiveSession returns the session for token if unexpired at now and its member is active.
func (r *Repository) FindActiveSession(ctx context.Context, token string, now time.Time) (*ActiveSession, error) {
	const q = `SELECT s.member_id, m.role, s.expires_at
		FROM sessions s JOIN members m ON m.id = s.member_id
		WHERE s.token = $1 AND s.expires_at > $2 AND m.is_active`
	var a ActiveSession
	err := r.pool.QueryRow(ctx, q, token, now).Scan(&a.MemberID, &a.Role, &a.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// TouchSession sets last_active_at for token.
func (r *Repository) TouchSession(ctx context.Context, token string, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE sessions SET last_active_at = $2 WHERE token = $1`, token, at)
	return err
}

// DeleteSession removes the session for token. Deleting a missing token is not an error.
func (r *Repository) DeleteSession(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}

// DeleteMemberSessions removes every session of memberID.
func (r *Repository) DeleteMemberSessions(ctx context.Context, memberID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE member_id = $1`, memberID)
	return err
}

// DeleteExpiredSessions removes sessions that expired before now and returns how many.
func (r *Repository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CreateResetToken inserts t and fills its generated fields.
func (r *Repository) CreateResetToken(ctx context.Context, t *models.PasswordResetToken) error {
	const q = `INSERT INTO password_reset_tokens (member_id, token, expires_at)
		VALUES ($1, $2, $3) RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q, t.MemberID, t.Token, t.ExpiresAt).Scan(&t.ID, &t.CreatedAt)
}

// ClaimResetToken marks an unused, unexpired token as used and returns its member.
// It returns uuid.Nil when the token cannot be redeemed. The single UPDATE makes
// concurrent redemptions of the same token succeed at most once.
func (r *Repository) ClaimResetToken(ctx context.Context, token string, now time.Time) (uuid.UUID, error) {
	const q = `UPDATE password_reset_tokens SET used = TRUE
		WHERE token = $1 AND used = FALSE AND expires_at > $2
		RETURNING member_id`
	var memberID uuid.UUID
	err := r.pool.QueryRow(ctx, q, token, now).Scan(&memberID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, nil
	}
	return memberID, err
}
