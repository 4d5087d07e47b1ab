package events

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

const eventColumns = `id, title, description, event_type, event_date, lunch_time, dinner_time,
	price_per_person, max_capacity, is_tba, is_active, created_at, updated_at`

const bookingColumns = `b.id, b.event_id, b.member_id, b.meal_option, b.guest_count, b.special_requests,
	b.total_price, b.status, b.booked_at, b.created_at, b.updated_at,
	e.id, e.title, e.event_type, e.event_date`

// Repository handles event and booking persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an events repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.EventType, &e.EventDate, &e.LunchTime, &e.DinnerTime,
		&e.PricePerPerson, &e.MaxCapacity, &e.IsTBA, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func scanBooking(row pgx.Row) (*models.EventBooking, error) {
	var b models.EventBooking
	var s models.EventSummary
	err := row.Scan(&b.ID, &b.EventID, &b.MemberID, &b.MealOption, &b.GuestCount, &b.SpecialRequests,
		&b.TotalPrice, &b.Status, &b.BookedAt, &b.CreatedAt, &b.UpdatedAt,
		&s.ID, &s.Title, &s.EventType, &s.EventDate)
	if err != nil {
		return nil, err
	}
	b.Event = &s
	return &b, nil
}

// ListEvents returns active events matching f ordered by date.
func (r *Repository) ListEvents(ctx context.Context, f ListFilter) ([]models.Event, error) {
	conds := []string{"is_active"}
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if f.Date != nil {
		conds = append(conds, "event_date = "+arg(*f.Date))
	}
	if f.Type != "" {
		conds = append(conds, "event_type = "+arg(f.Type))
	}
	if f.From != nil {
		conds = append(conds, "event_date >= "+arg(*f.From))
	}
	q := `SELECT ` + eventColumns + ` FROM events WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY event_date ASC, created_at ASC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}

// GetActiveEvent returns the active event with id, or nil.
func (r *Repository) GetActiveEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	e, err := scanEvent(r.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1 AND is_active`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

// CreateBooking inserts b and reloads it with its event summary.
func (r *Repository) CreateBooking(ctx context.Context, b *models.EventBooking) error {
	const q = `WITH ins AS (
		INSERT INTO event_bookings (event_id, member_id, meal_option, guest_count, special_requests, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING *
	)
	SELECT ` + bookingColumns + ` FROM ins b JOIN events e ON e.id = b.event_id`
	got, err := scanBooking(r.pool.QueryRow(ctx, q, b.EventID, b.MemberID, b.MealOption, b.GuestCount,
		b.SpecialRequests, b.TotalPrice, b.Status))
	if err != nil {
		return err
	}
	*b = *got
	return nil
}

// GetBooking returns the booking with id, or nil.
func (r *Repository) GetBooking(ctx context.Context, id uuid.UUID) (*models.EventBooking, error) {
	b, err := scanBooking(r.pool.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM event_bookings b JOIN events e ON e.id = b.event_id WHERE b.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

// CancelBooking marks the booking cancelled unless it already is. It returns
// nil when no row changed.
func (r *Repository) CancelBooking(ctx context.Context, id uuid.UUID) (*models.EventBooking, error) {
	const q = `WITH upd AS (
		UPDATE event_bookings SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status <> 'cancelled'
		RETURNING *
	)
	SELECT ` + bookingColumns + ` FROM upd b JOIN events e ON e.id = b.event_id`
	b, err := scanBooking(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

// ListMemberBookings returns the member's bookings matching f ordered by event date.
func (r *Repository) ListMemberBookings(ctx context.Context, f BookingFilter) ([]models.EventBooking, error) {
	conds := []string{"b.member_id = $1"}
	args := []interface{}{f.MemberID}
	if f.EventID != uuid.Nil {
		args = append(args, f.EventID)
		conds = append(conds, "b.event_id = $"+strconv.Itoa(len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, "b.status = $"+strconv.Itoa(len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		conds = append(conds, "e.event_date >= $"+strconv.Itoa(len(args)))
	}
	q := `SELECT ` + bookingColumns + ` FROM event_bookings b JOIN events e ON e.id = b.event_id
		WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY e.event_date ASC, b.booked_at ASC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []models.EventBooking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *b)
	}
	return list, rows.Err()
}
