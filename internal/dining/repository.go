package dining

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

const reservationColumns = `id, member_id, reservation_date, reservation_time, meal_type, guest_count,
	table_preference, special_requests, status, created_at, updated_at`

// Repository handles dining reservation persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a dining repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanReservation(row pgx.Row) (*models.DiningReservation, error) {
	var r models.DiningReservation
	err := row.Scan(&r.ID, &r.MemberID, &r.ReservationDate, &r.ReservationTime, &r.MealType, &r.GuestCount,
		&r.TablePreference, &r.SpecialRequests, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// List returns the member's reservations matching f ordered by date and time.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]models.DiningReservation, error) {
	conds := []string{"member_id = $1"}
	args := []interface{}{f.MemberID}
	if f.Date != nil {
		args = append(args, *f.Date)
		conds = append(conds, "reservation_date = $"+strconv.Itoa(len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		conds = append(conds, "reservation_date >= $"+strconv.Itoa(len(args)))
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		conds = append(conds, "status = ANY($"+strconv.Itoa(len(args))+")")
	}
	q := `SELECT ` + reservationColumns + ` FROM dining_reservations WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY reservation_date ASC, reservation_time ASC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []models.DiningReservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *res)
	}
	return list, rows.Err()
}

// Get returns the reservation with id, or nil.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*models.DiningReservation, error) {
	return scanReservation(r.pool.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM dining_reservations WHERE id = $1`, id))
}

// Create inserts res and fills its generated fields.
func (r *Repository) Create(ctx context.Context, res *models.DiningReservation) error {
	const q = `INSERT INTO dining_reservations (member_id, reservation_date, reservation_time, meal_type,
		guest_count, table_preference, special_requests, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, res.MemberID, res.ReservationDate, res.ReservationTime, res.MealType,
		res.GuestCount, res.TablePreference, res.SpecialRequests, res.Status).
		Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
}

// Update writes every mutable column of res and returns the stored row.
func (r *Repository) Update(ctx context.Context, res *models.DiningReservation) (*models.DiningReservation, error) {
	const q = `UPDATE dining_reservations SET reservation_date = $2, reservation_time = $3, meal_type = $4,
		guest_count = $5, table_preference = $6, special_requests = $7, status = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + reservationColumns
	return scanReservation(r.pool.QueryRow(ctx, q, res.ID, res.ReservationDate, res.ReservationTime, res.MealType,
		res.GuestCount, res.TablePreference, res.SpecialRequests, res.Status))
}
