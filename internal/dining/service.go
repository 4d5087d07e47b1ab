// Package dining manages members' table reservations.
package dining

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/apperr"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
)

const (
	MinGuests = 1
	MaxGuests = 10
)

// ListFilter narrows a member's reservation listing.
type ListFilter struct {
	MemberID uuid.UUID
	Date     *models.Date
	From     *models.Date
	Statuses []models.ReservationStatus
}

// Store is the persistence the dining service needs. *Repository implements it.
type Store interface {
	List(ctx context.Context, f ListFilter) ([]models.DiningReservation, error)
	Get(ctx context.Context, id uuid.UUID) (*models.DiningReservation, error)
	Create(ctx context.Context, r *models.DiningReservation) error
	Update(ctx context.Context, r *models.DiningReservation) (*models.DiningReservation, error)
}

// Service applies reservation rules and ownership checks. Overlapping
// reservations for the same slot are allowed.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a dining service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Today is the current calendar date.
func (s *Service) Today() models.Date {
	return models.DateOf(s.now())
}

// CreateInput is a new reservation request.
type CreateInput struct {
	MemberID        uuid.UUID
	Date            models.Date
	Time            string
	MealType        models.DiningMealType
	GuestCount      int
	TablePreference *string
	SpecialRequests *string
}

// UpdateInput holds the fields to change. Nil fields are left as they are.
type UpdateInput struct {
	Date            *models.Date
	Time            *string
	MealType        *models.DiningMealType
	GuestCount      *int
	TablePreference *string
	SpecialRequests *string
	Status          *models.ReservationStatus
}

func checkGuests(n int) error {
	if n < MinGuests || n > MaxGuests {
		return apperr.InvalidRequest("Guest count must be between 1 and 10")
	}
	return nil
}

// List returns the member's reservations matching f.
func (s *Service) List(ctx context.Context, f ListFilter) ([]models.DiningReservation, error) {
	list, err := s.store.List(ctx, f)
	if err != nil {
		return nil, apperr.Upstream("Failed to get reservations", err)
	}
	return list, nil
}

// Create validates in and stores a pending reservation.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.DiningReservation, error) {
	if err := checkGuests(in.GuestCount); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Time) == "" {
		return nil, apperr.InvalidRequest("Reservation time is required")
	}
	res := &models.DiningReservation{
		MemberID:        in.MemberID,
		ReservationDate: in.Date,
		ReservationTime: in.Time,
		MealType:        in.MealType,
		GuestCount:      in.GuestCount,
		TablePreference: blankToNil(in.TablePreference),
		SpecialRequests: blankToNil(in.SpecialRequests),
		Status:          models.ReservationPending,
	}
	if err := s.store.Create(ctx, res); err != nil {
		return nil, apperr.Upstream("Failed to create reservation", err)
	}
	s.logger.Info("dining reservation created",
		zap.String("reservation_id", res.ID.String()),
		zap.String("member_id", in.MemberID.String()))
	return res, nil
}

func (s *Service) owned(ctx context.Context, id, memberID uuid.UUID, verb string) (*models.DiningReservation, error) {
	res, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, apperr.Upstream("Failed to "+verb+" reservation", err)
	}
	if res == nil {
		return nil, apperr.NotFound("Reservation not found")
	}
	if res.MemberID != memberID {
		return nil, apperr.Forbidden("Not authorized to " + verb + " this reservation")
	}
	return res, nil
}

// Update applies in to a reservation owned by memberID.
func (s *Service) Update(ctx context.Context, id, memberID uuid.UUID, in UpdateInput) (*models.DiningReservation, error) {
	res, err := s.owned(ctx, id, memberID, "update")
	if err != nil {
		return nil, err
	}
	if in.Date != nil {
		res.ReservationDate = *in.Date
	}
	if in.Time != nil && strings.TrimSpace(*in.Time) != "" {
		res.ReservationTime = *in.Time
	}
	if in.MealType != nil {
		res.MealType = *in.MealType
	}
	if in.GuestCount != nil {
		if err := checkGuests(*in.GuestCount); err != nil {
			return nil, err
		}
		res.GuestCount = *in.GuestCount
	}
	if in.TablePreference != nil {
		res.TablePreference = in.TablePreference
	}
	if in.SpecialRequests != nil {
		res.SpecialRequests = in.SpecialRequests
	}
	if in.Status != nil {
		res.Status = *in.Status
	}

	updated, err := s.store.Update(ctx, res)
	if err != nil {
		return nil, apperr.Upstream("Failed to update reservation", err)
	}
	if updated == nil {
		return nil, apperr.NotFound("Reservation not found")
	}
	return updated, nil
}

// Cancel sets a reservation owned by memberID to cancelled.
func (s *Service) Cancel(ctx context.Context, id, memberID uuid.UUID) (*models.DiningReservation, error) {
	res, err := s.owned(ctx, id, memberID, "cancel")
	if err != nil {
		return nil, err
	}
	res.Status = models.ReservationCancelled
	updated, err := s.store.Update(ctx, res)
	if err != nil {
		return nil, apperr.Upstream("Failed to cancel reservation", err)
	}
	if updated == nil {
		return nil, apperr.NotFound("Reservation not found")
	}
	return updated, nil
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
