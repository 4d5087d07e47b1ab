// Package events lists club events and handles member bookings.
package events

import (
	"context"
	"math"
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

// ListFilter narrows the event listing. Zero fields do not filter.
type ListFilter struct {
	Date *models.Date
	Type models.EventType
	From *models.Date
}

// BookingFilter narrows a member's booking listing.
type BookingFilter struct {
	MemberID uuid.UUID
	EventID  uuid.UUID
	Status   models.BookingStatus
	From     *models.Date
}

// Store is the persistence the events service needs. *Repository implements it.
type Store interface {
	ListEvents(ctx context.Context, f ListFilter) ([]models.Event, error)
	GetActiveEvent(ctx context.Context, id uuid.UUID) (*models.Event, error)
	CreateBooking(ctx context.Context, b *models.EventBooking) error
	GetBooking(ctx context.Context, id uuid.UUID) (*models.EventBooking, error)
	CancelBooking(ctx context.Context, id uuid.UUID) (*models.EventBooking, error)
	ListMemberBookings(ctx context.Context, f BookingFilter) ([]models.EventBooking, error)
}

// Service applies the booking rules.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates an events service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Today is the current calendar date used for upcoming filters.
func (s *Service) Today() models.Date {
	return models.DateOf(s.now())
}

// List returns active events matching f.
func (s *Service) List(ctx context.Context, f ListFilter) ([]models.Event, error) {
	list, err := s.store.ListEvents(ctx, f)
	if err != nil {
		return nil, apperr.Upstream("Failed to get events", err)
	}
	return list, nil
}

// Get returns an active event.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	e, err := s.store.GetActiveEvent(ctx, id)
	if err != nil {
		return nil, apperr.Upstream("Failed to get event", err)
	}
	if e == nil {
		return nil, apperr.NotFound("Event not found")
	}
	return e, nil
}

// BookInput is a booking request from an authenticated member.
type BookInput struct {
	EventID         uuid.UUID
	MemberID        uuid.UUID
	MealOption      *models.MealOption
	GuestCount      int
	SpecialRequests *string
}

// TotalPrice is the booking price. guestCount is the number of attendees
// including the booking member.
func TotalPrice(pricePerPerson float64, guestCount int) float64 {
	return math.Round(pricePerPerson*float64(guestCount)*100) / 100
}

// Book validates in and creates a pending booking. Capacity is not checked
// against the event's max_capacity.
func (s *Service) Book(ctx context.Context, in BookInput) (*models.EventBooking, error) {
	if in.GuestCount < MinGuests || in.GuestCount > MaxGuests {
		return nil, apperr.InvalidRequest("Guest count must be between 1 and 10")
	}
	event, err := s.Get(ctx, in.EventID)
	if err != nil {
		return nil, err
	}
	if event.EventType.RequiresMealOption() && in.MealOption == nil {
		return nil, apperr.InvalidRequest("Meal option required for lunch/dinner events")
	}

	// TODO: enforce max_capacity; needs the booking insert to lock the event row (SELECT ... FOR UPDATE).
	b := &models.EventBooking{
		EventID:         event.ID,
		MemberID:        in.MemberID,
		MealOption:      in.MealOption,
		GuestCount:      in.GuestCount,
		SpecialRequests: blankToNil(in.SpecialRequests),
		TotalPrice:      TotalPrice(event.PricePerPerson, in.GuestCount),
		Status:          models.BookingPending,
	}
	if err := s.store.CreateBooking(ctx, b); err != nil {
		return nil, apperr.Upstream("Failed to create booking", err)
	}
	s.logger.Info("event booked",
		zap.String("booking_id", b.ID.String()),
		zap.String("event_id", event.ID.String()),
		zap.String("member_id", in.MemberID.String()),
		zap.Int("guest_count", b.GuestCount))
	return b, nil
}

// Cancel cancels a booking owned by memberID.
func (s *Service) Cancel(ctx context.Context, bookingID, memberID uuid.UUID) (*models.EventBooking, error) {
	b, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, apperr.Upstream("Failed to cancel booking", err)
	}
	if b == nil {
		return nil, apperr.NotFound("Booking not found")
	}
	if b.MemberID != memberID {
		return nil, apperr.Forbidden("Not authorized to cancel this booking")
	}
	if b.Status == models.BookingCancelled {
		return nil, apperr.InvalidState("Booking already cancelled")
	}
	updated, err := s.store.CancelBooking(ctx, bookingID)
	if err != nil {
		return nil, apperr.Upstream("Failed to cancel booking", err)
	}
	if updated == nil {
		return nil, apperr.InvalidState("Booking already cancelled")
	}
	return updated, nil
}

// MemberBookings lists a member's bookings matching f.
func (s *Service) MemberBookings(ctx context.Context, f BookingFilter) ([]models.EventBooking, error) {
	list, err := s.store.ListMemberBookings(ctx, f)
	if err != nil {
		return nil, apperr.Upstream("Failed to get bookings", err)
	}
	return list, nil
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
