// Package members serves a member's own profile and activity.
package members

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/apperr"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/dining"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/events"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/reciprocal"
)

// MemberUpdate holds member columns to change. Nil fields are untouched.
type MemberUpdate struct {
	FullName    *string
	FirstName   *string
	PhoneNumber *string
}

// ProfileUpdate holds profile columns to change. Nil fields are untouched.
type ProfileUpdate struct {
	DietaryRequirements *string
	NotificationEnabled *bool
}

// Store is the persistence the members service needs. *Repository implements it.
type Store interface {
	GetMember(ctx context.Context, id uuid.UUID) (*models.Member, error)
	UpdateMember(ctx context.Context, id uuid.UUID, u MemberUpdate) (*models.Member, error)
	GetProfile(ctx context.Context, memberID uuid.UUID) (*models.MemberProfile, error)
	UpsertProfile(ctx context.Context, memberID uuid.UUID, u ProfileUpdate) (*models.MemberProfile, error)
}

// Bookings lists event bookings. *events.Service implements it.
type Bookings interface {
	MemberBookings(ctx context.Context, f events.BookingFilter) ([]models.EventBooking, error)
}

// Reservations lists dining reservations. *dining.Service implements it.
type Reservations interface {
	List(ctx context.Context, f dining.ListFilter) ([]models.DiningReservation, error)
}

// Lois lists LOI requests. *reciprocal.Service implements it.
type Lois interface {
	ListLois(ctx context.Context, f reciprocal.LoiFilter) ([]models.LoiRequest, error)
}

// Profile is a member row with its preferences.
type Profile struct {
	Member  *models.Member        `json:"member"`
	Profile *models.MemberProfile `json:"profile"`
}

// Service implements the /members endpoints.
type Service struct {
	store        Store
	bookings     Bookings
	reservations Reservations
	lois         Lois
	logger       *zap.Logger
	now          func() time.Time
}

// NewService creates a members service.
func NewService(store Store, bookings Bookings, reservations Reservations, lois Lois, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:        store,
		bookings:     bookings,
		reservations: reservations,
		lois:         lois,
		logger:       logger,
		now:          time.Now,
	}
}

// GetProfile returns the member and their profile, or the default profile when none is stored.
func (s *Service) GetProfile(ctx context.Context, memberID uuid.UUID) (*Profile, error) {
	m, err := s.store.GetMember(ctx, memberID)
	if err != nil {
		return nil, apperr.Upstream("Failed to get profile", err)
	}
	if m == nil {
		return nil, apperr.NotFound("Member not found")
	}
	p, err := s.store.GetProfile(ctx, memberID)
	if err != nil {
		return nil, apperr.Upstream("Failed to get profile", err)
	}
	if p == nil {
		d := models.DefaultProfile(memberID)
		p = &d
	}
	return &Profile{Member: m, Profile: p}, nil
}

// UpdateInput is a profile edit. Blank names are ignored.
type UpdateInput struct {
	FullName            *string
	FirstName           *string
	PhoneNumber         *string
	DietaryRequirements *string
	NotificationEnabled *bool
}

// UpdateProfile updates the member row and then upserts the profile row.
// The two writes are not in one transaction; a profile failure leaves the
// member update applied.
func (s *Service) UpdateProfile(ctx context.Context, memberID uuid.UUID, in UpdateInput) (*Profile, error) {
	mu := MemberUpdate{PhoneNumber: in.PhoneNumber}
	if in.FullName != nil && strings.TrimSpace(*in.FullName) != "" {
		mu.FullName = in.FullName
	}
	if in.FirstName != nil && strings.TrimSpace(*in.FirstName) != "" {
		mu.FirstName = in.FirstName
	}
	m, err := s.store.UpdateMember(ctx, memberID, mu)
	if err != nil {
		return nil, apperr.Upstream("Failed to update member", err)
	}
	if m == nil {
		return nil, apperr.NotFound("Member not found")
	}
	p, err := s.store.UpsertProfile(ctx, memberID, ProfileUpdate{
		DietaryRequirements: in.DietaryRequirements,
		NotificationEnabled: in.NotificationEnabled,
	})
	if err != nil {
		s.logger.Error("profile upsert failed after member update",
			zap.String("member_id", memberID.String()), zap.Error(err))
		return nil, apperr.Upstream("Failed to update profile", err)
	}
	return &Profile{Member: m, Profile: p}, nil
}

func (s *Service) today() models.Date {
	return models.DateOf(s.now())
}

// UpcomingBookings returns the member's confirmed bookings for events from today on.
func (s *Service) UpcomingBookings(ctx context.Context, memberID uuid.UUID) ([]models.EventBooking, error) {
	today := s.today()
	return s.bookings.MemberBookings(ctx, events.BookingFilter{
		MemberID: memberID,
		Status:   models.BookingConfirmed,
		From:     &today,
	})
}

// UpcomingReservations returns the member's reservations from today on.
func (s *Service) UpcomingReservations(ctx context.Context, memberID uuid.UUID) ([]models.DiningReservation, error) {
	today := s.today()
	return s.reservations.List(ctx, dining.ListFilter{MemberID: memberID, From: &today})
}

// LoiRequests returns every LOI request the member has made, newest first.
func (s *Service) LoiRequests(ctx context.Context, memberID uuid.UUID) ([]models.LoiRequest, error) {
	return s.lois.ListLois(ctx, reciprocal.LoiFilter{MemberID: memberID})
}
