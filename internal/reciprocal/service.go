// Package reciprocal serves the reciprocal club directory and Letter of
// Introduction requests.
package reciprocal

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/apperr"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/queue"
)

// AllRegions is the region filter value meaning no filter.
const AllRegions = "All"

// ClubFilter narrows the club listing. Empty fields do not filter.
type ClubFilter struct {
	Region  string
	Country string
	Search  string
}

// LoiFilter narrows a member's LOI listing.
type LoiFilter struct {
	MemberID uuid.UUID
	Status   models.LoiStatus
}

// Store is the persistence the reciprocal service needs. *Repository implements it.
type Store interface {
	ListClubs(ctx context.Context, f ClubFilter) ([]models.ReciprocalClub, error)
	GetActiveClub(ctx context.Context, id uuid.UUID) (*models.ReciprocalClub, error)
	CreateLoi(ctx context.Context, l *models.LoiRequest) error
	GetLoi(ctx context.Context, id uuid.UUID) (*models.LoiRequest, error)
	CancelLoi(ctx context.Context, id uuid.UUID) (*models.LoiRequest, error)
	ListLois(ctx context.Context, f LoiFilter) ([]models.LoiRequest, error)
	MemberContact(ctx context.Context, id uuid.UUID) (name, email string, err error)
}

// Notifier queues outbound email. *queue.Queue implements it.
type Notifier interface {
	EnqueueEmail(ctx context.Context, t queue.JobType, payload queue.EmailPayload) error
}

// Service applies LOI rules.
type Service struct {
	store          Store
	notifier       Notifier
	secretaryEmail string
	logger         *zap.Logger
}

// NewService creates a reciprocal service. New LOI requests are announced to
// secretaryEmail when both it and notifier are set.
func NewService(store Store, notifier Notifier, secretaryEmail string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, notifier: notifier, secretaryEmail: secretaryEmail, logger: logger}
}

// ListClubs returns active clubs matching f. A region of "All" is ignored.
func (s *Service) ListClubs(ctx context.Context, f ClubFilter) ([]models.ReciprocalClub, error) {
	if f.Region == AllRegions {
		f.Region = ""
	}
	f.Search = strings.TrimSpace(f.Search)
	list, err := s.store.ListClubs(ctx, f)
	if err != nil {
		return nil, apperr.Upstream("Failed to get clubs", err)
	}
	return list, nil
}

// GetClub returns an active club.
func (s *Service) GetClub(ctx context.Context, id uuid.UUID) (*models.ReciprocalClub, error) {
	c, err := s.store.GetActiveClub(ctx, id)
	if err != nil {
		return nil, apperr.Upstream("Failed to get club", err)
	}
	if c == nil {
		return nil, apperr.NotFound("Club not found")
	}
	return c, nil
}

// CreateLoiInput is a new LOI request from an authenticated member.
type CreateLoiInput struct {
	MemberID        uuid.UUID
	ClubID          uuid.UUID
	ArrivalDate     models.Date
	DepartureDate   models.Date
	Purpose         models.VisitPurpose
	SpecialRequests *string
}

// CreateLoi validates in and stores a pending request.
func (s *Service) CreateLoi(ctx context.Context, in CreateLoiInput) (*models.LoiRequest, error) {
	if in.DepartureDate.Before(in.ArrivalDate) {
		return nil, apperr.InvalidRequest("Departure date must be on or after arrival date")
	}
	club, err := s.GetClub(ctx, in.ClubID)
	if err != nil {
		return nil, err
	}

	l := &models.LoiRequest{
		MemberID:        in.MemberID,
		ClubID:          club.ID,
		ArrivalDate:     in.ArrivalDate,
		DepartureDate:   in.DepartureDate,
		Purpose:         in.Purpose,
		SpecialRequests: blankToNil(in.SpecialRequests),
		Status:          models.LoiPending,
	}
	if err := s.store.CreateLoi(ctx, l); err != nil {
		return nil, apperr.Upstream("Failed to create LOI request", err)
	}
	s.logger.Info("loi request created",
		zap.String("loi_request_id", l.ID.String()),
		zap.String("club_id", club.ID.String()),
		zap.String("member_id", in.MemberID.String()))
	s.notifySecretary(ctx, l, club)
	return l, nil
}

// notifySecretary queues the secretary email. Failures are logged only.
func (s *Service) notifySecretary(ctx context.Context, l *models.LoiRequest, club *models.ReciprocalClub) {
	if s.notifier == nil || s.secretaryEmail == "" {
		return
	}
	name, email, err := s.store.MemberContact(ctx, l.MemberID)
	if err != nil {
		s.logger.Warn("lookup member for loi notice failed", zap.String("member_id", l.MemberID.String()), zap.Error(err))
		name = l.MemberID.String()
	}
	payload := queue.EmailPayload{
		RecipientEmail: s.secretaryEmail,
		RecipientName:  "Club Secretary",
		LoiRequestID:   l.ID.String(),
		MemberName:     name,
		MemberEmail:    email,
		ClubName:       club.Name,
		ArrivalDate:    l.ArrivalDate.String(),
		DepartureDate:  l.DepartureDate.String(),
		Purpose:        string(l.Purpose),
	}
	if err := s.notifier.EnqueueEmail(ctx, queue.JobTypeLoiSubmitted, payload); err != nil {
		s.logger.Error("enqueue loi notice failed", zap.String("loi_request_id", l.ID.String()), zap.Error(err))
	}
}

// ListLois returns the member's requests matching f.
func (s *Service) ListLois(ctx context.Context, f LoiFilter) ([]models.LoiRequest, error) {
	list, err := s.store.ListLois(ctx, f)
	if err != nil {
		return nil, apperr.Upstream("Failed to get LOI requests", err)
	}
	return list, nil
}

// CancelLoi withdraws a pending request owned by memberID. The request's
// status becomes rejected.
func (s *Service) CancelLoi(ctx context.Context, id, memberID uuid.UUID) (*models.LoiRequest, error) {
	l, err := s.store.GetLoi(ctx, id)
	if err != nil {
		return nil, apperr.Upstream("Failed to cancel LOI request", err)
	}
	if l == nil {
		return nil, apperr.NotFound("LOI request not found")
	}
	if l.MemberID != memberID {
		return nil, apperr.Forbidden("Not authorized to cancel this request")
	}
	if l.Status != models.LoiPending {
		return nil, apperr.InvalidState("Can only cancel pending requests")
	}
	updated, err := s.store.CancelLoi(ctx, id)
	if err != nil {
		return nil, apperr.Upstream("Failed to cancel LOI request", err)
	}
	if updated == nil {
		return nil, apperr.InvalidState("Can only cancel pending requests")
	}
	return updated, nil
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
