package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/apperr"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/queue"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/utils"
)

// MinPasswordLength applies to registration, change and reset.
const MinPasswordLength = 6

// Store is the persistence the auth service needs. *Repository implements it.
type Store interface {
	GetMemberByEmail(ctx context.Context, email string) (*models.Member, error)
	GetMemberByID(ctx context.Context, id uuid.UUID) (*models.Member, error)
	CreateMember(ctx context.Context, m *models.Member) error
	CreateProfile(ctx context.Context, memberID uuid.UUID) error
	UpdatePasswordHash(ctx context.Context, memberID uuid.UUID, hash string) error
	CreateSession(ctx context.Context, s *models.Session) error
	DeleteSession(ctx context.Context, token string) error
	DeleteMemberSessions(ctx context.Context, memberID uuid.UUID) error
	CreateResetToken(ctx context.Context, t *models.PasswordResetToken) error
	ClaimResetToken(ctx context.Context, token string, now time.Time) (uuid.UUID, error)
}

// Notifier hands outbound email to the worker. *queue.Queue implements it.
type Notifier interface {
	EnqueueEmail(ctx context.Context, t queue.JobType, payload queue.EmailPayload) error
}

// Options configures token lifetimes.
type Options struct {
	SessionTTL time.Duration
	ResetTTL   time.Duration
}

// Service implements login, logout, registration and password management.
type Service struct {
	store    Store
	notifier Notifier
	opts     Options
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates an auth service. notifier may be nil, in which case
// reset emails are not sent.
func NewService(store Store, notifier Notifier, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 30 * 24 * time.Hour
	}
	if opts.ResetTTL <= 0 {
		opts.ResetTTL = time.Hour
	}
	return &Service{store: store, notifier: notifier, opts: opts, logger: logger, now: time.Now}
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Member  models.MemberPublic
	Session *models.Session
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// burnHash spends a bcrypt comparison so unknown emails take as long as wrong passwords.
func burnHash(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = utils.HashPassword("not-a-real-password")
	})
	_ = utils.CheckPassword(password, dummyHash)
}

// Login verifies credentials and starts a session. Unknown email, inactive
// member and wrong password all fail with the same error.
func (s *Service) Login(ctx context.Context, email, password, deviceInfo, ipAddress string) (*LoginResult, error) {
	m, err := s.store.GetMemberByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, apperr.Upstream("Login failed", err)
	}
	if m == nil || !m.IsActive {
		burnHash(password)
		return nil, apperr.InvalidCredentials()
	}
	if !utils.CheckPassword(password, m.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	token, err := utils.GenerateToken(utils.SessionTokenBytes)
	if err != nil {
		return nil, apperr.Upstream("Login failed", err)
	}
	sess := &models.Session{
		MemberID:   m.ID,
		Token:      token,
		DeviceInfo: deviceInfo,
		IPAddress:  ipAddress,
		ExpiresAt:  s.now().Add(s.opts.SessionTTL),
	}
	if err := s.store.CreateSession(ctx, sess); err != nil {
		return nil, apperr.Upstream("Failed to create session", err)
	}
	s.logger.Info("member logged in", zap.String("member_id", m.ID.String()))
	return &LoginResult{Member: m.ToPublic(), Session: sess}, nil
}

// Logout deletes the session for token. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.store.DeleteSession(ctx, token); err != nil {
		return apperr.Upstream("Logout failed", err)
	}
	return nil
}

// Me returns the member row for memberID.
func (s *Service) Me(ctx context.Context, memberID uuid.UUID) (*models.Member, error) {
	m, err := s.store.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, apperr.Upstream("Failed to get member", err)
	}
	if m == nil {
		return nil, apperr.NotFound("Member not found")
	}
	return m, nil
}

// ChangePassword re-verifies the current password before replacing it.
// Other sessions of the member stay valid.
func (s *Service) ChangePassword(ctx context.Context, memberID uuid.UUID, current, next string) error {
	if len(next) < MinPasswordLength {
		return apperr.InvalidRequest("New password must be at least 6 characters")
	}
	m, err := s.Me(ctx, memberID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(current, m.PasswordHash) {
		return apperr.InvalidRequest("Current password is incorrect")
	}
	hash, err := utils.HashPassword(next)
	if err != nil {
		return apperr.Upstream("Failed to change password", err)
	}
	if err := s.store.UpdatePasswordHash(ctx, memberID, hash); err != nil {
		return apperr.Upstream("Failed to change password", err)
	}
	return nil
}

// RequestPasswordReset issues a reset token and queues the email. It succeeds
// whether or not the email belongs to a member.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	m, err := s.store.GetMemberByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return apperr.Upstream("Failed to process request", err)
	}
	if m == nil || !m.IsActive {
		return nil
	}

	token, err := utils.GenerateToken(utils.ResetTokenBytes)
	if err != nil {
		return apperr.Upstream("Failed to process request", err)
	}
	rt := &models.PasswordResetToken{
		MemberID:  m.ID,
		Token:     token,
		ExpiresAt: s.now().Add(s.opts.ResetTTL),
	}
	if err := s.store.CreateResetToken(ctx, rt); err != nil {
		return apperr.Upstream("Failed to process request", err)
	}

	if s.notifier == nil {
		s.logger.Warn("no notifier configured, reset email not sent", zap.String("member_id", m.ID.String()))
		return nil
	}
	payload := queue.EmailPayload{RecipientEmail: m.Email, RecipientName: m.FirstName, Token: token}
	if err := s.notifier.EnqueueEmail(ctx, queue.JobTypePasswordReset, payload); err != nil {
		s.logger.Error("enqueue password reset email failed", zap.String("member_id", m.ID.String()), zap.Error(err))
	}
	return nil
}

// ResetPassword redeems a reset token, sets the new password and revokes
// every session of the member.
func (s *Service) ResetPassword(ctx context.Context, token, next string) error {
	if token == "" || next == "" {
		return apperr.InvalidRequest("Token and new password required")
	}
	if len(next) < MinPasswordLength {
		return apperr.InvalidRequest("New password must be at least 6 characters")
	}
	hash, err := utils.HashPassword(next)
	if err != nil {
		return apperr.Upstream("Failed to reset password", err)
	}

	memberID, err := s.store.ClaimResetToken(ctx, token, s.now())
	if err != nil {
		return apperr.Upstream("Failed to reset password", err)
	}
	if memberID == uuid.Nil {
		return apperr.InvalidRequest("Invalid or expired token")
	}
	if err := s.store.UpdatePasswordHash(ctx, memberID, hash); err != nil {
		return apperr.Upstream("Failed to reset password", err)
	}
	if err := s.store.DeleteMemberSessions(ctx, memberID); err != nil {
		s.logger.Error("revoke sessions after reset failed", zap.String("member_id", memberID.String()), zap.Error(err))
	}
	return nil
}

// RegisterInput is the data an administrator supplies for a new member.
type RegisterInput struct {
	Email            string
	Password         string
	FullName         string
	FirstName        string
	PhoneNumber      *string
	MembershipNumber string
	MembershipType   models.MembershipType
	Role             models.Role
}

// Register creates a member and an empty profile.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.Member, error) {
	if len(in.Password) < MinPasswordLength {
		return nil, apperr.InvalidRequest("Password must be at least 6 characters")
	}
	existing, err := s.store.GetMemberByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperr.Upstream("Registration failed", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("Email already registered")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Upstream("Registration failed", err)
	}
	if in.MembershipType == "" {
		in.MembershipType = models.MembershipFull
	}
	if in.Role == "" {
		in.Role = models.RoleMember
	}
	firstName := in.FirstName
	if firstName == "" {
		if parts := strings.Fields(in.FullName); len(parts) > 0 {
			firstName = parts[0]
		}
	}

	m := &models.Member{
		Email:            strings.TrimSpace(in.Email),
		PasswordHash:     hash,
		FullName:         in.FullName,
		FirstName:        firstName,
		PhoneNumber:      in.PhoneNumber,
		MembershipNumber: in.MembershipNumber,
		MembershipType:   in.MembershipType,
		MemberSince:      models.DateOf(s.now()),
		Role:             in.Role,
		IsActive:         true,
	}
	if err := s.store.CreateMember(ctx, m); err != nil {
		return nil, apperr.Upstream("Registration failed", err)
	}
	if err := s.store.CreateProfile(ctx, m.ID); err != nil {
		s.logger.Warn("create member profile failed", zap.String("member_id", m.ID.String()), zap.Error(err))
	}
	s.logger.Info("member registered", zap.String("member_id", m.ID.String()))
	return m, nil
}
