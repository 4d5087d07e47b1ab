package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/queue"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/utils"
)

type fakeStore struct {
	mu       sync.Mutex
	members  map[uuid.UUID]*models.Member
	sessions map[string]*models.Session
	resets   map[string]*models.PasswordResetToken
	touched  map[string]time.Time
	profiles map[uuid.UUID]bool
	err      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		members:  map[uuid.UUID]*models.Member{},
		sessions: map[string]*models.Session{},
		resets:   map[string]*models.PasswordResetToken{},
		touched:  map[string]time.Time{},
		profiles: map[uuid.UUID]bool{},
	}
}

func (f *fakeStore) addMember(t *testing.T, email, password string, active bool) *models.Member {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	m := &models.Member{
		ID:               uuid.New(),
		Email:            email,
		PasswordHash:     hash,
		FullName:         "Alice Smith",
		FirstName:        "Alice",
		MembershipNumber: "CUC-0001",
		MembershipType:   models.MembershipFull,
		Role:             models.RoleMember,
		IsActive:         active,
	}
	f.mu.Lock()
	f.members[m.ID] = m
	f.mu.Unlock()
	return m
}

func (f *fakeStore) GetMemberByEmail(_ context.Context, email string) (*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, m := range f.members {
		if strings.EqualFold(m.Email, email) {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetMemberByID(_ context.Context, id uuid.UUID) (*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.members[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeStore) CreateMember(_ context.Context, m *models.Member) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	cp := *m
	f.members[m.ID] = &cp
	return nil
}

func (f *fakeStore) CreateProfile(_ context.Context, memberID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[memberID] = true
	return nil
}

func (f *fakeStore) UpdatePasswordHash(_ context.Context, memberID uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.members[memberID]; ok {
		m.PasswordHash = hash
	}
	return nil
}

func (f *fakeStore) CreateSession(_ context.Context, s *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.LastActiveAt = s.CreatedAt
	cp := *s
	f.sessions[s.Token] = &cp
	return nil
}

func (f *fakeStore) DeleteSession(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, token)
	return nil
}

func (f *fakeStore) DeleteMemberSessions(_ context.Context, memberID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for tok, s := range f.sessions {
		if s.MemberID == memberID {
			delete(f.sessions, tok)
		}
	}
	return nil
}

func (f *fakeStore) CreateResetToken(_ context.Context, t *models.PasswordResetToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	cp := *t
	f.resets[t.Token] = &cp
	return nil
}

func (f *fakeStore) ClaimResetToken(_ context.Context, token string, now time.Time) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.resets[token]
	if !ok || !t.Redeemable(now) {
		return uuid.Nil, nil
	}
	t.Used = true
	return t.MemberID, nil
}

func (f *fakeStore) FindActiveSession(_ context.Context, token string, now time.Time) (*ActiveSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.sessions[token]
	if !ok || !s.ValidAt(now) {
		return nil, nil
	}
	m, ok := f.members[s.MemberID]
	if !ok || !m.IsActive {
		return nil, nil
	}
	return &ActiveSession{MemberID: m.ID, Role: m.Role, ExpiresAt: s.ExpiresAt}, nil
}

func (f *fakeStore) TouchSession(_ context.Context, token string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched[token] = at
	return nil
}

func (f *fakeStore) sessionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

type sentEmail struct {
	typ     queue.JobType
	payload queue.EmailPayload
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (n *fakeNotifier) EnqueueEmail(_ context.Context, t queue.JobType, p queue.EmailPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentEmail{typ: t, payload: p})
	return nil
}
