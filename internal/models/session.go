package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is an opaque bearer token bound to a member until ExpiresAt.
type Session struct {
	ID           uuid.UUID `json:"-"`
	MemberID     uuid.UUID `json:"member_id"`
	Token        string    `json:"token"`
	DeviceInfo   string    `json:"-"`
	IPAddress    string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"-"`
	LastActiveAt time.Time `json:"-"`
}

// ValidAt reports whether the session is still usable at now.
func (s *Session) ValidAt(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// PasswordResetToken is a single-use, time-limited reset credential.
type PasswordResetToken struct {
	ID        uuid.UUID
	MemberID  uuid.UUID
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Redeemable reports whether the token can still be used at now.
func (t *PasswordResetToken) Redeemable(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
