package models

import (
	"time"

	"github.com/google/uuid"
)

// Member is a club member row. Only active members may authenticate.
type Member struct {
	ID               uuid.UUID      `json:"id"`
	Email            string         `json:"email"`
	PasswordHash     string         `json:"-"`
	FullName         string         `json:"full_name"`
	FirstName        string         `json:"first_name"`
	PhoneNumber      *string        `json:"phone_number"`
	MembershipNumber string         `json:"membership_number"`
	MembershipType   MembershipType `json:"membership_type"`
	MemberSince      Date           `json:"member_since"`
	MemberUntil      *Date          `json:"member_until"`
	Role             Role           `json:"role"`
	IsActive         bool           `json:"is_active"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// MemberPublic is the login response shape.
type MemberPublic struct {
	ID               uuid.UUID      `json:"id"`
	Email            string         `json:"email"`
	FullName         string         `json:"full_name"`
	FirstName        string         `json:"first_name"`
	MembershipNumber string         `json:"membership_number"`
	MembershipType   MembershipType `json:"membership_type"`
}

// ToPublic converts Member to MemberPublic.
func (m *Member) ToPublic() MemberPublic {
	return MemberPublic{
		ID:               m.ID,
		Email:            m.Email,
		FullName:         m.FullName,
		FirstName:        m.FirstName,
		MembershipNumber: m.MembershipNumber,
		MembershipType:   m.MembershipType,
	}
}

// MemberProfile holds a member's preferences.
type MemberProfile struct {
	MemberID            uuid.UUID `json:"member_id"`
	DietaryRequirements *string                `json:"dietary_requirements"`
	Preferences         map[string]interface{} `json:"preferences"`
	NotificationEnabled bool                   `json:"notification_enabled"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

// DefaultProfile is returned for members without a member_profiles row.
func DefaultProfile(memberID uuid.UUID) MemberProfile {
	return MemberProfile{
		MemberID:            memberID,
		Preferences:         map[string]interface{}{},
		NotificationEnabled: true,
	}
}
