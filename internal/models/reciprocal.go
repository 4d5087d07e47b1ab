package models

import (
	"time"

	"github.com/google/uuid"
)

// ReciprocalClub is a partner club members may visit.
type ReciprocalClub struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	Region       string    `json:"region"`
	Country      string    `json:"country"`
	Note         *string   `json:"note"`
	ContactEmail *string   `json:"contact_email"`
	ContactPhone *string   `json:"contact_phone"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ClubSummary is the club excerpt embedded in LOI responses.
type ClubSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Location string    `json:"location"`
	Country  string    `json:"country"`
	Note     *string   `json:"note"`
}

// LoiRequest is a request for a Letter of Introduction to a reciprocal club.
type LoiRequest struct {
	ID              uuid.UUID    `json:"id"`
	MemberID        uuid.UUID    `json:"member_id"`
	ClubID          uuid.UUID    `json:"club_id"`
	ArrivalDate     Date         `json:"arrival_date"`
	DepartureDate   Date         `json:"departure_date"`
	Purpose         VisitPurpose `json:"purpose"`
	SpecialRequests *string      `json:"special_requests"`
	Status          LoiStatus    `json:"status"`
	SecretaryNotes  *string      `json:"secretary_notes"`
	RequestedAt     time.Time    `json:"requested_at"`
	ProcessedAt     *time.Time   `json:"processed_at"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	Club            *ClubSummary `json:"reciprocal_clubs,omitempty"`
}
