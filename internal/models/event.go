package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is a club event members can book.
type Event struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description"`
	EventType      EventType `json:"event_type"`
	EventDate      Date      `json:"event_date"`
	LunchTime      *string   `json:"lunch_time"`
	DinnerTime     *string   `json:"dinner_time"`
	PricePerPerson float64   `json:"price_per_person"`
	MaxCapacity    *int      `json:"max_capacity"`
	IsTBA          bool      `json:"is_tba"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// EventSummary is the event excerpt embedded in booking responses.
type EventSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	EventType EventType `json:"event_type"`
	EventDate Date      `json:"event_date"`
}

// EventBooking is a member's booking for an event.
type EventBooking struct {
	ID              uuid.UUID     `json:"id"`
	EventID         uuid.UUID     `json:"event_id"`
	MemberID        uuid.UUID     `json:"member_id"`
	MealOption      *MealOption   `json:"meal_option"`
	GuestCount      int           `json:"guest_count"`
	SpecialRequests *string       `json:"special_requests"`
	TotalPrice      float64       `json:"total_price"`
	Status          BookingStatus `json:"status"`
	BookedAt        time.Time     `json:"booked_at"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	Event           *EventSummary `json:"events,omitempty"`
}
