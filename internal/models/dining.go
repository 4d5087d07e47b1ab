package models

import (
	"time"

	"github.com/google/uuid"
)

// DiningReservation is a member's table reservation.
type DiningReservation struct {
	ID              uuid.UUID         `json:"id"`
	MemberID        uuid.UUID         `json:"member_id"`
	ReservationDate Date              `json:"reservation_date"`
	ReservationTime string            `json:"reservation_time"`
	MealType        DiningMealType    `json:"meal_type"`
	GuestCount      int               `json:"guest_count"`
	TablePreference *string           `json:"table_preference"`
	SpecialRequests *string           `json:"special_requests"`
	Status          ReservationStatus `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
