package models

import "fmt"

// Role is a member's authorization level.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleAdmin:
		return true
	}
	return false
}

// MembershipType is the club membership tier.
type MembershipType string

const (
	MembershipFull      MembershipType = "Full Membership"
	MembershipAssociate MembershipType = "Associate Membership"
	MembershipJunior    MembershipType = "Junior Membership"
	MembershipSenior    MembershipType = "Senior Membership"
	MembershipCorporate MembershipType = "Corporate Membership"
)

// ParseMembershipType validates s as a membership type.
func ParseMembershipType(s string) (MembershipType, error) {
	switch t := MembershipType(s); t {
	case MembershipFull, MembershipAssociate, MembershipJunior, MembershipSenior, MembershipCorporate:
		return t, nil
	}
	return "", fmt.Errorf("invalid membership_type %q", s)
}

// EventType is the kind of club event. The wire values match the events table.
type EventType string

const (
	EventSingleLunch  EventType = "lunch"
	EventSingleDinner EventType = "dinner"
	EventDualSitting  EventType = "lunch_dinner"
	EventMeeting      EventType = "meeting"
	EventSpecial      EventType = "special"
)

// ParseEventType validates s as an event type.
func ParseEventType(s string) (EventType, error) {
	switch t := EventType(s); t {
	case EventSingleLunch, EventSingleDinner, EventDualSitting, EventMeeting, EventSpecial:
		return t, nil
	}
	return "", fmt.Errorf("invalid event type %q", s)
}

// RequiresMealOption reports whether a booking must choose a sitting.
func (t EventType) RequiresMealOption() bool {
	return t == EventDualSitting
}

// Label is the display name shown by clients.
func (t EventType) Label() string {
	switch t {
	case EventSingleLunch:
		return "Lunch"
	case EventSingleDinner:
		return "Dinner"
	case EventDualSitting:
		return "Lunch & Dinner"
	case EventMeeting:
		return "Meeting"
	case EventSpecial:
		return "Special Event"
	}
	return string(t)
}

// MealOption is the sitting chosen for a dual-sitting event.
type MealOption string

const (
	MealLunch  MealOption = "lunch"
	MealDinner MealOption = "dinner"
)

// ParseMealOption validates s as a meal option.
func ParseMealOption(s string) (MealOption, error) {
	switch m := MealOption(s); m {
	case MealLunch, MealDinner:
		return m, nil
	}
	return "", fmt.Errorf("invalid meal_option %q", s)
}

// BookingStatus is the lifecycle state of an event booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// ReservationStatus is the lifecycle state of a dining reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
	ReservationNoShow    ReservationStatus = "no_show"
)

// ParseReservationStatus validates s as a reservation status.
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch st := ReservationStatus(s); st {
	case ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationCompleted, ReservationNoShow:
		return st, nil
	}
	return "", fmt.Errorf("invalid status %q", s)
}

// DiningMealType is the service a dining reservation is for.
type DiningMealType string

const (
	DiningBreakfast DiningMealType = "Breakfast"
	DiningLunch     DiningMealType = "Lunch"
)

// ParseDiningMealType validates s as a dining meal type.
func ParseDiningMealType(s string) (DiningMealType, error) {
	switch m := DiningMealType(s); m {
	case DiningBreakfast, DiningLunch:
		return m, nil
	}
	return "", fmt.Errorf("invalid meal_type %q", s)
}

// LoiStatus is the state of a Letter of Introduction request.
type LoiStatus string

const (
	LoiPending  LoiStatus = "pending"
	LoiApproved LoiStatus = "approved"
	LoiRejected LoiStatus = "rejected"
	LoiSent     LoiStatus = "sent"
)

// ParseLoiStatus validates s as an LOI status.
func ParseLoiStatus(s string) (LoiStatus, error) {
	switch st := LoiStatus(s); st {
	case LoiPending, LoiApproved, LoiRejected, LoiSent:
		return st, nil
	}
	return "", fmt.Errorf("invalid status %q", s)
}

// VisitPurpose is why a member is visiting a reciprocal club.
type VisitPurpose string

const (
	PurposeBusiness VisitPurpose = "Business"
	PurposeLeisure  VisitPurpose = "Leisure"
	PurposeBoth     VisitPurpose = "Both"
)

// ParseVisitPurpose validates s as a visit purpose.
func ParseVisitPurpose(s string) (VisitPurpose, error) {
	switch p := VisitPurpose(s); p {
	case PurposeBusiness, PurposeLeisure, PurposeBoth:
		return p, nil
	}
	return "", fmt.Errorf("invalid purpose %q", s)
}

// NewsCategory groups club news articles.
type NewsCategory string

const (
	NewsDining       NewsCategory = "Dining"
	NewsSpecialOffer NewsCategory = "Special Offer"
	NewsSpecialEvent NewsCategory = "Special Event"
	NewsEvent        NewsCategory = "Event"
	NewsGeneral      NewsCategory = "General"
)

// ParseNewsCategory validates s as a news category.
func ParseNewsCategory(s string) (NewsCategory, error) {
	switch c := NewsCategory(s); c {
	case NewsDining, NewsSpecialOffer, NewsSpecialEvent, NewsEvent, NewsGeneral:
		return c, nil
	}
	return "", fmt.Errorf("invalid category %q", s)
}
