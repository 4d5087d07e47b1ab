package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EmailStatus is the outcome of one delivery attempt.
type EmailStatus string

const (
	EmailSent    EmailStatus = "sent"
	EmailFailed  EmailStatus = "failed"
	EmailSkipped EmailStatus = "skipped"
)

// ParseEmailStatus validates s as an email status.
func ParseEmailStatus(s string) (EmailStatus, error) {
	switch st := EmailStatus(s); st {
	case EmailSent, EmailFailed, EmailSkipped:
		return st, nil
	}
	return "", fmt.Errorf("invalid email status %q", s)
}

// EmailLog records one attempt to deliver a queued email job.
type EmailLog struct {
	ID             uuid.UUID   `json:"id"`
	JobID          string      `json:"job_id"`
	EmailType      string      `json:"email_type"`
	RecipientEmail string      `json:"recipient_email"`
	Subject        *string     `json:"subject"`
	Status         EmailStatus `json:"status"`
	Attempt        int         `json:"attempt"`
	ErrorMessage   *string     `json:"error_message"`
	CreatedAt      time.Time   `json:"created_at"`
}
