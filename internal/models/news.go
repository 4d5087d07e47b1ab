package models

import (
	"time"

	"github.com/google/uuid"
)

// ClubNews is an admin-authored news article.
type ClubNews struct {
	ID            uuid.UUID    `json:"id"`
	Title         string       `json:"title"`
	Content       string       `json:"content"`
	Category      NewsCategory `json:"category"`
	PublishedDate Date         `json:"published_date"`
	IsFeatured    bool         `json:"is_featured"`
	IsActive      bool         `json:"is_active"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
