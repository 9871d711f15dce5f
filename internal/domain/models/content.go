package models

import (
	"time"

	"github.com/google/uuid"
)

// Shield is an institutional shield/insignia shown on the public site.
// At most one row carries IsMainShield=true; the repository enforces
// the flag inside a transaction.
type Shield struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	Symbolism    string    `json:"symbolism,omitempty" db:"symbolism"`
	ImageURL     string    `json:"image_url,omitempty" db:"image_url"`
	ImageKey     string    `json:"image_key,omitempty" db:"image_key"`
	IsMainShield bool      `json:"is_main_shield" db:"is_main_shield"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// LeadershipPeriod is one entry of the leadership timeline (year plus the
// jefatura that led the guard that year).
type LeadershipPeriod struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Year         int       `json:"year" db:"year"`
	Jefatura     string    `json:"jefatura" db:"jefatura"`
	SecondName   *string   `json:"second_name,omitempty" db:"second_name"`
	ImageURL     *string   `json:"image_url,omitempty" db:"image_url"`
	ImageKey     *string   `json:"image_key,omitempty" db:"image_key"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// HistoricalMilestone is a dated event on the history page.
type HistoricalMilestone struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Year         int       `json:"year" db:"year"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	IconName     IconName  `json:"icon_name" db:"icon_name"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// HistoricalImage is an archival photo shown alongside the milestones.
type HistoricalImage struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description,omitempty" db:"description"`
	ImageURL     string    `json:"image_url,omitempty" db:"image_url"`
	ImageKey     string    `json:"image_key,omitempty" db:"image_key"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ShieldValue is one of the values the shield symbolism is built on
// (honor, discipline...), rendered with a fixed icon.
type ShieldValue struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	IconName     IconName  `json:"icon_name" db:"icon_name"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ReorderItem is one (id, displayOrder) pair of a reorder request. Items
// are applied as independent updates, a partial failure leaves the rest
// untouched.
type ReorderItem struct {
	ID           uuid.UUID `json:"id"`
	DisplayOrder int       `json:"display_order"`
}
