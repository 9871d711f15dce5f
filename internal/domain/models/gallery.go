package models

import (
	"time"

	"github.com/google/uuid"
)

// GalleryCategory groups gallery items under a unique slug. Deleting a
// category cascades to its items.
type GalleryCategory struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// GalleryItem is a single photo of the public gallery. The storage keys
// are the source of truth for deletion, the URLs are what clients render.
type GalleryItem struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	ImageURL     string     `json:"image_url" db:"image_url"`
	ImageKey     string     `json:"image_key" db:"image_key"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
	ThumbnailKey string     `json:"thumbnail_key,omitempty" db:"thumbnail_key"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty" db:"category_id"`
	Year         int        `json:"year" db:"year"`
	DisplayOrder int        `json:"display_order" db:"display_order"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}
