package models

import (
	"time"

	"github.com/google/uuid"
)

// SiteConfig is the single row of site-wide settings. It is never
// deleted; the read path hands back a zero-value config when the table
// is still empty.
type SiteConfig struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	ShortName    string    `json:"short_name,omitempty" db:"short_name"`
	ContactEmail string    `json:"contact_email,omitempty" db:"contact_email"`
	ContactPhone string    `json:"contact_phone,omitempty" db:"contact_phone"`
	Address      string    `json:"address,omitempty" db:"address"`
	ScheduleText string    `json:"schedule_text,omitempty" db:"schedule_text"`
	LogoURL      string    `json:"logo_url,omitempty" db:"logo_url"`
	LogoKey      string    `json:"logo_key,omitempty" db:"logo_key"`
	FaviconURL   string    `json:"favicon_url,omitempty" db:"favicon_url"`
	FaviconKey   string    `json:"favicon_key,omitempty" db:"favicon_key"`
	FacebookURL  string    `json:"facebook_url,omitempty" db:"facebook_url"`
	InstagramURL string    `json:"instagram_url,omitempty" db:"instagram_url"`
	YoutubeURL   string    `json:"youtube_url,omitempty" db:"youtube_url"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
