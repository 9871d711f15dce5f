package repository

import (
	"context"
	"time"

	"escolta/internal/domain/models"

	"github.com/google/uuid"
)

type ShieldRepository interface {
	List(ctx context.Context) ([]models.Shield, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Shield, error)
	Create(ctx context.Context, shield models.Shield) (models.Shield, error)
	Update(ctx context.Context, shield models.Shield) (models.Shield, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetMain(ctx context.Context, id uuid.UUID) error
}

type GalleryRepository interface {
	ListCategories(ctx context.Context) ([]models.GalleryCategory, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (models.GalleryCategory, error)
	CreateCategory(ctx context.Context, cat models.GalleryCategory) (models.GalleryCategory, error)
	UpdateCategory(ctx context.Context, cat models.GalleryCategory) (models.GalleryCategory, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListItems(ctx context.Context) ([]models.GalleryItem, error)
	ListItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.GalleryItem, error)
	GetItemByID(ctx context.Context, id uuid.UUID) (models.GalleryItem, error)
	CreateItem(ctx context.Context, item models.GalleryItem) (models.GalleryItem, error)
	UpdateItem(ctx context.Context, item models.GalleryItem) (models.GalleryItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ReorderItems(ctx context.Context, items []models.ReorderItem) error
}

type LeadershipRepository interface {
	List(ctx context.Context) ([]models.LeadershipPeriod, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.LeadershipPeriod, error)
	Create(ctx context.Context, period models.LeadershipPeriod) (models.LeadershipPeriod, error)
	Update(ctx context.Context, period models.LeadershipPeriod) (models.LeadershipPeriod, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, items []models.ReorderItem) error
}

type MilestoneRepository interface {
	List(ctx context.Context) ([]models.HistoricalMilestone, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.HistoricalMilestone, error)
	Create(ctx context.Context, m models.HistoricalMilestone) (models.HistoricalMilestone, error)
	Update(ctx context.Context, m models.HistoricalMilestone) (models.HistoricalMilestone, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, items []models.ReorderItem) error
}

type HistoricalImageRepository interface {
	List(ctx context.Context) ([]models.HistoricalImage, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.HistoricalImage, error)
	Create(ctx context.Context, img models.HistoricalImage) (models.HistoricalImage, error)
	Update(ctx context.Context, img models.HistoricalImage) (models.HistoricalImage, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, items []models.ReorderItem) error
}

type ShieldValueRepository interface {
	List(ctx context.Context) ([]models.ShieldValue, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.ShieldValue, error)
	Create(ctx context.Context, val models.ShieldValue) (models.ShieldValue, error)
	Update(ctx context.Context, val models.ShieldValue) (models.ShieldValue, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, items []models.ReorderItem) error
}

type SiteConfigRepository interface {
	Get(ctx context.Context) (models.SiteConfig, error)
	Upsert(ctx context.Context, cfg models.SiteConfig) (models.SiteConfig, error)
}

type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) (uuid.UUID, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passHash []byte) error
}

type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error
	GetRefreshToken(ctx context.Context, userID, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID, token string) error
	DeleteAllUserTokens(ctx context.Context, userID string) error
	SaveResetToken(ctx context.Context, userID, token string, exp time.Duration) error
	ConsumeResetToken(ctx context.Context, token string) (string, error)
}

// ImageKeySource lists every storage key referenced by a table, used by
// the orphaned-object cleanup to build the referenced set.
type ImageKeySource interface {
	ReferencedKeys(ctx context.Context) ([]string, error)
}
