package http

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"escolta/internal/domain/models"
	"escolta/internal/services/auth"
	"escolta/internal/storage"
	"escolta/internal/transport/http/dto"
	"escolta/internal/transport/http/dto/response"
)

type ShieldService interface {
	List(ctx context.Context) ([]models.Shield, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Shield, error)
	Create(ctx context.Context, req dto.CreateShieldRequest, file *multipart.FileHeader) (models.Shield, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateShieldRequest, file *multipart.FileHeader) (models.Shield, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetMain(ctx context.Context, id uuid.UUID) error

	ListValues(ctx context.Context) ([]models.ShieldValue, error)
	GetValue(ctx context.Context, id uuid.UUID) (models.ShieldValue, error)
	CreateValue(ctx context.Context, req dto.CreateShieldValueRequest) (models.ShieldValue, error)
	UpdateValue(ctx context.Context, id uuid.UUID, req dto.UpdateShieldValueRequest) (models.ShieldValue, error)
	DeleteValue(ctx context.Context, id uuid.UUID) error
	ReorderValues(ctx context.Context, items []models.ReorderItem) error
}

type GalleryService interface {
	ListCategories(ctx context.Context) ([]models.GalleryCategory, error)
	GetCategory(ctx context.Context, id uuid.UUID) (models.GalleryCategory, error)
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (models.GalleryCategory, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (models.GalleryCategory, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListItems(ctx context.Context) ([]models.GalleryItem, error)
	ListItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.GalleryItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (models.GalleryItem, error)
	CreateItem(ctx context.Context, req dto.CreateGalleryItemRequest, file *multipart.FileHeader) (models.GalleryItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, req dto.UpdateGalleryItemRequest, file *multipart.FileHeader) (models.GalleryItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ReorderItems(ctx context.Context, items []models.ReorderItem) error
}

type LeadershipService interface {
	List(ctx context.Context) ([]models.LeadershipPeriod, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.LeadershipPeriod, error)
	Create(ctx context.Context, req dto.CreateLeadershipRequest, file *multipart.FileHeader) (models.LeadershipPeriod, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateLeadershipRequest, file *multipart.FileHeader) (models.LeadershipPeriod, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, items []models.ReorderItem) error
}

type HistoryService interface {
	ListMilestones(ctx context.Context) ([]models.HistoricalMilestone, error)
	GetMilestone(ctx context.Context, id uuid.UUID) (models.HistoricalMilestone, error)
	CreateMilestone(ctx context.Context, req dto.CreateMilestoneRequest) (models.HistoricalMilestone, error)
	UpdateMilestone(ctx context.Context, id uuid.UUID, req dto.UpdateMilestoneRequest) (models.HistoricalMilestone, error)
	DeleteMilestone(ctx context.Context, id uuid.UUID) error
	ReorderMilestones(ctx context.Context, items []models.ReorderItem) error

	ListImages(ctx context.Context) ([]models.HistoricalImage, error)
	GetImage(ctx context.Context, id uuid.UUID) (models.HistoricalImage, error)
	CreateImage(ctx context.Context, req dto.CreateHistoricalImageRequest, file *multipart.FileHeader) (models.HistoricalImage, error)
	UpdateImage(ctx context.Context, id uuid.UUID, req dto.UpdateHistoricalImageRequest, file *multipart.FileHeader) (models.HistoricalImage, error)
	DeleteImage(ctx context.Context, id uuid.UUID) error
	ReorderImages(ctx context.Context, items []models.ReorderItem) error
}

type SiteConfigService interface {
	Get(ctx context.Context) (models.SiteConfig, error)
	Update(ctx context.Context, req dto.UpdateSiteConfigRequest, logo, favicon *multipart.FileHeader) (models.SiteConfig, error)
}

type UploadService interface {
	IssuePresignedUpload(ctx context.Context, fileType, folder string) (dto.PresignedUpload, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	RegisterNewUser(ctx context.Context, name, email, password string, isAdmin bool) (uuid.UUID, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	RequestPasswordReset(ctx context.Context, email string) error
	CompletePasswordReset(ctx context.Context, token, newPassword string) error
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Routers struct {
	log               *slog.Logger
	ShieldService     ShieldService
	GalleryService    GalleryService
	LeadershipService LeadershipService
	HistoryService    HistoryService
	SiteConfigService SiteConfigService
	UploadService     UploadService
	AuthService       AuthService
	DB                HealthChecker
}

func NewRouter(
	log *slog.Logger,
	shields ShieldService,
	gallery GalleryService,
	leadership LeadershipService,
	history HistoryService,
	siteConfig SiteConfigService,
	uploads UploadService,
	authService AuthService,
	db HealthChecker,
) *Routers {
	return &Routers{
		log:               log,
		ShieldService:     shields,
		GalleryService:    gallery,
		LeadershipService: leadership,
		HistoryService:    history,
		SiteConfigService: siteConfig,
		UploadService:     uploads,
		AuthService:       authService,
		DB:                db,
	}
}

// parseID reads the :id path parameter; a malformed UUID is reported to
// the client directly and the handler should bail out.
func (r *Routers) parseID(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_id", "invalid UUID in path"))
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps service errors onto HTTP statuses. Anything not
// recognized is a 500 with no internals leaked.
func (r *Routers) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return c.JSON(http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, storage.ErrUntrustedURL):
		return c.JSON(http.StatusBadRequest, response.ErrUntrustedURL)
	case errors.Is(err, storage.ErrSlugTaken):
		return c.JSON(http.StatusConflict, response.ErrorResponseWithDetails("slug_taken", "Category slug is already in use"))
	case errors.Is(err, storage.ErrFileTooLarge):
		return c.JSON(http.StatusRequestEntityTooLarge, response.ErrorResponseWithDetails("file_too_large", "File exceeds the upload size limit"))
	case errors.Is(err, storage.ErrInvalidFileType):
		return c.JSON(http.StatusUnsupportedMediaType, response.ErrorResponseWithDetails("invalid_file_type", "File type is not allowed"))
	case errors.Is(err, models.ErrUnknownIcon):
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_icon", "Icon name is not in the allowed set"))
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	case errors.Is(err, auth.ErrInvalidResetToken):
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_reset_token", "Reset token is invalid or expired"))
	default:
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}
}

func (r *Routers) bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

// formFile returns the named multipart file when present. A missing
// file is not an error here, JSON-only requests carry none.
func formFile(c echo.Context, name string) *multipart.FileHeader {
	file, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return file
}
