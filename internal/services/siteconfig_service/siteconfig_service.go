package services

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"escolta/internal/domain/models"
	"escolta/internal/lib/logger/sl"
	"escolta/internal/repository"
	"escolta/internal/transport/http/dto"
)

type ImageStore interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader, folder string, withThumbnail bool) (dto.UploadedImage, error)
	KeyFromURL(rawURL string) (string, error)
	BestEffortDelete(ctx context.Context, key string)
}

const (
	brandingFolder = "branding"

	cacheKey = "site_config"
	cacheTTL = 5 * time.Minute
)

// SiteConfigService serves the singleton site settings row. Reads go
// through a short-lived in-memory cache since the public site fetches
// the config on every page load.
type SiteConfigService struct {
	log    *slog.Logger
	repo   repository.SiteConfigRepository
	images ImageStore
	cache  *gocache.Cache
}

func NewSiteConfigService(log *slog.Logger, repo repository.SiteConfigRepository, images ImageStore) *SiteConfigService {
	return &SiteConfigService{
		log:    log,
		repo:   repo,
		images: images,
		cache:  gocache.New(cacheTTL, 10*time.Minute),
	}
}

func (s *SiteConfigService) Get(ctx context.Context) (models.SiteConfig, error) {
	const op = "siteconfig_service.Get"

	if cached, ok := s.cache.Get(cacheKey); ok {
		if cfg, ok := cached.(models.SiteConfig); ok {
			return cfg, nil
		}
	}

	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return models.SiteConfig{}, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Set(cacheKey, cfg, gocache.DefaultExpiration)

	return cfg, nil
}

// Update merges the request into the stored config and upserts it. Logo
// and favicon files replace the previous objects; the old keys are
// removed best-effort once the row is saved.
func (s *SiteConfigService) Update(ctx context.Context, req dto.UpdateSiteConfigRequest, logo, favicon *multipart.FileHeader) (models.SiteConfig, error) {
	const op = "siteconfig_service.Update"

	log := s.log.With(slog.String("op", op))

	existing, err := s.repo.Get(ctx)
	if err != nil {
		return models.SiteConfig{}, fmt.Errorf("%s: %w", op, err)
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.ShortName != nil {
		existing.ShortName = *req.ShortName
	}
	if req.ContactEmail != nil {
		existing.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		existing.ContactPhone = *req.ContactPhone
	}
	if req.Address != nil {
		existing.Address = *req.Address
	}
	if req.ScheduleText != nil {
		existing.ScheduleText = *req.ScheduleText
	}
	if req.FacebookURL != nil {
		existing.FacebookURL = *req.FacebookURL
	}
	if req.InstagramURL != nil {
		existing.InstagramURL = *req.InstagramURL
	}
	if req.YoutubeURL != nil {
		existing.YoutubeURL = *req.YoutubeURL
	}

	oldLogoKey := existing.LogoKey
	oldFaviconKey := existing.FaviconKey

	var freshKeys []string

	switch {
	case logo != nil:
		uploaded, err := s.images.UploadImage(ctx, logo, brandingFolder, false)
		if err != nil {
			return models.SiteConfig{}, fmt.Errorf("%s: %w", op, err)
		}
		existing.LogoURL = uploaded.URL
		existing.LogoKey = uploaded.Key
		freshKeys = append(freshKeys, uploaded.Key)
	case req.LogoURL != nil && *req.LogoURL != "":
		key, err := s.images.KeyFromURL(*req.LogoURL)
		if err != nil {
			return models.SiteConfig{}, fmt.Errorf("%s: %w", op, err)
		}
		existing.LogoURL = *req.LogoURL
		existing.LogoKey = key
	}

	switch {
	case favicon != nil:
		uploaded, err := s.images.UploadImage(ctx, favicon, brandingFolder, false)
		if err != nil {
			s.cleanup(ctx, freshKeys)
			return models.SiteConfig{}, fmt.Errorf("%s: %w", op, err)
		}
		existing.FaviconURL = uploaded.URL
		existing.FaviconKey = uploaded.Key
		freshKeys = append(freshKeys, uploaded.Key)
	case req.FaviconURL != nil && *req.FaviconURL != "":
		key, err := s.images.KeyFromURL(*req.FaviconURL)
		if err != nil {
			s.cleanup(ctx, freshKeys)
			return models.SiteConfig{}, fmt.Errorf("%s: %w", op, err)
		}
		existing.FaviconURL = *req.FaviconURL
		existing.FaviconKey = key
	}

	updated, err := s.repo.Upsert(ctx, existing)
	if err != nil {
		s.cleanup(ctx, freshKeys)
		log.Error("failed to save site config", sl.Err(err))
		return models.SiteConfig{}, fmt.Errorf("%s: %w", op, err)
	}

	if oldLogoKey != "" && oldLogoKey != updated.LogoKey {
		s.images.BestEffortDelete(ctx, oldLogoKey)
	}
	if oldFaviconKey != "" && oldFaviconKey != updated.FaviconKey {
		s.images.BestEffortDelete(ctx, oldFaviconKey)
	}

	s.cache.Delete(cacheKey)

	log.Info("site config saved", slog.String("id", updated.ID.String()))

	return updated, nil
}

func (s *SiteConfigService) cleanup(ctx context.Context, keys []string) {
	for _, key := range keys {
		s.images.BestEffortDelete(ctx, key)
	}
}
