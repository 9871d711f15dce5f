package services

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"

	"github.com/google/uuid"

	"escolta/internal/domain/models"
	"escolta/internal/lib/logger/sl"
	"escolta/internal/repository"
	"escolta/internal/transport/http/dto"
)

// ImageStore is the slice of the upload service the content services use.
type ImageStore interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader, folder string, withThumbnail bool) (dto.UploadedImage, error)
	KeyFromURL(rawURL string) (string, error)
	BestEffortDelete(ctx context.Context, key string)
}

const shieldFolder = "shields"

type ShieldService struct {
	log    *slog.Logger
	repo   repository.ShieldRepository
	values repository.ShieldValueRepository
	images ImageStore
}

func NewShieldService(log *slog.Logger, repo repository.ShieldRepository, values repository.ShieldValueRepository, images ImageStore) *ShieldService {
	return &ShieldService{
		log:    log,
		repo:   repo,
		values: values,
		images: images,
	}
}

func (s *ShieldService) List(ctx context.Context) ([]models.Shield, error) {
	return s.repo.List(ctx)
}

func (s *ShieldService) GetByID(ctx context.Context, id uuid.UUID) (models.Shield, error) {
	return s.repo.GetByID(ctx, id)
}

// Create builds a shield from the request, resolving the image either
// from a multipart file or from a pre-validated client-uploaded URL.
func (s *ShieldService) Create(ctx context.Context, req dto.CreateShieldRequest, file *multipart.FileHeader) (models.Shield, error) {
	const op = "shield_service.Create"

	log := s.log.With(
		slog.String("op", op),
		slog.String("title", req.Title),
	)

	shield := models.Shield{
		Title:        req.Title,
		Description:  req.Description,
		Symbolism:    req.Symbolism,
		IsMainShield: req.IsMainShield,
	}

	uploadedKey, err := s.resolveImage(ctx, file, req.ImageURL, &shield.ImageURL, &shield.ImageKey)
	if err != nil {
		return models.Shield{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.repo.Create(ctx, shield)
	if err != nil {
		// Drop the fresh upload if the row never made it.
		s.images.BestEffortDelete(ctx, uploadedKey)
		log.Error("failed to create shield", sl.Err(err))
		return models.Shield{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("shield created", slog.String("id", created.ID.String()))

	return created, nil
}

func (s *ShieldService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateShieldRequest, file *multipart.FileHeader) (models.Shield, error) {
	const op = "shield_service.Update"

	log := s.log.With(
		slog.String("op", op),
		slog.String("shield_id", id.String()),
	)

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Shield{}, fmt.Errorf("%s: %w", op, err)
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Symbolism != nil {
		existing.Symbolism = *req.Symbolism
	}
	if req.IsMainShield != nil {
		existing.IsMainShield = *req.IsMainShield
	}

	oldKey := existing.ImageKey
	var newURL string
	if req.ImageURL != nil {
		newURL = *req.ImageURL
	}

	uploadedKey, err := s.resolveImage(ctx, file, newURL, &existing.ImageURL, &existing.ImageKey)
	if err != nil {
		return models.Shield{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		s.images.BestEffortDelete(ctx, uploadedKey)
		log.Error("failed to update shield", sl.Err(err))
		return models.Shield{}, fmt.Errorf("%s: %w", op, err)
	}

	// Only after the row is safely updated does the previous object go.
	if oldKey != "" && oldKey != updated.ImageKey {
		s.images.BestEffortDelete(ctx, oldKey)
	}

	log.Info("shield updated")

	return updated, nil
}

// resolveImage fills urlDst/keyDst from either a multipart file or a
// client-supplied URL. It returns the key of any object uploaded here so
// the caller can discard it when the database write fails.
func (s *ShieldService) resolveImage(ctx context.Context, file *multipart.FileHeader, rawURL string, urlDst, keyDst *string) (string, error) {
	switch {
	case file != nil:
		uploaded, err := s.images.UploadImage(ctx, file, shieldFolder, false)
		if err != nil {
			return "", err
		}
		*urlDst = uploaded.URL
		*keyDst = uploaded.Key
		return uploaded.Key, nil
	case rawURL != "":
		key, err := s.images.KeyFromURL(rawURL)
		if err != nil {
			return "", err
		}
		*urlDst = rawURL
		*keyDst = key
	}
	return "", nil
}

func (s *ShieldService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "shield_service.Delete"

	log := s.log.With(
		slog.String("op", op),
		slog.String("shield_id", id.String()),
	)

	shield, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete shield", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.images.BestEffortDelete(ctx, shield.ImageKey)

	log.Info("shield deleted")

	return nil
}

func (s *ShieldService) SetMain(ctx context.Context, id uuid.UUID) error {
	const op = "shield_service.SetMain"

	if err := s.repo.SetMain(ctx, id); err != nil {
		s.log.Error("failed to set main shield",
			slog.String("op", op),
			slog.String("shield_id", id.String()),
			sl.Err(err),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *ShieldService) ListValues(ctx context.Context) ([]models.ShieldValue, error) {
	return s.values.List(ctx)
}

func (s *ShieldService) GetValue(ctx context.Context, id uuid.UUID) (models.ShieldValue, error) {
	return s.values.GetByID(ctx, id)
}

func (s *ShieldService) CreateValue(ctx context.Context, req dto.CreateShieldValueRequest) (models.ShieldValue, error) {
	const op = "shield_service.CreateValue"

	icon, err := models.ParseIconName(req.IconName)
	if err != nil {
		return models.ShieldValue{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.values.Create(ctx, models.ShieldValue{
		Title:        req.Title,
		Description:  req.Description,
		IconName:     icon,
		DisplayOrder: req.DisplayOrder,
	})
}

func (s *ShieldService) UpdateValue(ctx context.Context, id uuid.UUID, req dto.UpdateShieldValueRequest) (models.ShieldValue, error) {
	const op = "shield_service.UpdateValue"

	existing, err := s.values.GetByID(ctx, id)
	if err != nil {
		return models.ShieldValue{}, fmt.Errorf("%s: %w", op, err)
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.IconName != nil {
		icon, err := models.ParseIconName(*req.IconName)
		if err != nil {
			return models.ShieldValue{}, fmt.Errorf("%s: %w", op, err)
		}
		existing.IconName = icon
	}
	if req.DisplayOrder != nil {
		existing.DisplayOrder = *req.DisplayOrder
	}

	return s.values.Update(ctx, existing)
}

func (s *ShieldService) DeleteValue(ctx context.Context, id uuid.UUID) error {
	return s.values.Delete(ctx, id)
}

func (s *ShieldService) ReorderValues(ctx context.Context, items []models.ReorderItem) error {
	return s.values.Reorder(ctx, items)
}
