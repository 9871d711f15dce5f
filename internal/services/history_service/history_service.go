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

type ImageStore interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader, folder string, withThumbnail bool) (dto.UploadedImage, error)
	KeyFromURL(rawURL string) (string, error)
	BestEffortDelete(ctx context.Context, key string)
}

const historyFolder = "history"

// HistoryService manages the milestone timeline and the historical photo strip.
type HistoryService struct {
	log        *slog.Logger
	milestones repository.MilestoneRepository
	images     repository.HistoricalImageRepository
	store      ImageStore
}

func NewHistoryService(
	log *slog.Logger,
	milestones repository.MilestoneRepository,
	images repository.HistoricalImageRepository,
	store ImageStore,
) *HistoryService {
	return &HistoryService{
		log:        log,
		milestones: milestones,
		images:     images,
		store:      store,
	}
}

func (s *HistoryService) ListMilestones(ctx context.Context) ([]models.HistoricalMilestone, error) {
	return s.milestones.List(ctx)
}

func (s *HistoryService) GetMilestone(ctx context.Context, id uuid.UUID) (models.HistoricalMilestone, error) {
	return s.milestones.GetByID(ctx, id)
}

func (s *HistoryService) CreateMilestone(ctx context.Context, req dto.CreateMilestoneRequest) (models.HistoricalMilestone, error) {
	const op = "history_service.CreateMilestone"

	icon, err := models.ParseIconName(req.IconName)
	if err != nil {
		return models.HistoricalMilestone{}, fmt.Errorf("%s: %w", op, err)
	}

	milestone := models.HistoricalMilestone{
		Year:         req.Year,
		Title:        req.Title,
		Description:  req.Description,
		IconName:     icon,
		DisplayOrder: req.DisplayOrder,
	}

	created, err := s.milestones.Create(ctx, milestone)
	if err != nil {
		s.log.Error("failed to create milestone", slog.String("op", op), sl.Err(err))
		return models.HistoricalMilestone{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (s *HistoryService) UpdateMilestone(ctx context.Context, id uuid.UUID, req dto.UpdateMilestoneRequest) (models.HistoricalMilestone, error) {
	const op = "history_service.UpdateMilestone"

	existing, err := s.milestones.GetByID(ctx, id)
	if err != nil {
		return models.HistoricalMilestone{}, fmt.Errorf("%s: %w", op, err)
	}

	if req.Year != nil {
		existing.Year = *req.Year
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
			return models.HistoricalMilestone{}, fmt.Errorf("%s: %w", op, err)
		}
		existing.IconName = icon
	}
	if req.DisplayOrder != nil {
		existing.DisplayOrder = *req.DisplayOrder
	}

	updated, err := s.milestones.Update(ctx, existing)
	if err != nil {
		return models.HistoricalMilestone{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (s *HistoryService) DeleteMilestone(ctx context.Context, id uuid.UUID) error {
	const op = "history_service.DeleteMilestone"

	if err := s.milestones.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *HistoryService) ReorderMilestones(ctx context.Context, items []models.ReorderItem) error {
	return s.milestones.Reorder(ctx, items)
}

func (s *HistoryService) ListImages(ctx context.Context) ([]models.HistoricalImage, error) {
	return s.images.List(ctx)
}

func (s *HistoryService) GetImage(ctx context.Context, id uuid.UUID) (models.HistoricalImage, error) {
	return s.images.GetByID(ctx, id)
}

func (s *HistoryService) CreateImage(ctx context.Context, req dto.CreateHistoricalImageRequest, file *multipart.FileHeader) (models.HistoricalImage, error) {
	const op = "history_service.CreateImage"

	log := s.log.With(slog.String("op", op))

	img := models.HistoricalImage{
		Title:        req.Title,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	}

	var freshKey string
	switch {
	case file != nil:
		uploaded, err := s.store.UploadImage(ctx, file, historyFolder, false)
		if err != nil {
			return models.HistoricalImage{}, fmt.Errorf("%s: %w", op, err)
		}
		img.ImageURL = uploaded.URL
		img.ImageKey = uploaded.Key
		freshKey = uploaded.Key
	case req.ImageURL != "":
		key, err := s.store.KeyFromURL(req.ImageURL)
		if err != nil {
			return models.HistoricalImage{}, fmt.Errorf("%s: %w", op, err)
		}
		img.ImageURL = req.ImageURL
		img.ImageKey = key
	default:
		return models.HistoricalImage{}, fmt.Errorf("%s: image is required", op)
	}

	created, err := s.images.Create(ctx, img)
	if err != nil {
		s.store.BestEffortDelete(ctx, freshKey)
		log.Error("failed to create historical image", sl.Err(err))
		return models.HistoricalImage{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (s *HistoryService) UpdateImage(ctx context.Context, id uuid.UUID, req dto.UpdateHistoricalImageRequest, file *multipart.FileHeader) (models.HistoricalImage, error) {
	const op = "history_service.UpdateImage"

	existing, err := s.images.GetByID(ctx, id)
	if err != nil {
		return models.HistoricalImage{}, fmt.Errorf("%s: %w", op, err)
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.DisplayOrder != nil {
		existing.DisplayOrder = *req.DisplayOrder
	}

	oldKey := existing.ImageKey

	var freshKey string
	switch {
	case file != nil:
		uploaded, err := s.store.UploadImage(ctx, file, historyFolder, false)
		if err != nil {
			return models.HistoricalImage{}, fmt.Errorf("%s: %w", op, err)
		}
		existing.ImageURL = uploaded.URL
		existing.ImageKey = uploaded.Key
		freshKey = uploaded.Key
	case req.ImageURL != nil && *req.ImageURL != "":
		key, err := s.store.KeyFromURL(*req.ImageURL)
		if err != nil {
			return models.HistoricalImage{}, fmt.Errorf("%s: %w", op, err)
		}
		existing.ImageURL = *req.ImageURL
		existing.ImageKey = key
	}

	updated, err := s.images.Update(ctx, existing)
	if err != nil {
		s.store.BestEffortDelete(ctx, freshKey)
		return models.HistoricalImage{}, fmt.Errorf("%s: %w", op, err)
	}

	if oldKey != "" && oldKey != updated.ImageKey {
		s.store.BestEffortDelete(ctx, oldKey)
	}

	return updated, nil
}

func (s *HistoryService) DeleteImage(ctx context.Context, id uuid.UUID) error {
	const op = "history_service.DeleteImage"

	img, err := s.images.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.images.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete historical image", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.store.BestEffortDelete(ctx, img.ImageKey)

	return nil
}

func (s *HistoryService) ReorderImages(ctx context.Context, items []models.ReorderItem) error {
	return s.images.Reorder(ctx, items)
}
