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

const leadershipFolder = "leadership"

// LeadershipService manages the year-by-year leadership timeline.
type LeadershipService struct {
	log    *slog.Logger
	repo   repository.LeadershipRepository
	images ImageStore
}

func NewLeadershipService(log *slog.Logger, repo repository.LeadershipRepository, images ImageStore) *LeadershipService {
	return &LeadershipService{
		log:    log,
		repo:   repo,
		images: images,
	}
}

func (s *LeadershipService) List(ctx context.Context) ([]models.LeadershipPeriod, error) {
	return s.repo.List(ctx)
}

func (s *LeadershipService) GetByID(ctx context.Context, id uuid.UUID) (models.LeadershipPeriod, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *LeadershipService) Create(ctx context.Context, req dto.CreateLeadershipRequest, file *multipart.FileHeader) (models.LeadershipPeriod, error) {
	const op = "leadership_service.Create"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("year", req.Year),
	)

	period := models.LeadershipPeriod{
		Year:         req.Year,
		Jefatura:     req.Jefatura,
		SecondName:   req.SecondName,
		DisplayOrder: req.DisplayOrder,
	}

	var freshKey string
	switch {
	case file != nil:
		uploaded, err := s.images.UploadImage(ctx, file, leadershipFolder, false)
		if err != nil {
			return models.LeadershipPeriod{}, fmt.Errorf("%s: %w", op, err)
		}
		period.ImageURL = &uploaded.URL
		period.ImageKey = &uploaded.Key
		freshKey = uploaded.Key
	case req.ImageURL != nil && *req.ImageURL != "":
		key, err := s.images.KeyFromURL(*req.ImageURL)
		if err != nil {
			return models.LeadershipPeriod{}, fmt.Errorf("%s: %w", op, err)
		}
		period.ImageURL = req.ImageURL
		period.ImageKey = &key
	}

	created, err := s.repo.Create(ctx, period)
	if err != nil {
		s.images.BestEffortDelete(ctx, freshKey)
		log.Error("failed to create leadership period", sl.Err(err))
		return models.LeadershipPeriod{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("leadership period created", slog.String("id", created.ID.String()))

	return created, nil
}

func (s *LeadershipService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateLeadershipRequest, file *multipart.FileHeader) (models.LeadershipPeriod, error) {
	const op = "leadership_service.Update"

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.LeadershipPeriod{}, fmt.Errorf("%s: %w", op, err)
	}

	if req.Year != nil {
		existing.Year = *req.Year
	}
	if req.Jefatura != nil {
		existing.Jefatura = *req.Jefatura
	}
	if req.SecondName != nil {
		existing.SecondName = req.SecondName
	}
	if req.DisplayOrder != nil {
		existing.DisplayOrder = *req.DisplayOrder
	}

	var oldKey string
	if existing.ImageKey != nil {
		oldKey = *existing.ImageKey
	}

	var freshKey string
	switch {
	case file != nil:
		uploaded, err := s.images.UploadImage(ctx, file, leadershipFolder, false)
		if err != nil {
			return models.LeadershipPeriod{}, fmt.Errorf("%s: %w", op, err)
		}
		existing.ImageURL = &uploaded.URL
		existing.ImageKey = &uploaded.Key
		freshKey = uploaded.Key
	case req.ImageURL != nil && *req.ImageURL != "":
		key, err := s.images.KeyFromURL(*req.ImageURL)
		if err != nil {
			return models.LeadershipPeriod{}, fmt.Errorf("%s: %w", op, err)
		}
		existing.ImageURL = req.ImageURL
		existing.ImageKey = &key
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		s.images.BestEffortDelete(ctx, freshKey)
		return models.LeadershipPeriod{}, fmt.Errorf("%s: %w", op, err)
	}

	var newKey string
	if updated.ImageKey != nil {
		newKey = *updated.ImageKey
	}
	if oldKey != "" && oldKey != newKey {
		s.images.BestEffortDelete(ctx, oldKey)
	}

	return updated, nil
}

func (s *LeadershipService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "leadership_service.Delete"

	period, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete leadership period", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if period.ImageKey != nil {
		s.images.BestEffortDelete(ctx, *period.ImageKey)
	}

	return nil
}

func (s *LeadershipService) Reorder(ctx context.Context, items []models.ReorderItem) error {
	return s.repo.Reorder(ctx, items)
}
