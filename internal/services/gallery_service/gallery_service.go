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

const galleryFolder = "gallery"

type GalleryService struct {
	log    *slog.Logger
	repo   repository.GalleryRepository
	images ImageStore
}

func NewGalleryService(log *slog.Logger, repo repository.GalleryRepository, images ImageStore) *GalleryService {
	return &GalleryService{
		log:    log,
		repo:   repo,
		images: images,
	}
}

func (s *GalleryService) ListCategories(ctx context.Context) ([]models.GalleryCategory, error) {
	return s.repo.ListCategories(ctx)
}

func (s *GalleryService) GetCategory(ctx context.Context, id uuid.UUID) (models.GalleryCategory, error) {
	return s.repo.GetCategoryByID(ctx, id)
}

func (s *GalleryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (models.GalleryCategory, error) {
	const op = "gallery_service.CreateCategory"

	created, err := s.repo.CreateCategory(ctx, models.GalleryCategory{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		s.log.Error("failed to create category", slog.String("op", op), sl.Err(err))
		return models.GalleryCategory{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (s *GalleryService) UpdateCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (models.GalleryCategory, error) {
	const op = "gallery_service.UpdateCategory"

	existing, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return models.GalleryCategory{}, fmt.Errorf("%s: %w", op, err)
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Slug != nil {
		existing.Slug = *req.Slug
	}

	return s.repo.UpdateCategory(ctx, existing)
}

// DeleteCategory removes the category and, through the cascade, its
// items; their stored objects are then cleaned up best-effort.
func (s *GalleryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	const op = "gallery_service.DeleteCategory"

	log := s.log.With(
		slog.String("op", op),
		slog.String("category_id", id.String()),
	)

	items, err := s.repo.ListItemsByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		log.Error("failed to delete category", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, item := range items {
		s.images.BestEffortDelete(ctx, item.ImageKey)
		s.images.BestEffortDelete(ctx, item.ThumbnailKey)
	}

	log.Info("category deleted", slog.Int("cascaded_items", len(items)))

	return nil
}

func (s *GalleryService) ListItems(ctx context.Context) ([]models.GalleryItem, error) {
	return s.repo.ListItems(ctx)
}

func (s *GalleryService) ListItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.GalleryItem, error) {
	return s.repo.ListItemsByCategory(ctx, categoryID)
}

func (s *GalleryService) GetItem(ctx context.Context, id uuid.UUID) (models.GalleryItem, error) {
	return s.repo.GetItemByID(ctx, id)
}

// CreateItem resolves the image either from a multipart upload (which
// also produces the square thumbnail) or from client-uploaded URLs.
func (s *GalleryService) CreateItem(ctx context.Context, req dto.CreateGalleryItemRequest, file *multipart.FileHeader) (models.GalleryItem, error) {
	const op = "gallery_service.CreateItem"

	log := s.log.With(
		slog.String("op", op),
		slog.String("title", req.Title),
	)

	item := models.GalleryItem{
		Title:        req.Title,
		CategoryID:   req.CategoryID,
		Year:         req.Year,
		DisplayOrder: req.DisplayOrder,
	}

	var freshKeys []string
	if file != nil {
		uploaded, err := s.images.UploadImage(ctx, file, galleryFolder, true)
		if err != nil {
			return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
		}
		item.ImageURL = uploaded.URL
		item.ImageKey = uploaded.Key
		item.ThumbnailURL = uploaded.ThumbnailURL
		item.ThumbnailKey = uploaded.ThumbnailKey
		freshKeys = []string{uploaded.Key, uploaded.ThumbnailKey}
	} else {
		if req.ImageURL != "" {
			key, err := s.images.KeyFromURL(req.ImageURL)
			if err != nil {
				return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
			}
			item.ImageURL = req.ImageURL
			item.ImageKey = key
		}
		if req.ThumbnailURL != "" {
			key, err := s.images.KeyFromURL(req.ThumbnailURL)
			if err != nil {
				return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
			}
			item.ThumbnailURL = req.ThumbnailURL
			item.ThumbnailKey = key
		}
	}

	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		for _, key := range freshKeys {
			s.images.BestEffortDelete(ctx, key)
		}
		log.Error("failed to create gallery item", sl.Err(err))
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("gallery item created", slog.String("id", created.ID.String()))

	return created, nil
}

func (s *GalleryService) UpdateItem(ctx context.Context, id uuid.UUID, req dto.UpdateGalleryItemRequest, file *multipart.FileHeader) (models.GalleryItem, error) {
	const op = "gallery_service.UpdateItem"

	existing, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.CategoryID != nil {
		existing.CategoryID = req.CategoryID
	}
	if req.Year != nil {
		existing.Year = *req.Year
	}
	if req.DisplayOrder != nil {
		existing.DisplayOrder = *req.DisplayOrder
	}

	oldImageKey := existing.ImageKey
	oldThumbKey := existing.ThumbnailKey

	var freshKeys []string
	if file != nil {
		uploaded, err := s.images.UploadImage(ctx, file, galleryFolder, true)
		if err != nil {
			return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
		}
		existing.ImageURL = uploaded.URL
		existing.ImageKey = uploaded.Key
		existing.ThumbnailURL = uploaded.ThumbnailURL
		existing.ThumbnailKey = uploaded.ThumbnailKey
		freshKeys = []string{uploaded.Key, uploaded.ThumbnailKey}
	} else {
		if req.ImageURL != nil && *req.ImageURL != "" {
			key, err := s.images.KeyFromURL(*req.ImageURL)
			if err != nil {
				return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
			}
			existing.ImageURL = *req.ImageURL
			existing.ImageKey = key
		}
		if req.ThumbnailURL != nil && *req.ThumbnailURL != "" {
			key, err := s.images.KeyFromURL(*req.ThumbnailURL)
			if err != nil {
				return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
			}
			existing.ThumbnailURL = *req.ThumbnailURL
			existing.ThumbnailKey = key
		}
	}

	updated, err := s.repo.UpdateItem(ctx, existing)
	if err != nil {
		for _, key := range freshKeys {
			s.images.BestEffortDelete(ctx, key)
		}
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	if oldImageKey != "" && oldImageKey != updated.ImageKey {
		s.images.BestEffortDelete(ctx, oldImageKey)
	}
	if oldThumbKey != "" && oldThumbKey != updated.ThumbnailKey {
		s.images.BestEffortDelete(ctx, oldThumbKey)
	}

	return updated, nil
}

func (s *GalleryService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	const op = "gallery_service.DeleteItem"

	item, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeleteItem(ctx, id); err != nil {
		s.log.Error("failed to delete gallery item", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.images.BestEffortDelete(ctx, item.ImageKey)
	s.images.BestEffortDelete(ctx, item.ThumbnailKey)

	return nil
}

func (s *GalleryService) ReorderItems(ctx context.Context, items []models.ReorderItem) error {
	return s.repo.ReorderItems(ctx, items)
}
