package services

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"escolta/internal/domain/models"
	"escolta/internal/transport/http/dto"
)

type MockGalleryRepository struct {
	mock.Mock
}

func (m *MockGalleryRepository) ListCategories(ctx context.Context) ([]models.GalleryCategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.GalleryCategory), args.Error(1)
}

func (m *MockGalleryRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (models.GalleryCategory, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.GalleryCategory), args.Error(1)
}

func (m *MockGalleryRepository) CreateCategory(ctx context.Context, cat models.GalleryCategory) (models.GalleryCategory, error) {
	args := m.Called(ctx, cat)
	return args.Get(0).(models.GalleryCategory), args.Error(1)
}

func (m *MockGalleryRepository) UpdateCategory(ctx context.Context, cat models.GalleryCategory) (models.GalleryCategory, error) {
	args := m.Called(ctx, cat)
	return args.Get(0).(models.GalleryCategory), args.Error(1)
}

func (m *MockGalleryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGalleryRepository) ListItems(ctx context.Context) ([]models.GalleryItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.GalleryItem), args.Error(1)
}

func (m *MockGalleryRepository) ListItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.GalleryItem, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]models.GalleryItem), args.Error(1)
}

func (m *MockGalleryRepository) GetItemByID(ctx context.Context, id uuid.UUID) (models.GalleryItem, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.GalleryItem), args.Error(1)
}

func (m *MockGalleryRepository) CreateItem(ctx context.Context, item models.GalleryItem) (models.GalleryItem, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(models.GalleryItem), args.Error(1)
}

func (m *MockGalleryRepository) UpdateItem(ctx context.Context, item models.GalleryItem) (models.GalleryItem, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(models.GalleryItem), args.Error(1)
}

func (m *MockGalleryRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGalleryRepository) ReorderItems(ctx context.Context, items []models.ReorderItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) UploadImage(ctx context.Context, file *multipart.FileHeader, folder string, withThumbnail bool) (dto.UploadedImage, error) {
	args := m.Called(ctx, file, folder, withThumbnail)
	return args.Get(0).(dto.UploadedImage), args.Error(1)
}

func (m *MockImageStore) KeyFromURL(rawURL string) (string, error) {
	args := m.Called(rawURL)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) BestEffortDelete(ctx context.Context, key string) {
	m.Called(ctx, key)
}

func TestGalleryService_CreateItem(t *testing.T) {
	ctx := context.Background()

	imageURL := "https://escolta-media.s3.us-east-1.amazonaws.com/gallery/a.jpg"
	thumbURL := "https://escolta-media.s3.us-east-1.amazonaws.com/gallery/a_thumb.jpg"

	tests := []struct {
		name        string
		req         dto.CreateGalleryItemRequest
		mockSetup   func(repo *MockGalleryRepository, images *MockImageStore)
		wantError   bool
		expectedErr string
	}{
		{
			name: "create with urls",
			req: dto.CreateGalleryItemRequest{
				Title:        "Desfile 2023",
				ImageURL:     imageURL,
				ThumbnailURL: thumbURL,
				Year:         2023,
			},
			mockSetup: func(repo *MockGalleryRepository, images *MockImageStore) {
				images.On("KeyFromURL", imageURL).Return("gallery/a.jpg", nil).Once()
				images.On("KeyFromURL", thumbURL).Return("gallery/a_thumb.jpg", nil).Once()
				repo.On("CreateItem", ctx, mock.MatchedBy(func(it models.GalleryItem) bool {
					return it.ImageKey == "gallery/a.jpg" && it.ThumbnailKey == "gallery/a_thumb.jpg"
				})).Return(models.GalleryItem{ID: uuid.New()}, nil).Once()
			},
		},
		{
			name: "untrusted image url",
			req: dto.CreateGalleryItemRequest{
				Title:    "Desfile",
				ImageURL: "https://cdn.example/a.jpg",
			},
			mockSetup: func(repo *MockGalleryRepository, images *MockImageStore) {
				images.On("KeyFromURL", "https://cdn.example/a.jpg").
					Return("", errors.New("untrusted url")).Once()
			},
			wantError:   true,
			expectedErr: "untrusted url",
		},
		{
			name: "repository error",
			req: dto.CreateGalleryItemRequest{
				Title: "Desfile",
			},
			mockSetup: func(repo *MockGalleryRepository, images *MockImageStore) {
				repo.On("CreateItem", ctx, mock.Anything).
					Return(models.GalleryItem{}, errors.New("repository error")).Once()
			},
			wantError:   true,
			expectedErr: "repository error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockGalleryRepository)
			mockImages := new(MockImageStore)
			service := NewGalleryService(slog.Default(), mockRepo, mockImages)

			tt.mockSetup(mockRepo, mockImages)

			_, err := service.CreateItem(ctx, tt.req, nil)

			if tt.wantError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
			mockImages.AssertExpectations(t)
		})
	}
}

func TestGalleryService_CreateItem_DiscardsUploadOnRowFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockGalleryRepository)
	mockImages := new(MockImageStore)
	service := NewGalleryService(slog.Default(), mockRepo, mockImages)

	file := &multipart.FileHeader{Filename: "a.jpg"}
	uploaded := dto.UploadedImage{
		URL:          "https://escolta-media.s3.us-east-1.amazonaws.com/gallery/a.jpg",
		Key:          "gallery/a.jpg",
		ThumbnailURL: "https://escolta-media.s3.us-east-1.amazonaws.com/gallery/a_thumb.jpg",
		ThumbnailKey: "gallery/a_thumb.jpg",
	}

	mockImages.On("UploadImage", ctx, file, "gallery", true).Return(uploaded, nil).Once()
	mockRepo.On("CreateItem", ctx, mock.Anything).
		Return(models.GalleryItem{}, errors.New("db down")).Once()
	mockImages.On("BestEffortDelete", ctx, "gallery/a.jpg").Return().Once()
	mockImages.On("BestEffortDelete", ctx, "gallery/a_thumb.jpg").Return().Once()

	_, err := service.CreateItem(ctx, dto.CreateGalleryItemRequest{Title: "Desfile"}, file)

	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
	mockImages.AssertExpectations(t)
}

func TestGalleryService_DeleteItem_RemovesBothObjects(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockGalleryRepository)
	mockImages := new(MockImageStore)
	service := NewGalleryService(slog.Default(), mockRepo, mockImages)

	id := uuid.New()
	item := models.GalleryItem{
		ID:           id,
		ImageKey:     "gallery/a.jpg",
		ThumbnailKey: "gallery/a_thumb.jpg",
	}

	mockRepo.On("GetItemByID", ctx, id).Return(item, nil).Once()
	mockRepo.On("DeleteItem", ctx, id).Return(nil).Once()
	mockImages.On("BestEffortDelete", ctx, "gallery/a.jpg").Return().Once()
	mockImages.On("BestEffortDelete", ctx, "gallery/a_thumb.jpg").Return().Once()

	err := service.DeleteItem(ctx, id)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockImages.AssertExpectations(t)
}

func TestGalleryService_DeleteCategory_CleansCascadedItems(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockGalleryRepository)
	mockImages := new(MockImageStore)
	service := NewGalleryService(slog.Default(), mockRepo, mockImages)

	catID := uuid.New()
	items := []models.GalleryItem{
		{ID: uuid.New(), ImageKey: "gallery/a.jpg", ThumbnailKey: "gallery/a_thumb.jpg"},
		{ID: uuid.New(), ImageKey: "gallery/b.jpg", ThumbnailKey: "gallery/b_thumb.jpg"},
	}

	mockRepo.On("ListItemsByCategory", ctx, catID).Return(items, nil).Once()
	mockRepo.On("DeleteCategory", ctx, catID).Return(nil).Once()
	for _, it := range items {
		mockImages.On("BestEffortDelete", ctx, it.ImageKey).Return().Once()
		mockImages.On("BestEffortDelete", ctx, it.ThumbnailKey).Return().Once()
	}

	err := service.DeleteCategory(ctx, catID)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockImages.AssertExpectations(t)
}

func TestGalleryService_DeleteCategory_KeepsObjectsOnRowFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockGalleryRepository)
	mockImages := new(MockImageStore)
	service := NewGalleryService(slog.Default(), mockRepo, mockImages)

	catID := uuid.New()
	items := []models.GalleryItem{{ID: uuid.New(), ImageKey: "gallery/a.jpg"}}

	mockRepo.On("ListItemsByCategory", ctx, catID).Return(items, nil).Once()
	mockRepo.On("DeleteCategory", ctx, catID).Return(errors.New("db down")).Once()

	err := service.DeleteCategory(ctx, catID)

	assert.Error(t, err)
	mockImages.AssertNotCalled(t, "BestEffortDelete", mock.Anything, mock.Anything)
}

func TestGalleryService_UpdateItem_ReplacesOldObjects(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockGalleryRepository)
	mockImages := new(MockImageStore)
	service := NewGalleryService(slog.Default(), mockRepo, mockImages)

	id := uuid.New()
	newURL := "https://escolta-media.s3.us-east-1.amazonaws.com/gallery/new.jpg"

	existing := models.GalleryItem{
		ID:           id,
		Title:        "Desfile",
		ImageKey:     "gallery/old.jpg",
		ThumbnailKey: "gallery/old_thumb.jpg",
	}

	mockRepo.On("GetItemByID", ctx, id).Return(existing, nil).Once()
	mockImages.On("KeyFromURL", newURL).Return("gallery/new.jpg", nil).Once()
	mockRepo.On("UpdateItem", ctx, mock.MatchedBy(func(it models.GalleryItem) bool {
		return it.ImageKey == "gallery/new.jpg" && it.ThumbnailKey == "gallery/old_thumb.jpg"
	})).Return(models.GalleryItem{ID: id, ImageKey: "gallery/new.jpg", ThumbnailKey: "gallery/old_thumb.jpg"}, nil).Once()
	mockImages.On("BestEffortDelete", ctx, "gallery/old.jpg").Return().Once()

	_, err := service.UpdateItem(ctx, id, dto.UpdateGalleryItemRequest{ImageURL: &newURL}, nil)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockImages.AssertExpectations(t)
}

func TestGalleryService_CreateCategory_PropagatesSlugConflict(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockGalleryRepository)
	mockImages := new(MockImageStore)
	service := NewGalleryService(slog.Default(), mockRepo, mockImages)

	mockRepo.On("CreateCategory", ctx, models.GalleryCategory{Name: "Desfiles", Slug: "desfiles"}).
		Return(models.GalleryCategory{}, errors.New("slug already taken")).Once()

	_, err := service.CreateCategory(ctx, dto.CreateCategoryRequest{Name: "Desfiles", Slug: "desfiles"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "slug already taken")
	mockRepo.AssertExpectations(t)
}
