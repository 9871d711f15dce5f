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
	"github.com/stretchr/testify/require"

	"escolta/internal/domain/models"
	"escolta/internal/transport/http/dto"
)

type MockMilestoneRepository struct {
	mock.Mock
}

func (m *MockMilestoneRepository) List(ctx context.Context) ([]models.HistoricalMilestone, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.HistoricalMilestone), args.Error(1)
}

func (m *MockMilestoneRepository) GetByID(ctx context.Context, id uuid.UUID) (models.HistoricalMilestone, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.HistoricalMilestone), args.Error(1)
}

func (m *MockMilestoneRepository) Create(ctx context.Context, milestone models.HistoricalMilestone) (models.HistoricalMilestone, error) {
	args := m.Called(ctx, milestone)
	return args.Get(0).(models.HistoricalMilestone), args.Error(1)
}

func (m *MockMilestoneRepository) Update(ctx context.Context, milestone models.HistoricalMilestone) (models.HistoricalMilestone, error) {
	args := m.Called(ctx, milestone)
	return args.Get(0).(models.HistoricalMilestone), args.Error(1)
}

func (m *MockMilestoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMilestoneRepository) Reorder(ctx context.Context, items []models.ReorderItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

type MockHistoricalImageRepository struct {
	mock.Mock
}

func (m *MockHistoricalImageRepository) List(ctx context.Context) ([]models.HistoricalImage, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.HistoricalImage), args.Error(1)
}

func (m *MockHistoricalImageRepository) GetByID(ctx context.Context, id uuid.UUID) (models.HistoricalImage, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.HistoricalImage), args.Error(1)
}

func (m *MockHistoricalImageRepository) Create(ctx context.Context, img models.HistoricalImage) (models.HistoricalImage, error) {
	args := m.Called(ctx, img)
	return args.Get(0).(models.HistoricalImage), args.Error(1)
}

func (m *MockHistoricalImageRepository) Update(ctx context.Context, img models.HistoricalImage) (models.HistoricalImage, error) {
	args := m.Called(ctx, img)
	return args.Get(0).(models.HistoricalImage), args.Error(1)
}

func (m *MockHistoricalImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHistoricalImageRepository) Reorder(ctx context.Context, items []models.ReorderItem) error {
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

func newTestHistoryService() (*HistoryService, *MockMilestoneRepository, *MockHistoricalImageRepository, *MockImageStore) {
	milestones := new(MockMilestoneRepository)
	images := new(MockHistoricalImageRepository)
	store := new(MockImageStore)
	return NewHistoryService(slog.Default(), milestones, images, store), milestones, images, store
}

func TestHistoryService_CreateMilestone(t *testing.T) {
	ctx := context.Background()

	t.Run("valid icon reaches the repository", func(t *testing.T) {
		service, milestones, _, _ := newTestHistoryService()

		milestones.On("Create", ctx, mock.MatchedBy(func(m models.HistoricalMilestone) bool {
			return m.IconName == models.IconTorch && m.Year == 1952
		})).Return(models.HistoricalMilestone{ID: uuid.New(), Year: 1952, IconName: models.IconTorch}, nil).Once()

		created, err := service.CreateMilestone(ctx, dto.CreateMilestoneRequest{
			Year:        1952,
			Title:       "Fundación de la escolta",
			Description: "Primera generación de abanderados.",
			IconName:    "torch",
		})

		require.NoError(t, err)
		assert.Equal(t, models.IconTorch, created.IconName)
		milestones.AssertExpectations(t)
	})

	t.Run("unknown icon never reaches the repository", func(t *testing.T) {
		service, milestones, _, _ := newTestHistoryService()

		_, err := service.CreateMilestone(ctx, dto.CreateMilestoneRequest{
			Year:        1952,
			Title:       "Fundación",
			Description: "d",
			IconName:    "unicorn",
		})

		assert.ErrorIs(t, err, models.ErrUnknownIcon)
		milestones.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestHistoryService_UpdateMilestone_RejectsUnknownIcon(t *testing.T) {
	ctx := context.Background()
	service, milestones, _, _ := newTestHistoryService()

	id := uuid.New()
	milestones.On("GetByID", ctx, id).
		Return(models.HistoricalMilestone{ID: id, IconName: models.IconStar}, nil).Once()

	bad := "unicorn"
	_, err := service.UpdateMilestone(ctx, id, dto.UpdateMilestoneRequest{IconName: &bad})

	assert.ErrorIs(t, err, models.ErrUnknownIcon)
	milestones.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestHistoryService_CreateImage(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a file or a url", func(t *testing.T) {
		service, _, images, store := newTestHistoryService()

		_, err := service.CreateImage(ctx, dto.CreateHistoricalImageRequest{Title: "Desfile 1987"}, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "image is required")
		images.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("uploads the file and stores the key", func(t *testing.T) {
		service, _, images, store := newTestHistoryService()

		file := &multipart.FileHeader{Filename: "desfile.jpg"}
		store.On("UploadImage", ctx, file, "history", false).
			Return(dto.UploadedImage{URL: "https://bucket/history/a.jpg", Key: "history/a.jpg"}, nil).Once()
		images.On("Create", ctx, mock.MatchedBy(func(img models.HistoricalImage) bool {
			return img.ImageKey == "history/a.jpg"
		})).Return(models.HistoricalImage{ID: uuid.New(), ImageKey: "history/a.jpg"}, nil).Once()

		_, err := service.CreateImage(ctx, dto.CreateHistoricalImageRequest{Title: "Desfile 1987"}, file)

		require.NoError(t, err)
		store.AssertExpectations(t)
		images.AssertExpectations(t)
	})

	t.Run("discards the upload when the row fails", func(t *testing.T) {
		service, _, images, store := newTestHistoryService()

		file := &multipart.FileHeader{Filename: "desfile.jpg"}
		store.On("UploadImage", ctx, file, "history", false).
			Return(dto.UploadedImage{URL: "https://bucket/history/a.jpg", Key: "history/a.jpg"}, nil).Once()
		images.On("Create", ctx, mock.Anything).
			Return(models.HistoricalImage{}, errors.New("connection reset")).Once()
		store.On("BestEffortDelete", ctx, "history/a.jpg").Return().Once()

		_, err := service.CreateImage(ctx, dto.CreateHistoricalImageRequest{Title: "Desfile 1987"}, file)

		require.Error(t, err)
		store.AssertExpectations(t)
	})
}

func TestHistoryService_DeleteImage_RemovesStoredObject(t *testing.T) {
	ctx := context.Background()
	service, _, images, store := newTestHistoryService()

	id := uuid.New()
	images.On("GetByID", ctx, id).
		Return(models.HistoricalImage{ID: id, ImageKey: "history/old.jpg"}, nil).Once()
	images.On("Delete", ctx, id).Return(nil).Once()
	store.On("BestEffortDelete", ctx, "history/old.jpg").Return().Once()

	err := service.DeleteImage(ctx, id)

	require.NoError(t, err)
	store.AssertExpectations(t)
	images.AssertExpectations(t)
}
