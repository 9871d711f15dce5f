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

type MockShieldRepository struct {
	mock.Mock
}

func (m *MockShieldRepository) List(ctx context.Context) ([]models.Shield, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Shield), args.Error(1)
}

func (m *MockShieldRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Shield, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Shield), args.Error(1)
}

func (m *MockShieldRepository) Create(ctx context.Context, shield models.Shield) (models.Shield, error) {
	args := m.Called(ctx, shield)
	return args.Get(0).(models.Shield), args.Error(1)
}

func (m *MockShieldRepository) Update(ctx context.Context, shield models.Shield) (models.Shield, error) {
	args := m.Called(ctx, shield)
	return args.Get(0).(models.Shield), args.Error(1)
}

func (m *MockShieldRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShieldRepository) SetMain(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockShieldValueRepository struct {
	mock.Mock
}

func (m *MockShieldValueRepository) List(ctx context.Context) ([]models.ShieldValue, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.ShieldValue), args.Error(1)
}

func (m *MockShieldValueRepository) GetByID(ctx context.Context, id uuid.UUID) (models.ShieldValue, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.ShieldValue), args.Error(1)
}

func (m *MockShieldValueRepository) Create(ctx context.Context, val models.ShieldValue) (models.ShieldValue, error) {
	args := m.Called(ctx, val)
	return args.Get(0).(models.ShieldValue), args.Error(1)
}

func (m *MockShieldValueRepository) Update(ctx context.Context, val models.ShieldValue) (models.ShieldValue, error) {
	args := m.Called(ctx, val)
	return args.Get(0).(models.ShieldValue), args.Error(1)
}

func (m *MockShieldValueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShieldValueRepository) Reorder(ctx context.Context, items []models.ReorderItem) error {
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

func TestShieldService_Create(t *testing.T) {
	ctx := context.Background()

	bucketURL := "https://escolta-media.s3.us-east-1.amazonaws.com/shields/a.jpg"

	tests := []struct {
		name        string
		req         dto.CreateShieldRequest
		mockSetup   func(repo *MockShieldRepository, images *MockImageStore)
		wantError   bool
		expectedErr string
	}{
		{
			name: "create with bucket url",
			req: dto.CreateShieldRequest{
				Title:       "Escudo 2019",
				Description: "Primer escudo",
				ImageURL:    bucketURL,
			},
			mockSetup: func(repo *MockShieldRepository, images *MockImageStore) {
				images.On("KeyFromURL", bucketURL).
					Return("shields/a.jpg", nil).Once()
				repo.On("Create", ctx, mock.MatchedBy(func(s models.Shield) bool {
					return s.ImageKey == "shields/a.jpg" && s.ImageURL == bucketURL
				})).Return(models.Shield{ID: uuid.New(), Title: "Escudo 2019"}, nil).Once()
			},
		},
		{
			name: "untrusted url rejected before repo",
			req: dto.CreateShieldRequest{
				Title:       "Escudo",
				Description: "desc",
				ImageURL:    "https://evil.example/a.jpg",
			},
			mockSetup: func(repo *MockShieldRepository, images *MockImageStore) {
				images.On("KeyFromURL", "https://evil.example/a.jpg").
					Return("", errors.New("untrusted url")).Once()
			},
			wantError:   true,
			expectedErr: "untrusted url",
		},
		{
			name: "repository error",
			req: dto.CreateShieldRequest{
				Title:       "Escudo",
				Description: "desc",
			},
			mockSetup: func(repo *MockShieldRepository, images *MockImageStore) {
				repo.On("Create", ctx, mock.Anything).
					Return(models.Shield{}, errors.New("repository error")).Once()
				images.On("BestEffortDelete", ctx, "").Return().Once()
			},
			wantError:   true,
			expectedErr: "repository error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockShieldRepository)
			mockValues := new(MockShieldValueRepository)
			mockImages := new(MockImageStore)
			service := NewShieldService(slog.Default(), mockRepo, mockValues, mockImages)

			tt.mockSetup(mockRepo, mockImages)

			_, err := service.Create(ctx, tt.req, nil)

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

func TestShieldService_Update_ReplacesOldImage(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockShieldRepository)
	mockValues := new(MockShieldValueRepository)
	mockImages := new(MockImageStore)
	service := NewShieldService(slog.Default(), mockRepo, mockValues, mockImages)

	id := uuid.New()
	newURL := "https://escolta-media.s3.us-east-1.amazonaws.com/shields/new.jpg"

	existing := models.Shield{
		ID:       id,
		Title:    "Escudo",
		ImageURL: "https://escolta-media.s3.us-east-1.amazonaws.com/shields/old.jpg",
		ImageKey: "shields/old.jpg",
	}

	mockRepo.On("GetByID", ctx, id).Return(existing, nil).Once()
	mockImages.On("KeyFromURL", newURL).Return("shields/new.jpg", nil).Once()
	mockRepo.On("Update", ctx, mock.MatchedBy(func(s models.Shield) bool {
		return s.ImageKey == "shields/new.jpg"
	})).Return(models.Shield{ID: id, ImageKey: "shields/new.jpg"}, nil).Once()

	// The previous object goes only after the row is saved.
	mockImages.On("BestEffortDelete", ctx, "shields/old.jpg").Return().Once()

	_, err := service.Update(ctx, id, dto.UpdateShieldRequest{ImageURL: &newURL}, nil)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockImages.AssertExpectations(t)
}

func TestShieldService_Delete_RemovesStoredObject(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockShieldRepository)
	mockValues := new(MockShieldValueRepository)
	mockImages := new(MockImageStore)
	service := NewShieldService(slog.Default(), mockRepo, mockValues, mockImages)

	id := uuid.New()
	shield := models.Shield{ID: id, ImageKey: "shields/x.jpg"}

	mockRepo.On("GetByID", ctx, id).Return(shield, nil).Once()
	mockRepo.On("Delete", ctx, id).Return(nil).Once()
	mockImages.On("BestEffortDelete", ctx, "shields/x.jpg").Return().Once()

	err := service.Delete(ctx, id)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockImages.AssertExpectations(t)
}

func TestShieldService_Delete_KeepsObjectOnRowFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockShieldRepository)
	mockValues := new(MockShieldValueRepository)
	mockImages := new(MockImageStore)
	service := NewShieldService(slog.Default(), mockRepo, mockValues, mockImages)

	id := uuid.New()
	shield := models.Shield{ID: id, ImageKey: "shields/x.jpg"}

	mockRepo.On("GetByID", ctx, id).Return(shield, nil).Once()
	mockRepo.On("Delete", ctx, id).Return(errors.New("db down")).Once()

	err := service.Delete(ctx, id)

	assert.Error(t, err)
	mockImages.AssertNotCalled(t, "BestEffortDelete", ctx, "shields/x.jpg")
}

func TestShieldService_CreateValue_RejectsUnknownIcon(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockShieldRepository)
	mockValues := new(MockShieldValueRepository)
	mockImages := new(MockImageStore)
	service := NewShieldService(slog.Default(), mockRepo, mockValues, mockImages)

	_, err := service.CreateValue(ctx, dto.CreateShieldValueRequest{
		Title:       "Honor",
		Description: "desc",
		IconName:    "dragon",
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUnknownIcon)
	mockValues.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestShieldService_CreateValue(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockShieldRepository)
	mockValues := new(MockShieldValueRepository)
	mockImages := new(MockImageStore)
	service := NewShieldService(slog.Default(), mockRepo, mockValues, mockImages)

	created := models.ShieldValue{ID: uuid.New(), Title: "Honor", IconName: models.IconStar}

	mockValues.On("Create", ctx, mock.MatchedBy(func(v models.ShieldValue) bool {
		return v.IconName == models.IconStar && v.Title == "Honor"
	})).Return(created, nil).Once()

	got, err := service.CreateValue(ctx, dto.CreateShieldValueRequest{
		Title:       "Honor",
		Description: "desc",
		IconName:    "star",
	})

	assert.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	mockValues.AssertExpectations(t)
}
