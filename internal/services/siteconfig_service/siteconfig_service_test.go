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

type MockSiteConfigRepository struct {
	mock.Mock
}

func (m *MockSiteConfigRepository) Get(ctx context.Context) (models.SiteConfig, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.SiteConfig), args.Error(1)
}

func (m *MockSiteConfigRepository) Upsert(ctx context.Context, cfg models.SiteConfig) (models.SiteConfig, error) {
	args := m.Called(ctx, cfg)
	return args.Get(0).(models.SiteConfig), args.Error(1)
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

func TestSiteConfigService_Get_CachesRow(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSiteConfigRepository)
	mockImages := new(MockImageStore)
	service := NewSiteConfigService(slog.Default(), mockRepo, mockImages)

	stored := models.SiteConfig{ID: uuid.New(), Name: "Escolta de Bandera"}

	// A single repository read serves both calls.
	mockRepo.On("Get", ctx).Return(stored, nil).Once()

	first, err := service.Get(ctx)
	assert.NoError(t, err)
	assert.Equal(t, stored.Name, first.Name)

	second, err := service.Get(ctx)
	assert.NoError(t, err)
	assert.Equal(t, stored.Name, second.Name)

	mockRepo.AssertExpectations(t)
}

func TestSiteConfigService_Update_InvalidatesCache(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSiteConfigRepository)
	mockImages := new(MockImageStore)
	service := NewSiteConfigService(slog.Default(), mockRepo, mockImages)

	stored := models.SiteConfig{ID: uuid.New(), Name: "Escolta de Bandera"}
	renamed := stored
	renamed.Name = "Escolta Monumental"

	mockRepo.On("Get", ctx).Return(stored, nil).Times(3)
	mockRepo.On("Upsert", ctx, mock.MatchedBy(func(cfg models.SiteConfig) bool {
		return cfg.Name == "Escolta Monumental"
	})).Return(renamed, nil).Once()

	_, err := service.Get(ctx)
	assert.NoError(t, err)

	newName := "Escolta Monumental"
	_, err = service.Update(ctx, dto.UpdateSiteConfigRequest{Name: &newName}, nil, nil)
	assert.NoError(t, err)

	// The cached copy is gone, the next read hits the repository again.
	_, err = service.Get(ctx)
	assert.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestSiteConfigService_Update_ReplacesLogo(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSiteConfigRepository)
	mockImages := new(MockImageStore)
	service := NewSiteConfigService(slog.Default(), mockRepo, mockImages)

	stored := models.SiteConfig{
		ID:      uuid.New(),
		Name:    "Escolta de Bandera",
		LogoKey: "branding/old-logo.png",
	}

	logo := &multipart.FileHeader{Filename: "logo.png"}
	uploaded := dto.UploadedImage{
		URL: "https://escolta-media.s3.us-east-1.amazonaws.com/branding/new-logo.png",
		Key: "branding/new-logo.png",
	}

	mockRepo.On("Get", ctx).Return(stored, nil).Once()
	mockImages.On("UploadImage", ctx, logo, "branding", false).Return(uploaded, nil).Once()
	mockRepo.On("Upsert", ctx, mock.MatchedBy(func(cfg models.SiteConfig) bool {
		return cfg.LogoKey == "branding/new-logo.png"
	})).Return(models.SiteConfig{ID: stored.ID, LogoKey: "branding/new-logo.png"}, nil).Once()
	mockImages.On("BestEffortDelete", ctx, "branding/old-logo.png").Return().Once()

	_, err := service.Update(ctx, dto.UpdateSiteConfigRequest{}, logo, nil)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockImages.AssertExpectations(t)
}

func TestSiteConfigService_Update_DiscardsUploadsOnUpsertFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSiteConfigRepository)
	mockImages := new(MockImageStore)
	service := NewSiteConfigService(slog.Default(), mockRepo, mockImages)

	logo := &multipart.FileHeader{Filename: "logo.png"}
	uploaded := dto.UploadedImage{
		URL: "https://escolta-media.s3.us-east-1.amazonaws.com/branding/new-logo.png",
		Key: "branding/new-logo.png",
	}

	mockRepo.On("Get", ctx).Return(models.SiteConfig{ID: uuid.New()}, nil).Once()
	mockImages.On("UploadImage", ctx, logo, "branding", false).Return(uploaded, nil).Once()
	mockRepo.On("Upsert", ctx, mock.Anything).
		Return(models.SiteConfig{}, errors.New("db down")).Once()
	mockImages.On("BestEffortDelete", ctx, "branding/new-logo.png").Return().Once()

	_, err := service.Update(ctx, dto.UpdateSiteConfigRequest{}, logo, nil)

	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
	mockImages.AssertExpectations(t)
}
