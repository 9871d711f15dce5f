package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"log/slog"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"escolta/internal/config"
	"escolta/internal/metrics"
	"escolta/internal/storage"
)

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	args := m.Called(ctx, key, contentType, body)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStorage) PresignPut(key, contentType string) (string, error) {
	args := m.Called(key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func (m *MockObjectStorage) Bucket() string {
	return "escolta-media"
}

func (m *MockObjectStorage) Region() string {
	return "us-east-1"
}

func testUploadConfig() config.UploadConfig {
	return config.UploadConfig{
		MaxSize:      10 << 20,
		MaxWidth:     1920,
		MaxHeight:    1080,
		ThumbnailDim: 400,
		JPEGQuality:  80,
	}
}

func fileHeader(name, contentType string, size int64) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: name,
		Header:   h,
		Size:     size,
	}
}

func TestUploadService_UploadImage_Rejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		file    *multipart.FileHeader
		folder  string
		wantErr error
	}{
		{
			name:    "unknown folder",
			file:    fileHeader("a.jpg", "image/jpeg", 1024),
			folder:  "avatars",
			wantErr: storage.ErrInvalidFileType,
		},
		{
			name:    "over size limit",
			file:    fileHeader("a.jpg", "image/jpeg", 11<<20),
			folder:  "shields",
			wantErr: storage.ErrFileTooLarge,
		},
		{
			name:    "non-image content type",
			file:    fileHeader("a.txt", "text/plain", 1024),
			folder:  "shields",
			wantErr: storage.ErrInvalidFileType,
		},
		{
			name:    "webp only allowed on presigned path",
			file:    fileHeader("a.webp", "image/webp", 1024),
			folder:  "shields",
			wantErr: storage.ErrInvalidFileType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockObjectStorage)
			service := NewUploadService(slog.Default(), mockStore, testUploadConfig())

			_, err := service.UploadImage(ctx, tt.file, tt.folder, false)

			assert.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			mockStore.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

// jpegFileHeader builds a multipart file header backed by a real encoded
// JPEG so the full decode/re-encode pipeline runs.
func jpegFileHeader(t *testing.T) *multipart.FileHeader {
	t.Helper()

	var img bytes.Buffer
	require.NoError(t, jpeg.Encode(&img, image.NewRGBA(image.Rect(0, 0, 10, 10)), nil))

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="image"; filename="foto.jpg"`)
	h.Set("Content-Type", "image/jpeg")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(img.Bytes())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["image"][0]
}

func TestUploadService_UploadImage_ThumbnailFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockObjectStorage)
	service := NewUploadService(slog.Default(), mockStore, testUploadConfig())

	mockStore.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "gallery/") && !strings.Contains(key, "_thumb")
	}), "image/jpeg", mock.Anything).
		Return("https://escolta-media.s3.us-east-1.amazonaws.com/gallery/a.jpg", nil).Once()
	mockStore.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
		return strings.Contains(key, "_thumb")
	}), "image/jpeg", mock.Anything).
		Return("", errors.New("connection reset")).Once()

	errorsBefore := testutil.ToFloat64(metrics.StorageUploadsTotal.WithLabelValues("gallery", "error"))
	deleteFailuresBefore := testutil.ToFloat64(metrics.StorageDeleteFailures)

	uploaded, err := service.UploadImage(ctx, jpegFileHeader(t), "gallery", true)

	require.NoError(t, err)
	assert.NotEmpty(t, uploaded.Key)
	assert.Empty(t, uploaded.ThumbnailKey)
	assert.Empty(t, uploaded.ThumbnailURL)

	assert.Equal(t, errorsBefore+1,
		testutil.ToFloat64(metrics.StorageUploadsTotal.WithLabelValues("gallery", "error")))
	assert.Equal(t, deleteFailuresBefore,
		testutil.ToFloat64(metrics.StorageDeleteFailures))

	mockStore.AssertExpectations(t)
}

func TestUploadService_IssuePresignedUpload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		fileType  string
		folder    string
		mockSetup func(store *MockObjectStorage)
		wantErr   error
	}{
		{
			name:     "valid jpeg into gallery",
			fileType: "image/jpeg",
			folder:   "gallery",
			mockSetup: func(store *MockObjectStorage) {
				store.On("PresignPut", mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "gallery/") && strings.HasSuffix(key, ".jpg")
				}), "image/jpeg").Return("https://signed.example/put", nil).Once()
				store.On("PublicURL", mock.Anything).
					Return("https://escolta-media.s3.us-east-1.amazonaws.com/gallery/x.jpg").Once()
			},
		},
		{
			name:     "webp allowed here",
			fileType: "image/webp",
			folder:   "history",
			mockSetup: func(store *MockObjectStorage) {
				store.On("PresignPut", mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "history/") && strings.HasSuffix(key, ".webp")
				}), "image/webp").Return("https://signed.example/put", nil).Once()
				store.On("PublicURL", mock.Anything).
					Return("https://escolta-media.s3.us-east-1.amazonaws.com/history/x.webp").Once()
			},
		},
		{
			name:      "unknown folder",
			fileType:  "image/jpeg",
			folder:    "secrets",
			mockSetup: func(store *MockObjectStorage) {},
			wantErr:   storage.ErrInvalidFileType,
		},
		{
			name:      "non-image type",
			fileType:  "application/pdf",
			folder:    "gallery",
			mockSetup: func(store *MockObjectStorage) {},
			wantErr:   storage.ErrInvalidFileType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockObjectStorage)
			service := NewUploadService(slog.Default(), mockStore, testUploadConfig())

			tt.mockSetup(mockStore)

			got, err := service.IssuePresignedUpload(ctx, tt.fileType, tt.folder)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "https://signed.example/put", got.UploadURL)
				assert.NotEmpty(t, got.FileKey)
				assert.NotEmpty(t, got.PublicURL)
			}

			mockStore.AssertExpectations(t)
		})
	}
}

func TestUploadService_BestEffortDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("empty key is a no-op", func(t *testing.T) {
		mockStore := new(MockObjectStorage)
		service := NewUploadService(slog.Default(), mockStore, testUploadConfig())

		service.BestEffortDelete(ctx, "")

		mockStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("storage failure is swallowed", func(t *testing.T) {
		mockStore := new(MockObjectStorage)
		service := NewUploadService(slog.Default(), mockStore, testUploadConfig())

		mockStore.On("Delete", ctx, "gallery/a.jpg").
			Return(errors.New("connection reset")).Once()

		service.BestEffortDelete(ctx, "gallery/a.jpg")

		mockStore.AssertExpectations(t)
	})
}

func TestExtForFilename(t *testing.T) {
	assert.Equal(t, ".png", ExtForFilename("logo.PNG"))
	assert.Equal(t, ".jpg", ExtForFilename("scan.jpeg"))
	assert.Equal(t, ".webp", ExtForFilename("photo.webp"))
	assert.Equal(t, ".jpg", ExtForFilename("document.pdf"))
	assert.Equal(t, ".jpg", ExtForFilename("noext"))
}
