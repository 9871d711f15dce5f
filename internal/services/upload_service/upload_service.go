package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"escolta/internal/config"
	"escolta/internal/lib/logger/sl"
	"escolta/internal/metrics"
	"escolta/internal/storage"
	s3storage "escolta/internal/storage/s3"
	"escolta/internal/transport/http/dto"
)

// ObjectStorage is the slice of the S3 client the upload service uses.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
	Delete(ctx context.Context, key string) error
	PresignPut(key, contentType string) (string, error)
	PublicURL(key string) string
	Bucket() string
	Region() string
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var allowedFolders = map[string]bool{
	"shields":    true,
	"gallery":    true,
	"leadership": true,
	"history":    true,
	"branding":   true,
}

// UploadService owns both image paths: direct multipart uploads that are
// re-encoded server-side, and presigned-URL issuance for client-direct
// uploads with server-side URL re-validation.
type UploadService struct {
	log       *slog.Logger
	store     ObjectStorage
	validator *s3storage.URLValidator
	cfg       config.UploadConfig
}

func NewUploadService(log *slog.Logger, store ObjectStorage, cfg config.UploadConfig) *UploadService {
	return &UploadService{
		log:       log,
		store:     store,
		validator: s3storage.NewURLValidator(store.Bucket(), store.Region()),
		cfg:       cfg,
	}
}

// UploadImage buffers the multipart file, re-encodes it to a bounded
// resolution and writes it (plus an optional square thumbnail) to object
// storage under folder. Both URLs and keys are returned for the entity
// row.
func (s *UploadService) UploadImage(ctx context.Context, file *multipart.FileHeader, folder string, withThumbnail bool) (dto.UploadedImage, error) {
	const op = "upload_service.UploadImage"

	log := s.log.With(
		slog.String("op", op),
		slog.String("folder", folder),
		slog.String("filename", file.Filename),
	)

	if !allowedFolders[folder] {
		return dto.UploadedImage{}, fmt.Errorf("%s: folder %q: %w", op, folder, storage.ErrInvalidFileType)
	}
	if file.Size > s.cfg.MaxSize {
		return dto.UploadedImage{}, fmt.Errorf("%s: %d bytes: %w", op, file.Size, storage.ErrFileTooLarge)
	}

	contentType := file.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[contentType]
	if !ok || contentType == "image/webp" {
		// webp is accepted on the presigned path only; the re-encoder
		// handles jpeg, png and gif.
		return dto.UploadedImage{}, fmt.Errorf("%s: %q: %w", op, contentType, storage.ErrInvalidFileType)
	}

	src, err := file.Open()
	if err != nil {
		return dto.UploadedImage{}, fmt.Errorf("%s: %w", op, err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		log.Warn("failed to decode image", sl.Err(err))
		return dto.UploadedImage{}, fmt.Errorf("%s: %w", op, storage.ErrInvalidFileType)
	}

	bounded := imaging.Fit(img, s.cfg.MaxWidth, s.cfg.MaxHeight, imaging.Lanczos)

	body, err := s.encode(bounded, ext)
	if err != nil {
		return dto.UploadedImage{}, fmt.Errorf("%s: %w", op, err)
	}

	name := uuid.New().String()
	key := fmt.Sprintf("%s/%s%s", folder, name, ext)

	url, err := s.store.Upload(ctx, key, contentType, body)
	if err != nil {
		metrics.StorageUploadsTotal.WithLabelValues(folder, "error").Inc()
		log.Error("failed to upload image", sl.Err(err))
		return dto.UploadedImage{}, fmt.Errorf("%s: %w", op, err)
	}
	metrics.StorageUploadsTotal.WithLabelValues(folder, "ok").Inc()

	uploaded := dto.UploadedImage{URL: url, Key: key}

	if withThumbnail {
		thumb := imaging.Fill(img, s.cfg.ThumbnailDim, s.cfg.ThumbnailDim, imaging.Center, imaging.Lanczos)
		thumbBody, err := s.encode(thumb, ext)
		if err != nil {
			return dto.UploadedImage{}, fmt.Errorf("%s: %w", op, err)
		}

		thumbKey := fmt.Sprintf("%s/%s_thumb%s", folder, name, ext)
		thumbURL, err := s.store.Upload(ctx, thumbKey, contentType, thumbBody)
		if err != nil {
			// An entity without a thumbnail is still usable, so the
			// failure is swallowed.
			metrics.StorageUploadsTotal.WithLabelValues(folder, "error").Inc()
			log.Warn("failed to upload thumbnail", sl.Err(err))
		} else {
			uploaded.ThumbnailURL = thumbURL
			uploaded.ThumbnailKey = thumbKey
		}
	}

	log.Info("image uploaded", slog.String("key", key))

	return uploaded, nil
}

func (s *UploadService) encode(img image.Image, ext string) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch ext {
	case ".png":
		err = imaging.Encode(&buf, img, imaging.PNG)
	case ".gif":
		err = imaging.Encode(&buf, img, imaging.GIF)
	default:
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(s.cfg.JPEGQuality))
	}
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// KeyFromURL re-validates a client-supplied object URL and returns the
// trusted storage key. Runs before any database write on the with-url
// paths.
func (s *UploadService) KeyFromURL(rawURL string) (string, error) {
	return s.validator.KeyFromURL(rawURL)
}

func (s *UploadService) PublicURL(key string) string {
	return s.store.PublicURL(key)
}

// IssuePresignedUpload returns a time-boxed signed PUT URL for a direct
// client upload, plus the key and eventual public URL of the object.
func (s *UploadService) IssuePresignedUpload(ctx context.Context, fileType, folder string) (dto.PresignedUpload, error) {
	const op = "upload_service.IssuePresignedUpload"

	if !allowedFolders[folder] {
		return dto.PresignedUpload{}, fmt.Errorf("%s: folder %q: %w", op, folder, storage.ErrInvalidFileType)
	}

	ext, ok := allowedImageTypes[fileType]
	if !ok {
		return dto.PresignedUpload{}, fmt.Errorf("%s: %q: %w", op, fileType, storage.ErrInvalidFileType)
	}

	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	uploadURL, err := s.store.PresignPut(key, fileType)
	if err != nil {
		return dto.PresignedUpload{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("issued presigned upload",
		slog.String("op", op),
		slog.String("key", key),
	)

	return dto.PresignedUpload{
		UploadURL: uploadURL,
		FileKey:   key,
		PublicURL: s.store.PublicURL(key),
	}, nil
}

// BestEffortDelete removes a stored object after a successful database
// mutation. Failures are logged and swallowed so cleanup never blocks
// the primary operation.
func (s *UploadService) BestEffortDelete(ctx context.Context, key string) {
	const op = "upload_service.BestEffortDelete"

	if key == "" {
		return
	}

	if err := s.store.Delete(ctx, key); err != nil {
		metrics.StorageDeleteFailures.Inc()
		s.log.Warn("failed to delete stored object",
			slog.String("op", op),
			slog.String("key", key),
			sl.Err(err),
		)
	}
}

// ExtForFilename keeps the original extension when it is a known image
// extension, falling back to .jpg.
func ExtForFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, known := range allowedImageTypes {
		if ext == known {
			return ext
		}
	}
	return ".jpg"
}
