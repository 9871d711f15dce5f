package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"escolta/internal/config"
	"escolta/internal/lib/logger/sl"
	"escolta/internal/repository"
	services "escolta/internal/services/upload_service"
	"escolta/internal/storage/postgresql"
	s3storage "escolta/internal/storage/s3"
)

// tableFolders routes each legacy table into its object storage folder.
var tableFolders = map[string]string{
	"shields":            "shields",
	"leadership_periods": "leadership",
	"gallery_items":      "gallery",
	"historical_images":  "history",
	"site_config":        "branding",
}

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// migrate-images moves rows still pointing at the old local /uploads
// directory into object storage and rewrites their references.
func main() {
	var (
		dryRun     = flag.Bool("dry-run", false, "report legacy rows without migrating")
		uploadsDir = flag.String("uploads-dir", "./uploads", "local directory holding the legacy files")
	)

	cfg := config.MustLoad()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx := context.Background()

	storage, err := postgresql.New(ctx, cfg.DSN)
	if err != nil {
		log.Error("failed to connect to database", sl.Err(err))
		os.Exit(1)
	}
	defer storage.Stop()

	s3Client, err := s3storage.New(cfg.S3)
	if err != nil {
		log.Error("failed to create storage client", sl.Err(err))
		os.Exit(1)
	}

	repo := repository.NewRepository(storage.DB)

	rows, err := repo.LegacyImageRows(ctx)
	if err != nil {
		log.Error("failed to find legacy rows", sl.Err(err))
		os.Exit(1)
	}

	log.Info("legacy rows found", slog.Int("count", len(rows)), slog.Bool("dry_run", *dryRun))

	var migrated, skipped int
	for _, row := range rows {
		rowLog := log.With(
			slog.String("table", row.Table),
			slog.String("id", row.ID.String()),
			slog.String("url", row.URL),
		)

		if *dryRun {
			rowLog.Info("would migrate")
			continue
		}

		filename := strings.TrimPrefix(row.URL, "/uploads/")
		localPath := filepath.Join(*uploadsDir, filepath.FromSlash(filename))

		data, err := os.ReadFile(localPath)
		if err != nil {
			rowLog.Warn("local file missing, skipped", sl.Err(err))
			skipped++
			continue
		}

		// Legacy filenames carry arbitrary casing and the odd unknown
		// extension; normalize them the same way uploads do.
		ext := services.ExtForFilename(filename)
		contentType := contentTypes[ext]

		folder := tableFolders[row.Table]
		key := folder + "/" + uuid.New().String() + ext

		publicURL, err := s3Client.Upload(ctx, key, contentType, data)
		if err != nil {
			rowLog.Error("upload failed", sl.Err(err))
			os.Exit(1)
		}

		if err := repo.RewriteImageRef(ctx, row, publicURL, key); err != nil {
			rowLog.Error("failed to rewrite reference", sl.Err(err))
			os.Exit(1)
		}

		rowLog.Info("migrated", slog.String("key", key))
		migrated++
	}

	log.Info("migration finished", slog.Int("migrated", migrated), slog.Int("skipped", skipped))
}
