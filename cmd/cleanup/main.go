package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"escolta/internal/config"
	"escolta/internal/lib/logger/sl"
	"escolta/internal/repository"
	"escolta/internal/storage/postgresql"
	s3storage "escolta/internal/storage/s3"
)

const deleteBatchSize = 1000

// cleanup sweeps object storage for files no database row references
// anymore. Objects younger than -older-than are kept so uploads racing
// the sweep are never collected.
func main() {
	var (
		dryRun    = flag.Bool("dry-run", false, "list orphaned objects without deleting")
		olderThan = flag.Duration("older-than", 24*time.Hour, "minimum object age before deletion")
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

	referenced, err := repo.ReferencedKeys(ctx)
	if err != nil {
		log.Error("failed to collect referenced keys", sl.Err(err))
		os.Exit(1)
	}

	referencedSet := make(map[string]bool, len(referenced))
	for _, key := range referenced {
		referencedSet[key] = true
	}

	objects, err := s3Client.ListAll(ctx)
	if err != nil {
		log.Error("failed to list bucket", sl.Err(err))
		os.Exit(1)
	}

	cutoff := time.Now().Add(-*olderThan)

	var orphans []string
	for _, obj := range objects {
		if referencedSet[obj.Key] {
			continue
		}
		if obj.LastModified.After(cutoff) {
			continue
		}
		orphans = append(orphans, obj.Key)
	}

	log.Info("sweep summary",
		slog.Int("objects", len(objects)),
		slog.Int("referenced", len(referencedSet)),
		slog.Int("orphaned", len(orphans)),
		slog.Bool("dry_run", *dryRun),
	)

	if *dryRun {
		for _, key := range orphans {
			log.Info("orphaned object", slog.String("key", key))
		}
		return
	}

	for start := 0; start < len(orphans); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(orphans) {
			end = len(orphans)
		}

		if err := s3Client.DeleteBatch(ctx, orphans[start:end]); err != nil {
			log.Error("batch delete failed", slog.Int("offset", start), sl.Err(err))
			os.Exit(1)
		}

		log.Info("batch deleted", slog.Int("count", end-start))
	}

	log.Info("cleanup finished", slog.Int("deleted", len(orphans)))
}
