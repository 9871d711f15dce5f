package app

import (
	"context"
	"log/slog"

	httpapp "escolta/internal/app/http"
	"escolta/internal/config"
	"escolta/internal/repository"
	"escolta/internal/services/auth"
	galleryservice "escolta/internal/services/gallery_service"
	historyservice "escolta/internal/services/history_service"
	leadershipservice "escolta/internal/services/leadership_service"
	"escolta/internal/services/mailer"
	shieldservice "escolta/internal/services/shield_service"
	siteconfigservice "escolta/internal/services/siteconfig_service"
	tokenservice "escolta/internal/services/token_service"
	uploadservice "escolta/internal/services/upload_service"
	"escolta/internal/storage/postgresql"
	redisapp "escolta/internal/storage/redis"
	s3storage "escolta/internal/storage/s3"
	httprouters "escolta/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server

	storage *postgresql.Storage
	redis   *redisapp.Client
	log     *slog.Logger
}

// New builds the whole object graph: storage, repositories, services and
// the HTTP server. Any failure here is fatal.
func New(log *slog.Logger, cfg *config.Config) *App {
	storage, err := postgresql.New(context.Background(), cfg.DSN)
	if err != nil {
		panic(err)
	}

	redisClient, err := redisapp.NewClient(cfg.Redis)
	if err != nil {
		panic(err)
	}

	s3Client, err := s3storage.New(cfg.S3)
	if err != nil {
		panic(err)
	}

	repo := repository.NewRepository(storage.DB)
	tokenRepo := repository.NewRedisTokenRepo(redisClient)

	uploads := uploadservice.NewUploadService(log, s3Client, cfg.Upload)
	mail := mailer.New(log, cfg.Mail)
	tokens := tokenservice.NewTokenService(tokenRepo, cfg.HTTP.JWTSecret)
	authService := auth.New(log, repo.User, tokens, tokenRepo, mail)

	shields := shieldservice.NewShieldService(log, repo.Shield, repo.ShieldValue, uploads)
	gallery := galleryservice.NewGalleryService(log, repo.Gallery, uploads)
	leadership := leadershipservice.NewLeadershipService(log, repo.Leadership, uploads)
	history := historyservice.NewHistoryService(log, repo.Milestone, repo.HistImage, uploads)
	siteConfig := siteconfigservice.NewSiteConfigService(log, repo.SiteConfig, uploads)

	routers := httprouters.NewRouter(
		log,
		shields,
		gallery,
		leadership,
		history,
		siteConfig,
		uploads,
		authService,
		storage,
	)

	server := httpapp.New(log, cfg.HTTP, routers)

	return &App{
		HTTPServer: server,
		storage:    storage,
		redis:      redisClient,
		log:        log,
	}
}

func (a *App) Stop() {
	if err := a.HTTPServer.Stop(); err != nil {
		a.log.Error("failed to stop http server", slog.Any("error", err))
	}

	if err := a.redis.Stop(); err != nil {
		a.log.Error("failed to close redis client", slog.Any("error", err))
	}

	a.storage.Stop()
}
