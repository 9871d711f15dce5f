package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"escolta/internal/domain/models"
)

type SiteConfigRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewSiteConfigRepo(db *pgxpool.Pool) *SiteConfigRepo {
	return &SiteConfigRepo{
		db: db,
		sb: newStatementBuilder(),
	}
}

var siteConfigColumns = []string{
	"id", "name", "short_name", "contact_email", "contact_phone", "address",
	"schedule_text", "logo_url", "logo_key", "favicon_url", "favicon_key",
	"facebook_url", "instagram_url", "youtube_url", "updated_at",
}

func scanSiteConfig(row pgx.Row) (models.SiteConfig, error) {
	var c models.SiteConfig
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.ShortName,
		&c.ContactEmail,
		&c.ContactPhone,
		&c.Address,
		&c.ScheduleText,
		&c.LogoURL,
		&c.LogoKey,
		&c.FaviconURL,
		&c.FaviconKey,
		&c.FacebookURL,
		&c.InstagramURL,
		&c.YoutubeURL,
		&c.UpdatedAt,
	)
	return c, err
}

// Get returns the singleton row. A missing row is not an error: the read
// path treats it as an empty defaulted config.
func (r *SiteConfigRepo) Get(ctx context.Context) (models.SiteConfig, error) {
	const op = "repository.SiteConfigRepo.Get"

	query, args, err := r.sb.Select(siteConfigColumns...).
		From("site_config").
		Limit(1).
		ToSql()
	if err != nil {
		return models.SiteConfig{}, fmt.Errorf("%s: %w", op, err)
	}

	cfg, err := scanSiteConfig(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.SiteConfig{}, nil
		}
		return models.SiteConfig{}, fmt.Errorf("%s: %w", op, err)
	}

	return cfg, nil
}

// Upsert writes the singleton in place, inserting it on first save.
func (r *SiteConfigRepo) Upsert(ctx context.Context, cfg models.SiteConfig) (models.SiteConfig, error) {
	const op = "repository.SiteConfigRepo.Upsert"

	existing, err := r.Get(ctx)
	if err != nil {
		return models.SiteConfig{}, fmt.Errorf("%s: %w", op, err)
	}

	var builder squirrel.Sqlizer
	if existing.ID == uuid.Nil {
		builder = r.sb.Insert("site_config").
			Columns("name", "short_name", "contact_email", "contact_phone", "address",
				"schedule_text", "logo_url", "logo_key", "favicon_url", "favicon_key",
				"facebook_url", "instagram_url", "youtube_url").
			Values(cfg.Name, cfg.ShortName, cfg.ContactEmail, cfg.ContactPhone, cfg.Address,
				cfg.ScheduleText, cfg.LogoURL, cfg.LogoKey, cfg.FaviconURL, cfg.FaviconKey,
				cfg.FacebookURL, cfg.InstagramURL, cfg.YoutubeURL).
			Suffix("RETURNING " + columnList(siteConfigColumns))
	} else {
		builder = r.sb.Update("site_config").
			Set("name", cfg.Name).
			Set("short_name", cfg.ShortName).
			Set("contact_email", cfg.ContactEmail).
			Set("contact_phone", cfg.ContactPhone).
			Set("address", cfg.Address).
			Set("schedule_text", cfg.ScheduleText).
			Set("logo_url", cfg.LogoURL).
			Set("logo_key", cfg.LogoKey).
			Set("favicon_url", cfg.FaviconURL).
			Set("favicon_key", cfg.FaviconKey).
			Set("facebook_url", cfg.FacebookURL).
			Set("instagram_url", cfg.InstagramURL).
			Set("youtube_url", cfg.YoutubeURL).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": existing.ID}).
			Suffix("RETURNING " + columnList(siteConfigColumns))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return models.SiteConfig{}, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := scanSiteConfig(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.SiteConfig{}, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}
