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
	"escolta/internal/storage"
)

type MilestoneRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewMilestoneRepo(db *pgxpool.Pool) *MilestoneRepo {
	return &MilestoneRepo{
		db: db,
		sb: newStatementBuilder(),
	}
}

var milestoneColumns = []string{
	"id", "year", "title", "description", "icon_name",
	"display_order", "created_at", "updated_at",
}

func scanMilestone(row pgx.Row) (models.HistoricalMilestone, error) {
	var m models.HistoricalMilestone
	err := row.Scan(
		&m.ID,
		&m.Year,
		&m.Title,
		&m.Description,
		&m.IconName,
		&m.DisplayOrder,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (r *MilestoneRepo) List(ctx context.Context) ([]models.HistoricalMilestone, error) {
	const op = "repository.MilestoneRepo.List"

	query, args, err := r.sb.Select(milestoneColumns...).
		From("historical_milestones").
		OrderBy("display_order ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var milestones []models.HistoricalMilestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		milestones = append(milestones, m)
	}

	return milestones, nil
}

func (r *MilestoneRepo) GetByID(ctx context.Context, id uuid.UUID) (models.HistoricalMilestone, error) {
	const op = "repository.MilestoneRepo.GetByID"

	query, args, err := r.sb.Select(milestoneColumns...).
		From("historical_milestones").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.HistoricalMilestone{}, fmt.Errorf("%s: %w", op, err)
	}

	m, err := scanMilestone(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.HistoricalMilestone{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.HistoricalMilestone{}, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}

func (r *MilestoneRepo) Create(ctx context.Context, m models.HistoricalMilestone) (models.HistoricalMilestone, error) {
	const op = "repository.MilestoneRepo.Create"

	query, args, err := r.sb.Insert("historical_milestones").
		Columns("year", "title", "description", "icon_name", "display_order").
		Values(m.Year, m.Title, m.Description, m.IconName, m.DisplayOrder).
		Suffix("RETURNING " + columnList(milestoneColumns)).
		ToSql()
	if err != nil {
		return models.HistoricalMilestone{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanMilestone(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.HistoricalMilestone{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *MilestoneRepo) Update(ctx context.Context, m models.HistoricalMilestone) (models.HistoricalMilestone, error) {
	const op = "repository.MilestoneRepo.Update"

	query, args, err := r.sb.Update("historical_milestones").
		Set("year", m.Year).
		Set("title", m.Title).
		Set("description", m.Description).
		Set("icon_name", m.IconName).
		Set("display_order", m.DisplayOrder).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": m.ID}).
		Suffix("RETURNING " + columnList(milestoneColumns)).
		ToSql()
	if err != nil {
		return models.HistoricalMilestone{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := scanMilestone(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.HistoricalMilestone{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.HistoricalMilestone{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (r *MilestoneRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "repository.MilestoneRepo.Delete"

	query, args, err := r.sb.Delete("historical_milestones").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (r *MilestoneRepo) Reorder(ctx context.Context, items []models.ReorderItem) error {
	return reorderRows(ctx, r.db, r.sb, "historical_milestones", items)
}

type HistoricalImageRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewHistoricalImageRepo(db *pgxpool.Pool) *HistoricalImageRepo {
	return &HistoricalImageRepo{
		db: db,
		sb: newStatementBuilder(),
	}
}

var histImageColumns = []string{
	"id", "title", "description", "image_url", "image_key",
	"display_order", "created_at", "updated_at",
}

func scanHistImage(row pgx.Row) (models.HistoricalImage, error) {
	var img models.HistoricalImage
	err := row.Scan(
		&img.ID,
		&img.Title,
		&img.Description,
		&img.ImageURL,
		&img.ImageKey,
		&img.DisplayOrder,
		&img.CreatedAt,
		&img.UpdatedAt,
	)
	return img, err
}

func (r *HistoricalImageRepo) List(ctx context.Context) ([]models.HistoricalImage, error) {
	const op = "repository.HistoricalImageRepo.List"

	query, args, err := r.sb.Select(histImageColumns...).
		From("historical_images").
		OrderBy("display_order ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var images []models.HistoricalImage
	for rows.Next() {
		img, err := scanHistImage(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		images = append(images, img)
	}

	return images, nil
}

func (r *HistoricalImageRepo) GetByID(ctx context.Context, id uuid.UUID) (models.HistoricalImage, error) {
	const op = "repository.HistoricalImageRepo.GetByID"

	query, args, err := r.sb.Select(histImageColumns...).
		From("historical_images").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.HistoricalImage{}, fmt.Errorf("%s: %w", op, err)
	}

	img, err := scanHistImage(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.HistoricalImage{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.HistoricalImage{}, fmt.Errorf("%s: %w", op, err)
	}

	return img, nil
}

func (r *HistoricalImageRepo) Create(ctx context.Context, img models.HistoricalImage) (models.HistoricalImage, error) {
	const op = "repository.HistoricalImageRepo.Create"

	query, args, err := r.sb.Insert("historical_images").
		Columns("title", "description", "image_url", "image_key", "display_order").
		Values(img.Title, img.Description, img.ImageURL, img.ImageKey, img.DisplayOrder).
		Suffix("RETURNING " + columnList(histImageColumns)).
		ToSql()
	if err != nil {
		return models.HistoricalImage{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanHistImage(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.HistoricalImage{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *HistoricalImageRepo) Update(ctx context.Context, img models.HistoricalImage) (models.HistoricalImage, error) {
	const op = "repository.HistoricalImageRepo.Update"

	query, args, err := r.sb.Update("historical_images").
		Set("title", img.Title).
		Set("description", img.Description).
		Set("image_url", img.ImageURL).
		Set("image_key", img.ImageKey).
		Set("display_order", img.DisplayOrder).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": img.ID}).
		Suffix("RETURNING " + columnList(histImageColumns)).
		ToSql()
	if err != nil {
		return models.HistoricalImage{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := scanHistImage(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.HistoricalImage{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.HistoricalImage{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (r *HistoricalImageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "repository.HistoricalImageRepo.Delete"

	query, args, err := r.sb.Delete("historical_images").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (r *HistoricalImageRepo) Reorder(ctx context.Context, items []models.ReorderItem) error {
	return reorderRows(ctx, r.db, r.sb, "historical_images", items)
}
