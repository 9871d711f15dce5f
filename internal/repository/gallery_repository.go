package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"escolta/internal/domain/models"
	"escolta/internal/storage"
)

const uniqueViolation = "23505"

type GalleryRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewGalleryRepo(db *pgxpool.Pool) *GalleryRepo {
	return &GalleryRepo{
		db: db,
		sb: newStatementBuilder(),
	}
}

var (
	categoryColumns = []string{"id", "name", "slug", "created_at", "updated_at"}
	itemColumns     = []string{
		"id", "title", "image_url", "image_key", "thumbnail_url", "thumbnail_key",
		"category_id", "year", "display_order", "created_at", "updated_at",
	}
)

func scanCategory(row pgx.Row) (models.GalleryCategory, error) {
	var c models.GalleryCategory
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func scanItem(row pgx.Row) (models.GalleryItem, error) {
	var i models.GalleryItem
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.ImageURL,
		&i.ImageKey,
		&i.ThumbnailURL,
		&i.ThumbnailKey,
		&i.CategoryID,
		&i.Year,
		&i.DisplayOrder,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *GalleryRepo) ListCategories(ctx context.Context) ([]models.GalleryCategory, error) {
	const op = "repository.GalleryRepo.ListCategories"

	query, args, err := r.sb.Select(categoryColumns...).
		From("gallery_categories").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var categories []models.GalleryCategory
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		categories = append(categories, c)
	}

	return categories, nil
}

func (r *GalleryRepo) GetCategoryByID(ctx context.Context, id uuid.UUID) (models.GalleryCategory, error) {
	const op = "repository.GalleryRepo.GetCategoryByID"

	query, args, err := r.sb.Select(categoryColumns...).
		From("gallery_categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.GalleryCategory{}, fmt.Errorf("%s: %w", op, err)
	}

	c, err := scanCategory(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.GalleryCategory{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.GalleryCategory{}, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

func (r *GalleryRepo) CreateCategory(ctx context.Context, cat models.GalleryCategory) (models.GalleryCategory, error) {
	const op = "repository.GalleryRepo.CreateCategory"

	query, args, err := r.sb.Insert("gallery_categories").
		Columns("name", "slug").
		Values(cat.Name, cat.Slug).
		Suffix("RETURNING " + columnList(categoryColumns)).
		ToSql()
	if err != nil {
		return models.GalleryCategory{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanCategory(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return models.GalleryCategory{}, fmt.Errorf("%s: %w", op, storage.ErrSlugTaken)
		}
		return models.GalleryCategory{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *GalleryRepo) UpdateCategory(ctx context.Context, cat models.GalleryCategory) (models.GalleryCategory, error) {
	const op = "repository.GalleryRepo.UpdateCategory"

	query, args, err := r.sb.Update("gallery_categories").
		Set("name", cat.Name).
		Set("slug", cat.Slug).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": cat.ID}).
		Suffix("RETURNING " + columnList(categoryColumns)).
		ToSql()
	if err != nil {
		return models.GalleryCategory{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := scanCategory(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.GalleryCategory{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		if isUniqueViolation(err) {
			return models.GalleryCategory{}, fmt.Errorf("%s: %w", op, storage.ErrSlugTaken)
		}
		return models.GalleryCategory{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

// DeleteCategory removes the category; its items go with it via the
// ON DELETE CASCADE constraint.
func (r *GalleryRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	const op = "repository.GalleryRepo.DeleteCategory"

	query, args, err := r.sb.Delete("gallery_categories").
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

func (r *GalleryRepo) ListItems(ctx context.Context) ([]models.GalleryItem, error) {
	const op = "repository.GalleryRepo.ListItems"

	return r.queryItems(ctx, op, r.sb.Select(itemColumns...).
		From("gallery_items").
		OrderBy("display_order ASC"))
}

func (r *GalleryRepo) ListItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.GalleryItem, error) {
	const op = "repository.GalleryRepo.ListItemsByCategory"

	return r.queryItems(ctx, op, r.sb.Select(itemColumns...).
		From("gallery_items").
		Where(squirrel.Eq{"category_id": categoryID}).
		OrderBy("display_order ASC"))
}

func (r *GalleryRepo) queryItems(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]models.GalleryItem, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.GalleryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *GalleryRepo) GetItemByID(ctx context.Context, id uuid.UUID) (models.GalleryItem, error) {
	const op = "repository.GalleryRepo.GetItemByID"

	query, args, err := r.sb.Select(itemColumns...).
		From("gallery_items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	item, err := scanItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.GalleryItem{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return item, nil
}

func (r *GalleryRepo) CreateItem(ctx context.Context, item models.GalleryItem) (models.GalleryItem, error) {
	const op = "repository.GalleryRepo.CreateItem"

	query, args, err := r.sb.Insert("gallery_items").
		Columns("title", "image_url", "image_key", "thumbnail_url", "thumbnail_key", "category_id", "year", "display_order").
		Values(item.Title, item.ImageURL, item.ImageKey, item.ThumbnailURL, item.ThumbnailKey, item.CategoryID, item.Year, item.DisplayOrder).
		Suffix("RETURNING " + columnList(itemColumns)).
		ToSql()
	if err != nil {
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *GalleryRepo) UpdateItem(ctx context.Context, item models.GalleryItem) (models.GalleryItem, error) {
	const op = "repository.GalleryRepo.UpdateItem"

	query, args, err := r.sb.Update("gallery_items").
		Set("title", item.Title).
		Set("image_url", item.ImageURL).
		Set("image_key", item.ImageKey).
		Set("thumbnail_url", item.ThumbnailURL).
		Set("thumbnail_key", item.ThumbnailKey).
		Set("category_id", item.CategoryID).
		Set("year", item.Year).
		Set("display_order", item.DisplayOrder).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": item.ID}).
		Suffix("RETURNING " + columnList(itemColumns)).
		ToSql()
	if err != nil {
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := scanItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.GalleryItem{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (r *GalleryRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	const op = "repository.GalleryRepo.DeleteItem"

	query, args, err := r.sb.Delete("gallery_items").
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

func (r *GalleryRepo) ReorderItems(ctx context.Context, items []models.ReorderItem) error {
	return reorderRows(ctx, r.db, r.sb, "gallery_items", items)
}
