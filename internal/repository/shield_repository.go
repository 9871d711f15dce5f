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

type ShieldRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewShieldRepo(db *pgxpool.Pool) *ShieldRepo {
	return &ShieldRepo{
		db: db,
		sb: newStatementBuilder(),
	}
}

var shieldColumns = []string{
	"id", "title", "description", "symbolism",
	"image_url", "image_key", "is_main_shield",
	"created_at", "updated_at",
}

func scanShield(row pgx.Row) (models.Shield, error) {
	var s models.Shield
	err := row.Scan(
		&s.ID,
		&s.Title,
		&s.Description,
		&s.Symbolism,
		&s.ImageURL,
		&s.ImageKey,
		&s.IsMainShield,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

func (r *ShieldRepo) List(ctx context.Context) ([]models.Shield, error) {
	const op = "repository.ShieldRepo.List"

	query, args, err := r.sb.Select(shieldColumns...).
		From("shields").
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var shields []models.Shield
	for rows.Next() {
		s, err := scanShield(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		shields = append(shields, s)
	}

	return shields, nil
}

func (r *ShieldRepo) GetByID(ctx context.Context, id uuid.UUID) (models.Shield, error) {
	const op = "repository.ShieldRepo.GetByID"

	query, args, err := r.sb.Select(shieldColumns...).
		From("shields").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Shield{}, fmt.Errorf("%s: %w", op, err)
	}

	s, err := scanShield(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Shield{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.Shield{}, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

// Create inserts a shield. When the main flag is set the flag is first
// cleared on every other row, inside the same transaction, so at most
// one shield is main at any commit point.
func (r *ShieldRepo) Create(ctx context.Context, shield models.Shield) (models.Shield, error) {
	const op = "repository.ShieldRepo.Create"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.Shield{}, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	if shield.IsMainShield {
		if _, err := tx.Exec(ctx, "UPDATE shields SET is_main_shield = FALSE WHERE is_main_shield"); err != nil {
			return models.Shield{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	query, args, err := r.sb.Insert("shields").
		Columns("title", "description", "symbolism", "image_url", "image_key", "is_main_shield").
		Values(shield.Title, shield.Description, shield.Symbolism, shield.ImageURL, shield.ImageKey, shield.IsMainShield).
		Suffix("RETURNING " + columnList(shieldColumns)).
		ToSql()
	if err != nil {
		return models.Shield{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanShield(tx.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Shield{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Shield{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *ShieldRepo) Update(ctx context.Context, shield models.Shield) (models.Shield, error) {
	const op = "repository.ShieldRepo.Update"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.Shield{}, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	if shield.IsMainShield {
		if _, err := tx.Exec(ctx, "UPDATE shields SET is_main_shield = FALSE WHERE is_main_shield AND id <> $1", shield.ID); err != nil {
			return models.Shield{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	query, args, err := r.sb.Update("shields").
		Set("title", shield.Title).
		Set("description", shield.Description).
		Set("symbolism", shield.Symbolism).
		Set("image_url", shield.ImageURL).
		Set("image_key", shield.ImageKey).
		Set("is_main_shield", shield.IsMainShield).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": shield.ID}).
		Suffix("RETURNING " + columnList(shieldColumns)).
		ToSql()
	if err != nil {
		return models.Shield{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := scanShield(tx.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Shield{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.Shield{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Shield{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (r *ShieldRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "repository.ShieldRepo.Delete"

	query, args, err := r.sb.Delete("shields").
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

// SetMain flags one shield as main and clears every other row inside a
// single transaction.
func (r *ShieldRepo) SetMain(ctx context.Context, id uuid.UUID) error {
	const op = "repository.ShieldRepo.SetMain"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "UPDATE shields SET is_main_shield = FALSE WHERE is_main_shield AND id <> $1", id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ct, err := tx.Exec(ctx, "UPDATE shields SET is_main_shield = TRUE, updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
