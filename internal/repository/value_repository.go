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

type ShieldValueRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewShieldValueRepo(db *pgxpool.Pool) *ShieldValueRepo {
	return &ShieldValueRepo{
		db: db,
		sb: newStatementBuilder(),
	}
}

var valueColumns = []string{
	"id", "title", "description", "icon_name",
	"display_order", "created_at", "updated_at",
}

func scanValue(row pgx.Row) (models.ShieldValue, error) {
	var v models.ShieldValue
	err := row.Scan(
		&v.ID,
		&v.Title,
		&v.Description,
		&v.IconName,
		&v.DisplayOrder,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	return v, err
}

func (r *ShieldValueRepo) List(ctx context.Context) ([]models.ShieldValue, error) {
	const op = "repository.ShieldValueRepo.List"

	query, args, err := r.sb.Select(valueColumns...).
		From("shield_values").
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

	var values []models.ShieldValue
	for rows.Next() {
		v, err := scanValue(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		values = append(values, v)
	}

	return values, nil
}

func (r *ShieldValueRepo) GetByID(ctx context.Context, id uuid.UUID) (models.ShieldValue, error) {
	const op = "repository.ShieldValueRepo.GetByID"

	query, args, err := r.sb.Select(valueColumns...).
		From("shield_values").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.ShieldValue{}, fmt.Errorf("%s: %w", op, err)
	}

	v, err := scanValue(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ShieldValue{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.ShieldValue{}, fmt.Errorf("%s: %w", op, err)
	}

	return v, nil
}

func (r *ShieldValueRepo) Create(ctx context.Context, val models.ShieldValue) (models.ShieldValue, error) {
	const op = "repository.ShieldValueRepo.Create"

	query, args, err := r.sb.Insert("shield_values").
		Columns("title", "description", "icon_name", "display_order").
		Values(val.Title, val.Description, val.IconName, val.DisplayOrder).
		Suffix("RETURNING " + columnList(valueColumns)).
		ToSql()
	if err != nil {
		return models.ShieldValue{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanValue(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.ShieldValue{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *ShieldValueRepo) Update(ctx context.Context, val models.ShieldValue) (models.ShieldValue, error) {
	const op = "repository.ShieldValueRepo.Update"

	query, args, err := r.sb.Update("shield_values").
		Set("title", val.Title).
		Set("description", val.Description).
		Set("icon_name", val.IconName).
		Set("display_order", val.DisplayOrder).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": val.ID}).
		Suffix("RETURNING " + columnList(valueColumns)).
		ToSql()
	if err != nil {
		return models.ShieldValue{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := scanValue(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ShieldValue{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.ShieldValue{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (r *ShieldValueRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "repository.ShieldValueRepo.Delete"

	query, args, err := r.sb.Delete("shield_values").
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

func (r *ShieldValueRepo) Reorder(ctx context.Context, items []models.ReorderItem) error {
	return reorderRows(ctx, r.db, r.sb, "shield_values", items)
}
