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

type LeadershipRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewLeadershipRepo(db *pgxpool.Pool) *LeadershipRepo {
	return &LeadershipRepo{
		db: db,
		sb: newStatementBuilder(),
	}
}

var leadershipColumns = []string{
	"id", "year", "jefatura", "second_name", "image_url", "image_key",
	"display_order", "created_at", "updated_at",
}

func scanLeadership(row pgx.Row) (models.LeadershipPeriod, error) {
	var p models.LeadershipPeriod
	err := row.Scan(
		&p.ID,
		&p.Year,
		&p.Jefatura,
		&p.SecondName,
		&p.ImageURL,
		&p.ImageKey,
		&p.DisplayOrder,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (r *LeadershipRepo) List(ctx context.Context) ([]models.LeadershipPeriod, error) {
	const op = "repository.LeadershipRepo.List"

	query, args, err := r.sb.Select(leadershipColumns...).
		From("leadership_periods").
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

	var periods []models.LeadershipPeriod
	for rows.Next() {
		p, err := scanLeadership(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		periods = append(periods, p)
	}

	return periods, nil
}

func (r *LeadershipRepo) GetByID(ctx context.Context, id uuid.UUID) (models.LeadershipPeriod, error) {
	const op = "repository.LeadershipRepo.GetByID"

	query, args, err := r.sb.Select(leadershipColumns...).
		From("leadership_periods").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.LeadershipPeriod{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := scanLeadership(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.LeadershipPeriod{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.LeadershipPeriod{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (r *LeadershipRepo) Create(ctx context.Context, period models.LeadershipPeriod) (models.LeadershipPeriod, error) {
	const op = "repository.LeadershipRepo.Create"

	query, args, err := r.sb.Insert("leadership_periods").
		Columns("year", "jefatura", "second_name", "image_url", "image_key", "display_order").
		Values(period.Year, period.Jefatura, period.SecondName, period.ImageURL, period.ImageKey, period.DisplayOrder).
		Suffix("RETURNING " + columnList(leadershipColumns)).
		ToSql()
	if err != nil {
		return models.LeadershipPeriod{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanLeadership(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.LeadershipPeriod{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *LeadershipRepo) Update(ctx context.Context, period models.LeadershipPeriod) (models.LeadershipPeriod, error) {
	const op = "repository.LeadershipRepo.Update"

	query, args, err := r.sb.Update("leadership_periods").
		Set("year", period.Year).
		Set("jefatura", period.Jefatura).
		Set("second_name", period.SecondName).
		Set("image_url", period.ImageURL).
		Set("image_key", period.ImageKey).
		Set("display_order", period.DisplayOrder).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": period.ID}).
		Suffix("RETURNING " + columnList(leadershipColumns)).
		ToSql()
	if err != nil {
		return models.LeadershipPeriod{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := scanLeadership(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.LeadershipPeriod{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.LeadershipPeriod{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (r *LeadershipRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "repository.LeadershipRepo.Delete"

	query, args, err := r.sb.Delete("leadership_periods").
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

func (r *LeadershipRepo) Reorder(ctx context.Context, items []models.ReorderItem) error {
	return reorderRows(ctx, r.db, r.sb, "leadership_periods", items)
}
