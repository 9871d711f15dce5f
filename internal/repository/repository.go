package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"

	"escolta/internal/domain/models"
)

// Repository aggregates every data-access object behind a single
// constructor so services receive explicit dependencies instead of
// globals.
type Repository struct {
	db *pgxpool.Pool

	Shield      ShieldRepository
	Gallery     GalleryRepository
	Leadership  LeadershipRepository
	Milestone   MilestoneRepository
	HistImage   HistoricalImageRepository
	ShieldValue ShieldValueRepository
	SiteConfig  SiteConfigRepository
	User        UserRepository
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		db:          db,
		Shield:      NewShieldRepo(db),
		Gallery:     NewGalleryRepo(db),
		Leadership:  NewLeadershipRepo(db),
		Milestone:   NewMilestoneRepo(db),
		HistImage:   NewHistoricalImageRepo(db),
		ShieldValue: NewShieldValueRepo(db),
		SiteConfig:  NewSiteConfigRepo(db),
		User:        NewUserRepo(db),
	}
}

func (r *Repository) Close() {
	r.db.Close()
}

func newStatementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func columnList(columns []string) string {
	return strings.Join(columns, ", ")
}

// reorderRows applies each (id, display_order) pair as an independent
// update. A failure mid-batch leaves earlier rows reordered; there is no
// rollback.
func reorderRows(ctx context.Context, db *pgxpool.Pool, sb squirrel.StatementBuilderType, table string, items []models.ReorderItem) error {
	const op = "repository.reorderRows"

	for _, item := range items {
		query, args, err := sb.Update(table).
			Set("display_order", item.DisplayOrder).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": item.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%s: %s: %w", op, table, err)
		}

		if _, err := db.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("%s: %s: %w", op, table, err)
		}
	}

	return nil
}
