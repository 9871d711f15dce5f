package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// storageKeyColumns maps every table holding object-storage references to
// its (url column, key column) pairs. The cleanup and migration tools walk
// this map, so a new image-bearing entity must be registered here.
var storageKeyColumns = map[string][][2]string{
	"shields":           {{"image_url", "image_key"}},
	"leadership_periods": {{"image_url", "image_key"}},
	"gallery_items": {
		{"image_url", "image_key"},
		{"thumbnail_url", "thumbnail_key"},
	},
	"historical_images": {{"image_url", "image_key"}},
	"site_config": {
		{"logo_url", "logo_key"},
		{"favicon_url", "favicon_key"},
	},
}

// ReferencedKeys collects every non-empty storage key recorded in any
// table, the baseline set for the orphaned-object sweep.
func (r *Repository) ReferencedKeys(ctx context.Context) ([]string, error) {
	const op = "repository.Repository.ReferencedKeys"

	var keys []string
	for table, pairs := range storageKeyColumns {
		for _, pair := range pairs {
			keyCol := pair[1]
			query := fmt.Sprintf("SELECT %s FROM %s WHERE %s IS NOT NULL AND %s <> ''", keyCol, table, keyCol, keyCol)

			rows, err := r.db.Query(ctx, query)
			if err != nil {
				return nil, fmt.Errorf("%s: %s.%s: %w", op, table, keyCol, err)
			}

			for rows.Next() {
				var key string
				if err := rows.Scan(&key); err != nil {
					rows.Close()
					return nil, fmt.Errorf("%s: %s.%s: %w", op, table, keyCol, err)
				}
				keys = append(keys, key)
			}
			rows.Close()
		}
	}

	return keys, nil
}

// LegacyImageRow is a row whose image still points at a pre-S3 local path.
type LegacyImageRow struct {
	Table  string
	ID     uuid.UUID
	URLCol string
	KeyCol string
	URL    string
}

// LegacyImageRows finds rows whose url columns still reference the old
// local /uploads directory instead of object storage.
func (r *Repository) LegacyImageRows(ctx context.Context) ([]LegacyImageRow, error) {
	const op = "repository.Repository.LegacyImageRows"

	var result []LegacyImageRow
	for table, pairs := range storageKeyColumns {
		for _, pair := range pairs {
			urlCol, keyCol := pair[0], pair[1]
			query := fmt.Sprintf("SELECT id, %s FROM %s WHERE %s LIKE '/uploads/%%'", urlCol, table, urlCol)

			rows, err := r.db.Query(ctx, query)
			if err != nil {
				return nil, fmt.Errorf("%s: %s.%s: %w", op, table, urlCol, err)
			}

			for rows.Next() {
				row := LegacyImageRow{Table: table, URLCol: urlCol, KeyCol: keyCol}
				if err := rows.Scan(&row.ID, &row.URL); err != nil {
					rows.Close()
					return nil, fmt.Errorf("%s: %s.%s: %w", op, table, urlCol, err)
				}
				result = append(result, row)
			}
			rows.Close()
		}
	}

	return result, nil
}

// RewriteImageRef points a legacy row at its re-uploaded object.
func (r *Repository) RewriteImageRef(ctx context.Context, row LegacyImageRow, newURL, newKey string) error {
	const op = "repository.Repository.RewriteImageRef"

	query := fmt.Sprintf("UPDATE %s SET %s = $1, %s = $2 WHERE id = $3", row.Table, row.URLCol, row.KeyCol)
	if _, err := r.db.Exec(ctx, query, newURL, newKey, row.ID); err != nil {
		return fmt.Errorf("%s: %s: %w", op, row.Table, err)
	}

	return nil
}
