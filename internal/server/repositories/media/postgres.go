// Package media provides the PostgreSQL-backed repository for catalog
// entries. Videos and PDFs live in one table partitioned by kind.
package media

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mediakeeper/internal/common"
	"github.com/dmitrijs2005/mediakeeper/internal/dbx"
	"github.com/dmitrijs2005/mediakeeper/internal/server/models"
)

// PostgresRepository implements catalog storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create appends one entry of the given kind and returns it with its
// store-assigned id.
func (r *PostgresRepository) Create(ctx context.Context, kind string, entry *models.MediaEntry) (*models.MediaEntry, error) {

	query :=
		`INSERT INTO media (kind, title, description, url)
         VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		kind, entry.Title, entry.Description, entry.URL).Scan(&entry.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

// SelectByKind returns all entries of the given kind in the store's natural
// order. Callers must not rely on any particular ordering.
func (r *PostgresRepository) SelectByKind(ctx context.Context, kind string) ([]*models.MediaEntry, error) {
	query :=
		`SELECT id, title, description, url FROM media
		 WHERE kind = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to select media: %w", err)
	}
	defer rows.Close()

	result := []*models.MediaEntry{}
	for rows.Next() {
		var item models.MediaEntry
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.URL); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByID removes exactly one entry. A missing id is reported as
// common.ErrorNotFound, never silently ignored.
func (r *PostgresRepository) DeleteByID(ctx context.Context, kind string, id string) error {
	query :=
		`DELETE FROM media
		 WHERE kind = $1 AND id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, kind, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
