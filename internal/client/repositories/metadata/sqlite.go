package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophmedia/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Get returns (nil, nil) when the key is not set.
func (r *SQLiteRepository) Get(ctx context.Context, siteID int64, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM site_state WHERE site_id = ? AND key = ?`, siteID, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get site_state[%d/%s]: %w", siteID, key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, siteID int64, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO site_state (site_id, key, value) VALUES (?, ?, ?)
		ON CONFLICT(site_id, key) DO UPDATE SET value = excluded.value
	`, siteID, key, value)
	if err != nil {
		return fmt.Errorf("failed to set site_state[%d/%s]: %w", siteID, key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, siteID int64, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM site_state WHERE site_id = ? AND key = ?`, siteID, key)
	if err != nil {
		return fmt.Errorf("failed to delete site_state[%d/%s]: %w", siteID, key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context, siteID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM site_state WHERE site_id = ?`, siteID)
	if err != nil {
		return fmt.Errorf("failed to clear site_state: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, siteID int64) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM site_state WHERE site_id = ?`, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list site_state: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan site_state row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate site_state rows: %w", err)
	}

	return result, nil
}
