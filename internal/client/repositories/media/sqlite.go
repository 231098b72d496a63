package media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophmedia/internal/client/models"
	"github.com/dmitrijs2005/gophmedia/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// dateLayout has a fixed-width fraction so stored dates sort as text.
const dateLayout = "2006-01-02T15:04:05.000000000Z07:00"

const mediaColumns = `id, date, file, url, guid, title, caption, description, alt, extension, mime_type, size, parent_id`

func (r *SQLiteRepository) Upsert(ctx context.Context, siteID int64, rec models.MediaRecord) error {
	query := `
		INSERT INTO media (site_id, ` + mediaColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(site_id, id) DO UPDATE SET
			date = excluded.date,
			file = excluded.file,
			url = excluded.url,
			guid = excluded.guid,
			title = excluded.title,
			caption = excluded.caption,
			description = excluded.description,
			alt = excluded.alt,
			extension = excluded.extension,
			mime_type = excluded.mime_type,
			size = excluded.size,
			parent_id = excluded.parent_id
	`
	_, err := r.db.ExecContext(ctx, query,
		siteID, rec.ID, formatDate(rec.Date), rec.File, rec.URL, rec.GUID, rec.Title, rec.Caption,
		rec.Description, rec.Alt, rec.Extension, rec.MimeType, rec.Size, rec.ParentID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert media[%d/%s]: %w", siteID, rec.ID, err)
	}
	return nil
}

// UpsertAll stores recs in one transaction when the repository owns the
// connection, and statement by statement inside a caller's transaction.
func (r *SQLiteRepository) UpsertAll(ctx context.Context, siteID int64, recs []models.MediaRecord) error {
	db, ok := r.db.(*sql.DB)
	if !ok {
		return upsertAll(ctx, r, siteID, recs)
	}

	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return upsertAll(ctx, NewSQLiteRepository(tx), siteID, recs)
	})
}

func upsertAll(ctx context.Context, r *SQLiteRepository, siteID int64, recs []models.MediaRecord) error {
	for _, rec := range recs {
		if err := r.Upsert(ctx, siteID, rec); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, siteID int64, id string) (*models.MediaRecord, error) {
	query := `SELECT ` + mediaColumns + ` FROM media WHERE site_id = ? AND id = ?`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, siteID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get media[%d/%s]: %w", siteID, id, err)
	}
	return rec, nil
}

func (r *SQLiteRepository) List(ctx context.Context, siteID int64) ([]models.MediaRecord, error) {
	query := `SELECT ` + mediaColumns + ` FROM media WHERE site_id = ? ORDER BY date DESC, id`

	rows, err := r.db.QueryContext(ctx, query, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	defer rows.Close()

	var result []models.MediaRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media row: %w", err)
		}
		result = append(result, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate media rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, siteID int64, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE site_id = ? AND id = ?`, siteID, id)
	if err != nil {
		return fmt.Errorf("failed to delete media[%d/%s]: %w", siteID, id, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context, siteID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE site_id = ?`, siteID)
	if err != nil {
		return fmt.Errorf("failed to clear media: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*models.MediaRecord, error) {
	var (
		rec  models.MediaRecord
		date string
	)
	err := s.Scan(&rec.ID, &date, &rec.File, &rec.URL, &rec.GUID, &rec.Title, &rec.Caption,
		&rec.Description, &rec.Alt, &rec.Extension, &rec.MimeType, &rec.Size, &rec.ParentID)
	if err != nil {
		return nil, err
	}

	if date != "" {
		t, err := time.Parse(time.RFC3339Nano, date)
		if err != nil {
			return nil, fmt.Errorf("bad date %q: %w", date, err)
		}
		rec.Date = t
	}
	return &rec, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}
