package media

import (
	"context"

	"github.com/dmitrijs2005/gophmedia/internal/client/models"
)

// Repository stores confirmed media records per site.
type Repository interface {
	// Upsert inserts rec or replaces the stored record with the same ID.
	Upsert(ctx context.Context, siteID int64, rec models.MediaRecord) error

	// UpsertAll upserts every record atomically.
	UpsertAll(ctx context.Context, siteID int64, recs []models.MediaRecord) error

	// Get returns the record, or (nil, nil) when there is none.
	Get(ctx context.Context, siteID int64, id string) (*models.MediaRecord, error)

	// List returns the records of a site, newest first.
	List(ctx context.Context, siteID int64) ([]models.MediaRecord, error)

	// Delete removes a record. Deleting an absent record is not an error.
	Delete(ctx context.Context, siteID int64, id string) error

	// Clear removes every record of a site.
	Clear(ctx context.Context, siteID int64) error
}
