package client

import (
	"context"

	"github.com/dmitrijs2005/gophmedia/internal/client/models"
)

// MediaClient is the remote media API of a site.
type MediaClient interface {
	GetMedia(ctx context.Context, siteID int64, itemID string) (*models.MediaRecord, error)
	ListMedia(ctx context.Context, siteID int64, query models.Query) (*models.MediaList, error)
	AddMediaURLs(ctx context.Context, siteID int64, payload models.UploadPayload) (*models.MediaList, error)
	AddMediaFiles(ctx context.Context, siteID int64, payload models.UploadPayload) (*models.MediaList, error)
	UpdateMedia(ctx context.Context, siteID int64, itemID string, update models.MediaUpdate) (*models.MediaRecord, error)
	// EditMedia replaces the attached file of an item (and may update its
	// attributes in the same call).
	EditMedia(ctx context.Context, siteID int64, itemID string, update models.MediaUpdate) (*models.MediaRecord, error)
	DeleteMedia(ctx context.Context, siteID int64, itemID string) (*models.MediaRecord, error)
}

// Pinger is implemented by clients that can probe backend reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
