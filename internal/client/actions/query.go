package actions

import (
	"context"

	"github.com/dmitrijs2005/gophmedia/internal/client/dispatcher"
	"github.com/dmitrijs2005/gophmedia/internal/client/models"
)

func (a *Actions) SetQuery(siteID int64, query models.Query) {
	a.dispatcher.HandleViewAction(dispatcher.SetMediaQuery{SiteID: siteID, Query: query})
}

// FetchNextPage requests the next page of the site's library. It does nothing
// while a page request for the site is in flight.
func (a *Actions) FetchNextPage(ctx context.Context, siteID int64) <-chan struct{} {
	if a.stores.Pages.IsFetchingNextPage(siteID) {
		return closed()
	}

	a.dispatcher.HandleViewAction(dispatcher.FetchMediaItems{SiteID: siteID})

	query := a.stores.Pages.NextPageQuery(siteID)
	a.log.Debug(ctx, "fetching media page", "site", siteID, "query", query)

	return a.background(ctx, "fetch-page", func(ctx context.Context) {
		list, err := safeCall(ctx, a, "fetch-page", func() (*models.MediaList, error) {
			return a.client.ListMedia(ctx, siteID, query)
		})
		a.dispatcher.HandleServerAction(dispatcher.ReceiveMediaItems{
			SiteID: siteID,
			Data:   list,
			Error:  err,
			Query:  query,
		})
	})
}

func (a *Actions) SetLibrarySelectedItems(siteID int64, items []models.MediaRecord) {
	a.log.Debug(context.Background(), "setting selected media", "site", siteID, "count", len(items))
	a.dispatcher.HandleViewAction(dispatcher.SetLibrarySelectedItems{SiteID: siteID, Data: items})
}

// ClearValidationErrors clears the validation errors of itemID, or of the
// whole site when itemID is empty.
func (a *Actions) ClearValidationErrors(siteID int64, itemID string) {
	a.dispatcher.HandleViewAction(dispatcher.ClearValidationErrors{SiteID: siteID, ItemID: itemID})
}

func (a *Actions) ClearValidationErrorsByType(siteID int64, errorType models.ValidationErrorType) {
	a.dispatcher.HandleViewAction(dispatcher.ClearValidationErrors{SiteID: siteID, ErrorType: errorType})
}
