package actions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophmedia/internal/client/dispatcher"
	"github.com/dmitrijs2005/gophmedia/internal/client/models"
)

// Edit applies update to the stored record locally. Nothing is sent to the
// server.
func (a *Actions) Edit(siteID int64, update models.MediaUpdate) {
	stored, _ := a.stores.Records.Get(siteID, update.ID)
	merged := stored.Apply(update)

	a.dispatcher.HandleViewAction(dispatcher.ReceiveMediaItem{SiteID: siteID, ID: update.ID, Data: &merged})
}

// Update saves update. The merged record is emitted right away; when the
// update carries a new file (or a URL and replaceFile is set) a placeholder
// for that file is laid over it. replaceFile selects the edit endpoint, which
// replaces the attached file, instead of the attribute update.
func (a *Actions) Update(ctx context.Context, siteID int64, update models.MediaUpdate, replaceFile bool) <-chan struct{} {
	stored, _ := a.stores.Records.Get(siteID, update.ID)
	merged := stored.Apply(update)

	var overlay *models.MediaRecord
	switch {
	case update.Media != nil:
		t := a.builder.Build(update.ID, *update.Media, time.Time{})
		overlay = &t
	case replaceFile && update.MediaURL != "":
		t := a.builder.Build(update.ID, models.NewURLFile(update.MediaURL), time.Time{})
		overlay = &t
	}
	if overlay != nil {
		merged = merged.Overlay(*overlay)
	}

	a.log.Debug(ctx, "updating media", "site", siteID, "id", update.ID, "replace_file", replaceFile)
	a.dispatcher.HandleViewAction(dispatcher.ReceiveMediaItem{SiteID: siteID, ID: update.ID, Data: &merged})

	return a.background(ctx, "update", func(ctx context.Context) {
		send := a.client.UpdateMedia
		if replaceFile {
			send = a.client.EditMedia
		}

		rec, err := safeCall(ctx, a, "update", func() (*models.MediaRecord, error) {
			return send(ctx, siteID, update.ID, update)
		})
		if overlay != nil {
			if err != nil {
				a.detach(siteID, merged, stored)
			} else {
				a.builder.Release(*overlay)
			}
		}
		a.dispatcher.HandleServerAction(dispatcher.ReceiveMediaItem{SiteID: siteID, Data: rec, Error: err})
	})
}

// UpdateAll runs Update for every item, in order. The calls are independent.
func (a *Actions) UpdateAll(ctx context.Context, siteID int64, updates []models.MediaUpdate, replaceFile bool) <-chan struct{} {
	chs := make([]<-chan struct{}, 0, len(updates))
	for _, u := range updates {
		chs = append(chs, a.Update(ctx, siteID, u, replaceFile))
	}
	return waitAll(chs)
}

// Delete removes item. The removal is emitted right away; the server's answer
// follows, and the site's media limits are invalidated whatever it was.
func (a *Actions) Delete(ctx context.Context, siteID int64, item models.MediaRecord) <-chan struct{} {
	a.dispatcher.HandleViewAction(dispatcher.RemoveMediaItem{SiteID: siteID, Data: &item})
	a.log.Debug(ctx, "deleting media", "site", siteID, "id", item.ID)

	return a.background(ctx, "delete", func(ctx context.Context) {
		defer a.dispatcher.HandleServerAction(dispatcher.FetchMediaLimits{SiteID: siteID})

		rec, err := safeCall(ctx, a, "delete", func() (*models.MediaRecord, error) {
			return a.client.DeleteMedia(ctx, siteID, item.ID)
		})
		a.dispatcher.HandleServerAction(dispatcher.RemoveMediaItem{SiteID: siteID, Data: rec, Error: err})
	})
}

// DeleteAll runs Delete for every item, in order.
func (a *Actions) DeleteAll(ctx context.Context, siteID int64, items []models.MediaRecord) <-chan struct{} {
	chs := make([]<-chan struct{}, 0, len(items))
	for _, item := range items {
		chs = append(chs, a.Delete(ctx, siteID, item))
	}
	return waitAll(chs)
}
