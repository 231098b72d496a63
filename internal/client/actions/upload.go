package actions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophmedia/internal/client/client"
	"github.com/dmitrijs2005/gophmedia/internal/client/dispatcher"
	"github.com/dmitrijs2005/gophmedia/internal/client/models"
)

// placeholderLead pushes placeholder dates about a year into the future so an
// item finishing early does not jump ahead of the rest of its batch.
const placeholderLead = 31_540_000_000 * time.Millisecond

const placeholderPrefix = "media-"

type uploadTask struct {
	id          string
	placeholder models.MediaRecord
	payload     models.UploadPayload
	byURL       bool
}

// Upload adds files to a site. A placeholder is created for every file, in
// input order, before any transfer starts. Files whose placeholder failed
// validation are skipped without a result. The rest are sent one at a time;
// each settles with a ReceiveMediaItem result naming its placeholder.
func (a *Actions) Upload(ctx context.Context, siteID int64, files ...models.UploadFile) <-chan struct{} {
	if len(files) == 0 {
		return closed()
	}

	n := len(files)
	base := a.now().Add(placeholderLead).Truncate(time.Millisecond)
	parentID := a.activeParentID()

	tasks := make([]uploadTask, 0, n)
	for i, f := range files {
		id := placeholderPrefix + a.newID()
		date := base.Add(-time.Duration(n-i) * time.Millisecond)

		placeholder := a.builder.Build(id, f, date)
		a.dispatcher.HandleViewAction(dispatcher.CreateMediaItem{SiteID: siteID, Data: placeholder})

		// A skipped item gets no result; its placeholder stays, without
		// local content, until the validation errors are cleared.
		if errs := a.stores.Validation.Errors(siteID, id); len(errs) > 0 {
			a.log.Debug(ctx, "upload skipped by validation", "site", siteID, "id", id, "errors", errs)
			a.detach(siteID, placeholder, models.MediaRecord{})
			continue
		}

		tasks = append(tasks, uploadTask{
			id:          id,
			placeholder: placeholder,
			payload:     newUploadPayload(f, parentID),
			byURL:       f.IsURL(),
		})
	}

	if len(tasks) == 0 {
		return closed()
	}

	return a.background(ctx, "upload", func(ctx context.Context) {
		for _, t := range tasks {
			a.uploadOne(ctx, siteID, t)
		}
	})
}

func newUploadPayload(f models.UploadFile, parentID int64) models.UploadPayload {
	p := models.UploadPayload{ParentID: parentID, Title: f.Title}
	if f.IsURL() {
		p.URL = f.URL
	} else {
		p.File = &f
	}
	return p
}

func (a *Actions) uploadOne(ctx context.Context, siteID int64, t uploadTask) {
	a.log.Debug(ctx, "uploading media", "site", siteID, "id", t.id, "parent", t.payload.ParentID, "url", t.byURL)

	add := a.client.AddMediaFiles
	if t.byURL {
		add = a.client.AddMediaURLs
	}

	list, err := safeCall(ctx, a, "upload", func() (*models.MediaList, error) {
		return add(ctx, siteID, t.payload)
	})
	if err == nil && (list == nil || len(list.Media) == 0) {
		err = client.ErrEmptyResponse
	}
	if err != nil {
		a.log.Debug(ctx, "upload failed", "site", siteID, "id", t.id, "error", err)
		a.detach(siteID, t.placeholder, models.MediaRecord{})
		a.dispatcher.HandleServerAction(dispatcher.ReceiveMediaItem{SiteID: siteID, ID: t.id, Error: err})
		return
	}
	a.builder.Release(t.placeholder)

	rec := list.Media[0]
	a.dispatcher.HandleServerAction(dispatcher.ReceiveMediaItem{SiteID: siteID, ID: t.id, Data: &rec})
	a.dispatcher.HandleServerAction(dispatcher.FetchMediaLimits{SiteID: siteID})
}
