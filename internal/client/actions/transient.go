package actions

import (
	"time"

	"github.com/dmitrijs2005/gophmedia/internal/client/mediautil"
	"github.com/dmitrijs2005/gophmedia/internal/client/models"
	"github.com/dmitrijs2005/gophmedia/internal/client/objecturl"
)

// TransientBuilder synthesizes placeholder records for files that have not
// reached the server yet. Local content is exposed through object URLs from
// the registry.
type TransientBuilder struct {
	urls *objecturl.Registry
}

func NewTransientBuilder(urls *objecturl.Registry) *TransientBuilder {
	return &TransientBuilder{urls: urls}
}

// Build returns the placeholder for file under id. A zero date is left unset.
func (b *TransientBuilder) Build(id string, file models.UploadFile, date time.Time) models.MediaRecord {
	rec := models.MediaRecord{ID: id, Transient: true}
	if !date.IsZero() {
		rec.Date = date
	}

	if file.IsURL() {
		rec.File = file.URL
		rec.Title = mediautil.BaseName(file.URL)
		rec.Extension = mediautil.GetFileExtension(file.URL)
		rec.MimeType = mediautil.GetMimeType(file.URL)
		return rec
	}

	ref := b.urls.Create(file.Contents)
	rec.URL = ref
	rec.GUID = ref
	rec.File = file.FileName
	rec.Size = file.Contents.Size()

	rec.Title = file.Title
	if rec.Title == "" && file.FileName != "" {
		rec.Title = mediautil.BaseName(file.FileName)
	}

	if file.FileName != "" {
		rec.Extension = mediautil.GetFileExtension(file.FileName)
		rec.MimeType = mediautil.GetMimeType(file.FileName)
	} else {
		rec.Extension = mediautil.GetBlobExtension(file.Contents)
		rec.MimeType = mediautil.GetBlobMimeType(file.Contents)
	}

	return rec
}

// Release drops the object URL held by a placeholder, if any.
func (b *TransientBuilder) Release(rec models.MediaRecord) {
	if objecturl.IsObjectURL(rec.URL) {
		b.urls.Revoke(rec.URL)
	}
}
