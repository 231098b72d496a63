package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/gophmedia/internal/client/dispatcher"
	"github.com/dmitrijs2005/gophmedia/internal/client/models"
	"github.com/dmitrijs2005/gophmedia/internal/client/stores"
)

func TestEventPrinter(t *testing.T) {
	validation := stores.NewValidationStore([]string{"jpg"}, 0)
	var buf bytes.Buffer
	p := newEventPrinter(&buf, validation)

	view := func(a dispatcher.Action) {
		pl := dispatcher.Payload{Source: dispatcher.SourceView, Action: a}
		validation.Handle(pl)
		p.Handle(pl)
	}
	server := func(a dispatcher.Action) {
		p.Handle(dispatcher.Payload{Source: dispatcher.SourceServer, Action: a})
	}

	view(dispatcher.CreateMediaItem{SiteID: 5, Data: models.MediaRecord{ID: "media-1", File: "a.jpg", Extension: "jpg"}})
	view(dispatcher.CreateMediaItem{SiteID: 5, Data: models.MediaRecord{ID: "media-2", File: "b.exe", Extension: "exe"}})
	view(dispatcher.ReceiveMediaItem{SiteID: 5, Data: &models.MediaRecord{ID: "quiet"}})
	view(dispatcher.RemoveMediaItem{SiteID: 5, Data: &models.MediaRecord{ID: "quiet"}})
	server(dispatcher.ReceiveMediaItem{SiteID: 5, ID: "media-1", Data: &models.MediaRecord{ID: "42"}})
	server(dispatcher.ReceiveMediaItem{SiteID: 5, ID: "media-3", Error: errors.New("boom")})
	server(dispatcher.ReceiveMediaItem{SiteID: 5, Error: errors.New("gone")})
	server(dispatcher.ReceiveMediaItem{SiteID: 5, Data: &models.MediaRecord{ID: "7"}})
	server(dispatcher.ReceiveMediaItems{SiteID: 5, Data: &models.MediaList{Media: []models.MediaRecord{{ID: "1"}}, Found: 4}})
	server(dispatcher.ReceiveMediaItems{SiteID: 5, Error: errors.New("offline")})
	server(dispatcher.RemoveMediaItem{SiteID: 5, Data: &models.MediaRecord{ID: "7"}})
	server(dispatcher.RemoveMediaItem{SiteID: 5, Error: errors.New("denied")})
	server(dispatcher.FetchMediaLimits{SiteID: 5})

	assert.Equal(t, `queued a.jpg as media-1
rejected b.exe (media-2): [file-type-unsupported]
uploaded media-1 -> 42
upload of media-3 failed: boom
request failed: gone
saved 7
received 1 of 4 items
listing failed: offline
deleted 7
delete failed: denied
`, buf.String())
}
