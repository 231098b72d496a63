package actions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophmedia/internal/client/dispatcher"
	"github.com/dmitrijs2005/gophmedia/internal/client/models"
)

func TestSetQuery(t *testing.T) {
	h := newHarness(t)
	q := models.Query{Search: "cat", Number: 10}

	h.actions.SetQuery(5, q)

	views := h.rec.of(dispatcher.SourceView, dispatcher.TypeSetMediaQuery)
	require.Len(t, views, 1)
	assert.Equal(t, dispatcher.SetMediaQuery{SiteID: 5, Query: q}, views[0])
	h.client.expectIdle(t)
}

func TestFetchNextPage(t *testing.T) {
	h := newHarness(t)
	h.stores.next = models.Query{Number: 20, PageHandle: "abc", Search: "dog"}

	done := h.actions.FetchNextPage(context.Background(), 5)
	require.Equal(t, []string{"view:FETCH_MEDIA_ITEMS"}, h.rec.types())

	cl := h.client.next(t)
	assert.Equal(t, "ListMedia", cl.method)
	assert.Equal(t, h.stores.next, cl.query)

	list := &models.MediaList{Media: []models.MediaRecord{{ID: "1"}}, Found: 1}
	cl.reply <- reply{list: list}
	waitDone(t, done)

	res := h.rec.of(dispatcher.SourceServer, dispatcher.TypeReceiveMediaItems)
	require.Len(t, res, 1)
	got := res[0].(dispatcher.ReceiveMediaItems)
	assert.Same(t, list, got.Data)
	assert.NoError(t, got.Error)
	assert.Equal(t, h.stores.next, got.Query)
}

func TestFetchNextPage_ErrorCarriesQuery(t *testing.T) {
	h := newHarness(t)
	h.stores.next = models.Query{Number: 20}
	boom := errors.New("boom")

	done := h.actions.FetchNextPage(context.Background(), 5)
	h.client.next(t).reply <- reply{err: boom}
	waitDone(t, done)

	got := h.rec.of(dispatcher.SourceServer, dispatcher.TypeReceiveMediaItems)[0].(dispatcher.ReceiveMediaItems)
	assert.Same(t, boom, got.Error)
	assert.Nil(t, got.Data)
	assert.Equal(t, 20, got.Query.Number)
}

func TestFetchNextPage_NoopWhileFetching(t *testing.T) {
	h := newHarness(t)
	h.stores.fetching = true

	done := h.actions.FetchNextPage(context.Background(), 5)
	require.True(t, isClosed(done))
	assert.Empty(t, h.rec.all())
	h.client.expectIdle(t)
}

func TestSelectionAndValidationIntents(t *testing.T) {
	h := newHarness(t)
	items := []models.MediaRecord{{ID: "1"}, {ID: "2"}}

	h.actions.SetLibrarySelectedItems(5, items)
	h.actions.ClearValidationErrors(5, "media-1")
	h.actions.ClearValidationErrorsByType(5, models.ValidationErrorTooLarge)

	got := h.rec.all()
	require.Len(t, got, 3)
	for _, p := range got {
		assert.False(t, p.IsServer())
	}
	assert.Equal(t, dispatcher.SetLibrarySelectedItems{SiteID: 5, Data: items}, got[0].Action)
	assert.Equal(t, dispatcher.ClearValidationErrors{SiteID: 5, ItemID: "media-1"}, got[1].Action)
	assert.Equal(t, dispatcher.ClearValidationErrors{SiteID: 5, ErrorType: models.ValidationErrorTooLarge}, got[2].Action)
	h.client.expectIdle(t)
}
