package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophmedia/internal/client/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestREST(t *testing.T, h http.HandlerFunc) *RESTClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewRESTClient(RESTClientConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, NewStaticToken("tok"), nil)
}

func TestRESTClient_GetMedia(t *testing.T) {
	c := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/sites/7/media/42", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{
			"ID":        42,
			"date":      "2024-03-01T10:00:00+00:00",
			"URL":       "https://cdn.example.com/a.jpg",
			"title":     "A",
			"extension": "jpg",
			"mime_type": "image/jpeg",
			"post_ID":   9,
		})
	})

	got, err := c.GetMedia(context.Background(), 7, "42")
	require.NoError(t, err)
	assert.Equal(t, "42", got.ID)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, int64(9), got.ParentID)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), got.Date.UTC())
	assert.False(t, got.Transient)
}

func TestRESTClient_ListMedia(t *testing.T) {
	c := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/7/media", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("number"))
		assert.Equal(t, "cat", r.URL.Query().Get("search"))
		assert.Equal(t, "h1", r.URL.Query().Get("page_handle"))
		writeJSON(w, http.StatusOK, map[string]any{
			"found": 5,
			"media": []map[string]any{{"ID": 1}, {"ID": 2}},
			"meta":  map[string]any{"next_page": "h2"},
		})
	})

	got, err := c.ListMedia(context.Background(), 7, models.Query{Number: 2, Search: "cat", PageHandle: "h1"})
	require.NoError(t, err)
	assert.Equal(t, 5, got.Found)
	assert.Equal(t, "h2", got.NextPage)
	require.Len(t, got.Media, 2)
	assert.Equal(t, "1", got.Media[0].ID)
	assert.Equal(t, "2", got.Media[1].ID)
}

func TestRESTClient_AddMediaURLs(t *testing.T) {
	c := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sites/7/media/new", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, []string{"https://example.com/b.png"}, r.PostForm["media_urls[]"])
		assert.Equal(t, "3", r.PostForm.Get("attrs[0][parent_id]"))
		assert.Equal(t, "Sunset", r.PostForm.Get("attrs[0][title]"))
		writeJSON(w, http.StatusOK, map[string]any{"media": []map[string]any{{"ID": 100, "title": "Sunset"}}})
	})

	got, err := c.AddMediaURLs(context.Background(), 7, models.UploadPayload{
		ParentID: 3,
		URL:      "https://example.com/b.png",
		Title:    "Sunset",
	})
	require.NoError(t, err)
	require.Len(t, got.Media, 1)
	assert.Equal(t, "100", got.Media[0].ID)
}

func TestRESTClient_AddMediaFiles(t *testing.T) {
	c := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/7/media/new", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		f, hdr, err := r.FormFile("media[]")
		require.NoError(t, err)
		defer f.Close()
		body, err := io.ReadAll(f)
		require.NoError(t, err)

		assert.Equal(t, "photo.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		assert.Equal(t, "pixels", string(body))
		assert.Empty(t, r.FormValue("attrs[0][parent_id]"))
		writeJSON(w, http.StatusOK, map[string]any{"media": []map[string]any{{"ID": 101}}})
	})

	file := models.NewLocalFile("photo.png", models.Blob{Data: []byte("pixels")})
	got, err := c.AddMediaFiles(context.Background(), 7, models.UploadPayload{File: &file})
	require.NoError(t, err)
	require.Len(t, got.Media, 1)
	assert.Equal(t, "101", got.Media[0].ID)
}

func TestRESTClient_AddMediaFiles_NoContent(t *testing.T) {
	c := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := c.AddMediaFiles(context.Background(), 7, models.UploadPayload{})
	require.ErrorIs(t, err, ErrNoContent)

	_, err = c.AddMediaURLs(context.Background(), 7, models.UploadPayload{})
	require.ErrorIs(t, err, ErrNoContent)
}

func TestRESTClient_UpdateMedia(t *testing.T) {
	c := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/7/media/42", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"title": "New", "parent_id": float64(5)}, body)
		writeJSON(w, http.StatusOK, map[string]any{"ID": 42, "title": "New", "post_ID": 5})
	})

	got, err := c.UpdateMedia(context.Background(), 7, "42", models.MediaUpdate{
		ID:       "42",
		Title:    models.Ptr("New"),
		ParentID: models.Ptr(int64(5)),
	})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, int64(5), got.ParentID)
}

func TestRESTClient_EditMedia(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		c := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/sites/7/media/42/edit", r.URL.Path)
			require.NoError(t, r.ParseMultipartForm(1<<20))
			_, hdr, err := r.FormFile("media")
			require.NoError(t, err)
			assert.Equal(t, "new.jpg", hdr.Filename)
			assert.Equal(t, "Alt", r.FormValue("alt"))
			writeJSON(w, http.StatusOK, map[string]any{"ID": 42, "extension": "jpg"})
		})

		file := models.NewLocalFile("new.jpg", models.Blob{Data: []byte{0xff, 0xd8, 0xff}})
		got, err := c.EditMedia(context.Background(), 7, "42", models.MediaUpdate{Alt: models.Ptr("Alt"), Media: &file})
		require.NoError(t, err)
		assert.Equal(t, "jpg", got.Extension)
	})

	t.Run("url", func(t *testing.T) {
		c := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "https://example.com/c.gif", r.PostForm.Get("media_url"))
			writeJSON(w, http.StatusOK, map[string]any{"ID": 42, "extension": "gif"})
		})

		got, err := c.EditMedia(context.Background(), 7, "42", models.MediaUpdate{MediaURL: "https://example.com/c.gif"})
		require.NoError(t, err)
		assert.Equal(t, "gif", got.Extension)
	})
}

func TestRESTClient_DeleteMedia(t *testing.T) {
	c := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sites/7/media/42/delete", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"ID": 42, "title": "gone"})
	})

	got, err := c.DeleteMedia(context.Background(), 7, "42")
	require.NoError(t, err)
	assert.Equal(t, "42", got.ID)
}

func TestRESTClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		code     string
		sentinel error
	}{
		{"unauthorized", http.StatusUnauthorized, "authorization_required", ErrUnauthorized},
		{"forbidden", http.StatusForbidden, "unauthorized", ErrUnauthorized},
		{"not found", http.StatusNotFound, "unknown_media", ErrNotFound},
		{"bad gateway", http.StatusBadGateway, "", ErrUnavailable},
		{"bad request", http.StatusBadRequest, "invalid_input", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, map[string]any{"error": tt.code, "message": "nope"})
			})

			_, err := c.GetMedia(context.Background(), 7, "42")
			require.Error(t, err)
			if tt.sentinel != nil {
				require.ErrorIs(t, err, tt.sentinel)
			}

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.code, apiErr.Code)
		})
	}
}

func TestRESTClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewRESTClient(RESTClientConfig{BaseURL: base, Timeout: time.Second}, nil, nil)

	_, err := c.GetMedia(context.Background(), 7, "1")
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestRESTClient_ExpiredTokenFailsFast(t *testing.T) {
	c := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	c.tokens = NewStaticToken(signedToken(t, time.Now().Add(-time.Hour)))

	_, err := c.ListMedia(context.Background(), 7, models.Query{})
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestRESTClient_Ping(t *testing.T) {
	c := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusNotFound)
	})
	require.NoError(t, c.Ping(context.Background()))
}
