package netx

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDownload(t *testing.T) {
	file := []byte("hello, media")

	t.Run("success 200 OK", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("method = %q, want GET", r.Method)
			}
			w.Header().Set("Content-Type", "image/png; charset=binary")
			_, _ = w.Write(file)
		}))
		defer ts.Close()

		got, ct, err := Download(context.Background(), nil, ts.URL+"/a.png?x=1", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(got, file) {
			t.Fatalf("body = %q, want %q", string(got), string(file))
		}
		if ct != "image/png" {
			t.Fatalf("content type = %q, want image/png", ct)
		}
	})

	t.Run("non-200 -> error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer ts.Close()

		_, _, err := Download(context.Background(), nil, ts.URL, 0)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "download failed: 403") {
			t.Fatalf("error = %q, want to contain 403", err.Error())
		}
	})

	t.Run("over limit", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(file)
		}))
		defer ts.Close()

		_, _, err := Download(context.Background(), nil, ts.URL, 4)
		if !errors.Is(err, ErrTooLarge) {
			t.Fatalf("error = %v, want ErrTooLarge", err)
		}

		if _, _, err := Download(context.Background(), nil, ts.URL, int64(len(file))); err != nil {
			t.Fatalf("exact-size body rejected: %v", err)
		}
	})

	t.Run("network error", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		_, _, err := Download(context.Background(), nil, ts.URL, 0)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if strings.Contains(err.Error(), "download failed") {
			t.Fatalf("got wrong kind of error: %v", err)
		}
	})
}
