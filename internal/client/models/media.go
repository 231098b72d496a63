// Package models defines the media records, file references and queries that
// flow between the action layer, the stores and the remote media client.
package models

import (
	"strconv"
	"time"
)

// MediaRecord is one media item, either confirmed by the remote service or a
// locally synthesized placeholder (Transient).
//
// A placeholder's ID is never reused: when the upload succeeds the store
// swaps the placeholder for the persisted record under the server's ID.
type MediaRecord struct {
	ID          string    `json:"ID"`
	Transient   bool      `json:"transient,omitempty"`
	Date        time.Time `json:"date,omitempty"`
	File        string    `json:"file,omitempty"`
	URL         string    `json:"URL,omitempty"`
	GUID        string    `json:"guid,omitempty"`
	Title       string    `json:"title,omitempty"`
	Caption     string    `json:"caption,omitempty"`
	Description string    `json:"description,omitempty"`
	Alt         string    `json:"alt,omitempty"`
	Extension   string    `json:"extension,omitempty"`
	MimeType    string    `json:"mime_type,omitempty"`
	// Size is not an API property; it is known only for local content and
	// is kept for validation.
	Size     int64 `json:"size,omitempty"`
	ParentID int64 `json:"post_ID,omitempty"`
}

// Apply merges the non-nil fields of u over r and returns the result.
// The receiver is not modified.
func (r MediaRecord) Apply(u MediaUpdate) MediaRecord {
	if u.ID != "" {
		r.ID = u.ID
	}
	if u.Title != nil {
		r.Title = *u.Title
	}
	if u.Caption != nil {
		r.Caption = *u.Caption
	}
	if u.Description != nil {
		r.Description = *u.Description
	}
	if u.Alt != nil {
		r.Alt = *u.Alt
	}
	if u.ParentID != nil {
		r.ParentID = *u.ParentID
	}
	return r
}

// Overlay copies every non-zero field of t over r and marks the result
// transient. It is used to show a replacement file before the server
// confirms it.
func (r MediaRecord) Overlay(t MediaRecord) MediaRecord {
	if t.ID != "" {
		r.ID = t.ID
	}
	if !t.Date.IsZero() {
		r.Date = t.Date
	}
	if t.File != "" {
		r.File = t.File
	}
	if t.URL != "" {
		r.URL = t.URL
	}
	if t.GUID != "" {
		r.GUID = t.GUID
	}
	if t.Title != "" {
		r.Title = t.Title
	}
	if t.Extension != "" {
		r.Extension = t.Extension
	}
	if t.MimeType != "" {
		r.MimeType = t.MimeType
	}
	if t.Size != 0 {
		r.Size = t.Size
	}
	r.Transient = true
	return r
}

// MediaList is one page of a list response.
type MediaList struct {
	Media    []MediaRecord `json:"media"`
	Found    int           `json:"found"`
	NextPage string        `json:"next_page,omitempty"`
}

// FetchKey identifies a single-item fetch for deduplication.
type FetchKey struct {
	SiteID int64
	ItemID string
}

func (k FetchKey) String() string {
	return strconv.FormatInt(k.SiteID, 10) + "," + k.ItemID
}
