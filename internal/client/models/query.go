package models

import "strconv"

// Query selects a page of a site's media library.
type Query struct {
	Number     int    `json:"number,omitempty"`
	PageHandle string `json:"page_handle,omitempty"`
	MimeType   string `json:"mime_type,omitempty"`
	Search     string `json:"search,omitempty"`
	PostID     int64  `json:"post_ID,omitempty"`
}

// Params renders the non-empty fields as URL query parameters.
func (q Query) Params() map[string]string {
	p := map[string]string{}
	if q.Number > 0 {
		p["number"] = strconv.Itoa(q.Number)
	}
	if q.PageHandle != "" {
		p["page_handle"] = q.PageHandle
	}
	if q.MimeType != "" {
		p["mime_type"] = q.MimeType
	}
	if q.Search != "" {
		p["search"] = q.Search
	}
	if q.PostID != 0 {
		p["post_ID"] = strconv.FormatInt(q.PostID, 10)
	}
	return p
}

// SameFilter reports whether q and o select the same result set, ignoring
// paging fields.
func (q Query) SameFilter(o Query) bool {
	return q.MimeType == o.MimeType && q.Search == o.Search && q.PostID == o.PostID
}
