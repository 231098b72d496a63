package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dmitrijs2005/gophmedia/internal/client/mediautil"
	"github.com/dmitrijs2005/gophmedia/internal/client/models"
	"github.com/dmitrijs2005/gophmedia/internal/logging"
)

const (
	pathMedia       = "/sites/{site}/media"
	pathMediaItem   = "/sites/{site}/media/{id}"
	pathMediaNew    = "/sites/{site}/media/new"
	pathMediaEdit   = "/sites/{site}/media/{id}/edit"
	pathMediaDelete = "/sites/{site}/media/{id}/delete"
)

// RESTClientConfig configures RESTClient.
type RESTClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// RESTClient implements MediaClient against a WordPress.com-style REST API.
type RESTClient struct {
	http   *resty.Client
	tokens TokenSource
	log    logging.Logger
}

var (
	_ MediaClient = (*RESTClient)(nil)
	_ Pinger      = (*RESTClient)(nil)
)

// NewRESTClient builds a client for cfg. tokens may be nil for anonymous
// access; log may be nil.
func NewRESTClient(cfg RESTClientConfig, tokens TokenSource, log logging.Logger) *RESTClient {
	if log == nil {
		log = logging.NopLogger{}
	}

	h := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("User-Agent", "gophmedia/1.0").
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		h.SetTimeout(cfg.Timeout)
	}

	return &RESTClient{http: h, tokens: tokens, log: log.With("component", "rest-client")}
}

// apiMedia is the wire shape of a media item; the API sends numeric IDs.
type apiMedia struct {
	ID          json.Number `json:"ID"`
	Date        string      `json:"date"`
	URL         string      `json:"URL"`
	GUID        string      `json:"guid"`
	File        string      `json:"file"`
	Title       string      `json:"title"`
	Caption     string      `json:"caption"`
	Description string      `json:"description"`
	Alt         string      `json:"alt"`
	Extension   string      `json:"extension"`
	MimeType    string      `json:"mime_type"`
	PostID      int64       `json:"post_ID"`
}

type apiMediaList struct {
	Media []apiMedia `json:"media"`
	Found int        `json:"found"`
	Meta  struct {
		NextPage string `json:"next_page"`
	} `json:"meta"`
}

func (m apiMedia) record() models.MediaRecord {
	rec := models.MediaRecord{
		ID:          m.ID.String(),
		URL:         m.URL,
		GUID:        m.GUID,
		File:        m.File,
		Title:       m.Title,
		Caption:     m.Caption,
		Description: m.Description,
		Alt:         m.Alt,
		Extension:   m.Extension,
		MimeType:    m.MimeType,
		ParentID:    m.PostID,
	}
	if t, err := time.Parse(time.RFC3339, m.Date); err == nil {
		rec.Date = t
	}
	return rec
}

func (l apiMediaList) list() *models.MediaList {
	out := &models.MediaList{Found: l.Found, NextPage: l.Meta.NextPage}
	out.Media = make([]models.MediaRecord, 0, len(l.Media))
	for _, m := range l.Media {
		out.Media = append(out.Media, m.record())
	}
	return out
}

func (c *RESTClient) request(ctx context.Context, siteID int64) (*resty.Request, error) {
	req := c.http.R().
		SetContext(ctx).
		SetError(&APIError{}).
		SetPathParam("site", strconv.FormatInt(siteID, 10))

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
		if token != "" {
			req.SetAuthToken(token)
		}
	}
	return req, nil
}

func (c *RESTClient) GetMedia(ctx context.Context, siteID int64, itemID string) (*models.MediaRecord, error) {
	req, err := c.request(ctx, siteID)
	if err != nil {
		return nil, err
	}

	var out apiMedia
	resp, err := req.SetPathParam("id", itemID).SetResult(&out).Get(pathMediaItem)
	if err := c.mapError(resp, err); err != nil {
		return nil, err
	}

	rec := out.record()
	return &rec, nil
}

func (c *RESTClient) ListMedia(ctx context.Context, siteID int64, query models.Query) (*models.MediaList, error) {
	req, err := c.request(ctx, siteID)
	if err != nil {
		return nil, err
	}

	var out apiMediaList
	resp, err := req.SetQueryParams(query.Params()).SetResult(&out).Get(pathMedia)
	if err := c.mapError(resp, err); err != nil {
		return nil, err
	}

	return out.list(), nil
}

func (c *RESTClient) AddMediaURLs(ctx context.Context, siteID int64, payload models.UploadPayload) (*models.MediaList, error) {
	if payload.URL == "" {
		return nil, ErrNoContent
	}

	req, err := c.request(ctx, siteID)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Add("media_urls[]", payload.URL)
	addAttrs(form, payload)

	var out apiMediaList
	resp, err := req.SetFormDataFromValues(form).SetResult(&out).Post(pathMediaNew)
	if err := c.mapError(resp, err); err != nil {
		return nil, err
	}

	return out.list(), nil
}

func (c *RESTClient) AddMediaFiles(ctx context.Context, siteID int64, payload models.UploadPayload) (*models.MediaList, error) {
	if payload.File == nil || payload.File.Contents == nil {
		return nil, ErrNoContent
	}

	req, err := c.request(ctx, siteID)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	addAttrs(form, payload)

	name, contentType := fileMeta(*payload.File)
	var out apiMediaList
	resp, err := req.
		SetMultipartField("media[]", name, contentType, bytes.NewReader(payload.File.Contents.Data)).
		SetFormDataFromValues(form).
		SetResult(&out).
		Post(pathMediaNew)
	if err := c.mapError(resp, err); err != nil {
		return nil, err
	}

	return out.list(), nil
}

func (c *RESTClient) UpdateMedia(ctx context.Context, siteID int64, itemID string, update models.MediaUpdate) (*models.MediaRecord, error) {
	req, err := c.request(ctx, siteID)
	if err != nil {
		return nil, err
	}

	body := map[string]any{}
	for k, v := range update.Fields() {
		body[k] = v
	}
	if update.ParentID != nil {
		body["parent_id"] = *update.ParentID
	}

	var out apiMedia
	resp, err := req.SetPathParam("id", itemID).SetBody(body).SetResult(&out).Post(pathMediaItem)
	if err := c.mapError(resp, err); err != nil {
		return nil, err
	}

	rec := out.record()
	return &rec, nil
}

func (c *RESTClient) EditMedia(ctx context.Context, siteID int64, itemID string, update models.MediaUpdate) (*models.MediaRecord, error) {
	req, err := c.request(ctx, siteID)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	for k, v := range update.Fields() {
		form.Set(k, v)
	}
	if update.ParentID != nil {
		form.Set("parent_id", strconv.FormatInt(*update.ParentID, 10))
	}

	switch {
	case update.Media != nil && update.Media.Kind == models.FileKindURL:
		form.Set("media_url", update.Media.URL)
	case update.Media != nil && update.Media.Contents != nil:
		name, contentType := fileMeta(*update.Media)
		req.SetMultipartField("media", name, contentType, bytes.NewReader(update.Media.Contents.Data))
	case update.MediaURL != "":
		form.Set("media_url", update.MediaURL)
	}

	var out apiMedia
	resp, err := req.SetPathParam("id", itemID).SetFormDataFromValues(form).SetResult(&out).Post(pathMediaEdit)
	if err := c.mapError(resp, err); err != nil {
		return nil, err
	}

	rec := out.record()
	return &rec, nil
}

func (c *RESTClient) DeleteMedia(ctx context.Context, siteID int64, itemID string) (*models.MediaRecord, error) {
	req, err := c.request(ctx, siteID)
	if err != nil {
		return nil, err
	}

	var out apiMedia
	resp, err := req.SetPathParam("id", itemID).SetResult(&out).Post(pathMediaDelete)
	if err := c.mapError(resp, err); err != nil {
		return nil, err
	}

	rec := out.record()
	return &rec, nil
}

// Ping reports the API as reachable when it answers at all below 500.
func (c *RESTClient) Ping(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Head("/")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return ErrUnavailable
	}
	return nil
}

func (c *RESTClient) mapError(resp *resty.Response, err error) error {
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !resp.IsError() {
		return nil
	}

	apiErr, ok := resp.Error().(*APIError)
	if !ok || apiErr == nil {
		apiErr = &APIError{}
	}
	apiErr.Status = resp.StatusCode()
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(apiErr.Status)
	}

	c.log.Debug(resp.Request.Context(), "media api error", "status", apiErr.Status, "code", apiErr.Code, "url", resp.Request.URL)

	switch apiErr.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, apiErr)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %w", ErrUnavailable, apiErr)
	default:
		return apiErr
	}
}

func addAttrs(form url.Values, payload models.UploadPayload) {
	if payload.ParentID != 0 {
		form.Set("attrs[0][parent_id]", strconv.FormatInt(payload.ParentID, 10))
	}
	if payload.Title != "" {
		form.Set("attrs[0][title]", payload.Title)
	}
}

// fileMeta picks the multipart file name and content type of f.
func fileMeta(f models.UploadFile) (string, string) {
	name := f.FileName
	if name == "" {
		name = "upload"
		if ext := mediautil.GetBlobExtension(f.Contents); ext != "" {
			name += "." + ext
		}
	}

	contentType := mediautil.GetBlobMimeType(f.Contents)
	if t := mediautil.GetMimeType(name); f.Contents.Type == "" && t != "" {
		contentType = t
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return name, contentType
}
