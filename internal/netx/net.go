package netx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"

	"github.com/go-resty/resty/v2"
)

var ErrTooLarge = errors.New("response body exceeds limit")

// Download GETs url and returns its body and declared media type. A
// non-positive limit disables the size check. hc may be nil.
func Download(ctx context.Context, hc *resty.Client, url string, limit int64) ([]byte, string, error) {
	if hc == nil {
		hc = resty.New()
	}

	resp, err := hc.R().SetContext(ctx).SetDoNotParseResponse(true).Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("download %s: %w", url, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != 200 {
		b, _ := io.ReadAll(io.LimitReader(body, 512))
		return nil, "", fmt.Errorf("download failed: %s; body: %s", resp.Status(), string(b))
	}

	r := io.Reader(body)
	if limit > 0 {
		r = io.LimitReader(body, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", url, err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, "", fmt.Errorf("%w: %d bytes", ErrTooLarge, limit)
	}

	contentType := resp.Header().Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}
	return data, contentType, nil
}
