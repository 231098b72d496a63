// Package mediautil infers file extensions and MIME types from file names,
// URLs and raw content.
package mediautil

import (
	"mime"
	"net/url"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dmitrijs2005/gophmedia/internal/client/models"
)

//nolint:gochecknoglobals
var extTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"svg":  "image/svg+xml",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"mp4":  "video/mp4",
	"m4v":  "video/mp4",
	"mov":  "video/quicktime",
	"webm": "video/webm",
	"ogv":  "video/ogg",
	"mp3":  "audio/mpeg",
	"m4a":  "audio/mp4",
	"wav":  "audio/wav",
	"ogg":  "audio/ogg",
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"odt":  "application/vnd.oasis.opendocument.text",
	"zip":  "application/zip",
	"txt":  "text/plain",
}

// BaseName returns the last path element of a path or URL, without any query
// string or fragment.
func BaseName(name string) string {
	return path.Base(stripURL(name))
}

// GetFileExtension returns the lower-case extension of a file name or URL,
// without the leading dot, or "" when there is none.
func GetFileExtension(name string) string {
	ext := path.Ext(BaseName(name))
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// GetMimeType returns the MIME type implied by the extension of name, or ""
// when it is unknown.
func GetMimeType(name string) string {
	ext := GetFileExtension(name)
	if ext == "" {
		return ""
	}
	if t, ok := extTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension("." + ext); t != "" {
		if mediaType, _, err := mime.ParseMediaType(t); err == nil {
			return mediaType
		}
	}
	return ""
}

// GetBlobExtension infers the extension of unnamed content: from its declared
// type when known, otherwise by sniffing the bytes.
func GetBlobExtension(b *models.Blob) string {
	if b == nil {
		return ""
	}
	if b.Type != "" {
		if m := mimetype.Lookup(b.Type); m != nil && m.Extension() != "" {
			return strings.TrimPrefix(m.Extension(), ".")
		}
	}
	if len(b.Data) == 0 {
		return ""
	}
	return strings.TrimPrefix(mimetype.Detect(b.Data).Extension(), ".")
}

// GetBlobMimeType returns the declared type of the content, or the sniffed
// one when nothing was declared.
func GetBlobMimeType(b *models.Blob) string {
	if b == nil {
		return ""
	}
	if b.Type != "" {
		return b.Type
	}
	if len(b.Data) == 0 {
		return ""
	}
	detected := mimetype.Detect(b.Data).String()
	if mediaType, _, err := mime.ParseMediaType(detected); err == nil {
		return mediaType
	}
	return detected
}

func stripURL(name string) string {
	if u, err := url.Parse(name); err == nil && u.Scheme != "" && u.Host != "" {
		return u.Path
	}
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		return name[:i]
	}
	return name
}
