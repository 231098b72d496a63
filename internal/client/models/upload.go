package models

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileKind tags which shape an UploadFile carries.
type FileKind int

const (
	// FileKindURL is a path or URL string; the server fetches it.
	FileKindURL FileKind = iota + 1
	// FileKindBlob is in-memory content wrapped with a file name and an
	// optional title.
	FileKindBlob
	// FileKindLocal is a named local file, like a browser File object.
	FileKindLocal
)

func (k FileKind) String() string {
	switch k {
	case FileKindURL:
		return "url"
	case FileKindBlob:
		return "blob"
	case FileKindLocal:
		return "local"
	default:
		return fmt.Sprintf("FileKind(%d)", int(k))
	}
}

// Blob is raw content with an optional declared MIME type.
type Blob struct {
	Data []byte
	Type string
}

// Size returns the content length in bytes.
func (b *Blob) Size() int64 {
	if b == nil {
		return 0
	}
	return int64(len(b.Data))
}

// UploadFile is a file reference queued for upload. Build one with
// NewURLFile, NewBlobFile, NewLocalFile or OpenLocalFile; downstream code
// switches on Kind.
type UploadFile struct {
	Kind     FileKind
	URL      string
	Contents *Blob
	FileName string
	Title    string
}

func NewURLFile(url string) UploadFile {
	return UploadFile{Kind: FileKindURL, URL: url}
}

func NewBlobFile(contents Blob, fileName, title string) UploadFile {
	return UploadFile{Kind: FileKindBlob, Contents: &contents, FileName: fileName, Title: title}
}

func NewLocalFile(name string, contents Blob) UploadFile {
	return UploadFile{Kind: FileKindLocal, Contents: &contents, FileName: name}
}

// OpenLocalFile reads path into memory and returns it as a local file named
// after its base name.
func OpenLocalFile(path string) (UploadFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return UploadFile{}, fmt.Errorf("read %s: %w", path, err)
	}
	return NewLocalFile(filepath.Base(path), Blob{Data: data}), nil
}

// IsURL reports whether the server should fetch the file itself.
func (f UploadFile) IsURL() bool {
	return f.Kind == FileKindURL
}

// UploadPayload is the envelope handed to the remote "add" operations.
// Exactly one of URL and File is set.
type UploadPayload struct {
	ParentID int64
	URL      string
	File     *UploadFile
	Title    string
}
