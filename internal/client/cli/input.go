package cli

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/dmitrijs2005/gophmedia/internal/client/models"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetPassword prints prompt to w and reads a secret from the terminal without
// echo. A newline is printed after the read to keep the UI tidy.
func GetPassword(w io.Writer, prompt string) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// isRemote reports whether src names content the server should fetch.
func isRemote(src string) bool {
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// openSource turns a command argument into an upload file: URLs are passed
// through, anything else is read from disk.
func openSource(src string) (models.UploadFile, error) {
	if isRemote(src) {
		return models.NewURLFile(src), nil
	}
	return models.OpenLocalFile(src)
}

// parseQuery reads "type:<mime>", "post:<id>" and free search words.
func parseQuery(args []string) (models.Query, error) {
	var (
		q     models.Query
		words []string
	)
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "type:"):
			q.MimeType = strings.TrimPrefix(arg, "type:")
		case strings.HasPrefix(arg, "post:"):
			id, err := strconv.ParseInt(strings.TrimPrefix(arg, "post:"), 10, 64)
			if err != nil {
				return models.Query{}, fmt.Errorf("%w: post:<id>", ErrUsage)
			}
			q.PostID = id
		default:
			words = append(words, arg)
		}
	}
	q.Search = strings.Join(words, " ")
	return q, nil
}

// formatRecord renders one library line.
func formatRecord(rec models.MediaRecord) string {
	var b strings.Builder
	b.WriteString(rec.ID)
	if rec.Transient {
		b.WriteString(" [pending]")
	}
	if rec.Title != "" {
		fmt.Fprintf(&b, " %q", rec.Title)
	}
	if rec.MimeType != "" {
		b.WriteString(" " + rec.MimeType)
	}
	if rec.ParentID != 0 {
		fmt.Fprintf(&b, " post:%d", rec.ParentID)
	}
	if rec.URL != "" {
		b.WriteString(" " + rec.URL)
	}
	return b.String()
}
