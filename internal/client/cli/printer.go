package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/gophmedia/internal/client/actions"
	"github.com/dmitrijs2005/gophmedia/internal/client/dispatcher"
)

// eventPrinter reports settled operations to the user. It must be registered
// after the validation store.
type eventPrinter struct {
	mu         sync.Mutex
	w          io.Writer
	validation actions.ValidationReader
}

func newEventPrinter(w io.Writer, validation actions.ValidationReader) *eventPrinter {
	return &eventPrinter{w: w, validation: validation}
}

func (p *eventPrinter) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *eventPrinter) Handle(pl dispatcher.Payload) {
	switch a := pl.Action.(type) {
	case dispatcher.CreateMediaItem:
		if errs := p.validation.Errors(a.SiteID, a.Data.ID); len(errs) > 0 {
			p.printf("rejected %s (%s): %v", a.Data.File, a.Data.ID, errs)
			return
		}
		p.printf("queued %s as %s", a.Data.File, a.Data.ID)

	case dispatcher.ReceiveMediaItem:
		if !pl.IsServer() {
			return
		}
		switch {
		case a.Error != nil && a.ID != "":
			p.printf("upload of %s failed: %v", a.ID, a.Error)
		case a.Error != nil:
			p.printf("request failed: %v", a.Error)
		case a.Data == nil:
		case a.ID != "":
			p.printf("uploaded %s -> %s", a.ID, formatRecord(*a.Data))
		default:
			p.printf("saved %s", formatRecord(*a.Data))
		}

	case dispatcher.ReceiveMediaItems:
		if a.Error != nil {
			p.printf("listing failed: %v", a.Error)
			return
		}
		if a.Data != nil {
			p.printf("received %d of %d items", len(a.Data.Media), a.Data.Found)
		}

	case dispatcher.RemoveMediaItem:
		if !pl.IsServer() {
			return
		}
		switch {
		case a.Error != nil:
			p.printf("delete failed: %v", a.Error)
		case a.Data != nil:
			p.printf("deleted %s", a.Data.ID)
		}
	}
}
