package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophmedia/internal/client/models"
)

// wait blocks until done closes or ctx ends.
func wait(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *App) printRecords(ids []string) {
	for _, id := range ids {
		if rec, ok := a.records.Get(a.siteID, id); ok {
			fmt.Fprintln(a.out, formatRecord(rec))
		}
	}
}

// List prints the library loaded so far, fetching the first page when
// nothing is loaded yet.
func (a *App) List(ctx context.Context) error {
	if len(a.pages.IDs(a.siteID)) == 0 && !a.pages.IsLastPage(a.siteID) {
		if err := wait(ctx, a.actions.FetchNextPage(ctx, a.siteID)); err != nil {
			return err
		}
	}

	ids := a.pages.IDs(a.siteID)
	if len(ids) == 0 {
		fmt.Fprintln(a.out, "No media.")
		return nil
	}
	a.printRecords(ids)
	if !a.pages.IsLastPage(a.siteID) {
		fmt.Fprintln(a.out, "(more available, type 'next')")
	}
	return nil
}

// Next loads and prints the next page.
func (a *App) Next(ctx context.Context) error {
	if a.pages.IsLastPage(a.siteID) {
		fmt.Fprintln(a.out, "No more media.")
		return nil
	}

	before := len(a.pages.IDs(a.siteID))
	if err := wait(ctx, a.actions.FetchNextPage(ctx, a.siteID)); err != nil {
		return err
	}

	ids := a.pages.IDs(a.siteID)
	if before < len(ids) {
		a.printRecords(ids[before:])
	}
	return nil
}

// Query replaces the library filter and loads its first page.
func (a *App) Query(ctx context.Context, args []string) error {
	q, err := parseQuery(args)
	if err != nil {
		return err
	}

	a.actions.SetQuery(a.siteID, q)
	a.saveQuery(ctx, q)
	return a.List(ctx)
}

func (a *App) Get(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: get <id>...", ErrUsage)
	}

	chs := make([]<-chan struct{}, 0, len(args))
	for _, id := range args {
		chs = append(chs, a.actions.FetchItem(ctx, a.siteID, id))
	}
	for _, ch := range chs {
		if err := wait(ctx, ch); err != nil {
			return err
		}
	}
	return nil
}

// Upload sends local files or URLs, attached to the active parent post.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: upload <path|url>...", ErrUsage)
	}

	files := make([]models.UploadFile, 0, len(args))
	for _, src := range args {
		f, err := openSource(src)
		if err != nil {
			return err
		}
		files = append(files, f)
	}

	return wait(ctx, a.actions.Upload(ctx, a.siteID, files...))
}

func (a *App) Title(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: title <id> <text>", ErrUsage)
	}
	title := strings.Join(args[1:], " ")
	return wait(ctx, a.actions.Update(ctx, a.siteID, models.MediaUpdate{ID: args[0], Title: &title}, false))
}

func (a *App) Describe(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: describe <id> <text>", ErrUsage)
	}
	text := strings.Join(args[1:], " ")
	return wait(ctx, a.actions.Update(ctx, a.siteID, models.MediaUpdate{ID: args[0], Description: &text}, false))
}

// Replace swaps the attached file of an item.
func (a *App) Replace(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: replace <id> <path|url>", ErrUsage)
	}

	update := models.MediaUpdate{ID: args[0]}
	if isRemote(args[1]) {
		update.MediaURL = args[1]
	} else {
		f, err := models.OpenLocalFile(args[1])
		if err != nil {
			return err
		}
		update.Media = &f
	}

	return wait(ctx, a.actions.Update(ctx, a.siteID, update, true))
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: delete <id>...", ErrUsage)
	}
	return wait(ctx, a.actions.DeleteAll(ctx, a.siteID, a.lookup(args)))
}

// Select replaces the selection; without arguments it prints it.
func (a *App) Select(_ context.Context, args []string) error {
	if len(args) > 0 {
		a.actions.SetLibrarySelectedItems(a.siteID, a.lookup(args))
	}

	sel := a.selection.Selected(a.siteID)
	if len(sel) == 0 {
		fmt.Fprintln(a.out, "Nothing selected.")
		return nil
	}
	for _, rec := range sel {
		fmt.Fprintln(a.out, formatRecord(rec))
	}
	return nil
}

// Errors prints the validation errors of the site.
func (a *App) Errors(context.Context) error {
	all := a.validation.All(a.siteID)
	if len(all) == 0 {
		fmt.Fprintln(a.out, "No errors.")
		return nil
	}
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(a.out, "%s: %v\n", id, all[id])
	}
	return nil
}

// Clear drops validation errors: all of them, those of an error type, or
// those of the given items.
func (a *App) Clear(_ context.Context, args []string) error {
	if len(args) == 0 {
		a.actions.ClearValidationErrors(a.siteID, "")
		return nil
	}
	for _, arg := range args {
		switch t := models.ValidationErrorType(arg); t {
		case models.ValidationErrorUnsupportedType, models.ValidationErrorTooLarge, models.ValidationErrorUploadFailed:
			a.actions.ClearValidationErrorsByType(a.siteID, t)
		default:
			a.actions.ClearValidationErrors(a.siteID, arg)
		}
	}
	return nil
}

// Parent sets the post new uploads are attached to. "none" clears it.
func (a *App) Parent(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: parent <post id>|none", ErrUsage)
	}

	var id int64
	if args[0] != "none" {
		v, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || v <= 0 {
			return fmt.Errorf("%w: parent <post id>|none", ErrUsage)
		}
		id = v
	}

	a.session.SetActiveParent(id)
	a.saveParent(ctx, id)
	return nil
}

// lookup resolves IDs against the store; unknown IDs become bare records.
func (a *App) lookup(ids []string) []models.MediaRecord {
	out := make([]models.MediaRecord, 0, len(ids))
	for _, id := range ids {
		rec, ok := a.records.Get(a.siteID, id)
		if !ok {
			rec = models.MediaRecord{ID: id}
		}
		out = append(out, rec)
	}
	return out
}
