package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/dmitrijs2005/gophmedia/internal/client/actions"
	"github.com/dmitrijs2005/gophmedia/internal/client/client"
	"github.com/dmitrijs2005/gophmedia/internal/client/config"
	"github.com/dmitrijs2005/gophmedia/internal/client/dispatcher"
	"github.com/dmitrijs2005/gophmedia/internal/client/repositories/media"
	"github.com/dmitrijs2005/gophmedia/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophmedia/internal/client/stores"
	"github.com/dmitrijs2005/gophmedia/internal/filex"
	"github.com/dmitrijs2005/gophmedia/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// pingTimeout bounds a single reachability probe.
const pingTimeout = 3 * time.Second

// stdinIsTerminal is a test seam for the API token prompt.
var stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

type App struct {
	config *config.Config
	siteID int64
	log    logging.Logger
	out    io.Writer

	bus        *dispatcher.Bus
	actions    *actions.Actions
	records    *stores.MediaStore
	pages      *stores.ListStore
	validation *stores.ValidationStore
	selection  *stores.SelectionStore
	session    *stores.EditSession
	state      metadata.Repository
	pinger     client.Pinger
	db         *sql.DB

	modeMu sync.RWMutex
	mode   Mode
}

// NewApp opens the local cache, builds the media client selected by
// c.Backend and wires the stores and actions around it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if c.SiteID == 0 {
		return nil, ErrNoSite
	}

	if _, err := filex.EnsureParentDir(c.DBPath); err != nil {
		return nil, fmt.Errorf("prepare cache dir: %w", err)
	}

	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	mc, err := newMediaClient(ctx, c, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := newApp(c, mc, media.NewSQLiteRepository(db), metadata.NewSQLiteRepository(db), log, os.Stdout)
	a.db = db

	if err := a.records.Load(ctx, a.siteID); err != nil {
		log.Warn(ctx, "failed to load cached media", "error", err)
	}
	a.restoreState(ctx)

	return a, nil
}

// newApp wires an App around an existing client and repositories.
func newApp(c *config.Config, mc client.MediaClient, repo media.Repository, state metadata.Repository, log logging.Logger, out io.Writer) *App {
	a := &App{
		config:     c,
		siteID:     c.SiteID,
		log:        log.With("component", "cli"),
		out:        out,
		bus:        dispatcher.NewBus(),
		records:    stores.NewMediaStore(repo, log),
		pages:      stores.NewListStore(c.PageSize),
		validation: stores.NewValidationStore(c.AllowedExtensions, c.MaxUploadSize),
		selection:  stores.NewSelectionStore(),
		session:    stores.NewEditSession(),
		state:      state,
	}

	// validation runs first so later subscribers see the errors of a new
	// placeholder
	a.bus.Register(a.validation.Handle)
	a.bus.Register(a.records.Handle)
	a.bus.Register(a.pages.Handle)
	a.bus.Register(a.selection.Handle)
	a.bus.Register(newEventPrinter(out, a.validation).Handle)

	a.actions = actions.New(a.bus, mc, actions.Stores{
		Records:    a.records,
		Pages:      a.pages,
		Validation: a.validation,
		Parent:     a.session,
	}, actions.WithLogger(log))

	if p, ok := mc.(client.Pinger); ok {
		a.pinger = p
	}
	return a
}

func newMediaClient(ctx context.Context, c *config.Config, log logging.Logger) (client.MediaClient, error) {
	switch c.Backend {
	case config.BackendREST:
		token := c.APIToken
		if token == "" && stdinIsTerminal() {
			t, err := GetPassword(os.Stdout, "Enter API token (empty for anonymous): ")
			if err != nil {
				return nil, fmt.Errorf("read token: %w", err)
			}
			token = string(t)
		}
		return client.NewRESTClient(client.RESTClientConfig{
			BaseURL: c.APIBaseURL,
			Timeout: c.RequestTimeout,
		}, client.NewStaticToken(token), log), nil

	case config.BackendS3:
		return client.NewS3Client(ctx, client.S3ClientConfig{
			Bucket:        c.S3Bucket,
			Region:        c.S3Region,
			BaseEndpoint:  c.S3BaseEndpoint,
			AccessKey:     c.S3AccessKey,
			SecretKey:     c.S3SecretKey,
			PresignExpiry: c.S3PresignExpiry,
			MaxDownload:   c.MaxUploadSize,
			Timeout:       c.RequestTimeout,
		}, log)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
}

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(context.Background(), "switched mode", "mode", mode)
	}
}

func (a *App) getStatus() string {
	s := fmt.Sprintf("site %d", a.siteID)
	if p := a.session.ActiveParentID(); p != 0 {
		s += fmt.Sprintf(" post %d", p)
	}
	if m := a.Mode(); m != "" {
		s += " " + string(m)
	}
	return "(" + s + ")"
}

// Run starts the connectivity watcher and the REPL, and blocks until the user
// exits. The cache is closed on return.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to gophmedia CLI (type 'help' for commands)")

	if a.pinger != nil {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(context.Background(), "failed to close cache", "error", err)
		}
	}
}

// StartOnlineStatusWatcher pings the backend every interval and flips the
// mode when reachability changes. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.pinger.Ping(ctx)
	cancel()

	if err != nil {
		a.log.Debug(ctx, "ping failed", "error", err)
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
