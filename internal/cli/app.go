package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophcloud/internal/backend"
	"github.com/dmitrijs2005/gophcloud/internal/blob"
	"github.com/dmitrijs2005/gophcloud/internal/config"
	"github.com/dmitrijs2005/gophcloud/internal/files"
	"github.com/dmitrijs2005/gophcloud/internal/localstore"
	"github.com/dmitrijs2005/gophcloud/internal/logging"
	"github.com/dmitrijs2005/gophcloud/internal/metrics"
	"github.com/dmitrijs2005/gophcloud/internal/models"
	"github.com/dmitrijs2005/gophcloud/internal/notify"
	"github.com/dmitrijs2005/gophcloud/internal/session"
	"github.com/dmitrijs2005/gophcloud/internal/thumbnail"
	"github.com/prometheus/client_golang/prometheus"
)

// sessionService is the part of the session store the CLI uses.
type sessionService interface {
	Login(ctx context.Context, email string, secret []byte) (models.Identity, error)
	Register(ctx context.Context, name, email string, secret []byte) (models.Identity, error)
	Logout(ctx context.Context)
	Current() *models.Identity
}

// fileService is the part of the file store the CLI uses.
type fileService interface {
	List() []models.MediaEntry
	Upload(ctx context.Context, file models.RawFile) (models.MediaEntry, error)
	Delete(ctx context.Context, id string) error
	Open(ctx context.Context, id string) (io.ReadCloser, error)
	InFlight() int
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	session  sessionService
	files    fileService
	notifier notify.Notifier
	gatherer prometheus.Gatherer
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp opens local storage, builds the stores and restores the saved
// session.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	var (
		db *sql.DB
		kv localstore.Store
	)

	if c.DatabasePath == ":memory:" {
		kv = localstore.NewMemoryStore()
	} else {
		var err error
		db, err = localstore.Open(ctx, c.DatabasePath, logger)
		if err != nil {
			logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
			return nil, err
		}
		kv = localstore.NewSQLiteStore(db)
	}

	provider, err := blob.NewProvider(ctx, c, logger)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("blob provider: %w", err)
	}

	decoder := thumbnail.NewFFmpegDecoder(c.FFmpegPath, c.FFprobePath)
	thumbs := thumbnail.New(decoder, c.ThumbnailAt, c.PlaceholderURL, logger)

	app := assemble(ctx, c, logger, kv, provider, thumbs, os.Stdin, os.Stdout)
	app.db = db
	return app, nil
}

// assemble wires the stores over the given storage and I/O.
func assemble(
	ctx context.Context,
	c *config.Config,
	logger logging.Logger,
	kv localstore.Store,
	provider blob.Provider,
	thumbs files.Deriver,
	in io.Reader,
	out io.Writer,
) *App {
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	notifier := notify.NewConsole(out)
	b := backend.NewMock(c.AuthLatency, c.UploadLatency)

	ss := session.NewStore(kv, b, notifier, logger, m)
	fs := files.NewStore(kv, b, provider, thumbs, notifier, logger, m)
	ss.Subscribe(fs.Reload)
	ss.Restore(ctx)

	return &App{
		config:   c,
		logger:   logger.With("module", "cli"),
		session:  ss,
		files:    fs,
		notifier: notifier,
		gatherer: registry,
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Run starts the REPL and blocks until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to gophcloud (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

// Close releases local storage.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.Current() != nil
}

func (a *App) status() string {
	if id := a.session.Current(); id != nil {
		return fmt.Sprintf("(%s)", id.Name)
	}
	return ""
}
