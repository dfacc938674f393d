package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/portal/internal/client/client"
	"github.com/dmitrijs2005/portal/internal/client/config"
	"github.com/dmitrijs2005/portal/internal/client/idempotency"
	"github.com/dmitrijs2005/portal/internal/client/output"
	"github.com/dmitrijs2005/portal/internal/client/services"
	"github.com/dmitrijs2005/portal/internal/client/session"
	"github.com/dmitrijs2005/portal/internal/client/store"
	"github.com/dmitrijs2005/portal/internal/filex"
	"github.com/dmitrijs2005/portal/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

const pingTimeout = 3 * time.Second

// credentialStore is the part of session.Session the REPL needs.
type credentialStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, value string) (string, error)
	Clear(ctx context.Context) error
	SetAt(ctx context.Context) (time.Time, bool, error)
	Present(ctx context.Context) bool
}

// submitter is implemented by services.Controller.
type submitter interface {
	SubmitPost(ctx context.Context, cmd services.PostCommand) services.Outcome
	CastVote(ctx context.Context, cmd services.VoteCommand) services.Outcome
}

type App struct {
	config  *config.Config
	db      *sql.DB
	session credentialStore
	api     client.Client
	writes  submitter
	printer *output.Printer
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer

	Mode  Mode
	state atomic.Int32
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogLevel, os.Stderr)

	if err := filex.EnsureParentDir(c.SessionDBPath); err != nil {
		return nil, err
	}

	db, err := store.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.SessionDBPath, "error", err)
		return nil, err
	}

	printer, err := output.New(os.Stdout, "")
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{
		config:  c,
		db:      db,
		session: session.New(db),
		api:     client.NewHTTPClient(c.ServerURL),
		printer: printer,
		log:     logger,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
	a.writes = services.NewController(a.api, a.session, idempotency.NewGenerator(),
		services.WithLogger(logger.With("component", "controller")),
		services.WithPageSize(c.PostsPageSize),
		services.WithObserver(a.observe),
	)
	return a, nil
}

// Run starts the REPL and releases resources when it returns.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to the portal CLI (type 'help' for commands)")
	a.refreshMode(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if a.api != nil {
		_ = a.api.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) observe(t services.Transition) {
	a.state.Store(int32(t.To))
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

func (a *App) refreshMode(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.api.Ping(pingCtx); err != nil {
		a.setMode(ctx, ModeOffline)
		return err
	}
	a.setMode(ctx, ModeOnline)
	return nil
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.session.Present(ctx)
}

// getStatus renders the prompt prefix: masked agent key, connectivity and
// the controller state when a write is in flight.
func (a *App) getStatus() string {
	s := ""
	if key, err := a.session.Get(context.Background()); err == nil && key != "" {
		s = session.Fingerprint(key)
	}
	if a.Mode != ModeUnknown {
		if s != "" {
			s += " "
		}
		s += string(a.Mode)
	}
	if st := services.State(a.state.Load()); st != services.StateIdle {
		s += " " + st.String()
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
