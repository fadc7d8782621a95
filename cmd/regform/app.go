package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/goliatone/go-regform/internal/config"
	"github.com/goliatone/go-regform/internal/logging"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/result"
	"github.com/goliatone/go-regform/pkg/storage"
	"github.com/goliatone/go-regform/pkg/submit"
	"github.com/goliatone/go-regform/pkg/surface"
)

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	endpoint   string
	verbose    bool

	cfg      config.Config
	logger   *zap.Logger
	closeLog func() error

	httpClient *http.Client
	isTerminal func() bool
}

func newApp() *app {
	return &app{
		cfg:      config.Default(),
		logger:   zap.NewNop(),
		closeLog: func() error { return nil },
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.endpoint != "" {
		cfg.Endpoint = a.endpoint
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	logger, closeLog, err := logging.New(cfg.Log, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger
	a.closeLog = closeLog
	return nil
}

func (a *app) teardown() error {
	_ = a.logger.Sync()
	return a.closeLog()
}

func (a *app) openStore(ctx context.Context) (storage.Store, error) {
	store, err := storage.Open(ctx, a.cfg.Storage.Driver, a.cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", a.cfg.Storage.Driver, err)
	}
	return store, nil
}

// session wires a form session to ui: the configured endpoint, the snapshot
// store and the heading settings.
func (a *app) session(ui surface.Surface, store storage.Store) (*orchestrator.Orchestrator, error) {
	presenter, err := result.NewPresenter(ui,
		result.WithStore(store),
		result.WithKey(a.cfg.Storage.Key),
		result.WithLogger(a.logger),
	)
	if err != nil {
		return nil, err
	}
	client := submit.NewClient(
		submit.WithEndpoint(a.cfg.Endpoint),
		submit.WithHTTPClient(a.httpClient),
		submit.WithLogger(a.logger),
	)
	return orchestrator.New(ui,
		orchestrator.WithSender(client),
		orchestrator.WithPresenter(presenter),
		orchestrator.WithLogger(a.logger),
		orchestrator.WithFormOptions(
			form.WithTitleField(a.cfg.Title.Field),
			form.WithGreeting(a.cfg.Title.Greeting),
		),
	)
}
