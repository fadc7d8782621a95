package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/result"
	"github.com/goliatone/go-regform/pkg/rules"
	"github.com/goliatone/go-regform/pkg/submit"
	"github.com/goliatone/go-regform/pkg/surface"
)

// Presenter displays submission outcomes and handles modal clicks.
type Presenter interface {
	Present(ctx context.Context, res submit.Result) error
	Click(target string) bool
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRules replaces the default registration rule table.
func WithRules(table rules.Table) Option {
	return func(o *Orchestrator) {
		if table.Len() > 0 {
			o.table = table
		}
	}
}

// WithSender injects the submission client.
func WithSender(sender submit.Sender) Option {
	return func(o *Orchestrator) {
		if sender != nil {
			o.sender = sender
		}
	}
}

// WithPresenter injects the result presenter.
func WithPresenter(presenter Presenter) Option {
	return func(o *Orchestrator) {
		if presenter != nil {
			o.presenter = presenter
		}
	}
}

// WithLogger routes session diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithFormOptions forwards options to the field controller.
func WithFormOptions(options ...form.Option) Option {
	return func(o *Orchestrator) {
		o.formOptions = append(o.formOptions, options...)
	}
}

// Orchestrator coordinates one form session. Missing collaborators are
// initialised with the built-in implementations so callers can start with a
// single constructor call.
type Orchestrator struct {
	ui          surface.Surface
	table       rules.Table
	sender      submit.Sender
	presenter   Presenter
	logger      *zap.Logger
	formOptions []form.Option
	controller  *form.Controller

	lifecycle context.Context
	cancel    context.CancelFunc

	mu       sync.Mutex
	closed   bool
	inflight sync.WaitGroup
}

// New attaches a session to ui. It writes the initial heading.
func New(ui surface.Surface, options ...Option) (*Orchestrator, error) {
	if ui == nil {
		return nil, errors.New("orchestrator: surface is required")
	}
	o := &Orchestrator{ui: ui}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if err := o.applyDefaults(); err != nil {
		return nil, err
	}
	o.controller.Init()
	return o, nil
}

func (o *Orchestrator) applyDefaults() error {
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.table.Len() == 0 {
		o.table = rules.Default()
	}
	if o.sender == nil {
		o.sender = submit.NewClient(submit.WithLogger(o.logger))
	}
	if o.presenter == nil {
		presenter, err := result.NewPresenter(o.ui, result.WithLogger(o.logger))
		if err != nil {
			return fmt.Errorf("orchestrator: default presenter: %w", err)
		}
		o.presenter = presenter
	}

	options := append([]form.Option{form.WithLogger(o.logger)}, o.formOptions...)
	controller, err := form.NewController(o.table, o.ui, options...)
	if err != nil {
		return fmt.Errorf("orchestrator: field controller: %w", err)
	}
	o.controller = controller
	o.lifecycle, o.cancel = context.WithCancel(context.Background())
	return nil
}

// Controller exposes the field controller bound to the surface.
func (o *Orchestrator) Controller() *form.Controller {
	return o.controller
}

// Rules returns the table fields are validated against.
func (o *Orchestrator) Rules() rules.Table {
	return o.table
}

// Handle forwards a field event to the controller.
func (o *Orchestrator) Handle(ev form.Event) error {
	return o.controller.Handle(ev)
}

// FormState is the snapshot taken by one submit attempt.
type FormState struct {
	Values  submit.Payload
	Invalid []string
	Valid   bool
}

// Validate re-checks every field in table order, showing or clearing messages
// as it goes. Only passing values are collected.
func (o *Orchestrator) Validate() FormState {
	state := FormState{Valid: true}
	for _, spec := range o.table.Specs() {
		value := o.ui.Value(spec.ID)
		if !spec.Check(value, o.ui) {
			o.ui.SetErrorText(spec.ID, spec.ErrorMessage)
			state.Invalid = append(state.Invalid, spec.ID)
			state.Valid = false
			continue
		}
		state.Values.Add(spec.ID, value)
	}
	return state
}

// Submit validates the form and, when every field passes, dispatches one
// submission in the background. An invalid form shows a single notification
// and returns an *InvalidError. Concurrent calls are not de-duplicated.
func (o *Orchestrator) Submit(ctx context.Context) (*Pending, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	state := o.Validate()
	if !state.Valid {
		o.logger.Debug("submit blocked", zap.Strings("invalid", state.Invalid))
		o.ui.Alert(InvalidFormMessage)
		return nil, &InvalidError{Fields: state.Invalid}
	}

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil, ErrClosed
	}
	o.inflight.Add(1)
	o.mu.Unlock()

	pending := newPending(state.Values)
	go o.dispatch(pending)
	return pending, nil
}

func (o *Orchestrator) dispatch(p *Pending) {
	defer o.inflight.Done()

	res := o.sender.Send(o.lifecycle, p.values)
	// presenting completes even when teardown raced the response
	if err := o.presenter.Present(context.WithoutCancel(o.lifecycle), res); err != nil {
		o.logger.Warn("present submission result", zap.String("submission", res.ID), zap.Error(err))
	}
	p.finish(res)
}

// Click routes a click on the element with id target: the submit control
// starts a submission, modal elements go to the presenter.
func (o *Orchestrator) Click(ctx context.Context, target string) (*Pending, error) {
	if target == surface.SubmitButtonID {
		return o.Submit(ctx)
	}
	o.presenter.Click(target)
	return nil, nil
}

// Wait blocks until every dispatched submission has been presented.
func (o *Orchestrator) Wait() {
	o.inflight.Wait()
}

// Close tears the session down: further submits fail, in-flight requests are
// cancelled and Close returns once they have been presented.
func (o *Orchestrator) Close() error {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()

	o.cancel()
	o.inflight.Wait()
	return nil
}
