// Package result shows the outcome of a submission in the page modal and
// keeps the last successful response in storage.
package result

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-regform/pkg/storage"
	"github.com/goliatone/go-regform/pkg/submit"
	"github.com/goliatone/go-regform/pkg/surface"
)

// Modal copy.
const (
	SuccessHeading = "Suscripción Exitosa"
	SuccessCopy    = "¡Gracias por suscribirte! Los datos recibidos son:"
	FailureHeading = "Error en la Suscripción"
	FailureCopy    = "Ha ocurrido un error al procesar tu suscripción. Detalles:"
)

// Option configures a Presenter.
type Option func(*Presenter)

// WithStore sets where successful responses are persisted.
func WithStore(store storage.Store) Option {
	return func(p *Presenter) {
		if store != nil {
			p.store = store
		}
	}
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(p *Presenter) {
		if key != "" {
			p.key = key
		}
	}
}

// WithLogger routes persistence diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Presenter) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Presenter renders submission results. There is a single modal; presenting
// again replaces its content.
type Presenter struct {
	view   surface.ModalView
	store  storage.Store
	key    string
	logger *zap.Logger

	mu      sync.Mutex
	current surface.Modal
	last    submit.Result
	shown   bool
}

// NewPresenter binds the presenter to a modal view.
func NewPresenter(view surface.ModalView, options ...Option) (*Presenter, error) {
	if view == nil {
		return nil, errors.New("result: modal view is required")
	}
	p := &Presenter{view: view}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	if p.store == nil {
		p.store = storage.NewMemory()
	}
	if p.key == "" {
		p.key = storage.DefaultKey
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	return p, nil
}

// Build returns the modal content for res without displaying it.
func Build(res submit.Result) surface.Modal {
	modal := surface.Modal{
		Succeeded: res.Succeeded,
		Heading:   FailureHeading,
		Copy:      FailureCopy,
		Body:      res.Pretty(),
	}
	if res.Succeeded {
		modal.Heading = SuccessHeading
		modal.Copy = SuccessCopy
	}
	return modal
}

// Present displays res and, when it succeeded, overwrites the stored
// snapshot with its payload. A storage error is logged and returned; the
// modal is shown either way.
func (p *Presenter) Present(ctx context.Context, res submit.Result) error {
	modal := Build(res)

	p.mu.Lock()
	p.current = modal
	p.last = res
	p.shown = true
	p.view.ShowModal(modal)
	p.mu.Unlock()

	if !res.Succeeded {
		return nil
	}
	if err := p.store.Put(ctx, p.key, res.Payload); err != nil {
		p.logger.Warn("persist submission result",
			zap.String("submission", res.ID),
			zap.String("key", p.key),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Dismiss hides the modal. Content is kept.
func (p *Presenter) Dismiss() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.view.HideModal()
}

// Click handles a click whose target is the element with id target. Only a
// click landing on the backdrop itself, or on the close control, dismisses.
func (p *Presenter) Click(target string) bool {
	switch target {
	case surface.ModalID, surface.ModalCloseID:
		p.Dismiss()
		return true
	default:
		return false
	}
}

// Modal returns the last presented content and the result it came from.
func (p *Presenter) Modal() (surface.Modal, submit.Result, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.last, p.shown
}

// Key reports the storage slot used for successful results.
func (p *Presenter) Key() string {
	return p.key
}

// Store exposes the snapshot store.
func (p *Presenter) Store() storage.Store {
	return p.store
}
