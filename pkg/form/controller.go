package form

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-regform/pkg/rules"
	"github.com/goliatone/go-regform/pkg/surface"
)

// ErrUnknownField is returned for events targeting a field outside the rule
// table.
var ErrUnknownField = errors.New("form: unknown field")

// EventKind enumerates the input lifecycle events the controller reacts to.
type EventKind string

const (
	EventFocus EventKind = "focus"
	EventBlur  EventKind = "blur"
	EventInput EventKind = "input"
)

// Event is a single UI event aimed at a field.
type Event struct {
	Kind  EventKind
	Field string
}

// Surface is the slice of the page the controller needs.
type Surface interface {
	surface.ValueReader
	surface.ErrorWriter
	surface.TitleWriter
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger routes controller diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTitleField selects the field mirrored into the heading.
func WithTitleField(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.title.Field = id
		}
	}
}

// WithGreeting overrides the heading greeting.
func WithGreeting(greeting string) Option {
	return func(c *Controller) {
		if greeting != "" {
			c.title.Greeting = greeting
		}
	}
}

// Controller binds the focus, blur and input lifecycle of every field in the
// rule table to the page. Handlers are synchronous and never touch the network
// or storage.
type Controller struct {
	table  rules.Table
	ui     Surface
	title  TitleReactor
	logger *zap.Logger
}

// NewController attaches the rule table to ui.
func NewController(table rules.Table, ui Surface, options ...Option) (*Controller, error) {
	if ui == nil {
		return nil, errors.New("form: surface is required")
	}
	if table.Len() == 0 {
		return nil, errors.New("form: rule table is empty")
	}

	c := &Controller{
		table: table,
		ui:    ui,
		title: TitleReactor{
			Field:    rules.FieldFullName,
			Greeting: DefaultGreeting,
			Target:   ui,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Init writes the heading for the tracked field's current value.
func (c *Controller) Init() {
	c.title.Update(c.ui.Value(c.title.Field))
}

// Table returns the rule table the controller validates against.
func (c *Controller) Table() rules.Table {
	return c.table
}

// TitleField reports the identifier mirrored into the heading.
func (c *Controller) TitleField() string {
	return c.title.Field
}

// Handle dispatches ev to the matching handler.
func (c *Controller) Handle(ev Event) error {
	switch ev.Kind {
	case EventFocus:
		return c.Focus(ev.Field)
	case EventBlur:
		_, err := c.Blur(ev.Field)
		return err
	case EventInput:
		return c.Input(ev.Field)
	default:
		return fmt.Errorf("form: unsupported event %q", ev.Kind)
	}
}

// Focus clears the field's error text.
func (c *Controller) Focus(id string) error {
	if !c.table.Has(id) {
		return fmt.Errorf("%w: %s", ErrUnknownField, id)
	}
	c.ui.SetErrorText(id, "")
	return nil
}

// Blur validates the field's current value and shows or clears its message.
func (c *Controller) Blur(id string) (bool, error) {
	spec, ok := c.table.Lookup(id)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownField, id)
	}

	valid := spec.Check(c.ui.Value(id), c.ui)
	if valid {
		c.ui.SetErrorText(id, "")
		return true, nil
	}

	c.logger.Debug("field failed validation", zap.String("field", id))
	c.ui.SetErrorText(id, spec.ErrorMessage)
	return false, nil
}

// Input reacts to a value change. Only the tracked title field has a side
// effect; the heading is recomputed from its current value.
func (c *Controller) Input(id string) error {
	if id == c.title.Field {
		c.title.Update(c.ui.Value(id))
		return nil
	}
	if !c.table.Has(id) {
		return fmt.Errorf("%w: %s", ErrUnknownField, id)
	}
	return nil
}
