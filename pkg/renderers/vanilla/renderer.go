package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-regform/pkg/form"
	rendertemplate "github.com/goliatone/go-regform/pkg/render/template"
	gotemplate "github.com/goliatone/go-regform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-regform/pkg/rules"
	"github.com/goliatone/go-regform/pkg/surface"
)

const (
	defaultSubmitLabel = "Enviar"
	defaultCloseLabel  = "×"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       *string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must hold templates/page.tmpl and templates/modal.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir looks templates up in a directory on disk before the
// template bundle, so a directory holding only templates/page.tmpl overrides
// the page and keeps the bundled modal.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet replaces the inlined stylesheet. An empty string disables it.
func WithStylesheet(css string) Option {
	return func(cfg *config) {
		cfg.stylesheet = &css
	}
}

// Renderer produces the registration page and its result modal as HTML.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	stylesheet string
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithBaseDir(cfg.templateDir),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	stylesheet := defaultStylesheet()
	if cfg.stylesheet != nil {
		stylesheet = *cfg.stylesheet
	}
	return &Renderer{templates: renderer, stylesheet: stylesheet}, nil
}

// Page is the state a page is rendered from.
type Page struct {
	Title        string
	Endpoint     string
	Values       map[string]string
	Errors       map[string]string
	Modal        surface.Modal
	ModalVisible bool
}

// Snapshot captures the current state of an in-memory surface.
func Snapshot(m *surface.Memory, endpoint string) Page {
	modal, visible := m.Modal()
	return Page{
		Title:        m.Title(),
		Endpoint:     endpoint,
		Values:       m.Values(),
		Errors:       m.Errors(),
		Modal:        modal,
		ModalVisible: visible,
	}
}

// RenderPage renders the full document: heading, one input and error element
// per rule, the submit control and the (possibly hidden) modal.
func (r *Renderer) RenderPage(ctx context.Context, table rules.Table, page Page) ([]byte, error) {
	if err := r.ready(ctx); err != nil {
		return nil, err
	}

	modal, err := r.RenderModal(ctx, page.Modal, page.ModalVisible)
	if err != nil {
		return nil, err
	}

	title := page.Title
	if title == "" {
		title = form.DefaultGreeting
	}

	result, err := r.templates.RenderTemplate("templates/page.tmpl", map[string]any{
		"title":        title,
		"endpoint":     page.Endpoint,
		"stylesheet":   r.stylesheet,
		"fields":       fieldViews(table, page),
		"ids":          pageIDs(),
		"submit_label": defaultSubmitLabel,
		"modal":        string(modal),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render page: %w", err)
	}
	return []byte(result), nil
}

// RenderModal renders the result overlay fragment. The output is sanitised
// since its body echoes server data.
func (r *Renderer) RenderModal(ctx context.Context, modal surface.Modal, visible bool) ([]byte, error) {
	if err := r.ready(ctx); err != nil {
		return nil, err
	}
	result, err := r.templates.RenderTemplate("templates/modal.tmpl", map[string]any{
		"ids":         pageIDs(),
		"visible":     visible,
		"close_label": defaultCloseLabel,
		"modal": map[string]any{
			"succeeded": modal.Succeeded,
			"heading":   modal.Heading,
			"copy":      modal.Copy,
			"body":      modal.Body,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render modal: %w", err)
	}
	return []byte(sanitizeModal(result)), nil
}

func (r *Renderer) ready(ctx context.Context) error {
	if r == nil || r.templates == nil {
		return fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

func pageIDs() map[string]any {
	return map[string]any{
		"form":    surface.FormID,
		"title":   surface.TitleID,
		"submit":  surface.SubmitButtonID,
		"modal":   surface.ModalID,
		"message": surface.ModalMessageID,
		"close":   surface.ModalCloseID,
	}
}

func fieldViews(table rules.Table, page Page) []any {
	specs := table.Specs()
	out := make([]any, 0, len(specs))
	for _, spec := range specs {
		meta := surface.Describe(spec.ID)
		value := page.Values[spec.ID]
		if meta.Sensitive() {
			value = ""
		}
		out = append(out, map[string]any{
			"id":          spec.ID,
			"label":       meta.Label,
			"input_type":  meta.InputType,
			"placeholder": meta.Placeholder,
			"value":       value,
			"error":       page.Errors[spec.ID],
			"rules":       ruleAttributes(spec.Constraints),
		})
	}
	return out
}

// ruleAttributes turns constraints into data-rule-* attributes so client code
// can mirror the checks.
func ruleAttributes(constraints []rules.Constraint) []any {
	out := make([]any, 0, len(constraints))
	for _, c := range constraints {
		value := ""
		switch c.Kind {
		case rules.ConstraintMin, rules.ConstraintMinLength:
			value = c.Params["value"]
		case rules.ConstraintPattern:
			value = c.Params["pattern"]
		case rules.ConstraintFormat:
			value = c.Params["format"]
		case rules.ConstraintEqualsField:
			value = c.Params["field"]
		default:
			continue
		}
		out = append(out, map[string]any{
			"attr":  "data-rule-" + strings.ToLower(c.Kind),
			"value": value,
		})
	}
	return out
}
