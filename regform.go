// Package regform is the entry point for embedding the registration form:
// build a session over any surface, render the page or publish the request
// contract without importing the individual packages.
package regform

import (
	"context"

	"github.com/goliatone/go-regform/pkg/contract"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/rules"
	"github.com/goliatone/go-regform/pkg/surface"
)

// Surface aliases the page abstraction sessions are bound to.
type Surface = surface.Surface

// Option aliases orchestrator.Option for callers configuring sessions.
type Option = orchestrator.Option

// ErrFormInvalid matches the error returned by a blocked submit.
var ErrFormInvalid = orchestrator.ErrFormInvalid

// Rules returns the registration rule table.
func Rules() rules.Table {
	return rules.Default()
}

// NewSession binds a form session to ui. Without options it posts to the
// default endpoint and keeps the last response in memory.
func NewSession(ui Surface, options ...Option) (*orchestrator.Orchestrator, error) {
	return orchestrator.New(ui, options...)
}

// RenderHTML renders the page for values with every field checked when
// validate is set.
func RenderHTML(ctx context.Context, values map[string]string, endpoint string, validate bool) ([]byte, error) {
	ui := surface.NewMemory(values)
	table := rules.Default()
	controller, err := form.NewController(table, ui)
	if err != nil {
		return nil, err
	}
	controller.Init()
	if validate {
		for _, id := range table.IDs() {
			if _, err := controller.Blur(id); err != nil {
				return nil, err
			}
		}
	}

	renderer, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	return renderer.RenderPage(ctx, table, vanilla.Snapshot(ui, endpoint))
}

// Contract builds the OpenAPI document describing the submission request.
func Contract(endpoint string, options ...contract.Option) (*contract.Contract, error) {
	return contract.Build(rules.Default(), endpoint, options...)
}
