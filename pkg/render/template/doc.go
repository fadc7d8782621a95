// Package template defines the renderer-agnostic template seam used by the
// page renderers. The gotemplate subpackage provides the pongo2 engine.
package template
