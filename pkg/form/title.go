package form

import (
	"strings"

	"github.com/goliatone/go-regform/pkg/rules"
	"github.com/goliatone/go-regform/pkg/surface"
)

// DefaultGreeting prefixes the heading derived from the tracked field.
const DefaultGreeting = "HOLA"

// Title derives the heading for value using DefaultGreeting.
func Title(value string) string {
	return TitleWith(DefaultGreeting, value)
}

// TitleWith derives the heading: the greeting alone when the trimmed value is
// empty, otherwise the greeting, a space and the trimmed value.
func TitleWith(greeting, value string) string {
	trimmed := strings.TrimFunc(value, rules.IsSpace)
	if trimmed == "" {
		return greeting
	}
	return greeting + " " + trimmed
}

// TitleReactor mirrors one field's live value into the page heading. It keeps
// no memory of earlier values.
type TitleReactor struct {
	Field    string
	Greeting string
	Target   surface.TitleWriter
}

// Update recomputes the heading from value and writes it to the target.
func (r TitleReactor) Update(value string) string {
	greeting := r.Greeting
	if greeting == "" {
		greeting = DefaultGreeting
	}
	title := TitleWith(greeting, value)
	if r.Target != nil {
		r.Target.SetTitleText(title)
	}
	return title
}
