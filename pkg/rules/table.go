package rules

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyID is returned when a spec has no identifier.
	ErrEmptyID = errors.New("rules: field id is required")
	// ErrNilPredicate is returned when a spec has no predicate.
	ErrNilPredicate = errors.New("rules: predicate is required")
	// ErrDuplicateID is returned when two specs share an identifier.
	ErrDuplicateID = errors.New("rules: duplicate field id")
)

// Table is the ordered, immutable set of field specs. The zero value is an
// empty table.
type Table struct {
	specs []FieldSpec
	index map[string]int
}

// NewTable validates and freezes the supplied specs, preserving their order.
func NewTable(specs ...FieldSpec) (Table, error) {
	t := Table{
		specs: make([]FieldSpec, 0, len(specs)),
		index: make(map[string]int, len(specs)),
	}
	for _, spec := range specs {
		id := strings.TrimSpace(spec.ID)
		if id == "" {
			return Table{}, ErrEmptyID
		}
		if spec.Predicate == nil {
			return Table{}, fmt.Errorf("%w: %s", ErrNilPredicate, id)
		}
		if _, exists := t.index[id]; exists {
			return Table{}, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		spec.ID = id
		spec.Constraints = cloneConstraints(spec.Constraints)
		t.index[id] = len(t.specs)
		t.specs = append(t.specs, spec)
	}
	return t, nil
}

// MustNewTable panics when NewTable fails. Useful for init-time wiring.
func MustNewTable(specs ...FieldSpec) Table {
	t, err := NewTable(specs...)
	if err != nil {
		panic(err)
	}
	return t
}

// Len reports the number of specs.
func (t Table) Len() int {
	return len(t.specs)
}

// Specs returns a copy of the specs in table order.
func (t Table) Specs() []FieldSpec {
	out := make([]FieldSpec, len(t.specs))
	for i, spec := range t.specs {
		spec.Constraints = cloneConstraints(spec.Constraints)
		out[i] = spec
	}
	return out
}

// IDs returns the field identifiers in table order.
func (t Table) IDs() []string {
	out := make([]string, len(t.specs))
	for i, spec := range t.specs {
		out[i] = spec.ID
	}
	return out
}

// Lookup returns the spec registered for id.
func (t Table) Lookup(id string) (FieldSpec, bool) {
	idx, ok := t.index[id]
	if !ok {
		return FieldSpec{}, false
	}
	spec := t.specs[idx]
	spec.Constraints = cloneConstraints(spec.Constraints)
	return spec, true
}

// Has reports whether id is part of the table.
func (t Table) Has(id string) bool {
	_, ok := t.index[id]
	return ok
}

func cloneConstraints(src []Constraint) []Constraint {
	if len(src) == 0 {
		return nil
	}
	out := make([]Constraint, len(src))
	for i, c := range src {
		params := make(map[string]string, len(c.Params))
		for k, v := range c.Params {
			params[k] = v
		}
		out[i] = Constraint{Kind: c.Kind, Params: params}
	}
	return out
}
