package rules

// Field identifiers used by the registration form. The order of Default()
// follows the declaration order here.
const (
	FieldFullName        = "fullName"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldAge             = "age"
	FieldPhone           = "phone"
	FieldAddress         = "address"
	FieldCity            = "city"
	FieldPostalCode      = "postalCode"
	FieldDNI             = "dni"
)

const (
	ConstraintMin         = "min"
	ConstraintMinLength   = "minLength"
	ConstraintPattern     = "pattern"
	ConstraintFormat      = "format"
	ConstraintEqualsField = "equalsField"
)

// Constraint is a declarative hint describing (part of) a predicate. Numeric
// bounds and length limits encode their threshold in Params["value"]. Pattern
// constraints keep an ECMAScript expression in Params["pattern"] for browser
// and schema consumers; the predicates use their own compiled form. Format
// constraints use Params["format"] and equalsField names the other field in
// Params["field"].
type Constraint struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Lookup exposes live field values. Implementations must return the value as
// it is at call time; predicates never cache what they read.
type Lookup interface {
	Value(id string) string
}

// LookupFunc adapts a plain function to the Lookup interface.
type LookupFunc func(id string) string

// Value calls fn when non-nil.
func (fn LookupFunc) Value(id string) string {
	if fn == nil {
		return ""
	}
	return fn(id)
}

// Values is a static Lookup, handy for tests and headless submissions.
type Values map[string]string

// Value returns the stored value for id.
func (v Values) Value(id string) string {
	return v[id]
}

// Predicate reports whether value satisfies a rule. fields gives access to the
// other inputs of the form for relational rules.
type Predicate func(value string, fields Lookup) bool

// Pure lifts a single-value check into a Predicate.
func Pure(fn func(string) bool) Predicate {
	return func(value string, _ Lookup) bool {
		return fn(value)
	}
}

// FieldSpec pairs a field identifier with its predicate and the error message
// displayed when the predicate is false.
type FieldSpec struct {
	ID           string
	Predicate    Predicate
	ErrorMessage string
	Constraints  []Constraint
}

// Check evaluates the predicate against value. fields may be nil for rules
// that do not read other inputs.
func (s FieldSpec) Check(value string, fields Lookup) bool {
	if fields == nil {
		fields = Values(nil)
	}
	return s.Predicate(value, fields)
}

// Constraint returns the first constraint of the given kind.
func (s FieldSpec) Constraint(kind string) (Constraint, bool) {
	for _, c := range s.Constraints {
		if c.Kind == kind {
			return c, true
		}
	}
	return Constraint{}, false
}
