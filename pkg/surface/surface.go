// Package surface abstracts the page the form lives on. Components depend on
// the narrow capability interfaces below instead of a document object, so the
// same validation and submission flow runs against a terminal session, a
// rendered page or an in-memory test double.
package surface

// Element identifiers of the page contract. Every field input uses its rule
// table identifier and has a companion error element named by ErrorID.
const (
	FormID         = "registrationForm"
	SubmitButtonID = "submitButton"
	TitleID        = "formTitle"
	ModalID        = "myModal"
	ModalMessageID = "modalMessage"
	ModalCloseID   = "modalClose"
)

// ErrorID returns the identifier of the error element paired with field.
func ErrorID(field string) string {
	return field + "Error"
}

// ValueReader reads the current raw value of an input.
type ValueReader interface {
	Value(id string) string
}

// ErrorWriter sets (or clears, with an empty string) the inline error text of
// a field.
type ErrorWriter interface {
	SetErrorText(id, text string)
}

// TitleWriter replaces the heading text.
type TitleWriter interface {
	SetTitleText(text string)
}

// Notifier shows a blocking, page-level notification.
type Notifier interface {
	Alert(message string)
}

// Modal is the content of the result overlay.
type Modal struct {
	Succeeded bool   `json:"succeeded"`
	Heading   string `json:"heading"`
	Copy      string `json:"copy"`
	Body      string `json:"body"`
}

// ModalView shows and hides the result overlay. ShowModal replaces whatever
// content is currently displayed.
type ModalView interface {
	ShowModal(m Modal)
	HideModal()
}

// Surface bundles every capability the form needs.
type Surface interface {
	ValueReader
	ErrorWriter
	TitleWriter
	Notifier
	ModalView
}
