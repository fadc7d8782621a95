package orchestrator

import (
	"errors"
	"fmt"
	"strings"
)

// InvalidFormMessage is the blocking notification shown when a submit attempt
// finds invalid fields.
const InvalidFormMessage = "Hay errores en el formulario. Por favor, corrígelos e intenta de nuevo."

var (
	// ErrFormInvalid matches every *InvalidError.
	ErrFormInvalid = errors.New("orchestrator: form has invalid fields")
	// ErrClosed is returned by Submit after Close.
	ErrClosed = errors.New("orchestrator: session closed")
)

// InvalidError lists the fields that failed at submit time, in table order.
type InvalidError struct {
	Fields []string
}

func (e *InvalidError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrFormInvalid.Error()
	}
	return fmt.Sprintf("%s: %s", ErrFormInvalid.Error(), strings.Join(e.Fields, ", "))
}

// Is reports whether target is ErrFormInvalid.
func (e *InvalidError) Is(target error) bool {
	return target == ErrFormInvalid
}
