package submit

import (
	"bytes"
	"encoding/json"
)

// Result is the tagged outcome of one submission attempt. Succeeded results
// carry the server's response body; failed ones carry an {"error": "..."}
// object describing what went wrong.
type Result struct {
	ID         string
	Succeeded  bool
	Payload    json.RawMessage
	StatusCode int
	Err        error
}

// Success builds a successful result around a JSON document.
func Success(id string, status int, payload json.RawMessage) Result {
	return Result{
		ID:         id,
		Succeeded:  true,
		Payload:    payload,
		StatusCode: status,
	}
}

// Failure builds a failed result describing err.
func Failure(id string, err error) Result {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	body, _ := json.Marshal(failureBody{Error: msg})
	return Result{
		ID:      id,
		Payload: body,
		Err:     err,
	}
}

type failureBody struct {
	Error string `json:"error"`
}

// Pretty renders the payload with two-space indentation. Key order is kept as
// received.
func (r Result) Pretty() string {
	if len(r.Payload) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.Payload, "", "  "); err != nil {
		return string(r.Payload)
	}
	return buf.String()
}
