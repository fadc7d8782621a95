package submit

import (
	"bytes"
	"encoding/json"
)

// Field is one validated name/value pair in an outgoing submission.
type Field struct {
	Name  string
	Value string
}

// Payload is the ordered set of validated values sent to the endpoint. It
// encodes as a JSON object whose keys follow the rule table order.
type Payload []Field

// Add appends a field, replacing an earlier value under the same name.
func (p *Payload) Add(name, value string) {
	for i := range *p {
		if (*p)[i].Name == name {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, Field{Name: name, Value: value})
}

// Get returns the value stored under name.
func (p Payload) Get(name string) (string, bool) {
	for _, f := range p {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Names lists field names in order.
func (p Payload) Names() []string {
	out := make([]string, len(p))
	for i, f := range p {
		out[i] = f.Name
	}
	return out
}

// Map returns an unordered copy of the payload.
func (p Payload) Map() map[string]string {
	out := make(map[string]string, len(p))
	for _, f := range p {
		out[f.Name] = f.Value
	}
	return out
}

// MarshalJSON encodes the payload as an object preserving field order.
func (p Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
