// Package contract describes the submission endpoint as an OpenAPI 3 document
// derived from the rule table, so the backend side of the form can be checked
// against the same constraints the page enforces.
package contract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/rules"
	"github.com/goliatone/go-regform/pkg/submit"
)

const (
	// OperationID names the submission operation.
	OperationID = "submitRegistration"

	// MinLengthExtension carries minimum lengths counted in UTF-16 code
	// units, as the rules count them. CheckPayload enforces it; JSON Schema
	// minLength is not emitted since it counts code points.
	MinLengthExtension = "x-min-length-utf16"

	defaultTitle   = "Registration form submission"
	defaultVersion = "1.0.0"
)

// Option customises the generated document.
type Option func(*config)

type config struct {
	title   string
	version string
}

// WithTitle overrides the document title.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if title != "" {
			cfg.title = title
		}
	}
}

// WithVersion overrides the document version.
func WithVersion(version string) Option {
	return func(cfg *config) {
		if version != "" {
			cfg.version = version
		}
	}
}

// Contract wraps the generated document.
type Contract struct {
	doc        *openapi3.T
	path       string
	schema     *openapi3.Schema
	minLengths map[string]int64
}

// Build derives the document for posting table's fields to endpoint.
func Build(table rules.Table, endpoint string, options ...Option) (*Contract, error) {
	if table.Len() == 0 {
		return nil, errors.New("contract: rule table is empty")
	}
	cfg := config{title: defaultTitle, version: defaultVersion}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	server, path, err := splitEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	schema := requestSchema(table)
	op := openapi3.NewOperation()
	op.OperationID = OperationID
	op.Summary = "Submit a validated registration"
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithJSONSchema(schema),
	}
	anyObject := openapi3.NewObjectSchema()
	anyObject.AdditionalProperties = openapi3.AdditionalProperties{Has: boolPtr(true)}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusCreated, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Registration stored; the body is echoed to the user and persisted").
				WithJSONSchema(anyObject),
		}),
		openapi3.WithName("default", openapi3.NewResponse().
			WithDescription("Any other JSON response is displayed as received").
			WithJSONSchema(anyObject),
		),
	)

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   cfg.title,
			Version: cfg.version,
		},
		Paths: openapi3.NewPaths(),
	}
	if server != "" {
		doc.AddServer(&openapi3.Server{URL: server})
	}
	doc.AddOperation(path, http.MethodPost, op)

	return &Contract{doc: doc, path: path, schema: schema, minLengths: minLengths(table)}, nil
}

// Document returns the underlying OpenAPI document.
func (c *Contract) Document() *openapi3.T {
	return c.doc
}

// Path returns the operation path within the server.
func (c *Contract) Path() string {
	return c.path
}

// Validate checks the document against the OpenAPI specification.
func (c *Contract) Validate(ctx context.Context) error {
	if err := c.doc.Validate(ctx); err != nil {
		return fmt.Errorf("contract: invalid document: %w", err)
	}
	return nil
}

// CheckPayload validates an outgoing payload against the request schema.
func (c *Contract) CheckPayload(payload submit.Payload) error {
	values := make(map[string]any, len(payload))
	for _, f := range payload {
		values[f.Name] = f.Value
	}
	if err := c.schema.VisitJSON(values); err != nil {
		return fmt.Errorf("contract: payload rejected: %w", err)
	}
	for _, f := range payload {
		limit, ok := c.minLengths[f.Name]
		if ok && int64(rules.TextLength(f.Value)) < limit {
			return fmt.Errorf("contract: payload rejected: %s is shorter than %d characters", f.Name, limit)
		}
	}
	return nil
}

// JSON encodes the document with two-space indentation.
func (c *Contract) JSON() ([]byte, error) {
	raw, err := c.doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("contract: encode json: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("contract: encode json: %w", err)
	}
	return json.MarshalIndent(out, "", "  ")
}

// YAML encodes the document as YAML.
func (c *Contract) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c.doc)
	if err != nil {
		return nil, fmt.Errorf("contract: encode yaml: %w", err)
	}
	return out, nil
}

func requestSchema(table rules.Table) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Properties = make(openapi3.Schemas, table.Len())
	for _, spec := range table.Specs() {
		schema.Properties[spec.ID] = openapi3.NewSchemaRef("", fieldSchema(spec))
	}
	schema.Required = table.IDs()
	return schema
}

func minLengths(table rules.Table) map[string]int64 {
	out := make(map[string]int64)
	for _, spec := range table.Specs() {
		c, ok := spec.Constraint(rules.ConstraintMinLength)
		if !ok {
			continue
		}
		if n, err := strconv.ParseInt(c.Params["value"], 10, 64); err == nil {
			out[spec.ID] = n
		}
	}
	return out
}

func fieldSchema(spec rules.FieldSpec) *openapi3.Schema {
	s := openapi3.NewStringSchema()
	s.Description = spec.ErrorMessage
	for _, c := range spec.Constraints {
		switch c.Kind {
		case rules.ConstraintMinLength:
			if n, err := strconv.ParseInt(c.Params["value"], 10, 64); err == nil {
				extension(s, MinLengthExtension, n)
			}
		case rules.ConstraintPattern:
			s.WithPattern(c.Params["pattern"])
		case rules.ConstraintFormat:
			switch format := c.Params["format"]; format {
			case "email", "password":
				s.WithFormat(format)
			case "integer":
				// the value travels as text
				s.WithPattern(`^\s*[+-]?\d+\s*$`)
			}
		case rules.ConstraintMin:
			if n, err := strconv.ParseInt(c.Params["value"], 10, 64); err == nil {
				extension(s, "x-minimum", n)
			}
		case rules.ConstraintEqualsField:
			extension(s, "x-equals-field", c.Params["field"])
		}
	}
	return s
}

func extension(s *openapi3.Schema, key string, value any) {
	if s.Extensions == nil {
		s.Extensions = make(map[string]any)
	}
	s.Extensions[key] = value
}

func splitEndpoint(endpoint string) (string, string, error) {
	if endpoint == "" {
		endpoint = submit.DefaultEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", "", fmt.Errorf("contract: parse endpoint: %w", err)
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	server := ""
	if u.Scheme != "" && u.Host != "" {
		server = u.Scheme + "://" + u.Host
	}
	return server, path, nil
}

func boolPtr(v bool) *bool {
	return &v
}
