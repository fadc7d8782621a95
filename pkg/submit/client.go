package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultEndpoint receives submissions when no endpoint is configured.
const DefaultEndpoint = "https://jsonplaceholder.typicode.com/users"

var (
	// ErrEmptyBody is reported when the endpoint answers without a body.
	ErrEmptyBody = errors.New("submit: empty response body")
	// ErrInvalidJSON is reported when the response body is not JSON.
	ErrInvalidJSON = errors.New("submit: response is not valid JSON")
)

// Sender performs one submission round-trip.
type Sender interface {
	Send(ctx context.Context, payload Payload) Result
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the target URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(endpoint); trimmed != "" {
			c.endpoint = trimmed
		}
	}
}

// WithHTTPClient swaps the transport. The client's own timeout, if any, is
// honoured; the default client has none.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithLogger routes transport diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithIDGenerator replaces the submission id source.
func WithIDGenerator(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// Client posts validated payloads as JSON. It never retries; each Send is a
// single attempt.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *zap.Logger
	newID    func() string
}

var _ Sender = (*Client)(nil)

// NewClient constructs a Client targeting DefaultEndpoint unless overridden.
func NewClient(options ...Option) *Client {
	c := &Client{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	c.applyDefaults()
	return c
}

func (c *Client) applyDefaults() {
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
}

// Endpoint reports the URL submissions are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts payload and classifies the outcome. Any response whose body
// decodes as JSON is a success, whatever its status code. Transport and
// decode failures produce a failure result and are logged.
func (c *Client) Send(ctx context.Context, payload Payload) Result {
	id := c.newID()
	logger := c.logger.With(zap.String("submission", id), zap.String("endpoint", c.endpoint))

	status, body, err := c.post(ctx, payload)
	if err != nil {
		logger.Error("submission failed", zap.Error(err))
		return Failure(id, err)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, body); err != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		logger.Error("submission failed", zap.Int("status", status), zap.Error(err))
		return Failure(id, err)
	}

	logger.Debug("submission completed", zap.Int("status", status))
	return Success(id, status, json.RawMessage(compact.Bytes()))
}

func (c *Client) post(ctx context.Context, payload Payload) (int, []byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("submit: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(encoded))
	if err != nil {
		return 0, nil, fmt.Errorf("submit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("submit: request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("submit: read response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return resp.StatusCode, nil, ErrEmptyBody
	}
	return resp.StatusCode, data, nil
}
