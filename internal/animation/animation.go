// Package animation fetches the decorative breathing-circle animation shown
// next to a Deep Reset suggestion. Fetching is best effort: every failure
// collapses to "absent" and is only logged at debug level.
package animation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/blackwell-systems/mindpatch/internal/logger"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// MaxBytes caps the accepted payload size.
const MaxBytes = 2 << 20

// schema is the minimal shape of a Lottie document.
const schema = `{
  "type": "object",
  "required": ["layers"],
  "properties": {
    "v":      {"type": "string"},
    "fr":     {"type": "number", "exclusiveMinimum": 0},
    "w":      {"type": "number", "minimum": 0},
    "h":      {"type": "number", "minimum": 0},
    "layers": {"type": "array"}
  }
}`

const schemaURL = "https://mindpatch.local/schemas/animation.schema.json"

var (
	errStatus    = errors.New("unexpected status")
	errOversize  = errors.New("payload too large")
	errMalformed = errors.New("malformed animation")
)

// Animation is an opaque vector animation document.
type Animation struct {
	Source string          `json:"source"`
	Layers int             `json:"layers"`
	Data   json.RawMessage `json:"data"`
}

// Fetcher yields the animation if it can be obtained.
type Fetcher interface {
	Fetch(ctx context.Context) (Animation, bool)
}

// Disabled never yields an animation.
type Disabled struct{}

// Fetch implements Fetcher.
func (Disabled) Fetch(context.Context) (Animation, bool) { return Animation{}, false }

// HTTPFetcher performs a single GET against a fixed URL.
type HTTPFetcher struct {
	url     string
	client  *http.Client
	timeout time.Duration
	schema  *jsonschema.Schema
}

// NewHTTPFetcher builds a fetcher for url. A nil client uses a default one.
func NewHTTPFetcher(url string, timeout time.Duration, client *http.Client) (*HTTPFetcher, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, strings.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("animation schema load failed: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("animation schema compile failed: %w", err)
	}
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &HTTPFetcher{url: url, client: client, timeout: timeout, schema: compiled}, nil
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context) (Animation, bool) {
	a, err := f.fetch(ctx)
	if err != nil {
		logger.Debug("animation unavailable", "url", f.url, "err", err)
		return Animation{}, false
	}
	return a, true
}

func (f *HTTPFetcher) fetch(ctx context.Context) (Animation, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return Animation{}, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return Animation{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Animation{}, fmt.Errorf("%w: %d", errStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBytes+1))
	if err != nil {
		return Animation{}, err
	}
	if len(body) > MaxBytes {
		return Animation{}, errOversize
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return Animation{}, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if err := f.schema.Validate(doc); err != nil {
		return Animation{}, fmt.Errorf("%w: %v", errMalformed, err)
	}

	layers := doc.(map[string]any)["layers"].([]any)
	return Animation{Source: f.url, Layers: len(layers), Data: body}, nil
}
