// Package client talks to the minimal-surface generation service. Two
// endpoint contracts exist: the JSON data endpoint used for client-side
// plotting and the legacy form endpoint that answers with a rendered page.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/recera/surfaceview/pkg/surface"
)

// Endpoint paths on the generation service.
const (
	DataPath   = "/generate_data"
	LegacyPath = "/generate"
)

// maxBody bounds how much of a response is read; grids at the slider's
// upper resolutions stay well below it.
const maxBody = 64 << 20

// Client issues generation requests against one service. Each call performs
// exactly one HTTP request and never retries.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the service rooted at endpoint. An empty endpoint
// resolves paths against the page origin, which only works from the browser.
func New(endpoint string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	c := &Client{
		base:   base,
		http:   http.DefaultClient,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL resolves a service path or a relative reference against the endpoint.
func (c *Client) URL(ref string) string {
	if strings.HasPrefix(ref, "/") {
		u := *c.base
		u.Path = strings.TrimSuffix(u.Path, "/") + ref
		return u.String()
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return c.base.ResolveReference(r).String()
}

type dataResponse struct {
	surface.Data
	Error *string `json:"error,omitempty"`
}

// GenerateData posts the JSON request and decodes the sampled surface. A
// response carrying an "error" field yields *ApplicationError; anything else
// that goes wrong yields *TransportError.
func (c *Client) GenerateData(ctx context.Context, req surface.GenerationRequest) (*surface.Data, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, transportErr("encode request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(DataPath), bytes.NewReader(body))
	if err != nil {
		return nil, transportErr("build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Printf("POST %s %s", DataPath, body)
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, transportErr("POST "+DataPath, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, transportErr("read response", err)
	}

	var payload dataResponse
	decodeErr := json.Unmarshal(raw, &payload)
	if decodeErr == nil && payload.Error != nil {
		return nil, &ApplicationError{Message: *payload.Error}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, transportErr("POST "+DataPath, fmt.Errorf("unexpected status %s", resp.Status))
	}
	if decodeErr != nil {
		return nil, transportErr("decode response", decodeErr)
	}
	if err := payload.Data.Validate(); err != nil {
		return nil, transportErr("decode response", err)
	}

	data := payload.Data
	c.logger.Printf("received %q (%d rows)", data.Title, data.Rows())
	return &data, nil
}

// GenerateImage posts the legacy form and returns the src of the first image
// in the returned page.
func (c *Client) GenerateImage(ctx context.Context, form url.Values) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(LegacyPath), strings.NewReader(form.Encode()))
	if err != nil {
		return "", transportErr("build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.logger.Printf("POST %s %s", LegacyPath, form.Encode())
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", transportErr("POST "+LegacyPath, err)
	}
	defer resp.Body.Close()

	src, err := FirstImageSrc(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", transportErr("parse page", err)
	}
	return c.URL(src), nil
}
