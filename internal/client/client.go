package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/study-dashboard/internal/observability"
)

const defaultMaxAttachmentBytes = 32 << 20

// Config configures the backend client.
type Config struct {
	BaseURL   string
	Token     string
	Timeout   time.Duration
	Transport http.RoundTripper
	// MaxAttachmentBytes caps downloaded attachments. Zero means 32 MiB.
	MaxAttachmentBytes int64
}

// Client issues JSON requests against the REST backend.
type Client struct {
	baseURL       string
	base          *url.URL
	token         string
	maxAttachment int64
	http          *http.Client
	tracer        trace.Tracer
	logger        zerolog.Logger
}

// Attachment is a file downloaded from the backend.
type Attachment struct {
	Data        []byte
	ContentType string
}

// New builds a backend client rooted at cfg.BaseURL.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid backend base url %q", cfg.BaseURL)
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	maxAttachment := cfg.MaxAttachmentBytes
	if maxAttachment <= 0 {
		maxAttachment = defaultMaxAttachmentBytes
	}

	return &Client{
		baseURL:       base,
		base:          parsed,
		token:         strings.TrimSpace(cfg.Token),
		maxAttachment: maxAttachment,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(transport),
		},
		tracer: otel.Tracer("github.com/noah-isme/study-dashboard/internal/client"),
		logger: logger.With().Str("component", "backend_client").Logger(),
	}, nil
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get fetches route and decodes the response into out.
func (c *Client) Get(ctx context.Context, route Route, out interface{}) error {
	return c.do(ctx, http.MethodGet, route, nil, out)
}

// Post sends body to route and decodes the response into out.
func (c *Client) Post(ctx context.Context, route Route, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, route, body, out)
}

// Put sends body to route and decodes the response into out.
func (c *Client) Put(ctx context.Context, route Route, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, route, body, out)
}

// Delete removes the resource at route and decodes the response into out.
func (c *Client) Delete(ctx context.Context, route Route, out interface{}) error {
	return c.do(ctx, http.MethodDelete, route, nil, out)
}

// ResolveFileURL turns a backend attachment link into an absolute URL.
// Absolute links are returned untouched; relative ones live under /files.
func (c *Client) ResolveFileURL(link string) string {
	link = strings.TrimSpace(link)
	if link == "" || strings.HasPrefix(link, "http") {
		return link
	}
	return c.baseURL + "/files" + link
}

// Fetch downloads the attachment behind link with the caller's credentials.
func (c *Client) Fetch(ctx context.Context, link string) (Attachment, error) {
	target := c.ResolveFileURL(link)
	const endpoint = "/files"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Attachment{}, &RequestError{Method: http.MethodGet, Endpoint: endpoint, Err: err}
	}
	c.decorate(ctx, req)
	req.Header.Del("Accept")

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(http.MethodGet, endpoint, 0, 0)
		return Attachment{}, &RequestError{Method: http.MethodGet, Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.observe(http.MethodGet, endpoint, resp.StatusCode, 0)
		return Attachment{}, &RequestError{Method: http.MethodGet, Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxAttachment+1))
	if err != nil {
		return Attachment{}, &RequestError{Method: http.MethodGet, Endpoint: endpoint, Err: err}
	}
	if int64(len(data)) > c.maxAttachment {
		c.observe(http.MethodGet, endpoint, resp.StatusCode, 0)
		return Attachment{}, &RequestError{
			Method:     http.MethodGet,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("attachment exceeds %d bytes", c.maxAttachment),
		}
	}
	c.observe(http.MethodGet, endpoint, resp.StatusCode, 0)

	return Attachment{Data: data, ContentType: resp.Header.Get("Content-Type")}, nil
}

func (c *Client) do(ctx context.Context, method string, route Route, body, out interface{}) error {
	if ctx == nil {
		ctx = context.Background()
	}

	spanCtx, span := c.tracer.Start(ctx, "backend."+strings.ToLower(method), trace.WithAttributes(
		attribute.String("backend.endpoint", route.Template),
	))
	defer span.End()

	fail := func(err *RequestError) error {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fail(&RequestError{Method: method, Endpoint: route.Template, Err: fmt.Errorf("encode request: %w", err)})
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(spanCtx, method, c.baseURL+route.Path, reader)
	if err != nil {
		return fail(&RequestError{Method: method, Endpoint: route.Template, Err: err})
	}
	c.decorate(ctx, req)

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.observe(method, route.Template, 0, elapsed)
		return fail(&RequestError{Method: method, Endpoint: route.Template, Err: err})
	}
	defer resp.Body.Close()

	c.observe(method, route.Template, resp.StatusCode, elapsed)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", route.Template).
		Int("status", resp.StatusCode).
		Dur("latency", elapsed).
		Msg("backend request completed")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fail(&RequestError{Method: method, Endpoint: route.Template, StatusCode: resp.StatusCode})
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(&RequestError{Method: method, Endpoint: route.Template, StatusCode: resp.StatusCode, Err: err})
	}

	if err := decodeBody(raw, out); err != nil {
		return fail(&RequestError{Method: method, Endpoint: route.Template, Err: fmt.Errorf("decode response: %w", err)})
	}

	return nil
}

// decorate sets the JSON headers and, for requests to the backend itself,
// the bearer token and correlation id.
func (c *Client) decorate(ctx context.Context, req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	if !c.ownsURL(req.URL) {
		return
	}

	token := TokenFromContext(ctx)
	if token == "" {
		token = c.token
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if id := correlationIDFromContext(ctx); id != "" {
		req.Header.Set("X-Correlation-ID", id)
	}
}

// ownsURL reports whether target lives under the backend base URL: same
// scheme and host, and a path equal to or below the base path.
func (c *Client) ownsURL(target *url.URL) bool {
	if target == nil || !strings.EqualFold(target.Scheme, c.base.Scheme) || !strings.EqualFold(target.Host, c.base.Host) {
		return false
	}

	basePath := strings.TrimRight(c.base.Path, "/")
	return target.Path == basePath || strings.HasPrefix(target.Path, basePath+"/")
}

func (c *Client) observe(method, endpoint string, status int, elapsed time.Duration) {
	observability.UpstreamRequests().WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	if elapsed > 0 {
		observability.UpstreamLatency().WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
	}
}

type wholeBody struct {
	target interface{}
}

// WholeBody makes the client decode the complete response body into target,
// skipping the {"data": ...} envelope lookup. Action endpoints answer with a
// top-level {success, message} document.
func WholeBody(target interface{}) interface{} {
	return wholeBody{target: target}
}

// decodeBody accepts both a bare JSON document and a {"data": ...} envelope.
func decodeBody(raw []byte, out interface{}) error {
	if out == nil {
		return nil
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	if whole, ok := out.(wholeBody); ok {
		return json.Unmarshal(trimmed, whole.target)
	}

	if trimmed[0] == '{' {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err == nil {
			data := bytes.TrimSpace(envelope.Data)
			if len(data) > 0 && !bytes.Equal(data, []byte("null")) {
				return json.Unmarshal(data, out)
			}
		}
	}

	return json.Unmarshal(trimmed, out)
}
