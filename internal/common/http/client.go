// internal/common/http/client.go
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"portfolio-admin/internal/common/errors"
	"portfolio-admin/internal/common/logger"
	"portfolio-admin/internal/common/metrics"
	"portfolio-admin/internal/common/observability"
)

const (
	ContentTypeJSON = "application/json"
	HeaderRequestID = "X-Request-ID"
)

// RequestInterceptor runs before every request is sent. Returning an error aborts the request.
type RequestInterceptor func(req *http.Request) error

// ErrorInterceptor runs after every failed exchange, before the error reaches the caller.
// It cannot replace or swallow the error.
type ErrorInterceptor func(req *http.Request, err *errors.StandardError)

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
	Logger     logger.Logger
}

// Client is the single configured HTTP client every API module sends through.
type Client struct {
	baseURL             string
	userAgent           string
	httpClient          *http.Client
	logger              logger.Logger
	requestInterceptors []RequestInterceptor
	errorInterceptors   []ErrorInterceptor
}

// Request describes one call relative to the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   io.Reader
	// ContentType overrides the default JSON content type.
	ContentType string
}

func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		userAgent:  opts.UserAgent,
		httpClient: httpClient,
		logger:     log,
	}
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// UseRequest appends a request interceptor. Interceptors run in registration order.
func (c *Client) UseRequest(i RequestInterceptor) {
	c.requestInterceptors = append(c.requestInterceptors, i)
}

// UseError appends an error interceptor. Interceptors run in registration order.
func (c *Client) UseError(i ErrorInterceptor) {
	c.errorInterceptors = append(c.errorInterceptors, i)
}

// JSON sends in (if non-nil) as a JSON body and decodes the response into out (if non-nil).
func (c *Client) JSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.NewSerializationError(err)
		}
		body = bytes.NewReader(data)
	}
	return c.Do(ctx, Request{Method: method, Path: path, Body: body}, out)
}

// Multipart sends form as multipart/form-data and decodes the response into out.
func (c *Client) Multipart(ctx context.Context, method, path string, form *Form, out interface{}) error {
	body, contentType, err := form.Encode()
	if err != nil {
		return errors.NewSerializationError(err)
	}
	return c.Do(ctx, Request{Method: method, Path: path, Body: body, ContentType: contentType}, out)
}

// Do executes r. Any non-2xx status or transport failure is returned as *errors.StandardError.
func (c *Client) Do(ctx context.Context, r Request, out interface{}) error {
	resource := resourceOf(r.Path)
	start := time.Now()

	ctx, span := observability.Tracer().Start(ctx, r.Method+" /"+resource)
	defer span.End()

	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, r.Body)
	if err != nil {
		return errors.NewRequestBuildError(err)
	}

	contentType := r.ContentType
	if contentType == "" {
		contentType = ContentTypeJSON
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", ContentTypeJSON)
	req.Header.Set(HeaderRequestID, uuid.New().String())
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	for _, intercept := range c.requestInterceptors {
		if err := intercept(req); err != nil {
			return errors.Normalize(err)
		}
	}

	span.SetAttributes(
		attribute.String("http.method", r.Method),
		attribute.String("http.url", target),
		attribute.String("portfolio.resource", resource),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		stdErr := errors.NewNetworkError(r.Method, target, err)
		c.observe(r.Method, resource, "network_error", start)
		span.RecordError(err)
		span.SetStatus(codes.Error, stdErr.Message)
		c.fail(req, stdErr)
		return stdErr
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.observe(r.Method, resource, strconv.Itoa(resp.StatusCode), start)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		stdErr := errors.NewNetworkError(r.Method, target, err)
		c.fail(req, stdErr)
		return stdErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		stdErr := errors.NewHTTPStatusError(resp.StatusCode, body, serverMessage(body))
		span.SetStatus(codes.Error, stdErr.Message)
		c.logger.Debug("portfolio API returned error status", map[string]interface{}{
			"method":    r.Method,
			"path":      r.Path,
			"status":    resp.StatusCode,
			"requestId": req.Header.Get(HeaderRequestID),
		})
		c.fail(req, stdErr)
		return stdErr
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.NewDeserializationError(resp.StatusCode, err)
	}
	return nil
}

func (c *Client) fail(req *http.Request, stdErr *errors.StandardError) {
	for _, intercept := range c.errorInterceptors {
		intercept(req, stdErr)
	}
}

func (c *Client) observe(method, resource, code string, start time.Time) {
	metrics.APIRequests.WithLabelValues(method, resource, code).Inc()
	metrics.APIRequestDuration.WithLabelValues(method, resource).Observe(time.Since(start).Seconds())
}

// resourceOf returns the first path segment, used as a low-cardinality metric label.
func resourceOf(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}

// serverMessage extracts the backend's {"error": "..."} or {"message": "..."} field.
func serverMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
