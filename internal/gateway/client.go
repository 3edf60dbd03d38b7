// Package gateway forwards dashboard calls to the API gateway that fronts the
// user, transaction, notification and report services.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/parnurzeal/gorequest"

	"ledgerdash/internal/api"
	"ledgerdash/internal/logger"
	"ledgerdash/internal/metrics"
)

var (
	ErrEmptyBody   = errors.New("empty response from upstream")
	ErrInvalidJSON = errors.New("invalid JSON from upstream")
)

const invalidJSONPreview = 200

type Client struct {
	baseURL      string
	serviceToken string
	timeout      time.Duration
}

func New(baseURL, serviceToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		serviceToken: serviceToken,
		timeout:      timeout,
	}
}

// Response is an upstream reply. Any status is a Response; only transport
// failures are returned as errors.
type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) OK() bool {
	return r.StatusCode == http.StatusOK || r.StatusCode == http.StatusCreated
}

// Decode unmarshals the body. Empty and non-JSON bodies are reported as
// ErrEmptyBody and ErrInvalidJSON.
func (r *Response) Decode(v any) error {
	body := strings.TrimSpace(string(r.Body))
	if body == "" {
		return ErrEmptyBody
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidJSON, r.preview())
	}
	return nil
}

func (r *Response) preview() string {
	body := strings.TrimSpace(string(r.Body))
	if len(body) > invalidJSONPreview {
		body = body[:invalidJSONPreview]
	}
	return body
}

// ErrorMessage extracts the upstream "error" field, or fallback.
func (r *Response) ErrorMessage(fallback string) string {
	var body struct {
		Error string `json:"error"`
	}
	err := r.Decode(&body)
	switch {
	case errors.Is(err, ErrEmptyBody):
		return "Empty response from upstream"
	case errors.Is(err, ErrInvalidJSON):
		return "Invalid JSON from upstream: " + r.preview()
	}
	if body.Error == "" {
		return fallback
	}
	return body.Error
}

func (c *Client) Get(ctx context.Context, path, token string) (*Response, error) {
	timeout, err := c.budget(ctx)
	if err != nil {
		return nil, err
	}
	req := c.prepare(gorequest.New().Get(c.baseURL+path).Timeout(timeout), token)
	return c.end(http.MethodGet, path, req)
}

// Post sends payload as JSON. Payload should be a struct.
func (c *Client) Post(ctx context.Context, path string, payload any, token string) (*Response, error) {
	timeout, err := c.budget(ctx)
	if err != nil {
		return nil, err
	}
	req := c.prepare(gorequest.New().Post(c.baseURL+path).Timeout(timeout), token)
	if payload != nil {
		req = req.Send(payload)
	}
	return c.end(http.MethodPost, path, req)
}

// Put sends payload as JSON, like Post.
func (c *Client) Put(ctx context.Context, path string, payload any, token string) (*Response, error) {
	timeout, err := c.budget(ctx)
	if err != nil {
		return nil, err
	}
	req := c.prepare(gorequest.New().Put(c.baseURL+path).Timeout(timeout), token)
	if payload != nil {
		req = req.Send(payload)
	}
	return c.end(http.MethodPut, path, req)
}

func (c *Client) Delete(ctx context.Context, path, token string) (*Response, error) {
	timeout, err := c.budget(ctx)
	if err != nil {
		return nil, err
	}
	req := c.prepare(gorequest.New().Delete(c.baseURL+path).Timeout(timeout), token)
	return c.end(http.MethodDelete, path, req)
}

func (c *Client) prepare(req *gorequest.SuperAgent, token string) *gorequest.SuperAgent {
	req = req.Set("X-Service-Token", c.serviceToken).Set("Accept", "application/json")
	if token != "" {
		req = req.Set("Authorization", "Bearer "+token)
	}
	return req
}

// budget shortens the configured timeout to the context deadline.
func (c *Client) budget(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, api.NewError(http.StatusGatewayTimeout, "Request to API Gateway timed out")
	}
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	return timeout, nil
}

func (c *Client) end(method, path string, req *gorequest.SuperAgent) (*Response, error) {
	start := time.Now()
	resp, body, errs := req.EndBytes()
	elapsed := time.Since(start).Seconds()

	if len(errs) > 0 {
		err := classify(errs[0])
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			metrics.RecordGatewayRequest(method, strconv.Itoa(apiErr.Status), elapsed)
		}
		logger.WithError(errs[0]).Warn("gateway request failed", "method", method, "path", path)
		return nil, err
	}

	metrics.RecordGatewayRequest(method, strconv.Itoa(resp.StatusCode), elapsed)
	logger.Debug("gateway request", "method", method, "path", path, "status", resp.StatusCode)
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

func classify(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return api.NewError(http.StatusGatewayTimeout, "Request to API Gateway timed out")
	case errors.As(err, &netErr):
		return api.NewError(http.StatusServiceUnavailable, "API Gateway unreachable")
	default:
		return api.NewError(http.StatusInternalServerError, err.Error())
	}
}
