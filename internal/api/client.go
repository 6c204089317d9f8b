// Package api is the HTTP client layer: one method per backend
// operation, bearer credentials attached from the session store, and
// the per-operation error contract documented in pkg/apierror.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusrate/campusrate-go/pkg/apierror"
)

// TokenSource supplies the current bearer token; "" means anonymous.
// *session.Store satisfies it.
type TokenSource interface {
	Token() string
}

// Client calls the CampusRate backend.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *zap.Logger
}

// New creates a client for the backend at baseURL. tokens may be nil for
// a client that only performs anonymous operations.
func New(baseURL string, tokens TokenSource, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger,
	}
}

// newRequest builds a request with the JSON body, the request ID, and
// the bearer token when one is persisted.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.New().String())

	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	return req, nil
}

// do executes the request and records request metrics.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)

	status := "error"
	if err == nil {
		status = fmt.Sprintf("%d", resp.StatusCode)
	}
	recordRequest(req.Method, req.URL.Path, status, duration)

	return resp, err
}

// serverMessage pulls the error text out of a failure body. The backend
// is not consistent about the field name, so both are tried before
// falling back to the raw body.
func serverMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(body))
}

// authJSON runs a thrown-style authentication operation: a non-2xx
// response or a transport failure comes back as a Go error carrying the
// server message.
func (c *Client) authJSON(ctx context.Context, method, path string, body, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, nil, body)
	if err != nil {
		return apierror.NewAuthError(apierror.CodeNetworkError, err.Error(), 0)
	}

	resp, err := c.do(req)
	if err != nil {
		c.logger.Warn("auth request failed", zap.String("path", path), zap.Error(err))
		return apierror.NewAuthError(apierror.CodeNetworkError, err.Error(), 0)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierror.NewAuthError(apierror.CodeNetworkError, err.Error(), 0)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apierror.NewAuthError(apierror.CodeInvalidCredentials, serverMessage(payload), resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(payload, out); err != nil {
			return apierror.NewAuthError(apierror.CodeNetworkError, fmt.Sprintf("failed to decode response: %v", err), resp.StatusCode)
		}
	}

	return nil
}

// resourceJSON runs a returned-style resource operation: any failure is
// normalized into a *ResourceFault and never a Go error. Callers check
// the fault and fall back to a safe default.
func (c *Client) resourceJSON(ctx context.Context, method, path string, query url.Values, body, out interface{}) *apierror.ResourceFault {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		c.logger.Warn("resource request build failed", zap.String("path", path), zap.Error(err))
		return apierror.NewResourceFault(0, err.Error())
	}

	resp, err := c.do(req)
	if err != nil {
		c.logger.Warn("resource request failed", zap.String("path", path), zap.Error(err))
		return apierror.NewResourceFault(0, err.Error())
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierror.NewResourceFault(0, err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apierror.NewResourceFault(resp.StatusCode, serverMessage(payload))
	}

	if out != nil {
		if err := json.Unmarshal(payload, out); err != nil {
			c.logger.Warn("resource response decode failed", zap.String("path", path), zap.Error(err))
			return apierror.NewResourceFault(0, fmt.Sprintf("failed to decode response: %v", err))
		}
	}

	return nil
}
