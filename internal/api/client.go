// internal/api/client.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/session"
)

// Client is the shared marketplace API client. All service modules go
// through it; it owns the base URL, timeout, bearer-token attachment
// and the global 401 session invalidation.
type Client struct {
	http     *resty.Client
	sessions *session.Manager
	logger   *logrus.Logger
}

// envelope is the uniform response wrapper every endpoint returns
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// New creates the API client over the given session manager
func New(cfg *config.Config, sessions *session.Manager, logger *logrus.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.API.BaseURL, "/") + cfg.API.PathPrefix).
		SetTimeout(cfg.API.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", cfg.API.UserAgent)

	if cfg.API.RetryCount > 0 {
		httpClient.SetRetryCount(cfg.API.RetryCount)
		httpClient.SetRetryWaitTime(cfg.API.RetryWaitTime)
	}

	// Attach bearer token and a request id on every outgoing request
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if token := sessions.Token(); token != "" {
			req.SetAuthToken(token)
		}
		req.SetHeader("X-Request-ID", uuid.NewString())
		return nil
	})

	// Any 401 invalidates the whole session; the caller's next render
	// sees a logged-out state.
	httpClient.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		if resp.StatusCode() == http.StatusUnauthorized && sessions.IsAuthenticated() {
			logger.WithField("path", resp.Request.URL).Warn("Received 401, clearing stored session")
			if err := sessions.Clear(resp.Request.Context()); err != nil {
				logger.WithError(err).Error("Failed to clear session after 401")
			}
		}
		return nil
	})

	return &Client{
		http:     httpClient,
		sessions: sessions,
		logger:   logger,
	}
}

// Get issues a GET request and decodes the envelope data into out
func (c *Client) Get(ctx context.Context, path string, query map[string]string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, nil, out)
}

// Post issues a POST request with a JSON body
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, nil, body, out)
}

// PostIdempotent issues a POST carrying an idempotency key so a retried
// submission cannot create a duplicate resource
func (c *Client) PostIdempotent(ctx context.Context, path, idempotencyKey string, body, out interface{}) error {
	headers := map[string]string{"X-Idempotency-Key": idempotencyKey}
	return c.do(ctx, http.MethodPost, path, nil, headers, body, out)
}

// Put issues a PUT request with a JSON body
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, nil, body, out)
}

// Patch issues a PATCH request with a JSON body
func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, nil, nil, body, out)
}

// Delete issues a DELETE request
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query, headers map[string]string, body, out interface{}) error {
	req := c.http.R().SetContext(ctx)

	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		// Transport-level failure: no response was received
		return fmt.Errorf("request to %s %s failed: %w", method, path, err)
	}

	return c.decode(resp, out)
}

// decode unwraps the response envelope, mapping rejections to *Error
func (c *Client) decode(resp *resty.Response, out interface{}) error {
	// Some mutations answer 204 with no body at all
	if resp.IsSuccess() && len(resp.Body()) == 0 {
		return nil
	}

	var env envelope
	if len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), &env); err != nil && resp.IsSuccess() {
			return fmt.Errorf("failed to decode response from %s: %w", resp.Request.URL, err)
		}
	}

	if !resp.IsSuccess() || !env.Success {
		return &Error{
			StatusCode: resp.StatusCode(),
			Message:    env.Message,
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data from %s: %w", resp.Request.URL, err)
		}
	}

	return nil
}
