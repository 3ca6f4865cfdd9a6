// Package transport provides the authenticated HTTP client shared by the
// storefront and point-of-sale API clients. Every request carries a bounded
// timeout; there is no retry here, a failed call is a hard failure for the
// caller to classify.
package transport

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/storeops/possync/pkg/errors"
)

// DefaultTimeout is the default timeout for HTTP requests.
const DefaultTimeout = 30 * time.Second

// Client provides HTTP client functionality with authentication.
type Client struct {
	http   *http.Client
	auth   Authenticator
	remote string
}

// New creates a transport client for the named remote with the specified
// authenticator and per-request timeout.
func New(remote string, auth Authenticator, timeout time.Duration) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:   &http.Client{Timeout: timeout},
		auth:   auth,
		remote: remote,
	}
}

// Remote returns the name of the remote system this client talks to.
func (c *Client) Remote() string {
	return c.remote
}

// Do performs an HTTP request with authentication and common headers applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	c.auth.Apply(req)

	req.Header.Set("Accept", "application/json")
	switch req.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapAPI(c.remote, 0, err)
	}
	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapAPI(c.remote, 0, err)
	}
	return c.Do(req)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.WrapAPI(c.remote, 0, err)
	}
	return c.Do(req)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.WrapAPI(c.remote, 0, err)
	}
	return c.Do(req)
}
