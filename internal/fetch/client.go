package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/habiliai/toolserver/errors"
)

// maxBodyBytes caps how much of a remote page is read into memory.
const maxBodyBytes = 8 << 20

// Client performs the GET requests tools make to remote services. Every
// request is bounded by the configured timeout so one slow upstream cannot
// hold a handler forever.
type Client struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

func NewClient(httpClient *http.Client, userAgent string, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		httpClient: httpClient,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

func (c *Client) UserAgent() string {
	return c.userAgent
}

func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Get fetches reqURL and returns the body. Transport failures and non-2xx
// responses are reported as errors.ErrUpstream.
func (c *Client) Get(ctx context.Context, reqURL string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build request for %s", reqURL)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "request failed"), errors.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Mark(errors.Errorf("HTTP Error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)), errors.ErrUpstream)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to read response body"), errors.ErrUpstream)
	}

	return body, nil
}
