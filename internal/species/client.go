package species

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/proxy"

	"github.com/K4zzu/Nfc-PokeDex/internal/model"
)

// maxBodySize limits how much of a species response is read. Real records
// are a few hundred kilobytes.
const maxBodySize = 4 * 1024 * 1024

// Fetcher retrieves one species record by numeric ID or by name.
type Fetcher interface {
	Fetch(ctx context.Context, idOrName string) (*model.Species, error)
}

// Client talks to the remote species API.
//
// The API is addressed as GET {baseURL}/{idOrName}. Any non-2xx response is
// reported as model.ErrFetchFailure.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client) error

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) error {
		if hc != nil {
			c.httpClient = hc
		}
		return nil
	}
}

// WithTimeout sets the per-request timeout of the underlying HTTP client.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) error {
		if d > 0 {
			c.httpClient.Timeout = d
		}
		return nil
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) error {
		c.userAgent = ua
		return nil
	}
}

// WithSOCKS5Proxy routes requests through a SOCKS5 proxy at "host:port".
// An empty address leaves the client on a direct connection.
func WithSOCKS5Proxy(address string) ClientOption {
	return func(c *Client) error {
		if address == "" {
			return nil
		}
		dialer, err := proxy.SOCKS5("tcp", address, nil, proxy.Direct)
		if err != nil {
			return fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.Proxy = nil
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
		c.httpClient.Transport = transport
		return nil
	}
}

// NewClient creates a species API client rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Fetch retrieves the species record for idOrName.
func (c *Client) Fetch(ctx context.Context, idOrName string) (*model.Species, error) {
	key := strings.ToLower(strings.TrimSpace(idOrName))
	if key == "" {
		return nil, fmt.Errorf("%w: empty species key", model.ErrFetchFailure)
	}
	endpoint := c.baseURL + "/" + url.PathEscape(key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrFetchFailure, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrFetchFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize)) //nolint:errcheck // best effort
		return nil, &StatusError{Key: key, Code: resp.StatusCode}
	}

	var s model.Species
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", model.ErrFetchFailure, key, err)
	}
	if !s.ID.Valid() {
		return nil, fmt.Errorf("%w: record %s has id %d", model.ErrFetchFailure, key, s.ID)
	}
	return &s, nil
}

// StatusError reports a non-2xx answer from the species API.
type StatusError struct {
	Key  string
	Code int
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s: HTTP %d", model.ErrFetchFailure, e.Key, e.Code)
}

// Unwrap lets errors.Is match model.ErrFetchFailure.
func (e *StatusError) Unwrap() error {
	return model.ErrFetchFailure
}

// IsNotFound reports whether err is a 404 from the species API.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}
