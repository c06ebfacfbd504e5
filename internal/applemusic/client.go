package applemusic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// DefaultStorefront is adopted when no storefront is configured and none can be discovered.
const DefaultStorefront = "gb"

// Options tune a [Client]. The zero value talks to [DefaultBaseURL] through [http.DefaultClient].
type Options struct {
	BaseURL           string
	HTTPClient        *http.Client
	Logger            *log.Logger
	Retry             RetryPolicy
	RateLimit         float64 // requests per second across the client, 0 disables pacing
	DefaultStorefront string
}

// Client is an authenticated Apple Music API client.
//
// A Client is immutable once returned and may be shared between goroutines.
// Independent clients, e.g. for different accounts, never share state.
type Client struct {
	auth       *Authenticator
	dispatcher *Dispatcher
	logger     *log.Logger
}

// New creates a client without any network traffic. Catalog calls fail with a
// [ConfigError] until a storefront is supplied.
func New(creds Credentials, opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	auth, err := NewAuthenticator(opts.BaseURL, creds)
	if err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return &Client{
		auth:       auth,
		dispatcher: NewDispatcher(opts.HTTPClient, opts.Retry, limiter, opts.Logger),
		logger:     opts.Logger,
	}, nil
}

// Initialize creates a client and resolves its storefront.
//
// A configured storefront is used as is. Otherwise, with a user token, the
// user's storefront is fetched and the first one adopted. When that fails, comes
// back empty, or there is no user token, opts.DefaultStorefront (or
// [DefaultStorefront]) is used.
func Initialize(ctx context.Context, creds Credentials, opts Options) (*Client, error) {
	c, err := New(creds, opts)
	if err != nil {
		return nil, err
	}
	if creds.Storefront != "" {
		return c, nil
	}

	storefront := opts.DefaultStorefront
	if storefront == "" {
		storefront = DefaultStorefront
	}

	if c.HasUserAccess() {
		fronts, err := c.UserStorefronts(ctx)
		switch {
		case err != nil:
			c.logger.Warn("storefront lookup failed, using default", "storefront", storefront, "err", err)
		case len(fronts) == 0 || fronts[0].ID == "":
			c.logger.Warn("no storefront returned, using default", "storefront", storefront)
		default:
			storefront = fronts[0].ID
		}
	}

	c.logger.Debug("storefront resolved", "storefront", storefront)
	return c.withStorefront(storefront), nil
}

func (c *Client) withStorefront(storefront string) *Client {
	cp := *c
	cp.auth = c.auth.withStorefront(storefront)
	return &cp
}

// Storefront returns the resolved region code or a [ConfigError].
func (c *Client) Storefront() (string, error) {
	return c.auth.Storefront()
}

// HasUserAccess reports whether a music user token is configured.
func (c *Client) HasUserAccess() bool {
	return c.auth.HasUserAccess()
}

// Dispatcher exposes the underlying dispatcher for use with [Dispatch] on endpoints without a helper.
func (c *Client) Dispatcher() *Dispatcher {
	return c.dispatcher
}

// Authenticator exposes the credential context for building custom descriptors.
func (c *Client) Authenticator() *Authenticator {
	return c.auth
}

func (c *Client) libraryRequest(method string, query url.Values, body any, segments ...string) (*RequestDescriptor, error) {
	u, err := c.auth.URL(query, libraryPath(segments...)...)
	if err != nil {
		return nil, err
	}

	payload, err := encodeBody(body)
	if err != nil {
		return nil, err
	}
	return c.auth.Authenticate(u, method, payload, true)
}

func (c *Client) catalogRequest(query url.Values, segments ...string) (*RequestDescriptor, error) {
	path, err := c.auth.catalogPath(segments...)
	if err != nil {
		return nil, err
	}

	u, err := c.auth.URL(query, path...)
	if err != nil {
		return nil, err
	}
	return c.auth.Authenticate(u, http.MethodGet, nil, false)
}

func encodeBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return data, nil
}
