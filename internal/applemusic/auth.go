package applemusic

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/desertthunder/amkit/internal/shared"
	"golang.org/x/oauth2"
)

// UserTokenHeader carries the music user token on library-scoped requests.
const UserTokenHeader = "Music-User-Token"

// Credentials are the tokens a [Client] authenticates with.
//
// DeveloperToken is required. UserToken unlocks library (me/...) endpoints and
// Storefront selects the catalog region.
type Credentials struct {
	DeveloperToken string
	UserToken      string
	Storefront     string
}

// RequestDescriptor is a fully resolved request that can be sent any number of times.
type RequestDescriptor struct {
	Method     string
	URL        string
	Header     http.Header
	Body       []byte
	UserAccess bool // follow-up pages are authenticated the same way
}

// NewRequest builds a fresh [http.Request] for one attempt of the descriptor.
func (d *RequestDescriptor) NewRequest(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if len(d.Body) > 0 {
		body = bytes.NewReader(d.Body)
	}

	req, err := http.NewRequestWithContext(ctx, d.Method, d.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = d.Header.Clone()
	return req, nil
}

// Authenticator holds the immutable credential set and turns URLs into authenticated [RequestDescriptor] values.
type Authenticator struct {
	base  *url.URL
	token *oauth2.Token
	creds Credentials
}

// NewAuthenticator validates the credentials and parses the API base URL.
func NewAuthenticator(baseURL string, creds Credentials) (*Authenticator, error) {
	if creds.DeveloperToken == "" {
		return nil, &ConfigError{Op: "authenticate", Err: shared.ErrNotInitialized}
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, &ConfigError{Op: "authenticate", Err: fmt.Errorf("%w: base url %q", shared.ErrInvalidConfig, baseURL)}
	}

	return &Authenticator{
		base:  base,
		token: &oauth2.Token{AccessToken: creds.DeveloperToken, TokenType: "Bearer"},
		creds: creds,
	}, nil
}

// HasUserAccess reports whether library-scoped endpoints can be called.
func (a *Authenticator) HasUserAccess() bool {
	return a.creds.UserToken != ""
}

// Storefront returns the region code, or a [ConfigError] when none has been resolved.
func (a *Authenticator) Storefront() (string, error) {
	if a.creds.Storefront == "" {
		return "", &ConfigError{Op: "storefront", Err: shared.ErrMissingStorefront}
	}
	return a.creds.Storefront, nil
}

// withStorefront returns a copy bound to storefront. The receiver is left untouched.
func (a *Authenticator) withStorefront(storefront string) *Authenticator {
	cp := *a
	cp.creds.Storefront = storefront
	return &cp
}

// Authenticate attaches the developer token and, for user-scoped calls, the music user token.
func (a *Authenticator) Authenticate(rawURL, method string, body []byte, userAccess bool) (*RequestDescriptor, error) {
	if a == nil || a.token == nil {
		return nil, &ConfigError{Op: "authenticate", Err: shared.ErrNotInitialized}
	}
	if userAccess && a.creds.UserToken == "" {
		return nil, &ConfigError{Op: "authenticate", Err: shared.ErrMissingUserToken}
	}

	header := make(http.Header)
	header.Set("Authorization", a.token.Type()+" "+a.token.AccessToken)
	header.Set("Accept", "application/json")
	if userAccess {
		header.Set(UserTokenHeader, a.creds.UserToken)
	}
	if len(body) > 0 {
		header.Set("Content-Type", "application/json")
	}

	return &RequestDescriptor{
		Method:     method,
		URL:        rawURL,
		Header:     header,
		Body:       body,
		UserAccess: userAccess,
	}, nil
}
