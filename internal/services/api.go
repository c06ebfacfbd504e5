// Raw API access through an authenticated [applemusic.Client]
package services

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/desertthunder/amkit/internal/applemusic"
	"github.com/desertthunder/amkit/internal/shared"
)

// APIService sends arbitrary API paths with the client's credentials and retry handling.
// Paths under /v1/me are sent with the music user token.
type APIService struct {
	client *applemusic.Client
}

// NewAPIService creates a raw API service for client.
func NewAPIService(client *applemusic.Client) *APIService {
	return &APIService{client: client}
}

// APIResponse is a decoded JSON payload along with where it came from.
// Keys are normalized as by [applemusic.Decode].
type APIResponse struct {
	URL        string
	StatusCode int
	JSONData   any
}

// Get performs a GET request to the specified path and returns the decoded JSON.
func (a *APIService) Get(ctx context.Context, path string) (*APIResponse, error) {
	return a.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with the given JSON data.
//
// Endpoints that acknowledge without content yield a nil JSONData.
func (a *APIService) Post(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return a.do(ctx, http.MethodPost, path, data)
}

func (a *APIService) do(ctx context.Context, method, path string, body []byte) (*APIResponse, error) {
	if a.client == nil {
		return nil, shared.ErrNotInitialized
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	auth := a.client.Authenticator()
	u, err := auth.ResolveNext(path)
	if err != nil {
		return nil, err
	}

	desc, err := auth.Authenticate(u, method, body, isUserPath(path))
	if err != nil {
		return nil, err
	}

	status, raw, err := a.client.Dispatcher().Raw(ctx, desc)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	resp := &APIResponse{URL: u, StatusCode: status}
	if len(bytes.TrimSpace(raw)) == 0 {
		return resp, nil
	}

	data, err := applemusic.Decode[any](raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", shared.ErrDecode, method, path, err)
	}
	resp.JSONData = data
	return resp, nil
}

func isUserPath(path string) bool {
	return path == "/v1/me" || strings.HasPrefix(path, "/v1/me/") || strings.HasPrefix(path, "/v1/me?")
}
