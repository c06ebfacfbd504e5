package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrNotInitialized     = fmt.Errorf("client not initialized with a developer token")
	ErrMissingUserToken   = fmt.Errorf("client not initialized with a music user token")
	ErrMissingStorefront  = fmt.Errorf("storefront not resolved")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrDecode             = fmt.Errorf("failed to decode response")
	ErrRetriesExhausted   = fmt.Errorf("rate limit retries exhausted")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrResourceNotFound   = fmt.Errorf("resource not found")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")
	ErrTrackNotFound      = fmt.Errorf("track not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
