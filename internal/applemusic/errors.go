package applemusic

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/desertthunder/amkit/internal/shared"
)

// ConfigError reports misuse of the client: a missing developer token, user token or storefront.
//
// It is never retried and never produced by the network, so callers can treat it as a programming error.
type ConfigError struct {
	Op  string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("apple music configuration: %v", e.Err)
	}
	return fmt.Sprintf("apple music configuration: %s: %v", e.Op, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IsConfigError reports whether err is, or wraps, a [ConfigError].
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// ErrorKind classifies a [RequestError].
type ErrorKind int

const (
	KindTransport ErrorKind = iota // no response: connectivity, timeout, cancellation
	KindHTTP                       // unexpected status code
	KindDecode                     // 2xx body did not match the expected shape
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// RequestError is the single "request failed" result for transport, HTTP and decode failures.
//
// Body holds the raw response payload, when one was received, for diagnostics.
type RequestError struct {
	Kind       ErrorKind
	Method     string
	URL        string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindHTTP:
		if e.Err != nil {
			return fmt.Sprintf("apple music %s %s: status %d: %v", e.Method, e.URL, e.StatusCode, e.Err)
		}
		return fmt.Sprintf("apple music %s %s: status %d", e.Method, e.URL, e.StatusCode)
	case KindDecode:
		return fmt.Sprintf("apple music %s %s: %v: %v", e.Method, e.URL, shared.ErrDecode, e.Err)
	default:
		return fmt.Sprintf("apple music %s %s: request failed: %v", e.Method, e.URL, e.Err)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

// Is makes every RequestError match [shared.ErrAPIRequest]. Decode failures also match [shared.ErrDecode]
// and 5xx responses [shared.ErrServiceUnavailable].
func (e *RequestError) Is(target error) bool {
	switch target {
	case shared.ErrAPIRequest:
		return true
	case shared.ErrDecode:
		return e.Kind == KindDecode
	case shared.ErrServiceUnavailable:
		return e.Kind == KindHTTP && e.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// IsNotFound checks if the error indicates a not found response
func (e *RequestError) IsNotFound() bool {
	return e.Kind == KindHTTP && e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *RequestError) IsUnauthorized() bool {
	return e.Kind == KindHTTP && (e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}
