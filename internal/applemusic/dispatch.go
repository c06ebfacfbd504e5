package applemusic

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/amkit/internal/shared"
	"golang.org/x/time/rate"
)

// DefaultRetryFallback is the wait before re-sending a throttled request that carried no Retry-After.
const DefaultRetryFallback = time.Second

// bodyLogLimit caps how much of a raw payload is written to the log. Errors keep the full body.
const bodyLogLimit = 2048

// RetryPolicy controls the response to 429 Too Many Requests.
//
// MaxRetries 0 retries until the API stops throttling. FallbackDelay is used when
// the response has no usable Retry-After header.
type RetryPolicy struct {
	MaxRetries    int
	FallbackDelay time.Duration
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.FallbackDelay <= 0 {
		p.FallbackDelay = DefaultRetryFallback
	}
	return p
}

// Dispatcher sends [RequestDescriptor] values and owns the throttle-retry loop.
//
// It holds no per-request state and is safe for concurrent use.
type Dispatcher struct {
	httpClient *http.Client
	policy     RetryPolicy
	limiter    *rate.Limiter
	logger     *log.Logger
	now        func() time.Time
}

// NewDispatcher creates a dispatcher. A nil client uses [http.DefaultClient], a nil limiter disables pacing
// and a nil logger discards output.
func NewDispatcher(client *http.Client, policy RetryPolicy, limiter *rate.Limiter, logger *log.Logger) *Dispatcher {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{
		httpClient: client,
		policy:     policy.withDefaults(),
		limiter:    limiter,
		logger:     logger,
		now:        time.Now,
	}
}

// response is the final, non-throttled answer to a descriptor.
type response struct {
	status int
	header http.Header
	body   []byte
}

type requestIDKey struct{}

// withRequestID tags ctx with an id shared by every attempt and page of one logical call.
func withRequestID(ctx context.Context) context.Context {
	if _, ok := ctx.Value(requestIDKey{}).(string); ok {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, shared.GenerateID())
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// send transmits desc until a non-429 response arrives, a transport error occurs
// or the retry budget is spent.
func (d *Dispatcher) send(ctx context.Context, desc *RequestDescriptor) (*response, error) {
	ctx = withRequestID(ctx)
	logger := shared.WithLogger(d.logger, "req", requestID(ctx))

	for attempt := 1; ; attempt++ {
		if d.limiter != nil {
			if err := d.limiter.Wait(ctx); err != nil {
				return nil, d.transportError(desc, err)
			}
		}

		req, err := desc.NewRequest(ctx)
		if err != nil {
			return nil, d.transportError(desc, err)
		}

		logger.Debug("sending request", "method", desc.Method, "url", desc.URL, "attempt", attempt)

		resp, err := d.httpClient.Do(req)
		if err != nil {
			return nil, d.transportError(desc, err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, d.transportError(desc, fmt.Errorf("failed to read response: %w", err))
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return &response{status: resp.StatusCode, header: resp.Header, body: body}, nil
		}

		if d.policy.MaxRetries > 0 && attempt > d.policy.MaxRetries {
			logger.Error("rate limited, giving up", "url", desc.URL, "attempts", attempt)
			return nil, &RequestError{
				Kind:       KindHTTP,
				Method:     desc.Method,
				URL:        desc.URL,
				StatusCode: resp.StatusCode,
				Body:       body,
				Err:        shared.ErrRetriesExhausted,
			}
		}

		delay := d.retryDelay(resp.Header)
		logger.Warn("rate limited, retrying", "url", desc.URL, "delay", delay, "attempt", attempt)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, d.transportError(desc, ctx.Err())
		case <-timer.C:
		}
	}
}

// retryDelay honors Retry-After given as seconds or as an HTTP date, else the policy fallback.
func (d *Dispatcher) retryDelay(h http.Header) time.Duration {
	value := h.Get("Retry-After")
	if value == "" {
		return d.policy.FallbackDelay
	}

	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return d.policy.FallbackDelay
		}
		return time.Duration(secs) * time.Second
	}

	if at, err := http.ParseTime(value); err == nil {
		if wait := at.Sub(d.now()); wait > 0 {
			return wait
		}
		return 0
	}

	return d.policy.FallbackDelay
}

func (d *Dispatcher) transportError(desc *RequestDescriptor, err error) *RequestError {
	return &RequestError{Kind: KindTransport, Method: desc.Method, URL: desc.URL, Err: err}
}

func (d *Dispatcher) statusError(ctx context.Context, desc *RequestDescriptor, resp *response) *RequestError {
	d.logger.Error("unexpected status",
		"req", requestID(ctx),
		"method", desc.Method,
		"url", desc.URL,
		"status", resp.status,
		"body", shared.Truncate(string(resp.body), bodyLogLimit),
	)
	return &RequestError{
		Kind:       KindHTTP,
		Method:     desc.Method,
		URL:        desc.URL,
		StatusCode: resp.status,
		Body:       resp.body,
	}
}

// Dispatch sends desc and decodes a 2xx body into T.
//
// Throttled responses are retried per the dispatcher's [RetryPolicy]. Any other
// status is a [RequestError] of [KindHTTP]; a body that does not decode is a
// [RequestError] of [KindDecode] carrying the raw payload.
func Dispatch[T any](ctx context.Context, d *Dispatcher, desc *RequestDescriptor) (T, error) {
	var zero T

	ctx = withRequestID(ctx)
	resp, err := d.send(ctx, desc)
	if err != nil {
		return zero, err
	}

	if resp.status < 200 || resp.status >= 300 {
		return zero, d.statusError(ctx, desc, resp)
	}

	out, err := Decode[T](resp.body)
	if err != nil {
		d.logger.Error("failed to decode response",
			"req", requestID(ctx),
			"url", desc.URL,
			"status", resp.status,
			"err", err,
			"body", shared.Truncate(string(resp.body), bodyLogLimit),
		)
		return zero, &RequestError{
			Kind:       KindDecode,
			Method:     desc.Method,
			URL:        desc.URL,
			StatusCode: resp.status,
			Body:       resp.body,
			Err:        err,
		}
	}

	return out, nil
}

// Raw sends desc and returns the status and undecoded body of a 2xx response.
// Throttling and failures are handled as in [Dispatch].
func (d *Dispatcher) Raw(ctx context.Context, desc *RequestDescriptor) (int, []byte, error) {
	ctx = withRequestID(ctx)
	resp, err := d.send(ctx, desc)
	if err != nil {
		return 0, nil, err
	}
	if resp.status < 200 || resp.status >= 300 {
		return resp.status, nil, d.statusError(ctx, desc, resp)
	}
	return resp.status, resp.body, nil
}

// Acknowledge sends a request whose success carries no content.
//
// 200, 202 and 204 report true. Other statuses report false, with a [RequestError]
// only when the server explained itself in a body.
func (d *Dispatcher) Acknowledge(ctx context.Context, desc *RequestDescriptor) (bool, error) {
	ctx = withRequestID(ctx)
	resp, err := d.send(ctx, desc)
	if err != nil {
		return false, err
	}

	switch resp.status {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return true, nil
	}

	if len(bytes.TrimSpace(resp.body)) == 0 {
		d.logger.Warn("request not acknowledged", "req", requestID(ctx), "url", desc.URL, "status", resp.status)
		return false, nil
	}

	return false, d.statusError(ctx, desc, resp)
}
