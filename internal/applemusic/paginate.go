package applemusic

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/amkit/internal/shared"
)

// FetchAll dispatches desc and follows each page's next reference until the
// collection is exhausted, returning every item in server order.
//
// Pages are fetched one after another in a loop. Follow-up pages are GET
// requests authenticated like desc. The first failing page fails the whole call
// and no partial result is returned.
func FetchAll[T any](ctx context.Context, c *Client, desc *RequestDescriptor) ([]T, error) {
	ctx = withRequestID(ctx)
	all := make([]T, 0)

	for page := 1; ; page++ {
		env, err := Dispatch[Envelope[T]](ctx, c.dispatcher, desc)
		if err != nil {
			return nil, err
		}
		all = append(all, env.Data...)

		if !env.HasNext() {
			c.logger.Debug("collection complete", "req", requestID(ctx), "pages", page, "items", len(all))
			return all, nil
		}

		desc, err = c.nextPage(env.Next, desc.UserAccess)
		if err != nil {
			return nil, err
		}
	}
}

// FetchOne returns the first item of the collection at desc.
//
// An empty collection is reported as [shared.ErrResourceNotFound].
func FetchOne[T any](ctx context.Context, c *Client, desc *RequestDescriptor) (*T, error) {
	found, err := FetchAll[T](ctx, c, desc)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrResourceNotFound, desc.URL)
	}
	return &found[0], nil
}

// FollowRelationship completes a relationship envelope embedded in a resource by
// fetching its remaining pages. The embedded items come first.
func FollowRelationship[T any](ctx context.Context, c *Client, env *Envelope[T], userAccess bool) ([]T, error) {
	if env == nil {
		return []T{}, nil
	}

	all := append(make([]T, 0, len(env.Data)), env.Data...)
	if !env.HasNext() {
		return all, nil
	}

	desc, err := c.nextPage(env.Next, userAccess)
	if err != nil {
		return nil, err
	}

	rest, err := FetchAll[T](ctx, c, desc)
	if err != nil {
		return nil, err
	}
	return append(all, rest...), nil
}

func (c *Client) nextPage(next string, userAccess bool) (*RequestDescriptor, error) {
	u, err := c.auth.ResolveNext(next)
	if err != nil {
		return nil, err
	}
	return c.auth.Authenticate(u, http.MethodGet, nil, userAccess)
}
