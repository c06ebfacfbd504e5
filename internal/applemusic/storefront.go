package applemusic

import (
	"context"
	"net/http"
)

// UserStorefronts fetches the storefront of the user behind the music user token.
func (c *Client) UserStorefronts(ctx context.Context) ([]Storefront, error) {
	u, err := c.auth.URL(nil, segVersion, segMe, segStorefront)
	if err != nil {
		return nil, err
	}

	desc, err := c.auth.Authenticate(u, http.MethodGet, nil, true)
	if err != nil {
		return nil, err
	}
	return FetchAll[Storefront](ctx, c, desc)
}
