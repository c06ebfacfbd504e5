package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/amkit/internal/services"
	"github.com/desertthunder/amkit/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet sends a GET request to an arbitrary API path.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path, err := firstArg(cmd, "path")
	if err != nil {
		return err
	}

	api, err := r.api(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("GET request", "path", path)
	resp, err := api.Get(ctx, path)
	if err != nil {
		return err
	}
	return r.writeAPIResponse(resp, cmd.Bool("pretty"))
}

// APIPost sends a POST request with an optional JSON body to an arbitrary API path.
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	path, err := firstArg(cmd, "path")
	if err != nil {
		return err
	}

	var body []byte
	if data := cmd.String("data"); data != "" {
		if !json.Valid([]byte(data)) {
			return fmt.Errorf("%w: data is not valid JSON", shared.ErrInvalidInput)
		}
		body = []byte(data)
	}

	api, err := r.api(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("POST request", "path", path)
	resp, err := api.Post(ctx, path, body)
	if err != nil {
		return err
	}
	return r.writeAPIResponse(resp, cmd.Bool("pretty"))
}

func (r *Runner) api(ctx context.Context) (*services.APIService, error) {
	c, err := r.appleClient(ctx)
	if err != nil {
		return nil, err
	}
	return services.NewAPIService(c), nil
}

func (r *Runner) writeAPIResponse(resp *services.APIResponse, pretty bool) error {
	if resp.JSONData == nil {
		return r.writePlainln("%s", r.palette.OK("%d %s", resp.StatusCode, resp.URL))
	}
	return r.writeJSON(resp.JSONData, pretty)
}
