package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/streamgrid/internal/models"
	"github.com/desertthunder/streamgrid/internal/services"
	"github.com/desertthunder/streamgrid/internal/shared"
	"github.com/urfave/cli/v3"
)

// Status looks up a single channel and prints the parsed record as JSON.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	name := shared.NormalizeChannelName(cmd.StringArg("name"))
	if name == "" {
		return fmt.Errorf("%w: channel name is required", shared.ErrMissingArgument)
	}

	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	fetcher, err := r.statusFetcher()
	if err != nil {
		return err
	}

	r.logger.Debug("fetching status", "name", name, "backend", fetcher.Name())
	rec := fetcher.FetchStatus(ctx, name)

	if err := r.writeJSON(models.NewSnapshot(name, rec), !cmd.Bool("compact")); err != nil {
		return err
	}

	if e, ok := rec.(models.ErrorRecord); ok && e.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", shared.ErrChannelNotFound, name)
	}
	return nil
}

// APIGet makes a direct GET request to the status API and prints the response.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path is required", shared.ErrMissingArgument)
	}

	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	baseURL := cmd.String("base-url")
	if baseURL == "" {
		baseURL = r.config.Twitch.BaseURL
	}
	api := services.NewAPIService(baseURL, r.httpClient)

	r.logger.Info("GET request", "base", api.BaseURL(), "path", path)

	resp, err := api.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if !resp.OK() {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, cmd.Bool("pretty"))
	}

	if err := r.writeBytes(resp.Body); err != nil {
		return err
	}
	return r.writePlain("\n")
}
