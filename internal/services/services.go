package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/streamgrid/internal/models"
	"github.com/desertthunder/streamgrid/internal/shared"
)

// StatusFetcher looks up the current status of a single channel.
type StatusFetcher interface {
	// FetchStatus returns the channel's record. Failures are reported as
	// [models.ErrorRecord], never as a Go error.
	FetchStatus(ctx context.Context, name string) models.Record

	// Name returns the backend name (e.g., "kraken", "helix")
	Name() string
}

// NewFetcher builds the backend selected by cfg.Backend.
// client may be nil, in which case one bounded by cfg.Timeout is created.
func NewFetcher(cfg shared.TwitchConfig, client *http.Client) (StatusFetcher, error) {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}

	switch cfg.Backend {
	case shared.BackendKraken, "":
		return NewKrakenService(cfg.BaseURL, client), nil
	case shared.BackendHelix:
		return NewHelixService(cfg, client)
	default:
		return nil, fmt.Errorf("%w: unknown twitch backend %q", shared.ErrInvalidConfig, cfg.Backend)
	}
}

func requestFailed(err error) models.ErrorRecord {
	return models.ErrorRecord{Message: err.Error()}
}
