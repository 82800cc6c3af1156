package services

import (
	"errors"
	"testing"

	"github.com/desertthunder/streamgrid/internal/shared"
)

func TestNewFetcher(t *testing.T) {
	t.Run("Kraken By Default", func(t *testing.T) {
		f, err := NewFetcher(shared.TwitchConfig{}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		k, ok := f.(*KrakenService)
		if !ok {
			t.Fatalf("expected *KrakenService, got %T", f)
		}
		if k.API().BaseURL() != DefaultBaseURL {
			t.Errorf("expected default base URL, got %s", k.API().BaseURL())
		}
	})

	t.Run("Helix", func(t *testing.T) {
		cfg := shared.TwitchConfig{Backend: shared.BackendHelix, ClientID: "id", ClientSecret: "secret"}
		f, err := NewFetcher(cfg, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Name() != "helix" {
			t.Errorf("expected helix, got %s", f.Name())
		}
		if f.(*HelixService).API().BaseURL() != helixBaseURL {
			t.Errorf("expected helix base URL")
		}
	})

	t.Run("Helix Without Credentials", func(t *testing.T) {
		_, err := NewFetcher(shared.TwitchConfig{Backend: shared.BackendHelix}, nil)
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("Unknown Backend", func(t *testing.T) {
		_, err := NewFetcher(shared.TwitchConfig{Backend: "jsonp"}, nil)
		if !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}
