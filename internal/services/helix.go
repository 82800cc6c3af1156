package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/streamgrid/internal/models"
	"github.com/desertthunder/streamgrid/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	helixBaseURL  = "https://api.twitch.tv/helix"
	helixTokenURL = "https://id.twitch.tv/oauth2/token"
	twitchWebURL  = "https://www.twitch.tv/"
)

// HelixUser is an entry of the /users response.
type HelixUser struct {
	ID              string `json:"id"`
	Login           string `json:"login"`
	DisplayName     string `json:"display_name"`
	ProfileImageURL string `json:"profile_image_url"`
	ViewCount       int    `json:"view_count"`
}

// HelixStream is an entry of the /streams response.
type HelixStream struct {
	UserLogin   string `json:"user_login"`
	UserName    string `json:"user_name"`
	GameName    string `json:"game_name"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	ViewerCount int    `json:"viewer_count"`
}

type helixPage[T any] struct {
	Data []T `json:"data"`
}

// HelixService implements [StatusFetcher] against the Twitch Helix API
// using an app access token from the client credentials grant.
type HelixService struct {
	api *APIService
}

// NewHelixService creates a Helix client. base is used for the token
// request and wrapped by the [oauth2.Transport] that attaches the token.
func NewHelixService(cfg shared.TwitchConfig, base *http.Client) (*HelixService, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: helix backend requires client_id and client_secret", shared.ErrMissingCredentials)
	}
	if base == nil {
		base = &http.Client{Timeout: cfg.Timeout()}
	}

	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = helixTokenURL
	}
	baseURL := cfg.HelixURL
	if baseURL == "" {
		baseURL = helixBaseURL
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	client := cc.Client(ctx)
	client.Timeout = base.Timeout

	api := NewAPIService(baseURL, client).WithHeader("Client-Id", cfg.ClientID)
	return &HelixService{api: api}, nil
}

func (h *HelixService) Name() string {
	return "helix"
}

// API exposes the underlying raw client.
func (h *HelixService) API() *APIService {
	return h.api
}

// FetchStatus resolves the login, then looks up its stream.
func (h *HelixService) FetchStatus(ctx context.Context, name string) models.Record {
	var users helixPage[HelixUser]
	if rec := h.getJSON(ctx, "/users?login="+url.QueryEscape(name), &users); rec != nil {
		return rec
	}
	if len(users.Data) == 0 {
		return models.ErrorRecord{
			Message:    fmt.Sprintf("Channel '%s' does not exist", name),
			StatusCode: http.StatusNotFound,
		}
	}
	user := users.Data[0]

	var streams helixPage[HelixStream]
	if rec := h.getJSON(ctx, "/streams?user_login="+url.QueryEscape(name), &streams); rec != nil {
		return rec
	}
	if len(streams.Data) == 0 || streams.Data[0].Type != "live" {
		return models.OfflineRecord{}
	}
	stream := streams.Data[0]

	displayName := user.DisplayName
	if displayName == "" {
		displayName = stream.UserName
	}

	return models.LiveRecord{
		Game:        stream.GameName,
		Title:       stream.Title,
		Viewers:     stream.ViewerCount,
		DisplayName: displayName,
		ProfileURL:  twitchWebURL + user.Login,
		LogoURL:     user.ProfileImageURL,
		Views:       user.ViewCount,
	}
}

// getJSON decodes a 2xx body into out, or returns the error record describing the failure.
func (h *HelixService) getJSON(ctx context.Context, path string, out any) models.Record {
	resp, err := h.api.Get(ctx, path)
	if err != nil {
		return requestFailed(err)
	}

	if !resp.OK() {
		if rec, ok := parseAPIError(resp.StatusCode, resp.Body); ok {
			if rec.Message == "" {
				rec.Message = http.StatusText(resp.StatusCode)
			}
			return rec
		}
		return failedStatus(resp.StatusCode)
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return models.ErrorRecord{Message: MalformedResponse, StatusCode: resp.StatusCode}
	}
	return nil
}
