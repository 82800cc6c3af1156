package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/desertthunder/streamgrid/internal/models"
)

// KrakenService implements [StatusFetcher] against a Kraken (v5) compatible proxy.
type KrakenService struct {
	api *APIService
}

// NewKrakenService creates a Kraken proxy client for baseURL.
func NewKrakenService(baseURL string, client *http.Client) *KrakenService {
	return &KrakenService{api: NewAPIService(baseURL, client)}
}

func (k *KrakenService) Name() string {
	return "kraken"
}

// API exposes the underlying raw client.
func (k *KrakenService) API() *APIService {
	return k.api
}

// FetchStatus requests /streams/{name} and parses the payload.
func (k *KrakenService) FetchStatus(ctx context.Context, name string) models.Record {
	resp, err := k.api.Get(ctx, "/streams/"+url.PathEscape(name))
	if err != nil {
		return requestFailed(err)
	}
	return ParseKrakenResponse(resp.StatusCode, resp.Body)
}
