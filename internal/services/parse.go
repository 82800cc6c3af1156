package services

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/desertthunder/streamgrid/internal/models"
)

// MalformedResponse is the message of an error record built from a payload
// that does not have the expected shape.
const MalformedResponse = "malformed response"

// apiError is the error body shared by the Kraken proxy and Helix.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type krakenStream struct {
	Game        string         `json:"game"`
	Viewers     int            `json:"viewers"`
	VideoHeight int            `json:"video_height"`
	AverageFPS  float64        `json:"average_fps"`
	Channel     *krakenChannel `json:"channel"`
}

type krakenChannel struct {
	Status      string          `json:"status"`
	DisplayName string          `json:"display_name"`
	Name        string          `json:"name"`
	Game        string          `json:"game"`
	Delay       json.RawMessage `json:"delay"`
	Logo        string          `json:"logo"`
	URL         string          `json:"url"`
	Views       int             `json:"views"`
}

// ParseKrakenResponse validates a /streams/{name} payload and converts it to
// a record. An error body becomes an error record, a null stream an offline
// record and a stream with a channel a live record. Anything else is
// downgraded to an error record.
func ParseKrakenResponse(statusCode int, body []byte) models.Record {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return failedStatus(statusCode)
	}

	if rec, ok := parseAPIError(statusCode, body); ok {
		return rec
	}

	raw, hasStream := fields["stream"]
	if !hasStream {
		return failedStatus(statusCode)
	}

	if isNull(raw) {
		return models.OfflineRecord{}
	}

	var stream krakenStream
	if err := json.Unmarshal(raw, &stream); err != nil || stream.Channel == nil {
		return models.ErrorRecord{Message: MalformedResponse, StatusCode: statusCode}
	}

	ch := stream.Channel
	game := ch.Game
	if game == "" {
		game = stream.Game
	}
	displayName := ch.DisplayName
	if displayName == "" {
		displayName = ch.Name
	}

	return models.LiveRecord{
		Game:        game,
		Title:       ch.Status,
		Viewers:     stream.Viewers,
		FrameRate:   stream.AverageFPS,
		VideoHeight: stream.VideoHeight,
		DisplayName: displayName,
		ProfileURL:  ch.URL,
		LogoURL:     ch.Logo,
		Views:       ch.Views,
		Delay:       delayText(ch.Delay),
	}
}

// parseAPIError extracts an error record from an error-shaped body.
func parseAPIError(statusCode int, body []byte) (models.ErrorRecord, bool) {
	var e apiError
	if err := json.Unmarshal(body, &e); err != nil || e.Error == "" {
		return models.ErrorRecord{}, false
	}

	code := e.Status
	if code == 0 {
		code = statusCode
	}

	return models.ErrorRecord{Message: e.Message, StatusCode: code}, true
}

// failedStatus reports a non-2xx status by its text, or a malformed payload otherwise.
func failedStatus(statusCode int) models.ErrorRecord {
	if statusCode < 200 || statusCode >= 300 {
		msg := http.StatusText(statusCode)
		if msg == "" {
			msg = "status " + strconv.Itoa(statusCode)
		}
		return models.ErrorRecord{Message: msg, StatusCode: statusCode}
	}
	return models.ErrorRecord{Message: MalformedResponse, StatusCode: statusCode}
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// delayText renders the channel delay, which the API reports as null, a number or a string.
func delayText(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
