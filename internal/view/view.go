package view

import (
	"fmt"
	"strconv"

	"github.com/desertthunder/streamgrid/internal/models"
	"github.com/desertthunder/streamgrid/internal/registry"
)

const (
	// FillerCount is the number of empty slots appended after the real items.
	FillerCount = 4
	// DefaultErrorMessage labels an error record that carries no message.
	DefaultErrorMessage = "Unidentified error"
	// NoChannelsMessage labels the placeholder shown when nothing else is.
	NoChannelsMessage = "No channels to show"
)

// Kind identifies what a [DisplayItem] represents.
type Kind int

const (
	KindLive Kind = iota
	KindOffline
	KindError
	KindPlaceholder
	KindFiller
)

func (k Kind) String() string {
	switch k {
	case KindLive:
		return "live"
	case KindOffline:
		return "offline"
	case KindError:
		return "error"
	case KindPlaceholder:
		return "placeholder"
	default:
		return "filler"
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *Kind) UnmarshalText(text []byte) error {
	for _, c := range []Kind{KindLive, KindOffline, KindError, KindPlaceholder, KindFiller} {
		if c.String() == string(text) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown item kind %q", text)
}

// Filter is the explicit filter state threaded into [Render].
type Filter struct {
	OnlineOnly bool `json:"online_only"`
}

// Toggle returns the filter with OnlineOnly flipped.
func (f Filter) Toggle() Filter {
	return Filter{OnlineOnly: !f.OnlineOnly}
}

// Detail is one heading/value line of a live item's expandable section.
type Detail struct {
	Heading string `json:"heading"`
	Value   string `json:"value"`
}

// DisplayItem is one slot in the rendered grid.
type DisplayItem struct {
	Kind       Kind      `json:"kind"`
	Name       string    `json:"name,omitempty"`
	Label      string    `json:"label"`
	Colors     ColorPair `json:"colors"`
	Details    []Detail  `json:"details,omitempty"`
	LogoURL    string    `json:"logo_url,omitempty"`
	ProfileURL string    `json:"profile_url,omitempty"`
	Toggleable bool      `json:"toggleable"`
	Removable  bool      `json:"removable"`
}

// IsReal reports whether the item stands for a tracked channel.
func (d DisplayItem) IsReal() bool {
	return d.Kind == KindLive || d.Kind == KindOffline || d.Kind == KindError
}

// Render maps entries to display items.
//
// Live items are always emitted and take palette colors round-robin in entry
// order. Offline and error items are emitted only when the filter is off.
// When nothing was emitted a single placeholder is added, and every result
// ends with [FillerCount] filler items.
func Render(entries []registry.Entry, filter Filter, palette Palette) []DisplayItem {
	items := make([]DisplayItem, 0, len(entries)+FillerCount+1)
	live := 0

	for _, e := range entries {
		switch rec := e.Record.(type) {
		case models.LiveRecord:
			items = append(items, liveItem(e.Name, rec, palette.At(live)))
			live++
		case models.ErrorRecord:
			if filter.OnlineOnly {
				continue
			}
			label := rec.Message
			if label == "" {
				label = DefaultErrorMessage
			}
			items = append(items, DisplayItem{
				Kind:      KindError,
				Name:      e.Name,
				Label:     label,
				Colors:    ErrorColors,
				Removable: true,
			})
		default:
			if filter.OnlineOnly {
				continue
			}
			items = append(items, DisplayItem{
				Kind:      KindOffline,
				Name:      e.Name,
				Label:     e.Name,
				Colors:    OfflineColors,
				Removable: true,
			})
		}
	}

	if len(items) == 0 {
		items = append(items, DisplayItem{
			Kind:   KindPlaceholder,
			Label:  NoChannelsMessage,
			Colors: OfflineColors,
		})
	}

	for range FillerCount {
		items = append(items, DisplayItem{Kind: KindFiller, Colors: FillerColors})
	}

	return items
}

// RenderRegistry renders reg with [DefaultPalette].
func RenderRegistry(reg *registry.Registry, filter Filter) []DisplayItem {
	return Render(reg.Entries(), filter, DefaultPalette)
}

// RealItems drops placeholder and filler items.
func RealItems(items []DisplayItem) []DisplayItem {
	out := make([]DisplayItem, 0, len(items))
	for _, it := range items {
		if it.IsReal() {
			out = append(out, it)
		}
	}
	return out
}

func liveItem(name string, rec models.LiveRecord, colors ColorPair) DisplayItem {
	label := rec.DisplayName
	if label == "" {
		label = name
	}

	return DisplayItem{
		Kind:   KindLive,
		Name:   name,
		Label:  label,
		Colors: colors,
		Details: []Detail{
			{Heading: "Game", Value: orDash(rec.Game)},
			{Heading: "Status", Value: orDash(rec.Title)},
			{Heading: "Viewers", Value: strconv.Itoa(rec.Viewers)},
			{Heading: "Video", Value: VideoLabel(rec)},
			{Heading: "Views", Value: strconv.Itoa(rec.Views)},
			{Heading: "Delay", Value: delayLabel(rec.Delay)},
		},
		LogoURL:    rec.LogoURL,
		ProfileURL: rec.ProfileURL,
		Toggleable: true,
		Removable:  true,
	}
}

// VideoLabel formats resolution and frame rate as "864px, 30fps". An unknown
// half renders as "-", and "-" alone when neither is known.
func VideoLabel(rec models.LiveRecord) string {
	if rec.VideoHeight <= 0 && rec.FrameRate <= 0 {
		return "-"
	}

	height, fps := "-", "-"
	if rec.VideoHeight > 0 {
		height = strconv.Itoa(rec.VideoHeight) + "px"
	}
	if rec.FrameRate > 0 {
		fps = strconv.FormatFloat(rec.FrameRate, 'f', -1, 64) + "fps"
	}
	return height + ", " + fps
}

// delayLabel treats a zero delay like a missing one.
func delayLabel(delay string) string {
	if delay == "0" {
		return "-"
	}
	return orDash(delay)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
