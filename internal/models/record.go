package models

import "fmt"

// Status enumerates the three record variants.
type Status int

const (
	StatusOffline Status = iota
	StatusLive
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLive:
		return "live"
	case StatusError:
		return "error"
	default:
		return "offline"
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "live":
		*s = StatusLive
	case "offline":
		*s = StatusOffline
	case "error":
		*s = StatusError
	default:
		return fmt.Errorf("unknown status %q", text)
	}
	return nil
}

// Record is the last-known status of a channel.
type Record interface {
	Status() Status
	isRecord()
}

// LiveRecord describes a channel that is currently streaming.
type LiveRecord struct {
	Game        string  `json:"game"`
	Title       string  `json:"title"` // channel status text set by the broadcaster
	Viewers     int     `json:"viewers"`
	FrameRate   float64 `json:"frame_rate"`
	VideoHeight int     `json:"video_height"`
	DisplayName string  `json:"display_name"`
	ProfileURL  string  `json:"profile_url"`
	LogoURL     string  `json:"logo_url"`
	Views       int     `json:"views"`
	Delay       string  `json:"delay,omitempty"`
}

// OfflineRecord describes a channel that exists but is not streaming.
type OfflineRecord struct{}

// ErrorRecord describes a failed status lookup.
type ErrorRecord struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

var (
	_ Record = LiveRecord{}
	_ Record = OfflineRecord{}
	_ Record = ErrorRecord{}
)

func (LiveRecord) Status() Status    { return StatusLive }
func (OfflineRecord) Status() Status { return StatusOffline }
func (ErrorRecord) Status() Status   { return StatusError }

func (LiveRecord) isRecord()    {}
func (OfflineRecord) isRecord() {}
func (ErrorRecord) isRecord()   {}

// Error implements error so an ErrorRecord can be logged or wrapped directly.
func (e ErrorRecord) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// StatusOf returns the variant of r; nil counts as offline.
func StatusOf(r Record) Status {
	if r == nil {
		return StatusOffline
	}
	return r.Status()
}

// Snapshot is the serializable form of a named record.
type Snapshot struct {
	Name   string       `json:"name"`
	Status Status       `json:"status"`
	Live   *LiveRecord  `json:"live,omitempty"`
	Error  *ErrorRecord `json:"error,omitempty"`
}

// NewSnapshot flattens r into a [Snapshot] tagged with its status.
func NewSnapshot(name string, r Record) Snapshot {
	s := Snapshot{Name: name, Status: StatusOf(r)}
	switch rec := r.(type) {
	case LiveRecord:
		s.Live = &rec
	case ErrorRecord:
		s.Error = &rec
	}
	return s
}
