package tasks

import (
	"fmt"

	"github.com/desertthunder/streamgrid/internal/models"
)

// ProgressUpdate represents a progress event during a refresh.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data (a [Result] for FetchChannel)
}

// Operation phase enumeration
type Phase int

const (
	FetchStart Phase = iota
	FetchChannel
	ApplyResults
	RefreshDone
)

func (p Phase) String() string {
	switch p {
	case FetchStart:
		return "fetch_start"
	case FetchChannel:
		return "fetch_channel"
	case ApplyResults:
		return "apply_results"
	case RefreshDone:
		return "refresh_done"
	default:
		return ""
	}
}

func fetchStartUpdate(total int, backend string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchStart,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Checking %d channels via %s...", total, backend),
	}
}

func fetchChannelUpdate(step, total int, res Result) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchChannel,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s: %s", step, total, res.Name, models.StatusOf(res.Record)),
		Data:    res,
	}
}

func applyResultsUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ApplyResults,
		Step:    total,
		Total:   total,
		Message: "Applying results...",
	}
}

func refreshDoneUpdate(r RefreshResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RefreshDone,
		Step:    r.Total(),
		Total:   r.Total(),
		Message: fmt.Sprintf("✓ %d live, %d offline, %d errors", r.Live, r.Offline, r.Errored),
		Data:    r,
	}
}
