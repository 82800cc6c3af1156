package tasks

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/streamgrid/internal/formatter"
	"github.com/desertthunder/streamgrid/internal/metrics"
	"github.com/desertthunder/streamgrid/internal/models"
	"github.com/desertthunder/streamgrid/internal/registry"
	"github.com/desertthunder/streamgrid/internal/shared"
	"github.com/desertthunder/streamgrid/internal/view"
)

// NameStore persists the ordered channel list.
type NameStore interface {
	LoadNames() ([]string, bool)
	SaveNames(names []string) error
}

// TrackerOpts contains the collaborators of a [Tracker].
type TrackerOpts struct {
	Engine   *Engine
	Store    NameStore    // nil disables persistence
	Defaults []string     // names used when nothing is persisted
	Palette  view.Palette // defaults to [view.DefaultPalette]
	Logger   *log.Logger
}

// Tracker owns the registry and filter state behind every front end.
//
// All methods are safe for concurrent use. Status lookups run without the
// lock on a snapshot of the names, so a channel removed while a refresh is in
// flight simply has its result dropped.
type Tracker struct {
	mu       sync.Mutex
	reg      *registry.Registry
	filter   view.Filter
	palette  view.Palette
	engine   *Engine
	store    NameStore
	defaults []string
	logger   *log.Logger

	lastRefresh time.Time
	lastResult  RefreshResult
}

// NewTracker creates an empty Tracker. Call [Tracker.Load] to populate it.
func NewTracker(opts TrackerOpts) *Tracker {
	if opts.Palette == nil {
		opts.Palette = view.DefaultPalette
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}

	return &Tracker{
		reg:      registry.New(),
		palette:  opts.Palette,
		engine:   opts.Engine,
		store:    opts.Store,
		defaults: append([]string(nil), opts.Defaults...),
		logger:   opts.Logger,
	}
}

// Load fills the registry from the store, or from the defaults when nothing
// usable is persisted. It reports whether persisted names were used.
func (t *Tracker) Load() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.store != nil {
		if names, ok := t.store.LoadNames(); ok {
			t.reg.LoadNames(names)
			t.logger.Debug("loaded persisted channels", "count", t.reg.Len())
			return true
		}
		t.logger.Debug("no persisted channels, using defaults")
	}

	t.reg.LoadNames(t.defaults)
	return false
}

// Add tracks each name not already tracked and returns the normalized names that were added.
func (t *Tracker) Add(names ...string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var added []string
	for _, name := range names {
		if t.reg.Add(name) {
			added = append(added, shared.NormalizeChannelName(name))
		}
	}

	if len(added) > 0 {
		t.persist()
	}
	return added
}

// Remove stops tracking name. It reports whether the name was tracked.
func (t *Tracker) Remove(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.reg.Remove(name) {
		return false
	}
	t.persist()
	return true
}

// Import adds one name per line of r, skipping blank lines.
func (t *Tracker) Import(r io.Reader) ([]string, error) {
	names, err := formatter.ParseNames(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	return t.Add(names...), nil
}

// Reset replaces the tracked names with the defaults.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.reg.LoadNames(t.defaults)
	t.persist()
}

// Filter returns the current filter.
func (t *Tracker) Filter() view.Filter {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.filter
}

// SetFilter replaces the filter.
func (t *Tracker) SetFilter(f view.Filter) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filter = f
}

// ToggleFilter flips the online-only filter and returns the new value.
func (t *Tracker) ToggleFilter() view.Filter {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filter = t.filter.Toggle()
	return t.filter
}

// Names returns the tracked names in order.
func (t *Tracker) Names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reg.NamesInOrder()
}

// Len returns the number of tracked channels.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reg.Len()
}

// Get returns the record of name.
func (t *Tracker) Get(name string) (models.Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reg.Get(name)
}

// Items renders the registry with the current filter.
func (t *Tracker) Items() []view.DisplayItem {
	t.mu.Lock()
	defer t.mu.Unlock()
	return view.Render(t.reg.Entries(), t.filter, t.palette)
}

// Snapshots returns the serializable form of every tracked channel.
func (t *Tracker) Snapshots() []models.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := t.reg.Entries()
	out := make([]models.Snapshot, len(entries))
	for i, e := range entries {
		out[i] = models.NewSnapshot(e.Name, e.Record)
	}
	return out
}

// FetchAll looks up every tracked channel without holding the lock.
// Pass the results to [Tracker.ApplyResults].
func (t *Tracker) FetchAll(ctx context.Context, progress chan<- ProgressUpdate) ([]Result, error) {
	return t.engine.Fetch(ctx, t.Names(), progress)
}

// ApplyResults stores results, dropping any whose channel is no longer tracked.
func (t *Tracker) ApplyResults(results []Result, elapsed time.Duration) RefreshResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	summary := t.engine.Apply(t.reg, results)
	summary.Duration = elapsed

	t.lastRefresh = time.Now()
	t.lastResult = summary
	t.updateGauge()

	if summary.Dropped > 0 {
		t.logger.Debug("dropped results for removed channels", "count", summary.Dropped)
	}
	return summary
}

// Refresh fetches and applies the status of every tracked channel.
func (t *Tracker) Refresh(ctx context.Context, progress chan<- ProgressUpdate) (RefreshResult, error) {
	start := time.Now()

	results, err := t.FetchAll(ctx, progress)
	if err != nil {
		return RefreshResult{}, err
	}

	t.engine.sendProgress(progress, applyResultsUpdate(len(results)))
	summary := t.ApplyResults(results, time.Since(start))

	metrics.ObserveRefresh(summary.Duration.Seconds())
	t.engine.sendProgress(progress, refreshDoneUpdate(summary))

	t.logger.Info("refresh complete",
		"live", summary.Live,
		"offline", summary.Offline,
		"errors", summary.Errored,
		"duration", summary.Duration.Round(time.Millisecond),
	)
	return summary, nil
}

// LastRefresh returns when results were last applied and their summary.
func (t *Tracker) LastRefresh() (time.Time, RefreshResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastRefresh, t.lastResult
}

// Backend returns the configured status backend name.
func (t *Tracker) Backend() string {
	return t.engine.Backend()
}

// persist saves the names best-effort. Callers hold t.mu.
func (t *Tracker) persist() {
	if t.store == nil {
		return
	}
	if err := t.store.SaveNames(t.reg.NamesInOrder()); err != nil {
		t.logger.Warn("failed to persist channels", "error", err)
	}
}

// updateGauge refreshes the tracked-channel gauge. Callers hold t.mu.
func (t *Tracker) updateGauge() {
	var live, offline, errored int
	for _, e := range t.reg.Entries() {
		switch models.StatusOf(e.Record) {
		case models.StatusLive:
			live++
		case models.StatusError:
			errored++
		default:
			offline++
		}
	}
	metrics.SetTracked(live, offline, errored)
}
