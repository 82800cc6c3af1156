package tasks

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/desertthunder/streamgrid/internal/metrics"
	"github.com/desertthunder/streamgrid/internal/models"
	"github.com/desertthunder/streamgrid/internal/registry"
	"github.com/desertthunder/streamgrid/internal/services"
	"github.com/desertthunder/streamgrid/internal/shared"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one channel lookup.
type Result struct {
	Name   string
	Record models.Record
}

// RefreshResult summarizes a refresh.
type RefreshResult struct {
	Live     int           // Channels now live
	Offline  int           // Channels now offline
	Errored  int           // Channels whose lookup failed
	Dropped  int           // Results for channels removed mid-refresh
	Duration time.Duration // Wall time of fetch and apply
}

// Total returns the number of results applied.
func (r RefreshResult) Total() int {
	return r.Live + r.Offline + r.Errored
}

// Engine fans status lookups out over a [services.StatusFetcher].
type Engine struct {
	fetcher        services.StatusFetcher
	maxConcurrency int
}

// NewEngine creates an Engine. maxConcurrency <= 0 means unlimited.
func NewEngine(fetcher services.StatusFetcher, maxConcurrency int) *Engine {
	return &Engine{fetcher: fetcher, maxConcurrency: maxConcurrency}
}

// Backend returns the fetcher name, or "" when none is configured.
func (e *Engine) Backend() string {
	if e == nil || e.fetcher == nil {
		return ""
	}
	return e.fetcher.Name()
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Fetch requests every name concurrently and waits for all of them.
//
// Each goroutine stores its record by index and returns nil, so Wait is an
// all-settled join and the output order equals the input order.
func (e *Engine) Fetch(ctx context.Context, names []string, progress chan<- ProgressUpdate) ([]Result, error) {
	if e == nil || e.fetcher == nil {
		return nil, fmt.Errorf("%w: no status backend configured", shared.ErrServiceUnavailable)
	}

	total := len(names)
	results := make([]Result, total)
	e.sendProgress(progress, fetchStartUpdate(total, e.fetcher.Name()))

	g, gctx := errgroup.WithContext(ctx)
	if e.maxConcurrency > 0 {
		g.SetLimit(e.maxConcurrency)
	}

	var done atomic.Int32
	for i, name := range names {
		g.Go(func() error {
			rec := e.fetcher.FetchStatus(gctx, name)
			if rec == nil {
				rec = models.OfflineRecord{}
			}
			results[i] = Result{Name: name, Record: rec}
			metrics.IncrementFetch(rec.Status().String())

			e.sendProgress(progress, fetchChannelUpdate(int(done.Add(1)), total, results[i]))
			return nil
		})
	}

	_ = g.Wait()
	return results, nil
}

// Apply writes results into reg and counts the outcome. Results for names
// that are no longer registered are dropped.
func (e *Engine) Apply(reg *registry.Registry, results []Result) RefreshResult {
	var summary RefreshResult
	for _, res := range results {
		if !reg.ApplyResult(res.Name, res.Record) {
			summary.Dropped++
			continue
		}
		switch models.StatusOf(res.Record) {
		case models.StatusLive:
			summary.Live++
		case models.StatusError:
			summary.Errored++
		default:
			summary.Offline++
		}
	}

	if summary.Dropped > 0 {
		metrics.AddDropped(summary.Dropped)
	}
	return summary
}

// Refresh fetches every name in reg and applies the results.
// reg must not be mutated by anyone else until Refresh returns.
func (e *Engine) Refresh(ctx context.Context, reg *registry.Registry, progress chan<- ProgressUpdate) (RefreshResult, error) {
	start := time.Now()

	results, err := e.Fetch(ctx, reg.NamesInOrder(), progress)
	if err != nil {
		return RefreshResult{}, err
	}

	e.sendProgress(progress, applyResultsUpdate(len(results)))
	summary := e.Apply(reg, results)
	summary.Duration = time.Since(start)

	metrics.ObserveRefresh(summary.Duration.Seconds())
	e.sendProgress(progress, refreshDoneUpdate(summary))
	return summary, nil
}
