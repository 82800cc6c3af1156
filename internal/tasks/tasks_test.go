package tasks

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/desertthunder/streamgrid/internal/models"
	"github.com/desertthunder/streamgrid/internal/registry"
	"github.com/desertthunder/streamgrid/internal/shared"
	tu "github.com/desertthunder/streamgrid/internal/testing"
)

// reverseFetcher answers later names first so completion order differs from input order.
type reverseFetcher struct {
	n int
}

func (f *reverseFetcher) FetchStatus(ctx context.Context, name string) models.Record {
	var i int
	fmt.Sscanf(name, "c%d", &i)
	time.Sleep(time.Duration(f.n-i) * 2 * time.Millisecond)
	return models.LiveRecord{DisplayName: name, Viewers: i}
}

func (f *reverseFetcher) Name() string { return "reverse" }

type nilFetcher struct{}

func (nilFetcher) FetchStatus(context.Context, string) models.Record { return nil }
func (nilFetcher) Name() string                                      { return "nil" }

func TestEngine(t *testing.T) {
	t.Run("Fetch Without Backend", func(t *testing.T) {
		_, err := NewEngine(nil, 0).Fetch(context.Background(), []string{"a"}, nil)
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("Fetch Preserves Input Order", func(t *testing.T) {
		names := make([]string, 10)
		for i := range names {
			names[i] = fmt.Sprintf("c%d", i)
		}

		results, err := NewEngine(&reverseFetcher{n: len(names)}, 0).Fetch(context.Background(), names, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for i, res := range results {
			if res.Name != names[i] {
				t.Errorf("result %d: expected %s, got %s", i, names[i], res.Name)
			}
			if rec := res.Record.(models.LiveRecord); rec.Viewers != i {
				t.Errorf("result %d carries record for %d", i, rec.Viewers)
			}
		}
	})

	t.Run("Fetch Settles All", func(t *testing.T) {
		fetcher := tu.NewMockFetcher(map[string]models.Record{
			"a": models.ErrorRecord{Message: "boom", StatusCode: 500},
			"b": models.LiveRecord{DisplayName: "B"},
		})

		results, err := NewEngine(fetcher, 0).Fetch(context.Background(), []string{"a", "b", "c"}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 3 {
			t.Fatalf("expected 3 results, got %d", len(results))
		}

		want := []models.Status{models.StatusError, models.StatusLive, models.StatusOffline}
		for i, res := range results {
			if got := models.StatusOf(res.Record); got != want[i] {
				t.Errorf("result %d: expected %s, got %s", i, want[i], got)
			}
		}
	})

	t.Run("Fetch Respects Concurrency Limit", func(t *testing.T) {
		fetcher := tu.NewMockFetcher(nil)
		fetcher.Delay = 10 * time.Millisecond

		names := make([]string, 12)
		for i := range names {
			names[i] = fmt.Sprintf("n%d", i)
		}

		if _, err := NewEngine(fetcher, 3).Fetch(context.Background(), names, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if peak := fetcher.PeakConcurrency(); peak > 3 {
			t.Errorf("expected at most 3 concurrent lookups, saw %d", peak)
		}
		if len(fetcher.Calls()) != len(names) {
			t.Errorf("expected %d calls, got %d", len(names), len(fetcher.Calls()))
		}
	})

	t.Run("Nil Record Counts As Offline", func(t *testing.T) {
		results, _ := NewEngine(nilFetcher{}, 0).Fetch(context.Background(), []string{"a"}, nil)

		if _, ok := results[0].Record.(models.OfflineRecord); !ok {
			t.Errorf("expected OfflineRecord, got %#v", results[0].Record)
		}
	})

	t.Run("Fetch Empty", func(t *testing.T) {
		results, err := NewEngine(tu.NewMockFetcher(nil), 0).Fetch(context.Background(), nil, nil)
		if err != nil || len(results) != 0 {
			t.Errorf("expected no results and no error, got %v %v", results, err)
		}
	})

	t.Run("Apply Counts And Drops", func(t *testing.T) {
		reg := registry.FromNames([]string{"a", "b", "c"})
		results := []Result{
			{Name: "a", Record: models.LiveRecord{}},
			{Name: "b", Record: models.OfflineRecord{}},
			{Name: "c", Record: models.ErrorRecord{Message: "x"}},
			{Name: "gone", Record: models.LiveRecord{}},
		}

		summary := NewEngine(nil, 0).Apply(reg, results)

		if summary.Live != 1 || summary.Offline != 1 || summary.Errored != 1 || summary.Dropped != 1 {
			t.Errorf("unexpected summary %+v", summary)
		}
		if summary.Total() != 3 {
			t.Errorf("expected total 3, got %d", summary.Total())
		}
		if reg.Has("gone") {
			t.Error("apply must not insert unknown names")
		}
	})

	t.Run("Refresh", func(t *testing.T) {
		fetcher := tu.NewMockFetcher(map[string]models.Record{
			"live": models.LiveRecord{DisplayName: "Live"},
		})
		reg := registry.FromNames([]string{"live", "idle"})

		summary, err := NewEngine(fetcher, 2).Refresh(context.Background(), reg, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Live != 1 || summary.Offline != 1 {
			t.Errorf("unexpected summary %+v", summary)
		}

		rec, _ := reg.Get("live")
		if models.StatusOf(rec) != models.StatusLive {
			t.Errorf("expected live record applied, got %#v", rec)
		}
		if !reflect.DeepEqual(reg.NamesInOrder(), []string{"live", "idle"}) {
			t.Errorf("refresh must not reorder the registry")
		}
	})

	t.Run("Progress", func(t *testing.T) {
		progress := make(chan ProgressUpdate, 32)
		reg := registry.FromNames([]string{"a", "b"})

		if _, err := NewEngine(tu.NewMockFetcher(nil), 0).Refresh(context.Background(), reg, progress); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		close(progress)

		phases := map[Phase]int{}
		var last ProgressUpdate
		for u := range progress {
			phases[u.Phase]++
			last = u
		}

		if phases[FetchStart] != 1 || phases[FetchChannel] != 2 || phases[ApplyResults] != 1 || phases[RefreshDone] != 1 {
			t.Errorf("unexpected phase counts %v", phases)
		}
		if last.Phase != RefreshDone {
			t.Errorf("expected last update to be refresh_done, got %s", last.Phase)
		}
		if _, ok := last.Data.(RefreshResult); !ok {
			t.Errorf("expected RefreshResult data, got %T", last.Data)
		}
	})

	t.Run("Progress Never Blocks", func(t *testing.T) {
		progress := make(chan ProgressUpdate) // unbuffered, never read
		reg := registry.FromNames([]string{"a", "b", "c"})

		done := make(chan struct{})
		go func() {
			NewEngine(tu.NewMockFetcher(nil), 0).Refresh(context.Background(), reg, progress)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("refresh blocked on progress channel")
		}
	})
}

func TestPhaseString(t *testing.T) {
	tc := map[Phase]string{
		FetchStart:   "fetch_start",
		FetchChannel: "fetch_channel",
		ApplyResults: "apply_results",
		RefreshDone:  "refresh_done",
		Phase(99):    "",
	}
	for p, want := range tc {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", p, got, want)
		}
	}
}
