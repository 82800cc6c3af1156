package tasks

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/streamgrid/internal/models"
	"github.com/desertthunder/streamgrid/internal/repositories"
	"github.com/desertthunder/streamgrid/internal/shared"
	tu "github.com/desertthunder/streamgrid/internal/testing"
	"github.com/desertthunder/streamgrid/internal/view"
)

type memStore struct {
	mu      sync.Mutex
	names   []string
	ok      bool
	saves   int
	saveErr error
}

func (m *memStore) LoadNames() ([]string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.names...), m.ok
}

func (m *memStore) SaveNames(names []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.names = append([]string(nil), names...)
	m.ok = true
	return nil
}

func newTestTracker(store NameStore, fetcher *tu.MockFetcher) *Tracker {
	if fetcher == nil {
		fetcher = tu.NewMockFetcher(nil)
	}
	return NewTracker(TrackerOpts{
		Engine:   NewEngine(fetcher, 0),
		Store:    store,
		Defaults: []string{"ESL_SC2", "freecodecamp"},
	})
}

func TestTracker(t *testing.T) {
	t.Run("Load Defaults Without Store", func(t *testing.T) {
		tr := newTestTracker(nil, nil)

		if tr.Load() {
			t.Error("expected defaults to be used")
		}
		if got := tr.Names(); !reflect.DeepEqual(got, []string{"esl_sc2", "freecodecamp"}) {
			t.Errorf("unexpected names %v", got)
		}
	})

	t.Run("Load Defaults When Nothing Persisted", func(t *testing.T) {
		tr := newTestTracker(&memStore{}, nil)

		if tr.Load() {
			t.Error("expected defaults to be used")
		}
		if tr.Len() != 2 {
			t.Errorf("expected 2 channels, got %d", tr.Len())
		}
	})

	t.Run("Load Persisted", func(t *testing.T) {
		tr := newTestTracker(&memStore{names: []string{"x", "y"}, ok: true}, nil)

		if !tr.Load() {
			t.Error("expected persisted names to be used")
		}
		if got := tr.Names(); !reflect.DeepEqual(got, []string{"x", "y"}) {
			t.Errorf("unexpected names %v", got)
		}
	})

	t.Run("Add Persists", func(t *testing.T) {
		store := &memStore{}
		tr := newTestTracker(store, nil)
		tr.Load()

		added := tr.Add(" NewOne ", "freecodecamp", "")
		if !reflect.DeepEqual(added, []string{"newone"}) {
			t.Errorf("expected only newone added, got %v", added)
		}
		if !reflect.DeepEqual(store.names, []string{"esl_sc2", "freecodecamp", "newone"}) {
			t.Errorf("unexpected persisted names %v", store.names)
		}
	})

	t.Run("Add Duplicate Does Not Persist", func(t *testing.T) {
		store := &memStore{}
		tr := newTestTracker(store, nil)
		tr.Load()

		tr.Add("ESL_SC2")
		if store.saves != 0 {
			t.Errorf("expected no save for a no-op add, got %d", store.saves)
		}
	})

	t.Run("Remove", func(t *testing.T) {
		store := &memStore{}
		tr := newTestTracker(store, nil)
		tr.Load()

		if !tr.Remove("ESL_SC2") {
			t.Error("expected remove to succeed")
		}
		if tr.Remove("ESL_SC2") {
			t.Error("expected second remove to be a no-op")
		}
		if store.saves != 1 {
			t.Errorf("expected one save, got %d", store.saves)
		}
	})

	t.Run("Import", func(t *testing.T) {
		tr := newTestTracker(nil, nil)

		added, err := tr.Import(strings.NewReader("X\nY\n\nZ  \n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(added, []string{"x", "y", "z"}) {
			t.Errorf("unexpected added names %v", added)
		}
		if !reflect.DeepEqual(tr.Names(), []string{"x", "y", "z"}) {
			t.Errorf("unexpected names %v", tr.Names())
		}
	})

	t.Run("Import Read Failure", func(t *testing.T) {
		tr := newTestTracker(nil, nil)

		if _, err := tr.Import(&tu.FReader{}); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Reset", func(t *testing.T) {
		store := &memStore{names: []string{"custom"}, ok: true}
		tr := newTestTracker(store, nil)
		tr.Load()

		tr.Reset()
		if !reflect.DeepEqual(tr.Names(), []string{"esl_sc2", "freecodecamp"}) {
			t.Errorf("unexpected names after reset %v", tr.Names())
		}
		if !reflect.DeepEqual(store.names, []string{"esl_sc2", "freecodecamp"}) {
			t.Errorf("reset should persist defaults, got %v", store.names)
		}
	})

	t.Run("Save Failure Is Not Fatal", func(t *testing.T) {
		store := &memStore{saveErr: errors.New("disk full")}
		tr := newTestTracker(store, nil)

		if added := tr.Add("a"); len(added) != 1 {
			t.Errorf("expected add to succeed despite save failure, got %v", added)
		}
		if !tr.Remove("a") {
			t.Error("expected remove to succeed despite save failure")
		}
	})

	t.Run("Filter", func(t *testing.T) {
		tr := newTestTracker(nil, nil)

		if tr.Filter().OnlineOnly {
			t.Error("filter should start off")
		}
		if !tr.ToggleFilter().OnlineOnly || !tr.Filter().OnlineOnly {
			t.Error("toggle should turn the filter on")
		}
		tr.SetFilter(view.Filter{})
		if tr.Filter().OnlineOnly {
			t.Error("SetFilter should replace the filter")
		}
	})

	t.Run("Refresh And Items", func(t *testing.T) {
		fetcher := tu.NewMockFetcher(map[string]models.Record{
			"freecodecamp": models.LiveRecord{DisplayName: "FreeCodeCamp"},
		})
		tr := newTestTracker(nil, fetcher)
		tr.Load()

		summary, err := tr.Refresh(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Live != 1 || summary.Offline != 1 {
			t.Errorf("unexpected summary %+v", summary)
		}

		items := tr.Items()
		if len(items) != 2+view.FillerCount {
			t.Fatalf("expected %d items, got %d", 2+view.FillerCount, len(items))
		}
		if items[1].Label != "FreeCodeCamp" || items[1].Colors != view.DefaultPalette[0] {
			t.Errorf("unexpected live item %+v", items[1])
		}

		tr.ToggleFilter()
		if got := len(view.RealItems(tr.Items())); got != 1 {
			t.Errorf("expected 1 real item with filter on, got %d", got)
		}

		when, last := tr.LastRefresh()
		if when.IsZero() || last.Live != 1 {
			t.Errorf("expected last refresh recorded, got %v %+v", when, last)
		}
	})

	t.Run("Snapshots", func(t *testing.T) {
		fetcher := tu.NewMockFetcher(map[string]models.Record{
			"esl_sc2": models.ErrorRecord{Message: "Not Found", StatusCode: 404},
		})
		tr := newTestTracker(nil, fetcher)
		tr.Load()
		tr.Refresh(context.Background(), nil)

		snaps := tr.Snapshots()
		if len(snaps) != 2 {
			t.Fatalf("expected 2 snapshots, got %d", len(snaps))
		}
		if snaps[0].Status != models.StatusError || snaps[0].Error == nil || snaps[0].Error.StatusCode != 404 {
			t.Errorf("unexpected snapshot %+v", snaps[0])
		}
	})

	t.Run("Removal During Refresh Drops Result", func(t *testing.T) {
		fetcher := tu.NewMockFetcher(map[string]models.Record{
			"esl_sc2":      models.LiveRecord{DisplayName: "ESL"},
			"freecodecamp": models.LiveRecord{DisplayName: "FCC"},
		})
		fetcher.Delay = 50 * time.Millisecond
		tr := newTestTracker(nil, fetcher)
		tr.Load()

		done := make(chan RefreshResult)
		go func() {
			summary, _ := tr.Refresh(context.Background(), nil)
			done <- summary
		}()

		time.Sleep(10 * time.Millisecond)
		if !tr.Remove("esl_sc2") {
			t.Fatal("remove should not wait for the refresh")
		}

		summary := <-done
		if summary.Dropped != 1 || summary.Live != 1 {
			t.Errorf("expected one dropped and one live, got %+v", summary)
		}
		if tr.Len() != 1 {
			t.Errorf("removed channel must not be re-inserted, have %v", tr.Names())
		}
	})

	t.Run("Refresh Without Engine", func(t *testing.T) {
		tr := NewTracker(TrackerOpts{})
		if _, err := tr.Refresh(context.Background(), nil); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestTrackerPersistenceRoundTrip(t *testing.T) {
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	store := repositories.NewNameStore(db)
	if !store.Available() {
		t.Fatal("expected store to be available")
	}

	first := newTestTracker(store, nil)
	first.Load()
	first.Add("robotcaleb", "noobs2ninjas")
	first.Remove("esl_sc2")

	second := newTestTracker(store, nil)
	if !second.Load() {
		t.Fatal("expected second tracker to load persisted names")
	}
	if !reflect.DeepEqual(first.Names(), second.Names()) {
		t.Errorf("expected %v, got %v", first.Names(), second.Names())
	}
}
