package dashboard

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"moviedash/internal/charts"
	"moviedash/internal/fetchers"
	"moviedash/internal/models"
	"moviedash/internal/reports"
)

type genreReply struct {
	rows []models.GenreRow
	err  error
}

// fakeSource serves fixed rows unless a reply channel is queued for the
// next genre call
type fakeSource struct {
	mu           sync.Mutex
	genres       []models.GenreRow
	directors    []models.DirectorRow
	genreErr     error
	directorErr  error
	genreQueue   []chan genreReply
	genreCalls   atomic.Int32
	directorCall atomic.Int32
}

func (f *fakeSource) FetchGenres(ctx context.Context) ([]models.GenreRow, error) {
	f.mu.Lock()
	f.genreCalls.Add(1)
	if len(f.genreQueue) > 0 {
		ch := f.genreQueue[0]
		f.genreQueue = f.genreQueue[1:]
		f.mu.Unlock()
		reply := <-ch
		return reply.rows, reply.err
	}
	rows, err := f.genres, f.genreErr
	f.mu.Unlock()
	return rows, err
}

func (f *fakeSource) FetchDirectors(ctx context.Context) ([]models.DirectorRow, error) {
	f.directorCall.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.directors, f.directorErr
}

func (f *fakeSource) calls() int32 {
	return f.genreCalls.Load() + f.directorCall.Load()
}

func newSource() *fakeSource {
	return &fakeSource{
		genres: []models.GenreRow{
			{Name: "Drama", Count: 120},
			{Name: "Action", Count: 95},
		},
		directors: []models.DirectorRow{
			{Director: "A", TotalRevenue: 500_000_000},
			{Director: "B", TotalRevenue: 100_000_000},
		},
	}
}

func defaultOptions() Options {
	return Options{GenreLimit: 10, DirectorLimit: 10, MaxLimit: 50, ChartKind: models.ChartBar, SortOrder: models.SortDesc}
}

func TestInitialStateIsLoading(t *testing.T) {
	o := NewOrchestrator(newSource(), nil, defaultOptions())
	snap := o.View()
	if snap.Phase != PhaseLoading {
		t.Errorf("Expected loading phase, got %s", snap.Phase)
	}
	if snap.GenreSection.Status != StatusLoading || snap.DirectorSection.Status != StatusLoading {
		t.Error("Expected both sections to start loading")
	}
}

func TestLoadSuccess(t *testing.T) {
	src := newSource()
	o := NewOrchestrator(src, nil, defaultOptions())

	if err := o.Load(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	snap := o.View()
	if snap.Phase != PhaseReady {
		t.Errorf("Expected ready phase, got %s", snap.Phase)
	}
	if len(snap.Genres) != 2 || len(snap.Directors) != 2 {
		t.Errorf("Expected both datasets displayed, got %d/%d", len(snap.Genres), len(snap.Directors))
	}
	if snap.GenreSection.Title != "Top 10 Genres" || snap.DirectorSection.Title != "Top 10 Directors by Revenue" {
		t.Errorf("Unexpected titles %q %q", snap.GenreSection.Title, snap.DirectorSection.Title)
	}
	if src.calls() != 2 {
		t.Errorf("Expected 2 fetches, got %d", src.calls())
	}
}

func TestGenreLimitOneScenario(t *testing.T) {
	o := NewOrchestrator(newSource(), nil, defaultOptions())
	if err := o.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	o.SetGenreLimit(1)
	snap := o.View()

	if len(snap.Genres) != 1 || snap.Genres[0].Name != "Drama" || snap.Genres[0].Count != 120 {
		t.Fatalf("Expected only Drama, 120; got %+v", snap.Genres)
	}
	labels, values, currency := snap.ChartSeries(models.SectionGenres)
	if len(labels) != 1 || labels[0] != "Drama" || values[0] != 120 || currency {
		t.Errorf("Unexpected chart series %v %v %v", labels, values, currency)
	}
	want := reports.TableRow{Rank: 1, Label: "Drama", Value: "120 films", Percent: 100, BarWidth: "100.0%"}
	if len(snap.Table) != 1 || snap.Table[0] != want {
		t.Errorf("Expected table %+v, got %+v", want, snap.Table)
	}
	if snap.GenreSection.Title != "Top 1 Genres" {
		t.Errorf("Unexpected title %q", snap.GenreSection.Title)
	}
}

func TestStatsScenario(t *testing.T) {
	o := NewOrchestrator(newSource(), nil, defaultOptions())
	o.Load(context.Background())

	stats := o.View().Stats
	if stats.TopDirectorName != "A" || stats.TopDirectorRevenueDisplay != "$500M" {
		t.Errorf("Expected A / $500M, got %q / %q", stats.TopDirectorName, stats.TopDirectorRevenueDisplay)
	}
	if stats.TotalMovies != 215 || stats.TotalGenres != 2 {
		t.Errorf("Unexpected totals %+v", stats)
	}
}

func TestPartialFailure(t *testing.T) {
	src := newSource()
	src.genreErr = &fetchers.FetchError{Section: models.SectionGenres, Err: errors.New("connection refused")}
	o := NewOrchestrator(src, nil, defaultOptions())

	err := o.Load(context.Background())
	if err == nil {
		t.Fatal("Expected joined error from failing section")
	}

	snap := o.View()
	if snap.Phase != PhaseErrorDisplayed {
		t.Errorf("Expected error phase, got %s", snap.Phase)
	}
	if snap.GenreSection.Status != StatusError || snap.GenreSection.Error != "could not load genre data" {
		t.Errorf("Expected genre error panel, got %+v", snap.GenreSection)
	}
	if snap.DirectorSection.Status != StatusReady || len(snap.Directors) != 2 {
		t.Errorf("Expected director section to render normally, got %+v", snap.DirectorSection)
	}

	handles, err := o.RenderCharts(snap)
	if err != nil {
		t.Fatalf("RenderCharts failed: %v", err)
	}
	if _, ok := handles[models.SectionGenres]; ok {
		t.Error("Expected no genre chart without data")
	}
	if _, ok := handles[models.SectionDirectors]; !ok {
		t.Error("Expected director chart to render")
	}
}

func TestPlainErrorGetsSectionMessage(t *testing.T) {
	src := newSource()
	src.directorErr = errors.New("boom")
	o := NewOrchestrator(src, nil, defaultOptions())
	o.Load(context.Background())

	if _, msg := o.State().Status(models.SectionDirectors); msg != "could not load director data" {
		t.Errorf("Unexpected message %q", msg)
	}
}

func TestSelectorsDoNotFetch(t *testing.T) {
	src := newSource()
	o := NewOrchestrator(src, nil, defaultOptions())
	o.Load(context.Background())
	before := src.calls()

	o.SetSortOrder(models.SortAsc)
	o.SetChartKind(models.ChartPie)
	o.SetDirectorLimit(1)
	o.ShowTable(models.SectionDirectors)
	snap := o.View()
	if _, err := o.RenderCharts(snap); err != nil {
		t.Fatalf("RenderCharts failed: %v", err)
	}

	if src.calls() != before {
		t.Errorf("Expected zero additional fetches, got %d", src.calls()-before)
	}
	if snap.Phase != PhaseReady {
		t.Errorf("Expected phase to stay ready, got %s", snap.Phase)
	}
	if snap.Genres[0].Name != "Action" {
		t.Errorf("Expected ascending genres, got %+v", snap.Genres)
	}
	if len(snap.Table) != 1 || snap.Table[0].Label != "A" || snap.Table[0].Value != "$500.0M" {
		t.Errorf("Expected director table from displayed slice, got %+v", snap.Table)
	}
	if h, ok := o.Renderer().Lookup(charts.TargetGenres); !ok || h.Kind != models.ChartPie {
		t.Error("Expected genre chart rebuilt as pie")
	}
}

func TestLimitClamped(t *testing.T) {
	o := NewOrchestrator(newSource(), nil, defaultOptions())
	if got := o.SetGenreLimit(500); got != 50 {
		t.Errorf("Expected limit clamped to 50, got %d", got)
	}
	for _, n := range []int{0, -1} {
		if got := o.SetDirectorLimit(n); got != 1 {
			t.Errorf("SetDirectorLimit(%d): expected limit clamped to 1, got %d", n, got)
		}
	}
	if v := o.View(); v.DirectorSection.Limit != 1 {
		t.Errorf("Expected stored limit 1, got %d", v.DirectorSection.Limit)
	}
}

func TestRefreshMarksLoadingSynchronously(t *testing.T) {
	src := newSource()
	o := NewOrchestrator(src, nil, defaultOptions())
	o.Load(context.Background())

	reply := make(chan genreReply)
	src.mu.Lock()
	src.genreQueue = append(src.genreQueue, reply)
	src.mu.Unlock()

	done := o.Refresh(context.Background(), models.SectionGenres)
	if status, _ := o.State().Status(models.SectionGenres); status != StatusLoading {
		t.Errorf("Expected genres loading right after Refresh, got %s", status)
	}
	if status, _ := o.State().Status(models.SectionDirectors); status != StatusReady {
		t.Errorf("Expected directors untouched, got %s", status)
	}
	if o.View().Phase != PhaseReady {
		t.Error("Expected a section refresh not to reset the page phase")
	}

	reply <- genreReply{rows: []models.GenreRow{{Name: "Horror", Count: 7}}}
	if err := <-done; err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	snap := o.View()
	if snap.GenreSection.Status != StatusReady || snap.Genres[0].Name != "Horror" {
		t.Errorf("Expected refreshed genres, got %+v / %+v", snap.GenreSection, snap.Genres)
	}
}

func TestStaleRefreshDropped(t *testing.T) {
	src := newSource()
	o := NewOrchestrator(src, nil, defaultOptions())
	o.Load(context.Background())

	older, newer := make(chan genreReply), make(chan genreReply)
	src.mu.Lock()
	src.genreQueue = append(src.genreQueue, older, newer)
	src.mu.Unlock()

	firstDone := o.Refresh(context.Background(), models.SectionGenres)
	waitForCalls(t, src, 2)
	secondDone := o.Refresh(context.Background(), models.SectionGenres)
	waitForCalls(t, src, 3)

	// the newer request resolves first
	newer <- genreReply{rows: []models.GenreRow{{Name: "Newest", Count: 3}}}
	<-secondDone
	older <- genreReply{rows: []models.GenreRow{{Name: "Stale", Count: 9}}}
	<-firstDone

	snap := o.View()
	if snap.Genres[0].Name != "Newest" {
		t.Errorf("Expected stale response to be dropped, got %+v", snap.Genres)
	}
	if snap.GenreSection.Status != StatusReady {
		t.Errorf("Expected ready status, got %s", snap.GenreSection.Status)
	}
}

func TestOlderResultKeepsSectionLoading(t *testing.T) {
	src := newSource()
	o := NewOrchestrator(src, nil, defaultOptions())
	o.Load(context.Background())

	older, newer := make(chan genreReply), make(chan genreReply)
	src.mu.Lock()
	src.genreQueue = append(src.genreQueue, older, newer)
	src.mu.Unlock()

	firstDone := o.Refresh(context.Background(), models.SectionGenres)
	waitForCalls(t, src, 2)
	secondDone := o.Refresh(context.Background(), models.SectionGenres)
	waitForCalls(t, src, 3)

	older <- genreReply{rows: []models.GenreRow{{Name: "Older", Count: 9}}}
	<-firstDone
	if status, _ := o.State().Status(models.SectionGenres); status != StatusLoading {
		t.Errorf("Expected section to stay loading while a newer request is in flight, got %s", status)
	}
	if o.View().Genres[0].Name != "Older" {
		t.Error("Expected the older result to be applied while nothing newer has resolved")
	}

	newer <- genreReply{err: errors.New("timeout")}
	<-secondDone
	snap := o.View()
	if snap.GenreSection.Status != StatusError {
		t.Errorf("Expected error status, got %s", snap.GenreSection.Status)
	}
	if snap.Genres[0].Name != "Older" {
		t.Error("Expected last good rows to be kept after a failed refresh")
	}
	if snap.Phase != PhaseErrorDisplayed {
		t.Errorf("Expected error phase, got %s", snap.Phase)
	}
}

func TestRefreshRecoversFromError(t *testing.T) {
	src := newSource()
	src.directorErr = errors.New("down")
	o := NewOrchestrator(src, nil, defaultOptions())
	o.Load(context.Background())

	src.mu.Lock()
	src.directorErr = nil
	src.mu.Unlock()

	if err := o.RefreshDirectors(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	snap := o.View()
	if snap.Phase != PhaseReady || snap.DirectorSection.Error != "" {
		t.Errorf("Expected recovery to ready, got %s / %q", snap.Phase, snap.DirectorSection.Error)
	}
	if err := o.RefreshGenres(context.Background()); err != nil {
		t.Errorf("Genre refresh failed: %v", err)
	}
}

func TestSearchUsesFullData(t *testing.T) {
	o := NewOrchestrator(newSource(), nil, defaultOptions())
	o.Load(context.Background())
	o.SetGenreLimit(1)

	res := o.Search("action")
	if res.State != reports.SearchResults || len(res.Genres) != 1 {
		t.Errorf("Expected Action to be found beyond the display limit, got %+v", res)
	}
	if o.Search("  ").State != reports.SearchPrompt {
		t.Error("Expected prompt for blank query")
	}
}

func TestExportChart(t *testing.T) {
	o := NewOrchestrator(newSource(), nil, defaultOptions())
	var buf bytes.Buffer

	if err := o.ExportChart(charts.TargetGenres, &buf); !errors.Is(err, charts.ErrEmptyState) {
		t.Errorf("Expected ErrEmptyState before load, got %v", err)
	}

	o.Load(context.Background())
	if err := o.ExportChart(charts.TargetDirectors, &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("Expected PNG output")
	}
}

func waitForCalls(t *testing.T, src *fakeSource, n int32) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for src.genreCalls.Load() < n {
		if time.Now().After(deadline) {
			t.Fatalf("Timed out waiting for %d genre fetches", n)
		}
		time.Sleep(time.Millisecond)
	}
}
