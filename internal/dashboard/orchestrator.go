package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"moviedash/internal/charts"
	"moviedash/internal/fetchers"
	"moviedash/internal/logger"
	"moviedash/internal/models"
	"moviedash/internal/reports"
)

// ReportSource fetches the two report datasets
type ReportSource interface {
	FetchGenres(ctx context.Context) ([]models.GenreRow, error)
	FetchDirectors(ctx context.Context) ([]models.DirectorRow, error)
}

// Orchestrator wires user actions to fetching, state and rendering
type Orchestrator struct {
	source   ReportSource
	state    *ViewState
	renderer *charts.Renderer
	log      *logger.Logger
}

// NewOrchestrator creates an orchestrator over a fresh ViewState
func NewOrchestrator(source ReportSource, renderer *charts.Renderer, opts Options) *Orchestrator {
	if renderer == nil {
		renderer = charts.NewRenderer("", "")
	}
	return &Orchestrator{
		source:   source,
		state:    NewViewState(opts),
		renderer: renderer,
		log:      logger.Component("dashboard"),
	}
}

// State returns the underlying view state
func (o *Orchestrator) State() *ViewState {
	return o.state
}

// Renderer returns the chart renderer
func (o *Orchestrator) Renderer() *charts.Renderer {
	return o.renderer
}

// Start puts the page in the loading phase and fetches both datasets
// concurrently. The returned channel yields the joined fetch errors once
// both have resolved.
func (o *Orchestrator) Start(ctx context.Context) <-chan error {
	o.state.beginLoad()
	genreSeq := o.state.beginFetch(models.SectionGenres)
	directorSeq := o.state.beginFetch(models.SectionDirectors)

	done := make(chan error, 1)
	go func() {
		var wg sync.WaitGroup
		var genreErr, directorErr error

		wg.Add(2)
		go func() {
			defer wg.Done()
			genreErr = o.fetch(ctx, models.SectionGenres, genreSeq)
		}()
		go func() {
			defer wg.Done()
			directorErr = o.fetch(ctx, models.SectionDirectors, directorSeq)
		}()
		wg.Wait()

		o.log.Info("Dashboard load finished", logger.Fields{"phase": string(o.state.Phase())})
		done <- errors.Join(genreErr, directorErr)
	}()
	return done
}

// Load fetches both datasets and waits for them
func (o *Orchestrator) Load(ctx context.Context) error {
	return <-o.Start(ctx)
}

// Refresh re-fetches one section. The section is marked loading before
// Refresh returns. Results older than one already applied are dropped.
func (o *Orchestrator) Refresh(ctx context.Context, section models.Section) <-chan error {
	seq := o.state.beginFetch(section)
	o.log.Debug("Refresh issued", logger.Fields{"section": string(section), "seq": seq})

	done := make(chan error, 1)
	go func() {
		done <- o.fetch(ctx, section, seq)
	}()
	return done
}

// RefreshGenres re-fetches the genre report and waits for it
func (o *Orchestrator) RefreshGenres(ctx context.Context) error {
	return <-o.Refresh(ctx, models.SectionGenres)
}

// RefreshDirectors re-fetches the director report and waits for it
func (o *Orchestrator) RefreshDirectors(ctx context.Context) error {
	return <-o.Refresh(ctx, models.SectionDirectors)
}

func (o *Orchestrator) fetch(ctx context.Context, section models.Section, seq uint64) error {
	var (
		err    error
		update func()
	)
	switch section {
	case models.SectionGenres:
		var rows []models.GenreRow
		rows, err = o.source.FetchGenres(ctx)
		update = o.state.setGenres(rows)
	case models.SectionDirectors:
		var rows []models.DirectorRow
		rows, err = o.source.FetchDirectors(ctx)
		update = o.state.setDirectors(rows)
	default:
		return fmt.Errorf("unknown section %q", section)
	}

	if !o.state.resolve(section, seq, errorMessage(section, err), update) {
		o.log.Debug("Dropped stale report response", logger.Fields{"section": string(section), "seq": seq})
	}
	return err
}

func errorMessage(section models.Section, err error) string {
	if err == nil {
		return ""
	}
	var fe *fetchers.FetchError
	if errors.As(err, &fe) {
		return fe.Message()
	}
	return (&fetchers.FetchError{Section: section, Err: err}).Message()
}

// SetSortOrder changes the display order. No fetch is made.
func (o *Orchestrator) SetSortOrder(order models.SortOrder) {
	o.state.SetSortOrder(order)
}

// SetChartKind changes the chart family. No fetch is made.
func (o *Orchestrator) SetChartKind(kind models.ChartKind) {
	o.state.SetChartKind(kind)
}

// SetGenreLimit changes how many genres are displayed
func (o *Orchestrator) SetGenreLimit(n int) int {
	return o.state.SetLimit(models.SectionGenres, n)
}

// SetDirectorLimit changes how many directors are displayed
func (o *Orchestrator) SetDirectorLimit(n int) int {
	return o.state.SetLimit(models.SectionDirectors, n)
}

// ShowTable switches the table to tab
func (o *Orchestrator) ShowTable(tab models.Section) {
	o.state.ShowTable(tab)
}

// View returns the derived dashboard view
func (o *Orchestrator) View() Snapshot {
	return o.state.Snapshot()
}

// Search matches query against the full held datasets
func (o *Orchestrator) Search(query string) reports.SearchResult {
	genres, directors := o.state.Data()
	return reports.Search(query, genres, directors)
}

// RenderCharts rebuilds the chart of every section that has data and
// returns the handles by section
func (o *Orchestrator) RenderCharts(snap Snapshot) (map[models.Section]*charts.Handle, error) {
	handles := make(map[models.Section]*charts.Handle, len(models.Sections))
	for _, section := range models.Sections {
		view := snap.Section(section)
		if view.Available == 0 {
			o.renderer.Destroy(ChartTarget(section))
			continue
		}
		labels, values, currency := snap.ChartSeries(section)
		h, err := o.renderer.Render(ChartTarget(section), snap.ChartKind, view.Title, labels, values, currency)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s chart: %w", section, err)
		}
		handles[section] = h
	}
	return handles, nil
}

// ExportChart renders the current view and writes the chart at target as PNG
func (o *Orchestrator) ExportChart(target string, w io.Writer) error {
	if _, err := o.RenderCharts(o.View()); err != nil {
		return err
	}
	return o.renderer.ExportPNG(target, w)
}
