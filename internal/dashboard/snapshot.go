package dashboard

import (
	"fmt"

	"moviedash/internal/charts"
	"moviedash/internal/models"
	"moviedash/internal/reports"
	"moviedash/internal/transform"
)

// SectionView is the derived state of one section
type SectionView struct {
	Section   models.Section `json:"section"`
	Status    SectionStatus  `json:"status"`
	Error     string         `json:"error,omitempty"`
	Title     string         `json:"title"`
	Limit     int            `json:"limit"`
	Available int            `json:"available"`
}

// Snapshot is an immutable view of the dashboard ready to render
type Snapshot struct {
	Phase     Phase            `json:"phase"`
	ChartKind models.ChartKind `json:"chartKind"`
	SortOrder models.SortOrder `json:"sortOrder"`
	ActiveTab models.Section   `json:"activeTab"`
	MaxLimit  int              `json:"maxLimit"`

	GenreSection    SectionView `json:"genreSection"`
	DirectorSection SectionView `json:"directorSection"`

	// Displayed rows: limited first, then sorted
	Genres    []models.GenreRow    `json:"genres"`
	Directors []models.DirectorRow `json:"directors"`

	Table []reports.TableRow `json:"table"`
	Stats reports.Stats      `json:"stats"`
}

// Snapshot derives the displayed view from the current state
func (s *ViewState) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Phase:     s.phase,
		ChartKind: s.chartKind,
		SortOrder: s.sortOrder,
		ActiveTab: s.activeTab,
		MaxLimit:  s.maxLimit,
		Genres:    transform.SortByMetric(transform.Limit(s.genres, s.genreLimit), s.sortOrder),
		Directors: transform.SortByMetric(transform.Limit(s.directors, s.directorLimit), s.sortOrder),
		Stats:     reports.ComputeStats(s.genres, s.directors),
	}
	snap.GenreSection = s.sectionView(models.SectionGenres, fmt.Sprintf("Top %d Genres", s.genreLimit), s.genreLimit, len(s.genres))
	snap.DirectorSection = s.sectionView(models.SectionDirectors, fmt.Sprintf("Top %d Directors by Revenue", s.directorLimit), s.directorLimit, len(s.directors))

	if s.activeTab == models.SectionDirectors {
		snap.Table = reports.DirectorTable(snap.Directors)
	} else {
		snap.Table = reports.GenreTable(snap.Genres)
	}
	return snap
}

func (s *ViewState) sectionView(section models.Section, title string, limit, available int) SectionView {
	st := s.sections[section]
	return SectionView{
		Section:   section,
		Status:    st.status,
		Error:     st.err,
		Title:     title,
		Limit:     limit,
		Available: available,
	}
}

// Section returns the view of section
func (snap Snapshot) Section(section models.Section) SectionView {
	if section == models.SectionDirectors {
		return snap.DirectorSection
	}
	return snap.GenreSection
}

// ChartTarget returns the render target of section
func ChartTarget(section models.Section) string {
	if section == models.SectionDirectors {
		return charts.TargetDirectors
	}
	return charts.TargetGenres
}

// ChartSeries returns what the chart of section plots. Director revenue
// is plotted in millions.
func (snap Snapshot) ChartSeries(section models.Section) (labels []string, values []float64, currency bool) {
	if section == models.SectionDirectors {
		labels = make([]string, len(snap.Directors))
		values = make([]float64, len(snap.Directors))
		for i, d := range snap.Directors {
			labels[i] = d.Director
			values[i] = transform.Millions(d.TotalRevenue)
		}
		return labels, values, true
	}

	labels = make([]string, len(snap.Genres))
	values = make([]float64, len(snap.Genres))
	for i, g := range snap.Genres {
		labels[i] = g.Name
		values[i] = float64(g.Count)
	}
	return labels, values, false
}
