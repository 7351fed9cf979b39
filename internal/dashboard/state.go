// Package dashboard owns the dashboard's view state and the orchestration
// of fetches, refreshes and user selections.
package dashboard

import (
	"sync"

	"moviedash/internal/models"
)

// Phase is the page-level state
type Phase string

const (
	PhaseLoading        Phase = "loading"
	PhaseReady          Phase = "ready"
	PhaseErrorDisplayed Phase = "error"
)

// SectionStatus is the state of one independently refreshed section
type SectionStatus string

const (
	StatusLoading SectionStatus = "loading"
	StatusReady   SectionStatus = "ready"
	StatusError   SectionStatus = "error"
)

type sectionState struct {
	status  SectionStatus
	err     string
	issued  uint64 // last sequence number handed out
	applied uint64 // highest sequence number whose result was applied
}

// Options are the initial selections of a dashboard
type Options struct {
	GenreLimit    int
	DirectorLimit int
	MaxLimit      int
	ChartKind     models.ChartKind
	SortOrder     models.SortOrder
}

// ViewState holds the last fetched rows and every user selection. It is
// created once and changed only through its methods.
type ViewState struct {
	mu sync.RWMutex

	genres    []models.GenreRow
	directors []models.DirectorRow

	chartKind     models.ChartKind
	sortOrder     models.SortOrder
	genreLimit    int
	directorLimit int
	maxLimit      int
	activeTab     models.Section

	phase    Phase
	sections map[models.Section]*sectionState
}

// NewViewState creates an empty state in the loading phase
func NewViewState(opts Options) *ViewState {
	if opts.MaxLimit < 1 {
		opts.MaxLimit = 50
	}
	if opts.ChartKind == "" {
		opts.ChartKind = models.ChartBar
	}
	if opts.SortOrder == "" {
		opts.SortOrder = models.SortDesc
	}

	s := &ViewState{
		chartKind: opts.ChartKind,
		sortOrder: opts.SortOrder,
		maxLimit:  opts.MaxLimit,
		activeTab: models.SectionGenres,
		phase:     PhaseLoading,
		sections:  make(map[models.Section]*sectionState, len(models.Sections)),
	}
	s.genreLimit = s.clamp(opts.GenreLimit)
	s.directorLimit = s.clamp(opts.DirectorLimit)
	for _, sec := range models.Sections {
		s.sections[sec] = &sectionState{status: StatusLoading}
	}
	return s
}

func (s *ViewState) clamp(n int) int {
	return max(1, min(n, s.maxLimit))
}

// SetSortOrder selects the display order for both sections
func (s *ViewState) SetSortOrder(order models.SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortOrder = order
}

// SetChartKind selects the chart family for both sections
func (s *ViewState) SetChartKind(kind models.ChartKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chartKind = kind
}

// SetLimit sets how many rows of section are displayed, clamped to
// [1, max limit], and returns the stored value
func (s *ViewState) SetLimit(section models.Section, n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n = s.clamp(n)
	if section == models.SectionDirectors {
		s.directorLimit = n
	} else {
		s.genreLimit = n
	}
	return n
}

// ShowTable selects the dataset shown in the table
func (s *ViewState) ShowTable(tab models.Section) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTab = tab
}

// beginLoad moves the page back to the loading phase
func (s *ViewState) beginLoad() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseLoading
}

// beginFetch marks section loading and hands out its next sequence number
func (s *ViewState) beginFetch(section models.Section) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.sections[section]
	st.issued++
	st.status = StatusLoading
	return st.issued
}

// resolve records the outcome of fetch seq for section. update stores the
// fetched rows and runs only on success. It reports false when a newer
// result was already applied.
func (s *ViewState) resolve(section models.Section, seq uint64, errMsg string, update func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.sections[section]
	if seq <= st.applied {
		return false
	}
	st.applied = seq

	if errMsg != "" {
		// rows from the last good fetch stay on screen
		st.err = errMsg
	} else {
		update()
		st.err = ""
	}

	if seq == st.issued {
		if errMsg != "" {
			st.status = StatusError
		} else {
			st.status = StatusReady
		}
	}
	s.updatePhase()
	return true
}

func (s *ViewState) updatePhase() {
	failed := false
	for _, st := range s.sections {
		switch st.status {
		case StatusLoading:
			return
		case StatusError:
			failed = true
		}
	}
	if failed {
		s.phase = PhaseErrorDisplayed
	} else {
		s.phase = PhaseReady
	}
}

func (s *ViewState) setGenres(rows []models.GenreRow) func() {
	return func() { s.genres = rows }
}

func (s *ViewState) setDirectors(rows []models.DirectorRow) func() {
	return func() { s.directors = rows }
}

// Data returns the full held datasets
func (s *ViewState) Data() ([]models.GenreRow, []models.DirectorRow) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.genres, s.directors
}

// Phase returns the page-level state
func (s *ViewState) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Status returns the state and last error message of section
func (s *ViewState) Status(section models.Section) (SectionStatus, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.sections[section]
	return st.status, st.err
}
