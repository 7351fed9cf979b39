package server

import (
	"bytes"
	"html/template"
	"net/http"

	"moviedash/internal/charts"
	"moviedash/internal/dashboard"
	"moviedash/internal/logger"
	"moviedash/internal/models"
	"moviedash/internal/reports"
)

// refreshSeconds is how often the page reloads itself while data is in flight
const refreshSeconds = 1

// chartCard is one section's chart panel
type chartCard struct {
	View   dashboard.SectionView
	Target string
	Chart  template.HTML
}

// pageData is the data the dashboard template renders
type pageData struct {
	Version        string
	View           dashboard.Snapshot
	Cards          []chartCard
	ChartKinds     []models.ChartKind
	Query          string
	Search         *reports.SearchResult
	About          template.HTML
	EChartsURL     string
	Refreshing     bool
	RefreshSeconds int
}

// buildPage renders the current charts and assembles the page data.
// search is nil when no search was requested.
func (s *Server) buildPage(search *reports.SearchResult) (*pageData, error) {
	snap := s.Orch.View()

	handles, err := s.Orch.RenderCharts(snap)
	if err != nil {
		return nil, err
	}

	data := &pageData{
		Version:        s.Version,
		View:           snap,
		ChartKinds:     models.ChartKinds,
		Search:         search,
		About:          s.about,
		EChartsURL:     EChartsAssetURL,
		RefreshSeconds: refreshSeconds,
	}
	if search != nil {
		data.Query = search.Query
	}

	for _, section := range models.Sections {
		view := snap.Section(section)
		card := chartCard{View: view, Target: dashboard.ChartTarget(section)}
		if h, ok := handles[section]; ok {
			card.Chart = chartHTML(h)
		}
		if view.Status == dashboard.StatusLoading {
			data.Refreshing = true
		}
		data.Cards = append(data.Cards, card)
	}
	return data, nil
}

func chartHTML(h *charts.Handle) template.HTML {
	return template.HTML(h.Snippet().HTML)
}

// renderTemplate executes name into a buffer first so a template error
// never leaves a half-written page
func (s *Server) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.log.Error("Failed to render page", err, logger.Fields{"template": name})
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
