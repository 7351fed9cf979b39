// Package tui is the terminal front end of the dashboard. It drives the same
// Orchestrator as the web server.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"moviedash/internal/dashboard"
	"moviedash/internal/logger"
	"moviedash/internal/models"
	"moviedash/internal/reports"
)

// loadDoneMsg reports the end of the initial load
type loadDoneMsg struct{ err error }

// refreshDoneMsg reports the end of one section refresh
type refreshDoneMsg struct {
	section models.Section
	err     error
}

// exportDoneMsg reports the outcome of an export
type exportDoneMsg struct {
	exports []*dashboard.Export
	err     error
}

// Model is the bubbletea model of the dashboard
type Model struct {
	ctx      context.Context
	orch     *dashboard.Orchestrator
	exporter *dashboard.Exporter
	log      *logger.Logger

	spinner spinner.Model
	bar     progress.Model
	input   textinput.Model

	searching bool
	search    *reports.SearchResult
	showAbout bool
	about     string
	status    string

	width    int
	height   int
	quitting bool
}

// New creates the terminal model. Fetches run under ctx.
func New(ctx context.Context, orch *dashboard.Orchestrator, exporter *dashboard.Exporter) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = loadingStyle

	ti := textinput.New()
	ti.Placeholder = "genre or director"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	if exporter == nil {
		exporter = dashboard.NewExporter(orch, nil)
	}

	return Model{
		ctx:      ctx,
		orch:     orch,
		exporter: exporter,
		log:      logger.Component("tui"),
		spinner:  s,
		bar:      progress.New(progress.WithSolidFill(string(colorAccent)), progress.WithoutPercentage(), progress.WithWidth(20)),
		input:    ti,
		about:    renderAbout(reports.AboutMarkdown(), 76),
		width:    80,
	}
}

// Init starts the initial load
func (m Model) Init() tea.Cmd {
	ch := m.orch.Start(m.ctx)
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return loadDoneMsg{err: <-ch}
	})
}

// Update handles keys, window size and fetch completions
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadDoneMsg:
		if msg.err != nil {
			m.status = "Load finished with errors"
		} else {
			m.status = "Reports loaded"
		}
		return m, nil

	case refreshDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Refresh of %s failed", msg.section)
		} else {
			m.status = fmt.Sprintf("Refreshed %s", msg.section)
		}
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.log.Error("Export from terminal failed", msg.err)
		}
		m.status = exportStatus(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.orch.View()

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "r":
		return m, m.refresh(models.SectionGenres)
	case "R":
		return m, m.refresh(models.SectionDirectors)
	case "s":
		m.orch.SetSortOrder(view.SortOrder.Toggle())
	case "c":
		m.orch.SetChartKind(view.ChartKind.Next())
	case "tab":
		if view.ActiveTab == models.SectionGenres {
			m.orch.ShowTable(models.SectionDirectors)
		} else {
			m.orch.ShowTable(models.SectionGenres)
		}
	case "+", "=":
		m.orch.SetGenreLimit(view.GenreSection.Limit + 1)
	case "-":
		m.orch.SetGenreLimit(view.GenreSection.Limit - 1)
	case "]":
		m.orch.SetDirectorLimit(view.DirectorSection.Limit + 1)
	case "[":
		m.orch.SetDirectorLimit(view.DirectorSection.Limit - 1)
	case "/":
		m.searching = true
		m.input.SetValue("")
		return m, m.input.Focus()
	case "esc":
		m.search = nil
		m.showAbout = false
	case "?":
		m.showAbout = !m.showAbout
	case "e":
		m.status = "Exporting charts..."
		return m, m.export()
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		res := m.orch.Search(m.input.Value())
		m.search = &res
		m.searching = false
		m.input.Blur()
		return m, nil
	case "esc", "ctrl+c":
		m.searching = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// refresh marks section loading before returning and waits for the fetch
// in the returned command
func (m Model) refresh(section models.Section) tea.Cmd {
	ch := m.orch.Refresh(m.ctx, section)
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return refreshDoneMsg{section: section, err: <-ch}
	})
}

func (m Model) export() tea.Cmd {
	exporter, ctx := m.exporter, m.ctx
	return func() tea.Msg {
		exports, err := exporter.ExportAll(ctx)
		return exportDoneMsg{exports: exports, err: err}
	}
}

func exportStatus(msg exportDoneMsg) string {
	if msg.err != nil {
		return "Export failed: " + msg.err.Error()
	}
	if len(msg.exports) == 0 {
		return "Nothing to export yet"
	}
	var names []string
	for _, e := range msg.exports {
		if e.Location != "" {
			names = append(names, e.Location)
		} else {
			names = append(names, e.Name)
		}
	}
	return fmt.Sprintf("Exported %d chart(s): %s", len(msg.exports), strings.Join(names, ", "))
}

func renderAbout(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
