package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"moviedash/internal/dashboard"
	"moviedash/internal/models"
	"moviedash/internal/reports"
	"moviedash/internal/transform"
)

// chartBarWidth is the width of the longest bar in a section chart
const chartBarWidth = 30

// View renders the dashboard
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.orch.View()
	if snap.Phase == dashboard.PhaseLoading {
		return fmt.Sprintf("\n  %s Loading movie reports...\n", m.spinner.View())
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Movie Reports Dashboard"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  chart: %s  sort: %s", snap.ChartKind, snap.SortOrder)))
	b.WriteString("\n\n")
	b.WriteString(renderStats(snap.Stats))
	b.WriteString("\n")

	for _, section := range models.Sections {
		b.WriteString(panelStyle.Render(m.renderSection(snap, section)))
		b.WriteString("\n")
	}

	b.WriteString(panelStyle.Render(m.renderTable(snap)))
	b.WriteString("\n")

	if m.searching {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	} else if m.search != nil {
		b.WriteString(panelStyle.Render(renderSearch(*m.search)))
		b.WriteString("\n")
	}

	if m.showAbout {
		b.WriteString(m.about)
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(mutedStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(renderHelp())
	return b.String()
}

func renderStats(s reports.Stats) string {
	cell := func(label, value string) string {
		return mutedStyle.Render(label+" ") + statValueStyle.Render(value)
	}
	top := s.TopDirectorName
	if s.TopDirectorRevenueDisplay != "" {
		top += " " + mutedStyle.Render("("+s.TopDirectorRevenueDisplay+")")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		cell("Total Movies", s.TotalMoviesDisplay), "   ",
		cell("Total Genres", fmt.Sprint(s.TotalGenres)), "   ",
		cell("Top Director", top),
	) + "\n"
}

func (m Model) renderSection(snap dashboard.Snapshot, section models.Section) string {
	view := snap.Section(section)
	var b strings.Builder
	b.WriteString(titleStyle.Render(view.Title))
	b.WriteString("\n")

	switch view.Status {
	case dashboard.StatusLoading:
		b.WriteString(m.spinner.View() + loadingStyle.Render(" Loading..."))
		return b.String()
	case dashboard.StatusError:
		b.WriteString(errorStyle.Render(view.Error))
		b.WriteString(mutedStyle.Render("  (press " + refreshKey(section) + " to retry)"))
		b.WriteString("\n")
	}

	labels, values, currency := snap.ChartSeries(section)
	b.WriteString(renderBars(labels, values, currency, snap.ChartKind))
	return b.String()
}

// renderBars draws a text chart. Pie and line charts show shares instead
// of scaled bars since a terminal cannot draw them.
func renderBars(labels []string, values []float64, currency bool, kind models.ChartKind) string {
	if len(values) == 0 {
		return mutedStyle.Render("No data")
	}

	var maxVal, total float64
	labelWidth := 0
	for i, v := range values {
		maxVal = max(maxVal, v)
		total += v
		labelWidth = max(labelWidth, lipgloss.Width(labels[i]))
	}

	var lines []string
	for i, v := range values {
		value := fmt.Sprintf("%.0f", v)
		if currency {
			value = fmt.Sprintf("$%.1fM", v)
		}

		var bar string
		switch kind {
		case models.ChartPie, models.ChartLine:
			bar = mutedStyle.Render(fmt.Sprintf("%5.1f%%", transform.PercentOfTotal(v, total)))
		default:
			n := 0
			if maxVal > 0 {
				n = int(v / maxVal * chartBarWidth)
			}
			bar = barStyle.Render(strings.Repeat("█", n))
		}
		lines = append(lines, fmt.Sprintf("%-*s %s %s", labelWidth, labels[i], bar, value))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTable(snap dashboard.Snapshot) string {
	var tabs []string
	for _, section := range models.Sections {
		name := "Genres"
		if section == models.SectionDirectors {
			name = "Directors"
		}
		if section == snap.ActiveTab {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")
	if len(snap.Table) == 0 {
		b.WriteString(mutedStyle.Render("No data"))
		return b.String()
	}
	for _, row := range snap.Table {
		b.WriteString(fmt.Sprintf("%3d  %-24s %16s  %s %5.1f%%\n",
			row.Rank, row.Label, row.Value, m.bar.ViewAs(row.Percent/100), row.Percent))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderSearch(res reports.SearchResult) string {
	if msg := res.State.Message(); msg != "" {
		return mutedStyle.Render(msg)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Results for %q", res.Query)))
	for _, g := range res.Genres {
		b.WriteString(fmt.Sprintf("\n  genre     %s  %s", g.Name, mutedStyle.Render(transform.FormatCount(g.Count))))
	}
	for _, d := range res.Directors {
		b.WriteString(fmt.Sprintf("\n  director  %s  %s", d.Director, mutedStyle.Render(transform.FormatMillions(d.TotalRevenue, 1))))
	}
	return b.String()
}

func refreshKey(section models.Section) string {
	if section == models.SectionDirectors {
		return "R"
	}
	return "r"
}

func renderHelp() string {
	hints := []struct{ key, desc string }{
		{"r/R", "refresh"},
		{"s", "sort"},
		{"c", "chart"},
		{"tab", "table"},
		{"+/-", "genres"},
		{"]/[", "directors"},
		{"/", "search"},
		{"e", "export"},
		{"?", "about"},
		{"q", "quit"},
	}
	var parts []string
	for _, h := range hints {
		parts = append(parts, keyStyle.Render(h.key)+" "+mutedStyle.Render(h.desc))
	}
	return strings.Join(parts, mutedStyle.Render(" • "))
}
