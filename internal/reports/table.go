// Package reports derives the ranked table, the summary stats and the
// search results from report rows.
package reports

import (
	"fmt"

	"moviedash/internal/models"
	"moviedash/internal/transform"
)

// TableRow is one ranked line of the dashboard table
type TableRow struct {
	Rank     int     `json:"rank"`
	Label    string  `json:"label"`
	Value    string  `json:"value"`
	Percent  float64 `json:"percent"`
	BarWidth string  `json:"barWidth"` // CSS width of the progress bar
}

// RenderTable ranks rows in the order given. The caller decides the order.
func RenderTable[T models.Ranked](rows []T, formatOf func(T) string) []TableRow {
	total := transform.Total(rows)

	out := make([]TableRow, len(rows))
	for i, r := range rows {
		pct := transform.PercentOfTotal(r.Metric(), total)
		out[i] = TableRow{
			Rank:     i + 1,
			Label:    r.Label(),
			Value:    formatOf(r),
			Percent:  pct,
			BarWidth: fmt.Sprintf("%.1f%%", pct),
		}
	}
	return out
}

// GenreTable ranks genre rows with counts shown as "<n> films"
func GenreTable(rows []models.GenreRow) []TableRow {
	return RenderTable(rows, func(g models.GenreRow) string { return transform.FormatCount(g.Count) })
}

// DirectorTable ranks director rows with revenue shown in millions
func DirectorTable(rows []models.DirectorRow) []TableRow {
	return RenderTable(rows, func(d models.DirectorRow) string { return transform.FormatMillions(d.TotalRevenue, 1) })
}
