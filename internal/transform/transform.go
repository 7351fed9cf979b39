// Package transform holds the pure functions that turn fetched report rows
// into what the dashboard displays. Nothing here mutates its input.
package transform

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"moviedash/internal/models"

	"github.com/dustin/go-humanize"
)

// Limit returns a copy of the first n rows, n clamped to [0, len(rows)]
func Limit[T any](rows []T, n int) []T {
	n = max(0, min(n, len(rows)))
	out := make([]T, n)
	copy(out, rows[:n])
	return out
}

// SortByMetric orders rows for display. Descending keeps backend order,
// which the backend guarantees is already descending. Ascending is a
// stable sort by metric.
func SortByMetric[T models.Ranked](rows []T, order models.SortOrder) []T {
	out := slices.Clone(rows)
	if out == nil {
		out = []T{}
	}
	if order != models.SortAsc {
		return out
	}
	slices.SortStableFunc(out, func(a, b T) int {
		return cmp.Compare(a.Metric(), b.Metric())
	})
	return out
}

// PercentOfTotal returns value as a percentage of total rounded to one
// decimal, or 0 when total is 0
func PercentOfTotal(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(value/total*1000) / 10
}

// Total sums the metric of every row
func Total[T models.Ranked](rows []T) float64 {
	var total float64
	for _, r := range rows {
		total += r.Metric()
	}
	return total
}

// Millions converts base currency units to millions
func Millions(revenue float64) float64 {
	return revenue / 1_000_000
}

// FormatMillions renders revenue as "$<millions>M" with the given decimals
func FormatMillions(revenue float64, decimals int) string {
	return fmt.Sprintf("$%.*fM", decimals, Millions(revenue))
}

// FormatCount renders a movie count as "<n> films"
func FormatCount(count int) string {
	return fmt.Sprintf("%d films", count)
}

// FormatThousands renders n with thousands separators
func FormatThousands(n int) string {
	return humanize.Comma(int64(n))
}

// ShortName keeps the first two words of a name
func ShortName(name string) string {
	words := strings.Fields(name)
	if len(words) > 2 {
		words = words[:2]
	}
	return strings.Join(words, " ")
}
