package models

import (
	"fmt"
	"strings"
)

// GenreRow is one row of the top-genres report
type GenreRow struct {
	Name  string `json:"name" yaml:"name"`   // Genre display name
	Count int    `json:"count" yaml:"count"` // Movies tagged with the genre
}

// DirectorRow is one row of the top-directors-by-revenue report
type DirectorRow struct {
	Director     string  `json:"director" yaml:"director"`         // Director display name
	TotalRevenue float64 `json:"totalRevenue" yaml:"totalRevenue"` // Base currency units, shown in millions
}

// Ranked is implemented by every report row so that transforms and renderers
// can work over either dataset.
type Ranked interface {
	Label() string
	Metric() float64
}

// Label returns the genre name
func (g GenreRow) Label() string { return g.Name }

// Metric returns the movie count
func (g GenreRow) Metric() float64 { return float64(g.Count) }

// Label returns the director name
func (d DirectorRow) Label() string { return d.Director }

// Metric returns the total revenue
func (d DirectorRow) Metric() float64 { return d.TotalRevenue }

// Section identifies one independently refreshed dataset of the dashboard
type Section string

const (
	SectionGenres    Section = "genres"
	SectionDirectors Section = "directors"
)

// Sections lists all dashboard sections in display order
var Sections = []Section{SectionGenres, SectionDirectors}

// ParseSection parses a section name
func ParseSection(s string) (Section, error) {
	switch Section(strings.ToLower(strings.TrimSpace(s))) {
	case SectionGenres:
		return SectionGenres, nil
	case SectionDirectors:
		return SectionDirectors, nil
	default:
		return "", fmt.Errorf("unknown section %q", s)
	}
}

// ChartKind is the chart family selected in the chart-type selector
type ChartKind string

const (
	ChartBar           ChartKind = "bar"
	ChartHorizontalBar ChartKind = "horizontalBar"
	ChartPie           ChartKind = "pie"
	ChartLine          ChartKind = "line"
)

// ChartKinds lists the selectable chart kinds in selector order
var ChartKinds = []ChartKind{ChartBar, ChartHorizontalBar, ChartPie, ChartLine}

// ParseChartKind parses a chart selector value
func ParseChartKind(s string) (ChartKind, error) {
	for _, k := range ChartKinds {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown chart kind %q", s)
}

// Next returns the chart kind following k in selector order, wrapping around
func (k ChartKind) Next() ChartKind {
	for i, kind := range ChartKinds {
		if kind == k {
			return ChartKinds[(i+1)%len(ChartKinds)]
		}
	}
	return ChartBar
}

// SortOrder is the order applied to displayed rows
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder parses a sort selector value. Anything other than "asc" is
// treated as the default descending order.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}

// Toggle flips between ascending and descending
func (o SortOrder) Toggle() SortOrder {
	if o == SortAsc {
		return SortDesc
	}
	return SortAsc
}
