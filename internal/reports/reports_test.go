package reports

import (
	"math"
	"testing"

	"moviedash/internal/models"
	"moviedash/internal/transform"
)

var (
	genres = []models.GenreRow{
		{Name: "Drama", Count: 120},
		{Name: "Action", Count: 95},
		{Name: "Science Fiction", Count: 40},
	}
	directors = []models.DirectorRow{
		{Director: "A", TotalRevenue: 500_000_000},
		{Director: "B", TotalRevenue: 100_000_000},
	}
)

func TestGenreTableSingleRow(t *testing.T) {
	rows := GenreTable(transform.Limit(genres, 1))
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	want := TableRow{Rank: 1, Label: "Drama", Value: "120 films", Percent: 100, BarWidth: "100.0%"}
	if rows[0] != want {
		t.Errorf("Expected %+v, got %+v", want, rows[0])
	}
}

func TestTableRanksFollowDisplayOrder(t *testing.T) {
	rows := GenreTable(transform.SortByMetric(genres, models.SortAsc))
	if rows[0].Label != "Science Fiction" || rows[0].Rank != 1 {
		t.Errorf("Expected rank 1 to be the first displayed row, got %+v", rows[0])
	}
	if rows[2].Label != "Drama" || rows[2].Rank != 3 {
		t.Errorf("Expected rank 3 to be Drama, got %+v", rows[2])
	}

	var sum float64
	for _, r := range rows {
		sum += r.Percent
	}
	if math.Abs(sum-100) > 0.15 {
		t.Errorf("Expected percentages to sum to about 100, got %v", sum)
	}
}

func TestDirectorTable(t *testing.T) {
	rows := DirectorTable(directors)
	if rows[0].Value != "$500.0M" || rows[1].Value != "$100.0M" {
		t.Errorf("Unexpected formatted values %q %q", rows[0].Value, rows[1].Value)
	}
	if rows[0].Percent != 83.3 || rows[1].Percent != 16.7 {
		t.Errorf("Unexpected percentages %v %v", rows[0].Percent, rows[1].Percent)
	}
}

func TestRenderTableZeroTotal(t *testing.T) {
	rows := GenreTable([]models.GenreRow{{Name: "Empty", Count: 0}})
	if rows[0].Percent != 0 || rows[0].BarWidth != "0.0%" {
		t.Errorf("Expected 0%% for zero total, got %+v", rows[0])
	}
	if got := GenreTable(nil); len(got) != 0 {
		t.Errorf("Expected empty table, got %+v", got)
	}
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(genres, directors)
	if stats.TotalMovies != 255 || stats.TotalMoviesDisplay != "255" {
		t.Errorf("Unexpected total movies %d %q", stats.TotalMovies, stats.TotalMoviesDisplay)
	}
	if stats.TotalGenres != 3 {
		t.Errorf("Expected 3 genres, got %d", stats.TotalGenres)
	}
	if stats.TopDirectorName != "A" || stats.TopDirectorRevenueDisplay != "$500M" {
		t.Errorf("Expected top director A / $500M, got %q / %q", stats.TopDirectorName, stats.TopDirectorRevenueDisplay)
	}
}

func TestComputeStatsNoDirectors(t *testing.T) {
	stats := ComputeStats([]models.GenreRow{{Name: "Drama", Count: 1200}}, nil)
	if stats.TopDirectorName != "" || stats.TopDirectorRevenueDisplay != "" {
		t.Errorf("Expected blank top director, got %+v", stats)
	}
	if stats.TotalMoviesDisplay != "1,200" {
		t.Errorf("Expected thousands separator, got %q", stats.TotalMoviesDisplay)
	}
}

func TestComputeStatsShortensTopDirector(t *testing.T) {
	stats := ComputeStats(nil, []models.DirectorRow{{Director: "Anthony Joseph Russo", TotalRevenue: 2_345_000_000}})
	if stats.TopDirectorName != "Anthony Joseph" {
		t.Errorf("Expected first two words, got %q", stats.TopDirectorName)
	}
	if stats.TopDirectorRevenueDisplay != "$2345M" {
		t.Errorf("Expected $2345M, got %q", stats.TopDirectorRevenueDisplay)
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		genres        []models.GenreRow
		directors     []models.DirectorRow
		state         SearchState
		wantGenres    int
		wantDirectors int
	}{
		{"empty query", "", genres, directors, SearchPrompt, 0, 0},
		{"whitespace query", "   \t", genres, directors, SearchPrompt, 0, 0},
		{"empty query on empty data", "", nil, nil, SearchPrompt, 0, 0},
		{"no match", "western", genres, directors, SearchNoResults, 0, 0},
		{"case insensitive genre", "DRAMA", genres, directors, SearchResults, 1, 0},
		{"substring in both", "a", genres, directors, SearchResults, 2, 1},
		{"trimmed", "  fiction ", genres, directors, SearchResults, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Search(tt.query, tt.genres, tt.directors)
			if res.State != tt.state {
				t.Errorf("Expected state %s, got %s", tt.state, res.State)
			}
			if len(res.Genres) != tt.wantGenres || len(res.Directors) != tt.wantDirectors {
				t.Errorf("Expected %d/%d matches, got %d/%d", tt.wantGenres, tt.wantDirectors, len(res.Genres), len(res.Directors))
			}
		})
	}
}

func TestSearchKeepsDatasetOrder(t *testing.T) {
	res := Search("a", genres, directors)
	if res.Genres[0].Name != "Drama" || res.Genres[1].Name != "Action" {
		t.Errorf("Expected dataset order, got %+v", res.Genres)
	}
}

func TestSearchStateMessage(t *testing.T) {
	if SearchPrompt.Message() != "Enter a search term" {
		t.Errorf("Unexpected prompt message %q", SearchPrompt.Message())
	}
	if SearchNoResults.Message() != "No results found" {
		t.Errorf("Unexpected no-results message %q", SearchNoResults.Message())
	}
	if SearchResults.Message() != "" {
		t.Errorf("Expected no message with results, got %q", SearchResults.Message())
	}
}
