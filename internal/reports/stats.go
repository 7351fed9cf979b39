package reports

import (
	"moviedash/internal/models"
	"moviedash/internal/transform"
)

// Stats are the summary figures shown above the charts
type Stats struct {
	TotalMovies               int    `json:"totalMovies"`
	TotalMoviesDisplay        string `json:"totalMoviesDisplay"`
	TotalGenres               int    `json:"totalGenres"`
	TopDirectorName           string `json:"topDirectorName"`
	TopDirectorRevenueDisplay string `json:"topDirectorRevenueDisplay"`
}

// ComputeStats aggregates both datasets. TotalMovies counts a film once per
// genre it belongs to since the backend only reports per-genre totals. The
// top director is the first row, the backend sorts by revenue.
func ComputeStats(genres []models.GenreRow, directors []models.DirectorRow) Stats {
	var total int
	for _, g := range genres {
		total += g.Count
	}

	stats := Stats{
		TotalMovies:        total,
		TotalMoviesDisplay: transform.FormatThousands(total),
		TotalGenres:        len(genres),
	}
	if len(directors) > 0 {
		stats.TopDirectorName = transform.ShortName(directors[0].Director)
		stats.TopDirectorRevenueDisplay = transform.FormatMillions(directors[0].TotalRevenue, 0)
	}
	return stats
}
