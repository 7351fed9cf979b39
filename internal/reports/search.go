package reports

import (
	"strings"

	"moviedash/internal/models"
)

// SearchState tells the front end which search message to show
type SearchState string

const (
	SearchPrompt    SearchState = "prompt"
	SearchNoResults SearchState = "noResults"
	SearchResults   SearchState = "results"
)

// Message returns the user-visible text for states without results
func (s SearchState) Message() string {
	switch s {
	case SearchPrompt:
		return "Enter a search term"
	case SearchNoResults:
		return "No results found"
	default:
		return ""
	}
}

// SearchResult holds the matches of both datasets in dataset order
type SearchResult struct {
	Query     string               `json:"query"`
	State     SearchState          `json:"state"`
	Genres    []models.GenreRow    `json:"genres"`
	Directors []models.DirectorRow `json:"directors"`
}

// Search matches query as a case-insensitive substring of genre and
// director names
func Search(query string, genres []models.GenreRow, directors []models.DirectorRow) SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return SearchResult{Query: q, State: SearchPrompt}
	}

	res := SearchResult{
		Query:     q,
		Genres:    matching(genres, q),
		Directors: matching(directors, q),
	}
	if len(res.Genres) == 0 && len(res.Directors) == 0 {
		res.State = SearchNoResults
	} else {
		res.State = SearchResults
	}
	return res
}

func matching[T models.Ranked](rows []T, q string) []T {
	var out []T
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Label()), q) {
			out = append(out, r)
		}
	}
	return out
}
