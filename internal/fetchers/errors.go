package fetchers

import (
	"fmt"
	"net/http"

	"moviedash/internal/models"
)

// NetworkError means the request never completed
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPStatusError means the backend answered with a non-2xx status.
// The response body is never parsed.
type HTTPStatusError struct {
	URL    string
	Status int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s returned status %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

// FetchError is what callers see for any failed report fetch
type FetchError struct {
	Section models.Section
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message(), e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Message is the human readable cause shown in a section's error panel
func (e *FetchError) Message() string {
	switch e.Section {
	case models.SectionGenres:
		return "could not load genre data"
	case models.SectionDirectors:
		return "could not load director data"
	default:
		return "could not load report data"
	}
}
