package mocks

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"moviedash/internal/models"
)

// Fixtures is the data served by the mock report backend
type Fixtures struct {
	Genres    []models.GenreRow    `yaml:"genres"`
	Directors []models.DirectorRow `yaml:"directors"`

	// Failures maps a section name to the HTTP status returned instead of data
	Failures map[string]int `yaml:"failures,omitempty"`

	// Latency delays every report response
	Latency time.Duration `yaml:"latency,omitempty"`
}

// LoadFixtures reads and validates a YAML fixture file
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return ParseFixtures(data)
}

// ParseFixtures decodes and validates YAML fixture data
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate rejects negative metrics, unknown sections and non-error statuses
func (f *Fixtures) Validate() error {
	for i, g := range f.Genres {
		if g.Count < 0 {
			return fmt.Errorf("genre %d (%s) has negative count %d", i, g.Name, g.Count)
		}
	}
	for i, d := range f.Directors {
		if d.TotalRevenue < 0 {
			return fmt.Errorf("director %d (%s) has negative revenue %v", i, d.Director, d.TotalRevenue)
		}
	}
	for name, status := range f.Failures {
		if _, err := models.ParseSection(name); err != nil {
			return fmt.Errorf("invalid failure entry: %w", err)
		}
		if status < http.StatusBadRequest || status > 599 {
			return fmt.Errorf("failure status for %s must be 4xx or 5xx, got %d", name, status)
		}
	}
	if f.Latency < 0 {
		return fmt.Errorf("latency must not be negative")
	}
	return nil
}

// failureFor returns the injected status for section, or 0
func (f *Fixtures) failureFor(section models.Section) int {
	if f.Failures == nil {
		return 0
	}
	return f.Failures[string(section)]
}
