package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"moviedash/internal/logger"
	"moviedash/internal/models"

	"github.com/go-resty/resty/v2"
)

// Backend report paths
const (
	GenresPath    = "/api/reports/top-genres"
	DirectorsPath = "/api/reports/top-directors-by-revenue"
)

// ReportClient fetches the genre and director reports from the backend.
// One round trip per call, no retry and no caching.
type ReportClient struct {
	client  *resty.Client
	baseURL string
	log     *logger.Logger
}

// NewReportClient creates a client bound to baseURL
func NewReportClient(baseURL string, timeout time.Duration) *ReportClient {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(0)
	client.SetHeader("User-Agent", "moviedash")

	return &ReportClient{
		client:  client,
		baseURL: baseURL,
		log:     logger.Component("fetchers"),
	}
}

// BaseURL returns the backend origin the client was built with
func (c *ReportClient) BaseURL() string {
	return c.baseURL
}

// FetchGenres fetches movie counts per genre
func (c *ReportClient) FetchGenres(ctx context.Context) ([]models.GenreRow, error) {
	return fetchRows[models.GenreRow](ctx, c, models.SectionGenres)
}

// FetchDirectors fetches revenue totals per director
func (c *ReportClient) FetchDirectors(ctx context.Context) ([]models.DirectorRow, error) {
	return fetchRows[models.DirectorRow](ctx, c, models.SectionDirectors)
}

// FetchReport fetches the report for section. The result is a
// []models.GenreRow or a []models.DirectorRow.
func (c *ReportClient) FetchReport(ctx context.Context, section models.Section) (interface{}, error) {
	switch section {
	case models.SectionGenres:
		return c.FetchGenres(ctx)
	case models.SectionDirectors:
		return c.FetchDirectors(ctx)
	default:
		return nil, fmt.Errorf("unknown report section %q", section)
	}
}

// PathFor returns the backend path serving section
func PathFor(section models.Section) string {
	if section == models.SectionDirectors {
		return DirectorsPath
	}
	return GenresPath
}

func fetchRows[T models.Ranked](ctx context.Context, c *ReportClient, section models.Section) ([]T, error) {
	url := c.baseURL + PathFor(section)
	start := time.Now()

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return nil, c.fail(section, &NetworkError{URL: url, Err: err})
	}

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, c.fail(section, &HTTPStatusError{URL: url, Status: resp.StatusCode()})
	}

	var rows []T
	if err := json.Unmarshal(resp.Body(), &rows); err != nil {
		return nil, c.fail(section, fmt.Errorf("failed to parse %s response: %w", section, err))
	}

	c.log.Debug("Report fetched", logger.Fields{
		"section":  string(section),
		"rows":     len(rows),
		"duration": time.Since(start).String(),
	})

	if idx := firstOrderViolation(rows); idx >= 0 {
		c.log.Warn("Backend rows are not sorted descending by metric; desc order will follow backend order", logger.Fields{
			"section": string(section),
			"index":   idx,
			"label":   rows[idx].Label(),
		})
	}

	return rows, nil
}

func (c *ReportClient) fail(section models.Section, err error) error {
	fe := &FetchError{Section: section, Err: err}
	c.log.Error(fe.Message(), err, logger.Fields{"section": string(section)})
	return fe
}

// firstOrderViolation returns the index of the first row whose metric is
// larger than its predecessor's, or -1 when rows are descending
func firstOrderViolation[T models.Ranked](rows []T) int {
	for i := 1; i < len(rows); i++ {
		if rows[i].Metric() > rows[i-1].Metric() {
			return i
		}
	}
	return -1
}
