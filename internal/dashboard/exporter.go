package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"moviedash/internal/charts"
	"moviedash/internal/logger"
	"moviedash/internal/models"
	"moviedash/internal/storage"
)

// ErrUnknownTarget is returned when exporting a target no section renders to
var ErrUnknownTarget = errors.New("unknown chart target")

// Export is one exported chart image
type Export struct {
	Target    string
	Name      string // <target>-<unix millis>.png
	Data      []byte
	Location  string // where the store wrote it, empty without a store
	Timestamp time.Time
}

// Exporter turns the current view into PNG files and persists them when a
// store is configured
type Exporter struct {
	orch  *Orchestrator
	store storage.ExportStore
	now   func() time.Time
	log   *logger.Logger
}

// NewExporter creates an exporter. store may be nil.
func NewExporter(orch *Orchestrator, store storage.ExportStore) *Exporter {
	return &Exporter{
		orch:  orch,
		store: store,
		now:   time.Now,
		log:   logger.Component("export"),
	}
}

// Store returns the configured export store, or nil
func (e *Exporter) Store() storage.ExportStore {
	return e.store
}

// Export renders target as PNG. Empty charts yield charts.ErrEmptyState.
func (e *Exporter) Export(ctx context.Context, target string) (*Export, error) {
	if !knownTarget(target) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, target)
	}

	var buf bytes.Buffer
	if err := e.orch.ExportChart(target, &buf); err != nil {
		return nil, err
	}

	ts := e.now()
	exp := &Export{
		Target:    target,
		Name:      storage.ExportFileName(target, ts),
		Data:      buf.Bytes(),
		Timestamp: ts,
	}

	if e.store != nil {
		location, err := e.store.StoreFile(ctx, exp.Name, exp.Data, ts)
		if err != nil {
			return nil, fmt.Errorf("failed to store export %s: %w", exp.Name, err)
		}
		exp.Location = location
	}

	e.log.Info("Chart exported", logger.Fields{
		"target":   target,
		"name":     exp.Name,
		"bytes":    len(exp.Data),
		"location": exp.Location,
	})
	return exp, nil
}

// ExportAll exports every section chart that has data. Empty charts are
// skipped rather than reported.
func (e *Exporter) ExportAll(ctx context.Context) ([]*Export, error) {
	var (
		out  []*Export
		errs []error
	)
	for _, section := range models.Sections {
		exp, err := e.Export(ctx, ChartTarget(section))
		switch {
		case errors.Is(err, charts.ErrEmptyState):
			e.log.Debug("Skipping empty chart", logger.Fields{"section": string(section)})
		case err != nil:
			errs = append(errs, err)
		default:
			out = append(out, exp)
		}
	}
	return out, errors.Join(errs...)
}

func knownTarget(target string) bool {
	for _, section := range models.Sections {
		if ChartTarget(section) == target {
			return true
		}
	}
	return false
}
