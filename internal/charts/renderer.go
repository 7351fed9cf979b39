package charts

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"moviedash/internal/logger"
	"moviedash/internal/models"

	"github.com/go-echarts/go-echarts/v2/render"
)

// Render targets used by the dashboard
const (
	TargetGenres    = "genreChart"
	TargetDirectors = "directorRevenueChart"
)

var (
	// ErrLengthMismatch is returned when labels and values differ in length
	ErrLengthMismatch = errors.New("labels and values must have the same length")
	// ErrEmptyState is returned when a target has no chart or no data to draw
	ErrEmptyState = errors.New("no chart data loaded")
)

type snippetRenderer interface {
	RenderSnippet() render.ChartSnippet
}

// Handle is a chart bound to one render target. Callers keep it only to
// embed, export or destroy it.
type Handle struct {
	Target   string
	Kind     models.ChartKind
	Title    string
	Labels   []string
	Values   []float64
	Currency bool

	snippet   ChartSnippet
	destroyed atomic.Bool
}

// Snippet returns the HTML fragment for the chart
func (h *Handle) Snippet() ChartSnippet {
	return h.snippet
}

// Destroyed reports whether the handle was replaced or destroyed
func (h *Handle) Destroyed() bool {
	return h.destroyed.Load()
}

// Renderer builds go-echarts charts and keeps at most one live chart per target
type Renderer struct {
	mu      sync.Mutex
	handles map[string]*Handle
	width   string
	height  string
	log     *logger.Logger
}

// NewRenderer creates a renderer producing charts of the given CSS size
func NewRenderer(width, height string) *Renderer {
	if width == "" {
		width = "100%"
	}
	if height == "" {
		height = "400px"
	}
	return &Renderer{
		handles: make(map[string]*Handle),
		width:   width,
		height:  height,
		log:     logger.Component("charts"),
	}
}

// Render destroys whatever chart is bound to target and builds a new one
func (r *Renderer) Render(target string, kind models.ChartKind, title string, labels []string, values []float64, isCurrency bool) (*Handle, error) {
	if len(labels) != len(values) {
		return nil, fmt.Errorf("%s: %w (%d labels, %d values)", target, ErrLengthMismatch, len(labels), len(values))
	}

	h := &Handle{
		Target:   target,
		Kind:     kind,
		Title:    title,
		Labels:   append([]string(nil), labels...),
		Values:   append([]float64(nil), values...),
		Currency: isCurrency,
	}

	chart, err := r.build(h)
	if err != nil {
		return nil, err
	}
	s := chart.RenderSnippet()
	h.snippet = ChartSnippet{
		ID:     target,
		Title:  title,
		Div:    s.Element,
		Script: s.Script,
		HTML:   s.Element + "\n" + s.Script,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.handles[target]; ok {
		old.destroyed.Store(true)
		r.log.Debug("Destroyed previous chart", logger.Fields{"target": target, "kind": string(old.Kind)})
	}
	r.handles[target] = h
	return h, nil
}

// Lookup returns the live chart bound to target
func (r *Renderer) Lookup(target string) (*Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.handles[target]
	return h, ok
}

// Destroy unbinds the chart at target, reporting whether one existed
func (r *Renderer) Destroy(target string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.handles[target]
	if !ok {
		return false
	}
	h.destroyed.Store(true)
	delete(r.handles, target)
	return true
}
