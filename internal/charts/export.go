package charts

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"moviedash/internal/logger"
	"moviedash/internal/models"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	exportWidth  = 1000
	exportHeight = 500
)

// ExportPNG draws the chart bound to target as a PNG image
func (r *Renderer) ExportPNG(target string, w io.Writer) error {
	h, ok := r.Lookup(target)
	if !ok || len(h.Values) == 0 {
		return fmt.Errorf("%s: %w", target, ErrEmptyState)
	}
	if err := RenderPNG(h, w); err != nil {
		return fmt.Errorf("failed to export %s: %w", target, err)
	}
	r.log.Info("Chart exported", logger.Fields{"target": target, "kind": string(h.Kind)})
	return nil
}

// RenderPNG draws h with go-chart using the same chart family as the page
func RenderPNG(h *Handle, w io.Writer) error {
	if len(h.Values) == 0 {
		return ErrEmptyState
	}
	switch h.Kind {
	case models.ChartBar:
		return renderBarPNG(h, w)
	case models.ChartHorizontalBar:
		return renderHorizontalBarPNG(h, w)
	case models.ChartPie:
		return renderPiePNG(h, w)
	case models.ChartLine:
		return renderLinePNG(h, w)
	default:
		return fmt.Errorf("unsupported chart kind %q", h.Kind)
	}
}

// niceMax leaves headroom above the largest value and never collapses to zero
func niceMax(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		m = math.Max(m, v)
	}
	if m <= 0 {
		return 1
	}
	return m * 1.1
}

func valueFormatter(currency bool) chart.ValueFormatter {
	return func(v interface{}) string {
		f, ok := v.(float64)
		if !ok {
			return fmt.Sprintf("%v", v)
		}
		if currency {
			return "$" + strconv.FormatFloat(f, 'f', -1, 64) + "M"
		}
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
}

var titleStyle = chart.Style{FontSize: 16, FontColor: drawing.ColorBlack}

func renderBarPNG(h *Handle, w io.Writer) error {
	bars := make([]chart.Value, len(h.Values))
	for i, v := range h.Values {
		bars[i] = chart.Value{
			Label: h.Labels[i],
			Value: v,
			Style: chart.Style{
				FillColor:   gradientTop.drawing(),
				StrokeColor: borderColor.drawing(),
				StrokeWidth: 1,
			},
		}
	}

	graph := chart.BarChart{
		Title:      h.Title,
		TitleStyle: titleStyle,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		Width:      exportWidth,
		Height:     exportHeight,
		BarWidth:   max(8, (exportWidth-200)/(2*len(bars))),
		YAxis: chart.YAxis{
			ValueFormatter: valueFormatter(h.Currency),
			Range:          &chart.ContinuousRange{Min: 0, Max: niceMax(h.Values)},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}

func renderPiePNG(h *Handle, w io.Writer) error {
	var total float64
	values := make([]chart.Value, len(h.Values))
	for i, v := range h.Values {
		total += v
		values[i] = chart.Value{
			Label: h.Labels[i],
			Value: v,
			Style: chart.Style{FillColor: paletteColor(i), StrokeColor: drawing.ColorWhite},
		}
	}
	// go-chart refuses a pie with no positive slice, so all-zero data draws
	// as one grey disc
	if total <= 0 {
		values = []chart.Value{{
			Label: "No share",
			Value: 1,
			Style: chart.Style{FillColor: emptyColor.drawing(), StrokeColor: drawing.ColorWhite},
		}}
	}

	graph := chart.PieChart{
		Title:      h.Title,
		TitleStyle: titleStyle,
		Width:      exportHeight,
		Height:     exportHeight,
		Values:     values,
	}
	return graph.Render(chart.PNG, w)
}

// categoryTicks labels positions 0..n-1 and pads the axis by half a step on
// each side. go-chart derives the axis range from the ticks, so a single
// category would otherwise leave a zero-width range.
func categoryTicks(labels []string, position func(i int) float64) []chart.Tick {
	n := len(labels)
	ticks := make([]chart.Tick, 0, n+2)
	ticks = append(ticks, chart.Tick{Value: -0.5})
	for i, label := range labels {
		ticks = append(ticks, chart.Tick{Value: position(i), Label: label})
	}
	return append(ticks, chart.Tick{Value: float64(n) - 0.5})
}

func renderLinePNG(h *Handle, w io.Writer) error {
	xs := make([]float64, len(h.Values))
	for i := range h.Values {
		xs[i] = float64(i)
	}
	ticks := categoryTicks(h.Labels, func(i int) float64 { return float64(i) })

	graph := chart.Chart{
		Title:      h.Title,
		TitleStyle: titleStyle,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 40, Bottom: 20}},
		Width:      exportWidth,
		Height:     exportHeight,
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(h.Values)) - 0.5},
		},
		YAxis: chart.YAxis{
			ValueFormatter: valueFormatter(h.Currency),
			Range:          &chart.ContinuousRange{Min: 0, Max: niceMax(h.Values)},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    seriesName(h),
				XValues: xs,
				YValues: append([]float64(nil), h.Values...),
				Style: chart.Style{
					StrokeColor: borderColor.drawing(),
					StrokeWidth: 2,
					FillColor:   gradientBottom.drawing(),
					DotColor:    borderColor.drawing(),
					DotWidth:    4,
				},
			},
		},
	}
	return graph.Render(chart.PNG, w)
}

// hbarSeries draws one horizontal bar per row, first row on top
type hbarSeries struct {
	values []float64
}

func (hs hbarSeries) GetName() string           { return "horizontal bars" }
func (hs hbarSeries) GetStyle() chart.Style     { return chart.Style{} }
func (hs hbarSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (hs hbarSeries) Len() int                  { return len(hs.values) }
func (hs hbarSeries) Validate() error           { return nil }
func (hs hbarSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	n := len(hs.values)
	for i, v := range hs.values {
		row := float64(n - 1 - i)
		x0 := canvasBox.Left + xrange.Translate(0)
		x1 := canvasBox.Left + xrange.Translate(v)
		y0 := canvasBox.Bottom - yrange.Translate(row-0.35)
		y1 := canvasBox.Bottom - yrange.Translate(row+0.35)
		if y1 < y0 {
			y0, y1 = y1, y0
		}
		if x1 <= x0 {
			continue
		}

		r.SetFillColor(gradientTop.drawing())
		r.SetStrokeColor(borderColor.drawing())
		r.SetStrokeWidth(1)
		r.MoveTo(x0, y0)
		r.LineTo(x1, y0)
		r.LineTo(x1, y1)
		r.LineTo(x0, y1)
		r.Close()
		r.FillStroke()
	}
}

func renderHorizontalBarPNG(h *Handle, w io.Writer) error {
	n := len(h.Values)
	yTicks := categoryTicks(h.Labels, func(i int) float64 { return float64(n - 1 - i) })

	graph := chart.Chart{
		Title:      h.Title,
		TitleStyle: titleStyle,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 40, Bottom: 20}},
		Width:      exportWidth,
		Height:     exportHeight,
		XAxis: chart.XAxis{
			ValueFormatter: valueFormatter(h.Currency),
			Range:          &chart.ContinuousRange{Min: 0, Max: niceMax(h.Values)},
		},
		YAxis: chart.YAxis{
			Ticks: yTicks,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(n) - 0.5},
		},
		Series: []chart.Series{hbarSeries{values: h.Values}},
	}
	return graph.Render(chart.PNG, w)
}
