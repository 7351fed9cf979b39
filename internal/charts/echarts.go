package charts

import (
	"fmt"

	"moviedash/internal/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Tooltip and tick callbacks. Currency values arrive already in millions.
const (
	countTooltipJS    = "function (p) { return p.name + ': ' + p.value + ' films'; }"
	currencyTooltipJS = "function (p) { return p.name + ': $' + Number(p.value).toFixed(1) + 'M'; }"
	currencyTickJS    = "function (v) { return '$' + v + 'M'; }"
)

func (r *Renderer) build(h *Handle) (snippetRenderer, error) {
	switch h.Kind {
	case models.ChartBar, models.ChartHorizontalBar:
		return r.buildBar(h), nil
	case models.ChartPie:
		return r.buildPie(h), nil
	case models.ChartLine:
		return r.buildLine(h), nil
	default:
		return nil, fmt.Errorf("unsupported chart kind %q", h.Kind)
	}
}

func (r *Renderer) globalOpts(h *Handle) []charts.GlobalOpts {
	tooltip := countTooltipJS
	if h.Currency {
		tooltip = currencyTooltipJS
	}
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: h.Target,
			Width:   r.width,
			Height:  r.height,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: h.Title,
			Left:  "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: opts.FuncOpts(tooltip),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(h.Kind == models.ChartPie),
			Top:  "bottom",
		}),
	}
}

func valueAxisLabel(currency bool) *opts.AxisLabel {
	if !currency {
		return &opts.AxisLabel{Show: opts.Bool(true)}
	}
	return &opts.AxisLabel{
		Show:      opts.Bool(true),
		Formatter: opts.FuncOpts(currencyTickJS),
	}
}

func seriesName(h *Handle) string {
	if h.Currency {
		return "Revenue ($M)"
	}
	return "Films"
}

func (r *Renderer) buildBar(h *Handle) *charts.Bar {
	horizontal := h.Kind == models.ChartHorizontalBar

	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalOpts(h)...)
	bar.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			AxisLabel: &opts.AxisLabel{Show: opts.Bool(true), Interval: "0", Rotate: 30},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "value",
			AxisLabel: valueAxisLabel(h.Currency),
		}),
		charts.WithGridOpts(opts.Grid{ContainLabel: opts.Bool(true)}),
	)

	data := make([]opts.BarData, len(h.Values))
	for i, v := range h.Values {
		data[i] = opts.BarData{Name: h.Labels[i], Value: v}
	}

	bar.SetXAxis(h.Labels).
		AddSeries(seriesName(h), data,
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color:       string(opts.FuncOpts(gradientJS(horizontal))),
				BorderColor: borderColor.css(),
			}),
		)

	if horizontal {
		bar.XYReversal()
	}
	return bar
}

func (r *Renderer) buildPie(h *Handle) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(r.globalOpts(h)...)
	pie.SetGlobalOptions(charts.WithColorsOpts(opts.Colors(paletteCSS())))

	data := make([]opts.PieData, len(h.Values))
	for i, v := range h.Values {
		data[i] = opts.PieData{Name: h.Labels[i], Value: v}
	}

	pie.AddSeries(seriesName(h), data).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
			charts.WithPieChartOpts(opts.PieChart{
				Radius: []string{"0%", "70%"},
				Center: []string{"50%", "50%"},
			}),
		)
	return pie
}

func (r *Renderer) buildLine(h *Handle) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(r.globalOpts(h)...)
	line.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			AxisLabel: &opts.AxisLabel{Show: opts.Bool(true), Interval: "0", Rotate: 30},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "value",
			AxisLabel: valueAxisLabel(h.Currency),
		}),
		charts.WithGridOpts(opts.Grid{ContainLabel: opts.Bool(true)}),
	)

	data := make([]opts.LineData, len(h.Values))
	for i, v := range h.Values {
		data[i] = opts.LineData{Name: h.Labels[i], Value: v}
	}

	line.SetXAxis(h.Labels).
		AddSeries(seriesName(h), data,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: borderColor.css()}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Color: string(opts.FuncOpts(gradientJS(false)))}),
		)
	return line
}
