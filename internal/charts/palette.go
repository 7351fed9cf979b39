package charts

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

type rgba struct {
	R, G, B uint8
	A       float64
}

func (c rgba) css() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c.R, c.G, c.B, c.A)
}

func (c rgba) drawing() drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: uint8(c.A * 255)}
}

// Pie slices cycle through this palette by index
var piePalette = []rgba{
	{99, 102, 241, 0.8},
	{139, 92, 246, 0.8},
	{236, 72, 153, 0.8},
	{16, 185, 129, 0.8},
	{245, 158, 11, 0.8},
	{239, 68, 68, 0.8},
	{59, 130, 246, 0.8},
	{168, 85, 247, 0.8},
	{236, 72, 153, 0.8},
	{20, 184, 166, 0.8},
}

// Non-pie series fade from gradientTop to gradientBottom
var (
	gradientTop    = rgba{99, 102, 241, 0.8}
	gradientBottom = rgba{139, 92, 246, 0.4}
	borderColor    = rgba{99, 102, 241, 1}
)

// emptyColor fills a pie whose values are all zero
var emptyColor = rgba{203, 213, 225, 0.8}

func paletteCSS() []string {
	colors := make([]string, len(piePalette))
	for i, c := range piePalette {
		colors[i] = c.css()
	}
	return colors
}

func paletteColor(i int) drawing.Color {
	return piePalette[i%len(piePalette)].drawing()
}

// gradientJS is an echarts LinearGradient running top to bottom, or left
// to right when horizontal
func gradientJS(horizontal bool) string {
	x2, y2 := 0, 1
	if horizontal {
		x2, y2 = 1, 0
	}
	return fmt.Sprintf(
		"new echarts.graphic.LinearGradient(0, 0, %d, %d, [{offset: 0, color: '%s'}, {offset: 1, color: '%s'}])",
		x2, y2, gradientTop.css(), gradientBottom.css())
}
