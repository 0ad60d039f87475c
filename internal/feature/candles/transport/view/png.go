package view

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"stock_chart/internal/feature/candles/domain/entity"
)

// ErrEmptySeries is returned when there is nothing to draw.
var ErrEmptySeries = errors.New("render chart: empty series")

// Default image size used when the caller passes non-positive dimensions.
const (
	DefaultWidth  = 1024
	DefaultHeight = 480
)

// seriesStyle mirrors the dataset colors: solid green line, 10% fill.
func seriesStyle() chart.Style {
	return chart.Style{
		StrokeColor: drawing.Color{R: 34, G: 197, B: 94, A: 255},
		FillColor:   drawing.Color{R: 34, G: 197, B: 94, A: 26},
		StrokeWidth: 2,
	}
}

// RenderPNG draws series as a line chart and writes the PNG to w.
// Points are placed at their index so the categorical labels stay evenly spaced.
func RenderPNG(w io.Writer, series entity.ChartSeries, title string, width, height int) error {
	n := series.Len()
	if n == 0 || len(series.Labels) != n {
		return ErrEmptySeries
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	ys := series.Values
	if n == 1 {
		// go-chart needs two points to draw a line; a flat segment around x=0 stands in for the dot
		xs = []float64{-0.5, 0.5}
		ys = []float64{series.Values[0], series.Values[0]}
	}

	ticks := make([]chart.Tick, 0, MaxXTicks)
	for _, i := range TickIndices(n, MaxXTicks) {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: series.Labels[i]})
	}

	xRange := &chart.ContinuousRange{Min: 0, Max: float64(n - 1)}
	if n == 1 {
		xRange = &chart.ContinuousRange{Min: -1, Max: 1}
	}

	ch := chart.Chart{
		Title:      title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "Time",
			Range: xRange,
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:           "Price ($)",
			Range:          priceRange(series.Values),
			ValueFormatter: priceFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    series.Name,
				XValues: xs,
				YValues: ys,
				Style:   seriesStyle(),
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// priceRange returns nil to let the renderer fit the data, except when all
// values are equal and the span would be zero.
func priceRange(values []float64) chart.Range {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi > lo {
		return nil
	}
	pad := math.Max(1, math.Abs(lo)*0.01)
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func priceFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return FormatPrice(f)
	}
	return ""
}
