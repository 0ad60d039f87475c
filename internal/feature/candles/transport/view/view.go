// Package view projects the chart ViewState into renderable output: a page
// model for the HTML template, a Chart.js configuration and a PNG image.
// Nothing here holds state or performs I/O beyond writing the rendered bytes.
package view

import (
	"fmt"

	"stock_chart/internal/feature/candles/domain/entity"
)

// Static texts shown in the chart area.
const (
	EmptyText  = "No data available"
	RetryLabel = "Retry"
)

// Options carries the presentation inputs that are not part of the state.
type Options struct {
	Symbol string
}

// Button is one time frame selector control.
type Button struct {
	TimeFrame entity.TimeFrame
	Label     string
	Active    bool
	Disabled  bool
	Class     string
}

// Page is the fully derived model of one render.
type Page struct {
	Title       string
	Mode        entity.DisplayMode
	Buttons     []Button
	LoadingText string
	ErrorText   string
	EmptyText   string
	RetryLabel  string
	Chart       *ChartConfig
	Generation  uint64
}

func (p Page) IsLoading() bool { return p.Mode == entity.ModeLoading }
func (p Page) IsError() bool   { return p.Mode == entity.ModeError }
func (p Page) IsReady() bool   { return p.Mode == entity.ModeReady }
func (p Page) IsEmpty() bool   { return p.Mode == entity.ModeEmpty }

// Title returns the chart heading, e.g. "TSLA Stock - Daily Chart".
func Title(symbol string, tf entity.TimeFrame) string {
	return fmt.Sprintf("%s Stock - %s Chart", symbol, tf.Title())
}

// Render derives the page for state. Display mode precedence is
// loading, then error, then ready, then empty.
func Render(state entity.ViewState, opts Options) Page {
	active := state.ActiveTimeFrame()
	p := Page{
		Title:      Title(opts.Symbol, active),
		Mode:       state.Mode(),
		Buttons:    Buttons(state),
		RetryLabel: RetryLabel,
		Generation: state.Generation(),
	}

	switch {
	case state.IsLoading():
		p.LoadingText = fmt.Sprintf("Loading %s data...", active)
	case state.Mode() == entity.ModeError:
		msg, _ := state.ErrorMessage()
		p.ErrorText = "Error: " + msg
	case state.Mode() == entity.ModeReady:
		series, _ := state.Series()
		cfg := NewChartConfig(series, opts.Symbol, active)
		p.Chart = &cfg
	default:
		p.Mode = entity.ModeEmpty
		p.EmptyText = EmptyText
	}
	return p
}

// Buttons returns one selector per time frame in display order. A button is
// active iff it matches the active time frame and disabled while loading.
func Buttons(state entity.ViewState) []Button {
	tfs := entity.TimeFrames()
	out := make([]Button, 0, len(tfs))
	for _, tf := range tfs {
		b := Button{
			TimeFrame: tf,
			Label:     tf.Title(),
			Active:    tf == state.ActiveTimeFrame(),
			Disabled:  state.IsLoading(),
			Class:     "timeframe-button",
		}
		if b.Active {
			b.Class += " active"
		}
		if b.Disabled {
			b.Class += " loading"
		}
		out = append(out, b)
	}
	return out
}

// FormatPrice formats a price axis tick.
func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// TooltipLabel formats the hover label of a point.
func TooltipLabel(v float64) string {
	return "Close: " + FormatPrice(v)
}
