package view

import "stock_chart/internal/feature/candles/domain/entity"

// ChartConfig is a Chart.js line chart configuration. Formatting that Chart.js
// expresses as callbacks is carried as prefix/decimals hints and applied by the
// page script.
type ChartConfig struct {
	Type    string       `json:"type"`
	Data    ChartData    `json:"data"`
	Options ChartOptions `json:"options"`
}

type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor"`
	BackgroundColor string    `json:"backgroundColor"`
	Tension         float64   `json:"tension"`
}

type ChartOptions struct {
	Responsive          bool        `json:"responsive"`
	MaintainAspectRatio bool        `json:"maintainAspectRatio"`
	Plugins             Plugins     `json:"plugins"`
	Scales              Scales      `json:"scales"`
	Interaction         Interaction `json:"interaction"`
}

type Plugins struct {
	Legend  Legend      `json:"legend"`
	Title   TitleOption `json:"title"`
	Tooltip Tooltip     `json:"tooltip"`
}

type Legend struct {
	Position string `json:"position"`
}

type TitleOption struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

type Tooltip struct {
	LabelPrefix string `json:"labelPrefix"`
	Decimals    int    `json:"decimals"`
}

type Scales struct {
	Y Axis `json:"y"`
	X Axis `json:"x"`
}

type Axis struct {
	BeginAtZero *bool       `json:"beginAtZero,omitempty"`
	Position    string      `json:"position,omitempty"`
	Title       TitleOption `json:"title"`
	Ticks       Ticks       `json:"ticks"`
}

type Ticks struct {
	MaxTicksLimit int    `json:"maxTicksLimit,omitempty"`
	Prefix        string `json:"prefix,omitempty"`
	Decimals      int    `json:"decimals,omitempty"`
}

type Interaction struct {
	Intersect bool   `json:"intersect"`
	Mode      string `json:"mode"`
}

// NewChartConfig builds the line chart configuration for series.
func NewChartConfig(series entity.ChartSeries, symbol string, tf entity.TimeFrame) ChartConfig {
	beginAtZero := false
	return ChartConfig{
		Type: "line",
		Data: ChartData{
			Labels: series.Labels,
			Datasets: []Dataset{{
				Label:           series.Name,
				Data:            series.Values,
				BorderColor:     series.BorderColor,
				BackgroundColor: series.BackgroundColor,
				Tension:         series.Tension,
			}},
		},
		Options: ChartOptions{
			Responsive:          true,
			MaintainAspectRatio: false,
			Plugins: Plugins{
				Legend:  Legend{Position: "top"},
				Title:   TitleOption{Display: true, Text: Title(symbol, tf)},
				Tooltip: Tooltip{LabelPrefix: "Close: $", Decimals: 2},
			},
			Scales: Scales{
				Y: Axis{
					BeginAtZero: &beginAtZero,
					Position:    "left",
					Title:       TitleOption{Display: true, Text: "Price ($)"},
					Ticks:       Ticks{Prefix: "$", Decimals: 2},
				},
				X: Axis{
					Title: TitleOption{Display: true, Text: "Time"},
					Ticks: Ticks{MaxTicksLimit: MaxXTicks},
				},
			},
			Interaction: Interaction{Intersect: false, Mode: "index"},
		},
	}
}
