package entity

// Series styling shared by every time frame.
const (
	SeriesBorderColor     = "rgb(34, 197, 94)"
	SeriesBackgroundColor = "rgba(34, 197, 94, 0.1)"
	SeriesTension         = 0.1
)

// ChartSeries is the presentation-ready projection of a sorted candle series:
// one formatted label and one close price per candle, plus static styling.
// A ChartSeries is never mutated after construction, only replaced.
type ChartSeries struct {
	Labels          []string  `json:"labels"`
	Values          []float64 `json:"values"`
	Name            string    `json:"name"`
	BorderColor     string    `json:"borderColor"`
	BackgroundColor string    `json:"backgroundColor"`
	Tension         float64   `json:"tension"`
}

// Len returns the number of points in the series.
func (s ChartSeries) Len() int {
	return len(s.Values)
}
