package entity

import "encoding/json"

// DisplayMode is the mutually exclusive state the chart area is shown in.
type DisplayMode int

const (
	ModeEmpty DisplayMode = iota
	ModeLoading
	ModeError
	ModeReady
)

func (m DisplayMode) String() string {
	switch m {
	case ModeLoading:
		return "loading"
	case ModeError:
		return "error"
	case ModeReady:
		return "ready"
	default:
		return "empty"
	}
}

// ViewState is the single authoritative state owned by the data controller.
//
// It is a tagged variant: the mode decides which of the other fields carry
// meaning, and the only way to build one is through the constructors below,
// so combinations such as "loading with an error" cannot exist.
// A ViewState is a value and is replaced wholesale on every transition.
type ViewState struct {
	mode       DisplayMode
	active     TimeFrame
	requested  TimeFrame
	message    string
	series     ChartSeries
	hasSeries  bool
	generation uint64
}

// EmptyState is the state before the first fetch is issued.
func EmptyState(active TimeFrame) ViewState {
	return ViewState{mode: ModeEmpty, active: active, requested: active}
}

// LoadingState marks a fetch for requested as in flight. The previously shown
// series, if any, is retained but not displayed.
func LoadingState(active, requested TimeFrame, retained *ChartSeries) ViewState {
	s := ViewState{mode: ModeLoading, active: active, requested: requested}
	s.retain(retained)
	return s
}

// ErrorState records a failed fetch. The active time frame stays on the last
// successful one and the retained series is kept out of view.
func ErrorState(active TimeFrame, message string, retained *ChartSeries) ViewState {
	s := ViewState{mode: ModeError, active: active, requested: active, message: message}
	s.retain(retained)
	return s
}

// ReadyState holds a freshly derived series for active.
func ReadyState(active TimeFrame, series ChartSeries) ViewState {
	return ViewState{mode: ModeReady, active: active, requested: active, series: series, hasSeries: true}
}

func (s *ViewState) retain(series *ChartSeries) {
	if series != nil {
		s.series = *series
		s.hasSeries = true
	}
}

// WithGeneration returns a copy of s stamped with the fetch generation that produced it.
func (s ViewState) WithGeneration(gen uint64) ViewState {
	s.generation = gen
	return s
}

func (s ViewState) Mode() DisplayMode { return s.mode }

// ActiveTimeFrame is the time frame of the last successful fetch (daily before any).
func (s ViewState) ActiveTimeFrame() TimeFrame { return s.active }

// RequestedTimeFrame is the time frame being loaded; it equals the active one
// outside of Loading.
func (s ViewState) RequestedTimeFrame() TimeFrame { return s.requested }

func (s ViewState) IsLoading() bool { return s.mode == ModeLoading }

func (s ViewState) Generation() uint64 { return s.generation }

// ErrorMessage returns the user-visible error text in Error mode.
func (s ViewState) ErrorMessage() (string, bool) {
	if s.mode != ModeError {
		return "", false
	}
	return s.message, true
}

// Series returns the displayed series; it is present only in Ready mode.
func (s ViewState) Series() (ChartSeries, bool) {
	if s.mode != ModeReady {
		return ChartSeries{}, false
	}
	return s.series, true
}

// Retained returns the last derived series regardless of mode.
func (s ViewState) Retained() (ChartSeries, bool) {
	return s.series, s.hasSeries
}

type viewStateJSON struct {
	Mode       string       `json:"mode"`
	TimeFrame  TimeFrame    `json:"timeFrame"`
	Requested  TimeFrame    `json:"requestedTimeFrame"`
	Loading    bool         `json:"loading"`
	Error      *string      `json:"error"`
	Series     *ChartSeries `json:"series"`
	Generation uint64       `json:"generation"`
}

// MarshalJSON encodes the state as seen by the view: the series is only
// included in Ready mode and the error only in Error mode.
func (s ViewState) MarshalJSON() ([]byte, error) {
	out := viewStateJSON{
		Mode:       s.mode.String(),
		TimeFrame:  s.active,
		Requested:  s.requested,
		Loading:    s.IsLoading(),
		Generation: s.generation,
	}
	if msg, ok := s.ErrorMessage(); ok {
		out.Error = &msg
	}
	if series, ok := s.Series(); ok {
		out.Series = &series
	}
	return json.Marshal(out)
}
