package entity

import (
	"fmt"
	"strings"
)

// TimeFrame is the aggregation granularity of candles. The value is also the
// path segment used when querying the remote source.
type TimeFrame string

const (
	TimeFrameHourly  TimeFrame = "hourly"
	TimeFrameDaily   TimeFrame = "daily"
	TimeFrameWeekly  TimeFrame = "weekly"
	TimeFrameMonthly TimeFrame = "monthly"
)

// DefaultTimeFrame is the time frame loaded at startup.
const DefaultTimeFrame = TimeFrameDaily

// TimeFrames returns every supported time frame in display order.
func TimeFrames() []TimeFrame {
	return []TimeFrame{TimeFrameHourly, TimeFrameDaily, TimeFrameWeekly, TimeFrameMonthly}
}

// IsValid reports whether tf is one of the supported values.
func (tf TimeFrame) IsValid() bool {
	switch tf {
	case TimeFrameHourly, TimeFrameDaily, TimeFrameWeekly, TimeFrameMonthly:
		return true
	default:
		return false
	}
}

func (tf TimeFrame) String() string {
	return string(tf)
}

// Title returns the time frame with its first letter capitalized ("Weekly").
func (tf TimeFrame) Title() string {
	s := string(tf)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseTimeFrame converts a string to a TimeFrame.
func ParseTimeFrame(s string) (TimeFrame, error) {
	tf := TimeFrame(s)
	if !tf.IsValid() {
		return "", fmt.Errorf("invalid timeframe: %q", s)
	}
	return tf, nil
}
