package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stock_chart/internal/feature/candles/domain/entity"
	"stock_chart/internal/feature/candles/usecase"
)

// TestFormatLabel は時間足ごとのラベル書式を検証します。
func TestFormatLabel(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		tf       entity.TimeFrame
		expected string
	}{
		{entity.TimeFrameHourly, "03/05 14:30"},
		{entity.TimeFrameDaily, "03/05/24"},
		{entity.TimeFrameWeekly, "Mar 05, 24"},
		{entity.TimeFrameMonthly, "Mar 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.tf.String(), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, usecase.FormatLabel(ts, tt.tf))
			// 同じ入力に対して常に同じ結果になること
			assert.Equal(t, usecase.FormatLabel(ts, tt.tf), usecase.FormatLabel(ts, tt.tf))
		})
	}
}

// TestFormatLabel_EdgeCases は24時間表記と1桁の日付・月のゼロ埋めを検証します。
func TestFormatLabel_EdgeCases(t *testing.T) {
	t.Parallel()

	midnight := time.Date(2023, 1, 9, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, "01/09 00:05", usecase.FormatLabel(midnight, entity.TimeFrameHourly))
	assert.Equal(t, "01/09/23", usecase.FormatLabel(midnight, entity.TimeFrameDaily))
	assert.Equal(t, "Jan 09, 23", usecase.FormatLabel(midnight, entity.TimeFrameWeekly))

	evening := time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "12/31 23:59", usecase.FormatLabel(evening, entity.TimeFrameHourly))
	assert.Equal(t, "Dec 2023", usecase.FormatLabel(evening, entity.TimeFrameMonthly))
}

// TestBuildChartSeries_SortsAscending は未ソートの入力から昇順の系列が生成されることを検証します。
func TestBuildChartSeries_SortsAscending(t *testing.T) {
	t.Parallel()

	candles := []entity.Candle{
		{Time: time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), Close: 3},
		{Time: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Close: 1},
		{Time: time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), Close: 2},
	}

	series := usecase.BuildChartSeries("TSLA Close Price", candles, entity.TimeFrameDaily, time.UTC)

	assert.Equal(t, []string{"03/05/24", "03/06/24", "03/07/24"}, series.Labels)
	assert.Equal(t, []float64{1, 2, 3}, series.Values)
	assert.Equal(t, "TSLA Close Price", series.Name)
	assert.Equal(t, entity.SeriesBorderColor, series.BorderColor)
	assert.Equal(t, entity.SeriesBackgroundColor, series.BackgroundColor)
	assert.Equal(t, entity.SeriesTension, series.Tension)

	// 入力のスライスは変更されないこと
	assert.Equal(t, 3.0, candles[0].Close)
}

// TestBuildChartSeries_StableTies は同時刻のローソク足が受信順を保つことを検証します。
func TestBuildChartSeries_StableTies(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	candles := []entity.Candle{
		{Time: ts.Add(time.Hour), Close: 9},
		{Time: ts, Close: 1},
		{Time: ts, Close: 2},
	}

	series := usecase.BuildChartSeries("X", candles, entity.TimeFrameHourly, time.UTC)
	assert.Equal(t, []float64{1, 2, 9}, series.Values)
}

// TestBuildChartSeries_Location はラベルが指定した時刻帯で書式化されることを検証します。
func TestBuildChartSeries_Location(t *testing.T) {
	t.Parallel()

	est := time.FixedZone("EST", -5*60*60)
	candles := []entity.Candle{
		{Time: time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), Close: 1},
	}

	series := usecase.BuildChartSeries("X", candles, entity.TimeFrameHourly, est)
	assert.Equal(t, []string{"03/05 09:30"}, series.Labels)

	series = usecase.BuildChartSeries("X", candles, entity.TimeFrameHourly, nil)
	assert.Equal(t, []string{"03/05 14:30"}, series.Labels)
}
