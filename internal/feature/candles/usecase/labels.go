package usecase

import (
	"sort"
	"time"

	"stock_chart/internal/feature/candles/domain/entity"
)

// labelLayouts は時間足ごとのX軸ラベルの書式です。
var labelLayouts = map[entity.TimeFrame]string{
	entity.TimeFrameHourly:  "01/02 15:04", // 03/05 14:30
	entity.TimeFrameDaily:   "01/02/06",    // 03/05/24
	entity.TimeFrameWeekly:  "Jan 02, 06",  // Mar 05, 24
	entity.TimeFrameMonthly: "Jan 2006",    // Mar 2024
}

// FormatLabel はタイムスタンプを時間足に応じたラベル文字列に変換します。
// tはそのままの時刻帯で書式化されます。未知の時間足は日付のみになります。
func FormatLabel(t time.Time, tf entity.TimeFrame) string {
	layout, ok := labelLayouts[tf]
	if !ok {
		layout = "2006-01-02"
	}
	return t.Format(layout)
}

// SortCandles は時刻の昇順に安定ソートしたコピーを返します。入力は変更しません。
func SortCandles(candles []entity.Candle) []entity.Candle {
	sorted := make([]entity.Candle, len(candles))
	copy(sorted, candles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})
	return sorted
}

// BuildChartSeries はローソク足からチャート表示用の系列を生成します。
// ラベルはlocの時刻帯で書式化し、値は終値を使用します。
func BuildChartSeries(name string, candles []entity.Candle, tf entity.TimeFrame, loc *time.Location) entity.ChartSeries {
	if loc == nil {
		loc = time.UTC
	}
	sorted := SortCandles(candles)

	labels := make([]string, 0, len(sorted))
	values := make([]float64, 0, len(sorted))
	for _, c := range sorted {
		labels = append(labels, FormatLabel(c.Time.In(loc), tf))
		values = append(values, c.Close)
	}

	return entity.ChartSeries{
		Labels:          labels,
		Values:          values,
		Name:            name,
		BorderColor:     entity.SeriesBorderColor,
		BackgroundColor: entity.SeriesBackgroundColor,
		Tension:         entity.SeriesTension,
	}
}
