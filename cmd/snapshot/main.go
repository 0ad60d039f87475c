// Command snapshot fetches one time frame once and writes the chart as a PNG.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"stock_chart/internal/app/di"
	"stock_chart/internal/config"
	"stock_chart/internal/feature/candles/domain/entity"
	"stock_chart/internal/feature/candles/transport/view"
	"stock_chart/internal/platform/logging"
)

func main() {
	tfFlag := flag.String("timeframe", entity.DefaultTimeFrame.String(), "hourly, daily, weekly or monthly")
	out := flag.String("out", "chart.png", "output PNG path")
	timeout := flag.Duration("timeout", time.Minute, "overall fetch timeout")
	flag.Parse()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if _, err := logging.Setup(cfg.Log.Level, ""); err != nil {
		log.Fatal(err)
	}

	tf, err := entity.ParseTimeFrame(*tfFlag)
	if err != nil {
		log.Fatal(err)
	}

	uc, err := di.NewChartUsecase(cfg, di.NewMarket(cfg))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	series, err := uc.Load(ctx, tf)
	if err != nil {
		log.Fatal("fetch failed: ", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	if err := view.RenderPNG(f, series, view.Title(uc.Symbol(), tf), cfg.Chart.Width, cfg.Chart.Height); err != nil {
		_ = f.Close()
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s (%d points)", *out, series.Len())
}
