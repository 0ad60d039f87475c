package di

import (
	"fmt"

	"stock_chart/internal/config"
	"stock_chart/internal/feature/candles/transport/handler"
	"stock_chart/internal/feature/candles/usecase"
	"stock_chart/internal/shared/ratelimiter"
)

// NewChartUsecase wires the market repository and the outbound rate limiter
// into a ChartUsecase for the configured ticker.
func NewChartUsecase(cfg *config.Config, market usecase.MarketRepository) (*usecase.ChartUsecase, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("chart label timezone: %w", err)
	}
	limiter := ratelimiter.NewRateLimiter(cfg.DataSource.RatePerSec, cfg.DataSource.Burst)
	return usecase.NewChartUsecase(market, limiter, usecase.ChartOptions{
		Symbol:   cfg.DataSource.Symbol,
		Exchange: cfg.DataSource.Exchange,
		Location: loc,
	}), nil
}

// NewChartHandler creates the HTTP handler for ctrl using the chart settings in cfg.
func NewChartHandler(cfg *config.Config, symbol string, ctrl handler.ChartController) *handler.ChartHandler {
	return handler.NewChartHandler(ctrl, handler.Options{
		Symbol:       symbol,
		Width:        cfg.Chart.Width,
		Height:       cfg.Chart.Height,
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
	})
}
