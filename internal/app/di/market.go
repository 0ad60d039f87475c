// Package di provides dependency injection factories for creating application components.
package di

import (
	"stock_chart/internal/config"
	"stock_chart/internal/platform/externalapi/stockscan"
	infrahttp "stock_chart/internal/platform/http"
)

// NewMarket creates a fully configured StockscanMarket with HTTP client.
func NewMarket(cfg *config.Config) *stockscan.StockscanMarket {
	scfg := stockscan.Config{
		BaseURL: cfg.DataSource.BaseURL,
		Timeout: cfg.DataSource.Timeout,
	}
	httpClient := infrahttp.NewHTTPClient(scfg.Timeout)
	return stockscan.NewStockscanMarket(scfg, httpClient)
}
