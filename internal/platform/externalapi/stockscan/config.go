// Package stockscan provides a client for the stockscan candle chart API.
package stockscan

import "time"

// DefaultBaseURL is the public host serving /candle/v3.
const DefaultBaseURL = "https://chart.stockscan.io"

// Config holds configuration for the stockscan candle client.
type Config struct {
	BaseURL string        // Base URL for the API (e.g., "https://chart.stockscan.io")
	Timeout time.Duration // Overall request timeout; 0 leaves only dial/TLS limits
}
