// Package dto defines data transfer objects for the stockscan API responses.
package dto

// CandleResponse represents the JSON body of GET /candle/v3/{symbol}/{timeframe}/{exchange}.
// Candles is nil when the key is absent.
type CandleResponse struct {
	Candles []struct {
		Date   string  `json:"date"`
		Open   float64 `json:"open"`
		High   float64 `json:"high"`
		Low    float64 `json:"low"`
		Close  float64 `json:"close"`
		Volume float64 `json:"volume"`
	} `json:"candles"`
}
