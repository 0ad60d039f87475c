package stockscan

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stock_chart/internal/feature/candles/domain"
	"stock_chart/internal/feature/candles/domain/entity"
)

func newTestMarket(t *testing.T, h http.HandlerFunc) *StockscanMarket {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewStockscanMarket(Config{BaseURL: server.URL}, server.Client())
}

func TestNewStockscanMarket_Defaults(t *testing.T) {
	t.Parallel()

	market := NewStockscanMarket(Config{}, &http.Client{})
	if market.cfg.BaseURL != DefaultBaseURL {
		t.Errorf("expected base URL %q, got %q", DefaultBaseURL, market.cfg.BaseURL)
	}

	market = NewStockscanMarket(Config{BaseURL: "https://example.test/"}, &http.Client{})
	if market.cfg.BaseURL != "https://example.test" {
		t.Errorf("expected trailing slash trimmed, got %q", market.cfg.BaseURL)
	}
}

func TestStockscanMarket_GetCandles_Success(t *testing.T) {
	t.Parallel()

	market := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/candle/v3/TSLA/weekly/NASDAQ" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("expected no auth header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candles": [
				{"date": "2024-03-12T00:00:00.000Z", "open": 180.5, "high": 183, "low": 179, "close": 182.25, "volume": 1200000},
				{"date": "2024-03-05T14:30:00", "open": 170, "high": 175, "low": 168, "close": 171.1, "volume": 900000.4},
				{"date": "2024-02-27", "open": 160, "high": 165, "low": 158, "close": 163, "volume": 10}
			]
		}`))
	})

	candles, err := market.GetCandles(context.Background(), "tsla", entity.TimeFrameWeekly, "nasdaq")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candles) != 3 {
		t.Fatalf("expected 3 candles, got %d", len(candles))
	}

	// Source order is preserved; sorting happens in the usecase.
	if candles[0].Close != 182.25 {
		t.Errorf("expected close 182.25, got %f", candles[0].Close)
	}
	if want := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC); !candles[1].Time.Equal(want) {
		t.Errorf("expected time %v, got %v", want, candles[1].Time)
	}
	if candles[1].Volume != 900000 {
		t.Errorf("expected volume 900000, got %d", candles[1].Volume)
	}
	if want := time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC); !candles[2].Time.Equal(want) {
		t.Errorf("expected time %v, got %v", want, candles[2].Time)
	}
}

func TestStockscanMarket_GetCandles_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"moved permanently", http.StatusMovedPermanently},
		{"bad request", http.StatusBadRequest},
		{"not found", http.StatusNotFound},
		{"internal server error", http.StatusInternalServerError},
		{"service unavailable", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			market := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
				// a 3xx without Location is returned to the caller as-is
				w.WriteHeader(tt.statusCode)
			})

			_, err := market.GetCandles(context.Background(), "TSLA", entity.TimeFrameDaily, "NASDAQ")
			var statusErr *domain.HTTPStatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected HTTPStatusError, got %v", err)
			}
			if statusErr.StatusCode != tt.statusCode {
				t.Errorf("expected status %d, got %d", tt.statusCode, statusErr.StatusCode)
			}
		})
	}
}

func TestStockscanMarket_GetCandles_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{invalid json`},
		{"wrong shape", `[1, 2, 3]`},
		{"candles not a list", `{"candles": "none"}`},
		{"close not a number", `{"candles": [{"date": "2024-03-05", "close": "abc"}]}`},
		{"invalid date", `{"candles": [{"date": "yesterday", "close": 1}]}`},
		{"volume beyond int64", `{"candles": [{"date": "2024-03-05", "close": 1, "volume": 1e19}]}`},
		{"negative volume beyond int64", `{"candles": [{"date": "2024-03-05", "close": 1, "volume": -1e19}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			market := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := market.GetCandles(context.Background(), "TSLA", entity.TimeFrameDaily, "NASDAQ")
			var malformed *domain.MalformedResponseError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedResponseError, got %v", err)
			}
		})
	}
}

func TestStockscanMarket_GetCandles_EmptyAndMissing(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{"candles": []}`, `{}`, `null`} {
		t.Run(body, func(t *testing.T) {
			t.Parallel()

			market := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			candles, err := market.GetCandles(context.Background(), "TSLA", entity.TimeFrameDaily, "NASDAQ")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(candles) != 0 {
				t.Errorf("expected 0 candles, got %d", len(candles))
			}
		})
	}
}

func TestStockscanMarket_GetCandles_NetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	market := NewStockscanMarket(Config{BaseURL: baseURL}, &http.Client{})
	_, err := market.GetCandles(context.Background(), "TSLA", entity.TimeFrameDaily, "NASDAQ")
	var netErr *domain.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestStockscanMarket_GetCandles_ContextCancellation(t *testing.T) {
	t.Parallel()

	market := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := market.GetCandles(ctx, "TSLA", entity.TimeFrameDaily, "NASDAQ")
	var netErr *domain.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError due to context cancellation, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded in chain, got %v", err)
	}
}
