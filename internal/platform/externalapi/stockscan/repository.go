package stockscan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stock_chart/internal/feature/candles/domain"
	"stock_chart/internal/feature/candles/domain/entity"
	"stock_chart/internal/feature/candles/usecase"
	"stock_chart/internal/platform/externalapi/stockscan/dto"
)

// dateLayouts are the ISO-8601 variants accepted for the candle "date" field.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// StockscanMarket はstockscan APIからローソク足データを取得するMarketRepository実装です。
type StockscanMarket struct {
	cfg    Config
	client *http.Client
}

// StockscanMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*StockscanMarket)(nil)

// NewStockscanMarket は指定された設定とHTTPクライアントでStockscanMarketの新しいインスタンスを生成します。
func NewStockscanMarket(cfg Config, client *http.Client) *StockscanMarket {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &StockscanMarket{cfg: cfg, client: client}
}

// GetCandles は /candle/v3/{symbol}/{timeframe}/{exchange} を1回だけGETし、
// レスポンスのローソク足を受信した順序のまま返します。
//
// 失敗はドメインエラーに分類されます:
//   - 接続失敗: *domain.NetworkError
//   - 2xx以外: *domain.HTTPStatusError
//   - JSON不正・日付不正: *domain.MalformedResponseError
func (m *StockscanMarket) GetCandles(ctx context.Context, symbol string, tf entity.TimeFrame, exchange string) ([]entity.Candle, error) {
	// URLを生成
	u := fmt.Sprintf("%s/candle/v3/%s/%s/%s",
		m.cfg.BaseURL,
		url.PathEscape(strings.ToUpper(symbol)),
		url.PathEscape(tf.String()),
		url.PathEscape(strings.ToUpper(exchange)),
	)

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &domain.NetworkError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	// リクエストを実行
	res, err := m.client.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{Err: err}
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &domain.HTTPStatusError{StatusCode: res.StatusCode}
	}

	// JSONレスポンスをDTOにデコード
	var body dto.CandleResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, &domain.NetworkError{Err: err}
		}
		return nil, &domain.MalformedResponseError{Err: fmt.Errorf("decode body: %w", err)}
	}
	slog.Debug("stockscan response received", "symbol", symbol, "timeframe", tf, "candles", len(body.Candles))

	candles := make([]entity.Candle, 0, len(body.Candles))
	for _, v := range body.Candles {
		// タイムスタンプをパース
		tm, err := parseDate(v.Date)
		if err != nil {
			return nil, &domain.MalformedResponseError{Err: err}
		}

		volume, err := parseVolume(v.Volume)
		if err != nil {
			return nil, &domain.MalformedResponseError{Err: err}
		}

		// ドメインエンティティに変換
		candles = append(candles, entity.Candle{
			Time:   tm,
			Open:   v.Open,
			High:   v.High,
			Low:    v.Low,
			Close:  v.Close,
			Volume: volume,
		})
	}
	return candles, nil
}

// parseVolume は出来高を整数に丸めます。int64に収まらない値はエラーです。
func parseVolume(v float64) (int64, error) {
	r := math.Round(v)
	// 2^63 はfloat64で正確に表せるため、境界は半開区間で判定する
	if math.IsNaN(r) || r < math.MinInt64 || r >= math.MaxInt64 {
		return 0, fmt.Errorf("volume %g out of range", v)
	}
	return int64(r), nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if tm, err := time.Parse(layout, s); err == nil {
			return tm, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q: unsupported format", s)
}
