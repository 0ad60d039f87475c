// Package usecase はローソク足データの取得とチャート状態管理のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stock_chart/internal/feature/candles/domain"
	"stock_chart/internal/feature/candles/domain/entity"
	"stock_chart/internal/shared/ratelimiter"
)

// MarketRepository はローソク足データを取得するリポジトリのインターフェイスです。
// 外部 API の実装を抽象化します。
type MarketRepository interface {
	GetCandles(ctx context.Context, symbol string, tf entity.TimeFrame, exchange string) ([]entity.Candle, error)
}

// ChartOptions はチャート対象の銘柄とラベルの時刻帯を指定します。
type ChartOptions struct {
	Symbol   string         // 銘柄コード（例: "TSLA"）
	Exchange string         // 取引所（例: "NASDAQ"）
	Location *time.Location // ラベルを書式化する時刻帯。nilの場合はUTC
}

// ChartUsecase は外部APIからローソク足を取得し、チャート系列に整形します。
type ChartUsecase struct {
	market      MarketRepository
	rateLimiter ratelimiter.RateLimiterInterface
	opts        ChartOptions
}

// NewChartUsecase は新しい ChartUsecase を作成します。rateLimiterはnilでも構いません。
func NewChartUsecase(market MarketRepository, rateLimiter ratelimiter.RateLimiterInterface, opts ChartOptions) *ChartUsecase {
	opts.Symbol = strings.ToUpper(opts.Symbol)
	opts.Exchange = strings.ToUpper(opts.Exchange)
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &ChartUsecase{market: market, rateLimiter: rateLimiter, opts: opts}
}

// Symbol はチャート対象の銘柄コードを返します。
func (uc *ChartUsecase) Symbol() string {
	return uc.opts.Symbol
}

// Load は指定された時間足のローソク足を1回取得し、昇順に並べ替えたチャート系列を返します。
// ローソク足が0件の場合は domain.ErrNoCandleData を返します。
func (uc *ChartUsecase) Load(ctx context.Context, tf entity.TimeFrame) (entity.ChartSeries, error) {
	if !tf.IsValid() {
		return entity.ChartSeries{}, fmt.Errorf("load chart: invalid timeframe %q", tf)
	}
	if uc.rateLimiter != nil {
		if err := uc.rateLimiter.Wait(ctx); err != nil {
			return entity.ChartSeries{}, &domain.NetworkError{Err: err}
		}
	}

	candles, err := uc.market.GetCandles(ctx, uc.opts.Symbol, tf, uc.opts.Exchange)
	if err != nil {
		return entity.ChartSeries{}, err
	}
	if len(candles) == 0 {
		return entity.ChartSeries{}, domain.ErrNoCandleData
	}

	name := uc.opts.Symbol + " Close Price"
	return BuildChartSeries(name, candles, tf, uc.opts.Location), nil
}
