// Package ratelimiter throttles outbound calls to the candle source.
package ratelimiter

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"
)

// RateLimiterInterface は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	Wait(ctx context.Context) error
}

// RateLimiter は token bucket 方式で外部APIへのリクエスト頻度を制限します。
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter は1秒あたりperSec回、最大burst回まで連続して許可するRateLimiterを生成します。
// perSecが0以下の場合は制限しません。
func NewRateLimiter(perSec float64, burst int) *RateLimiter {
	if perSec <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(perSec), burst)}
}

// Wait はトークンが得られるまで待機します。ctxがキャンセルされた場合はエラーを返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.limiter.Limit() != rate.Inf && rl.limiter.Tokens() < 1 {
		slog.Debug("[RATE LIMIT] throttling outbound request", "limit", float64(rl.limiter.Limit()))
	}
	return rl.limiter.Wait(ctx)
}
