package usecase_test

import (
	"context"
	"errors"
	"sync"

	"stock_chart/internal/feature/candles/domain/entity"
)

// mockMarket はMarketRepositoryインターフェースのモック実装です。
// 呼び出しごとに連番と時間足を記録します。
type mockMarket struct {
	mu             sync.Mutex
	calls          []entity.TimeFrame
	symbols        []string
	exchanges      []string
	GetCandlesFunc func(ctx context.Context, call int, tf entity.TimeFrame) ([]entity.Candle, error)
}

// GetCandles はGetCandlesFuncが設定されていればそれを呼び出し、呼び出しを記録します。
func (m *mockMarket) GetCandles(ctx context.Context, symbol string, tf entity.TimeFrame, exchange string) ([]entity.Candle, error) {
	m.mu.Lock()
	call := len(m.calls)
	m.calls = append(m.calls, tf)
	m.symbols = append(m.symbols, symbol)
	m.exchanges = append(m.exchanges, exchange)
	m.mu.Unlock()

	if m.GetCandlesFunc != nil {
		return m.GetCandlesFunc(ctx, call, tf)
	}
	return nil, errors.New("GetCandlesFunc is not implemented")
}

// Calls は記録された時間足のコピーを返します。
func (m *mockMarket) Calls() []entity.TimeFrame {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.TimeFrame, len(m.calls))
	copy(out, m.calls)
	return out
}

// mockLimiter はRateLimiterInterfaceのモック実装です。
type mockLimiter struct {
	WaitFunc func(ctx context.Context) error
	waits    int
}

func (l *mockLimiter) Wait(ctx context.Context) error {
	l.waits++
	if l.WaitFunc != nil {
		return l.WaitFunc(ctx)
	}
	return nil
}
