package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"stock_chart/internal/feature/candles/domain/entity"
)

// ChartLoader は1回の取得でチャート系列を返す処理を抽象化します。
type ChartLoader interface {
	Load(ctx context.Context, tf entity.TimeFrame) (entity.ChartSeries, error)
}

// DataController は時間足の切り替えとデータ取得のライフサイクルを仲介し、
// 唯一の ViewState を保持します。
//
// 状態は常に丸ごと置き換えられます。取得ごとに世代番号を振り、現在の世代に
// 一致しない結果（置き換えられた取得や Close 後に届いた結果）は破棄されます。
type DataController struct {
	loader ChartLoader

	mu          sync.Mutex
	state       entity.ViewState
	generation  uint64
	cancelFetch context.CancelFunc
	initialized bool
	closed      bool
	subs        map[int]chan entity.ViewState
	nextSub     int

	baseCtx context.Context
	stop    context.CancelFunc
	wg      sync.WaitGroup
}

// NewDataController は Empty(daily) 状態の DataController を生成します。
// 取得は Initialize が呼ばれるまで開始されません。
func NewDataController(loader ChartLoader) *DataController {
	ctx, stop := context.WithCancel(context.Background())
	return &DataController{
		loader:  loader,
		state:   entity.EmptyState(entity.DefaultTimeFrame),
		subs:    make(map[int]chan entity.ViewState),
		baseCtx: ctx,
		stop:    stop,
	}
}

// Initialize は起動時に一度だけ呼び出され、既定の時間足の取得を開始します。
// 2回目以降の呼び出しは何もしません。
func (c *DataController) Initialize() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized || c.closed || c.state.IsLoading() {
		return
	}
	c.initialized = true
	c.fetchLocked(c.state.ActiveTimeFrame())
}

// ChangeTimeFrame は時間足を切り替えます。現在の時間足と同じ場合、または取得中の場合は
// 何もせず false を返します。取得を開始した場合は true を返します。
func (c *DataController) ChangeTimeFrame(tf entity.TimeFrame) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !tf.IsValid() {
		return false
	}
	if tf == c.state.ActiveTimeFrame() || c.state.IsLoading() {
		return false
	}
	c.initialized = true
	c.fetchLocked(tf)
	return true
}

// Retry は現在の時間足で無条件に再取得します。取得中に呼ばれた場合は進行中の取得を置き換えます。
func (c *DataController) Retry() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.initialized = true
	c.fetchLocked(c.state.ActiveTimeFrame())
}

// State は現在の ViewState のスナップショットを返します。
func (c *DataController) State() entity.ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe は状態が置き換わるたびに新しい ViewState を受け取るチャネルを返します。
// チャネルには現在の状態が最初に入っています。受信が遅れた場合は最新の状態だけが残ります。
// 返された関数で購読を解除します。Close 後はチャネルが閉じられます。
func (c *DataController) Subscribe() (<-chan entity.ViewState, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan entity.ViewState, 1)
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	ch <- c.state

	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
}

// Wait は実行中の取得がすべて終わるまで待機します。
func (c *DataController) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close は進行中の取得を放棄し、以後の操作を無効にします。
// 放棄された取得の結果は状態に反映されません。
func (c *DataController) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.cancelFetch != nil {
		c.cancelFetch()
		c.cancelFetch = nil
	}
	for id, sub := range c.subs {
		delete(c.subs, id)
		close(sub)
	}
	c.mu.Unlock()

	c.stop()
	c.wg.Wait()
}

// fetchLocked は Loading に遷移し、新しい世代の取得を開始します。c.mu を保持して呼び出すこと。
func (c *DataController) fetchLocked(tf entity.TimeFrame) {
	if c.cancelFetch != nil {
		c.cancelFetch()
	}
	c.generation++
	gen := c.generation

	ctx, cancel := context.WithCancel(c.baseCtx)
	c.cancelFetch = cancel

	active := c.state.ActiveTimeFrame()
	c.setStateLocked(entity.LoadingState(active, tf, retainedOf(c.state)).WithGeneration(gen))

	fetchID := uuid.NewString()
	slog.Info("chart fetch started", "fetch_id", fetchID, "timeframe", tf, "generation", gen)

	c.wg.Add(1)
	go c.run(ctx, cancel, fetchID, gen, tf)
}

func (c *DataController) run(ctx context.Context, cancel context.CancelFunc, fetchID string, gen uint64, tf entity.TimeFrame) {
	defer c.wg.Done()
	defer cancel()

	start := time.Now()
	series, err := c.loader.Load(ctx, tf)
	elapsed := time.Since(start)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.generation {
		slog.Debug("discarding superseded chart fetch", "fetch_id", fetchID, "timeframe", tf, "generation", gen, "current", c.generation)
		return
	}
	c.cancelFetch = nil

	if err != nil {
		slog.Warn("chart fetch failed", "fetch_id", fetchID, "timeframe", tf, "generation", gen, "elapsed", elapsed, "error", err)
		active := c.state.ActiveTimeFrame()
		c.setStateLocked(entity.ErrorState(active, err.Error(), retainedOf(c.state)).WithGeneration(gen))
		return
	}

	slog.Info("chart fetch succeeded", "fetch_id", fetchID, "timeframe", tf, "generation", gen, "elapsed", elapsed, "points", series.Len())
	c.setStateLocked(entity.ReadyState(tf, series).WithGeneration(gen))
}

// setStateLocked は状態を置き換え、購読者へ最新の状態を通知します。c.mu を保持して呼び出すこと。
func (c *DataController) setStateLocked(s entity.ViewState) {
	c.state = s
	for _, sub := range c.subs {
		select {
		case sub <- s:
		default:
			// 古い状態を捨てて最新だけを残す
			select {
			case <-sub:
			default:
			}
			sub <- s
		}
	}
}

func retainedOf(s entity.ViewState) *entity.ChartSeries {
	if series, ok := s.Retained(); ok {
		return &series
	}
	return nil
}
