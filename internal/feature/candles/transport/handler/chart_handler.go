// Package handler はcandlesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"stock_chart/internal/feature/candles/domain/entity"
	"stock_chart/internal/feature/candles/transport/http/dto"
	"stock_chart/internal/feature/candles/transport/view"
)

// ChartController はハンドラーが必要とするコントローラー操作を定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ChartController interface {
	State() entity.ViewState
	ChangeTimeFrame(tf entity.TimeFrame) bool
	Retry()
	Subscribe() (<-chan entity.ViewState, func())
}

// Options はハンドラーの表示設定です。
type Options struct {
	Symbol string
	Width  int // PNG幅。0以下は既定値
	Height int // PNG高さ。0以下は既定値

	// AllowOrigins は /ws への接続を許可する追加のOriginです。空の場合は同一Originのみ許可します。
	AllowOrigins []string
}

// ChartHandler はチャート画面とそのAPIのHTTPリクエストを処理します。
type ChartHandler struct {
	ctrl     ChartController
	opts     Options
	upgrader websocket.Upgrader
}

// NewChartHandler は指定されたコントローラーでChartHandlerの新しいインスタンスを生成します。
func NewChartHandler(ctrl ChartController, opts Options) *ChartHandler {
	return &ChartHandler{ctrl: ctrl, opts: opts, upgrader: newUpgrader(opts.AllowOrigins)}
}

func (h *ChartHandler) viewOptions() view.Options {
	return view.Options{Symbol: h.opts.Symbol}
}

// Page は現在の状態をHTMLとして描画します。
//
// エンドポイント例:
// GET /
func (h *ChartHandler) Page(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, view.PageTemplate, view.Render(h.ctrl.State(), h.viewOptions()))
}

// SelectTimeFrame はフォームからの時間足切り替えを受け付け、画面へリダイレクトします。
//
// エンドポイント例:
// POST /timeframe/weekly
func (h *ChartHandler) SelectTimeFrame(c *gin.Context) {
	tf, ok := h.parseTimeFrame(c)
	if !ok {
		return
	}
	h.ctrl.ChangeTimeFrame(tf)
	c.Redirect(http.StatusSeeOther, "/")
}

// RetryPage はフォームからの再取得を受け付け、画面へリダイレクトします。
//
// エンドポイント例:
// POST /retry
func (h *ChartHandler) RetryPage(c *gin.Context) {
	h.ctrl.Retry()
	c.Redirect(http.StatusSeeOther, "/")
}

// GetState は現在の ViewState をJSONで返します。
//
// エンドポイント例:
// GET /api/state
func (h *ChartHandler) GetState(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, h.ctrl.State())
}

// ChangeTimeFrame は時間足を切り替えます。取得を開始した場合は202、
// 同じ時間足や取得中で無視された場合は200を返します。
//
// エンドポイント例:
// POST /api/timeframe/hourly
func (h *ChartHandler) ChangeTimeFrame(c *gin.Context) {
	tf, ok := h.parseTimeFrame(c)
	if !ok {
		return
	}

	status := http.StatusOK
	if h.ctrl.ChangeTimeFrame(tf) {
		status = http.StatusAccepted
	}
	c.JSON(status, h.ctrl.State())
}

// Retry は現在の時間足で再取得を開始し、202と新しい状態を返します。
//
// エンドポイント例:
// POST /api/retry
func (h *ChartHandler) Retry(c *gin.Context) {
	h.ctrl.Retry()
	c.JSON(http.StatusAccepted, h.ctrl.State())
}

// GetChart は Ready 状態のとき Chart.js の設定をJSONで返します。
//
// エンドポイント例:
// GET /api/chart
func (h *ChartHandler) GetChart(c *gin.Context) {
	state := h.ctrl.State()
	series, ok := state.Series()
	if !ok {
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "chart not ready: " + state.Mode().String()})
		return
	}
	c.JSON(http.StatusOK, view.NewChartConfig(series, h.opts.Symbol, state.ActiveTimeFrame()))
}

// ChartPNG は Ready 状態のときチャートをPNG画像で返します。
//
// エンドポイント例:
// GET /chart.png
func (h *ChartHandler) ChartPNG(c *gin.Context) {
	state := h.ctrl.State()
	series, ok := state.Series()
	if !ok {
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "chart not ready: " + state.Mode().String()})
		return
	}

	// 描画に失敗した場合に500を返せるよう、一度バッファへ書き出す
	var buf bytes.Buffer
	title := view.Title(h.opts.Symbol, state.ActiveTimeFrame())
	if err := view.RenderPNG(&buf, series, title, h.opts.Width, h.opts.Height); err != nil {
		slog.Error("chart render failed", "error", err, "timeframe", state.ActiveTimeFrame())
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to render chart"})
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *ChartHandler) parseTimeFrame(c *gin.Context) (entity.TimeFrame, bool) {
	tf, err := entity.ParseTimeFrame(c.Param("tf"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return "", false
	}
	return tf, true
}
