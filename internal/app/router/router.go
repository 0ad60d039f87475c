// Package router はアプリケーションのHTTPルーティングを組み立てます。
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"stock_chart/internal/feature/candles/transport/handler"
	"stock_chart/internal/feature/candles/transport/view"
	"stock_chart/internal/platform/http/middleware"
)

// Options はルーター全体の設定です。
type Options struct {
	// CORSAllowOrigins が空の場合CORSは無効
	CORSAllowOrigins []string
}

func NewRouter(chart *handler.ChartHandler, health gin.HandlerFunc, opts Options) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())
	if len(opts.CORSAllowOrigins) > 0 {
		r.Use(cors.New(corsConfig(opts.CORSAllowOrigins)))
	}
	r.SetHTMLTemplate(view.Templates())

	// 導通確認用
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)

	// 画面（フォーム送信はPRGでリダイレクト）
	r.GET("/", chart.Page)
	r.POST("/timeframe/:tf", chart.SelectTimeFrame)
	r.POST("/retry", chart.RetryPage)
	r.GET("/chart.png", chart.ChartPNG)
	r.GET("/ws", chart.Stream)

	api := r.Group("/api")
	{
		api.GET("/state", chart.GetState)
		api.POST("/timeframe/:tf", chart.ChangeTimeFrame)
		api.POST("/retry", chart.Retry)
		api.GET("/chart", chart.GetChart)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
