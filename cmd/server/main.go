package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock_chart/internal/app/di"
	"stock_chart/internal/app/router"
	"stock_chart/internal/config"
	"stock_chart/internal/feature/candles/usecase"
	healthhandler "stock_chart/internal/platform/http/handler"
	"stock_chart/internal/platform/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 設定（.env → YAML → 環境変数）
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logCloser, err := logging.Setup(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer func() {
		if err := logCloser.Close(); err != nil {
			slog.Warn("failed to close log file", "error", err)
		}
	}()

	// Repository
	market := di.NewMarket(cfg)

	// Usecase
	chartUC, err := di.NewChartUsecase(cfg, market)
	if err != nil {
		return err
	}
	ctrl := usecase.NewDataController(chartUC)
	defer ctrl.Close()

	// Handler
	chartH := di.NewChartHandler(cfg, chartUC.Symbol(), ctrl)
	health := healthhandler.NewHealth(func() string { return ctrl.State().Mode().String() })

	// ルータ生成
	r := router.NewRouter(chartH, health, router.Options{CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 起動時に既定の時間足を取得
	ctrl.Initialize()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.HTTPAddr, "symbol", chartUC.Symbol(), "exchange", cfg.DataSource.Exchange)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	// 進行中の取得を放棄し、WebSocket購読を閉じてから接続を終了する
	ctrl.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
