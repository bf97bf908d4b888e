package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"cyber-oasis/internal/config"
	"cyber-oasis/internal/notify"
	"cyber-oasis/internal/server"
	"cyber-oasis/internal/sheets"
)

func newLogger(cfg config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if !cfg.Production() {
		zc = zap.NewDevelopmentConfig()
	}
	return zc.Build()
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	var store server.Store
	if cfg.StoreConfigured() {
		creds, err := sheets.CredentialsOption(cfg.Google)
		if err != nil {
			logger.Fatal("sheets credentials", zap.Error(err))
		}
		client, err := sheets.New(context.Background(), cfg.Google.SpreadsheetID, cfg.Google.SheetName, creds)
		if err != nil {
			logger.Fatal("sheets", zap.Error(err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
		if err := client.EnsureHeaders(ctx); err != nil {
			// appends retry the header write, so this is not fatal
			logger.Warn("initialize sheet headers", zap.Error(err))
		}
		cancel()
		logger.Info("sheet store ready",
			zap.String("spreadsheet", client.SpreadsheetID()),
			zap.String("tab", client.SheetName()),
		)
		store = client
	} else {
		logger.Warn("GOOGLE_SHEET_ID not set, submissions will not be stored")
	}

	sink, err := notify.NewSink(cfg, logger)
	if err != nil {
		logger.Fatal("notify", zap.Error(err))
	}

	httpSrv := server.New(cfg, store, sink, logger)

	go func() {
		logger.Info("HTTP listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("env", cfg.Env),
			zap.String("notify", sink.Name()),
			zap.Bool("store", store != nil),
		)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}

	logger.Info("bye")
}
