package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"vapredict/autopsy"
	"vapredict/config"
	vhttp "vapredict/http"
	"vapredict/logger"
	"vapredict/ml"
	"vapredict/monitoring"
)

func main() {
	// 1. Load config
	cfg := config.Default()
	configPath, found := config.Find("config.yaml")
	if found {
		loaded, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	// 2. Logger
	lg := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		File:        cfg.Log.File,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
		ServiceName: "vapredict",
	})
	defer lg.Sync()
	if found {
		lg.Info("config loaded", zap.String("path", configPath))
	} else {
		lg.Info("no config.yaml found, using defaults")
	}

	// 3. Load the model once; failures surface per request
	predictor := autopsy.LoadPredictor(cfg.Model.Path, lg, autopsy.WithCache(cfg.Cache.Size))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Model.Watch {
		if err := ml.WatchModelFile(ctx, cfg.Model.Path, lg); err != nil {
			lg.Warn("model watcher not started", zap.Error(err))
		}
	}

	// 4. Start HTTP server
	server := vhttp.NewServer(vhttp.ServerConfig{
		Port:           cfg.Http.Port,
		Timeout:        cfg.Http.Timeout,
		AllowedOrigins: cfg.Http.AllowedOrigins,
		MaxBodyBytes:   cfg.Http.MaxBodyBytes,
	}, predictor, monitoring.NewMetricsCollector(), lg)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			lg.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 5. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	lg.Info("shutting down")

	if err := server.Stop(); err != nil {
		lg.Error("server forced to shutdown", zap.Error(err))
	}

	lg.Info("exiting")
}
