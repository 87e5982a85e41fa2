// Package main is the entry point for the ledshow playback engine.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/lacylights/ledshow/internal/config"
	"github.com/lacylights/ledshow/internal/control"
	"github.com/lacylights/ledshow/internal/events"
	"github.com/lacylights/ledshow/internal/logging"
	"github.com/lacylights/ledshow/internal/output"
	"github.com/lacylights/ledshow/internal/playback"
	"github.com/lacylights/ledshow/internal/showfile"
)

// Version information, set at build time.
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	printBanner(logger, cfg)

	bus := events.New()
	manager := playback.New(logger, bus)

	destinations := make([]*output.Destination, 0, len(cfg.Destinations))
	for _, d := range cfg.Destinations {
		destinations = append(destinations, &output.Destination{
			Name:     d.Name,
			IP:       d.IP,
			Port:     d.Port,
			CopyMode: d.CopyMode,
			StartLed: d.StartLed,
			EndLed:   d.EndLed,
			Enabled:  d.Enabled,
		})
	}
	fanout := output.NewFanout(destinations, logger, bus)

	queue := control.NewQueue(256)
	server := control.NewServer(cfg.OSC.InputHost, cfg.OSC.InputPort, queue, logger)

	loader := showfile.Loader{}
	frameLoop := playback.NewFrameLoop(manager, queue, loader, fanout, bus, logger, cfg.LEDCount)
	manager.SetMasterBrightness(cfg.MasterBrightness)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		if err := server.ListenAndServe(); err != nil {
			logger.Error("control server stopped", zap.Error(err))
		}
	}()

	go frameLoop.Run(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	cancel()
	if err := server.Close(); err != nil {
		logger.Warn("control server close error", zap.Error(err))
	}

	time.Sleep(50 * time.Millisecond) // let the frame loop's last tick drain
}

func printBanner(logger *zap.Logger, cfg *config.Config) {
	logger.Info(fmt.Sprintf("ledshow %s (build %s, commit %s)", Version, BuildTime, GitCommit),
		zap.Int("target_fps", cfg.TargetFPS),
		zap.Int("led_count", cfg.LEDCount),
		zap.String("osc_input", fmt.Sprintf("%s:%d", cfg.OSC.InputHost, cfg.OSC.InputPort)),
		zap.Int("destinations", len(cfg.Destinations)),
	)
}
