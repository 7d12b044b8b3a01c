package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/gerhard-ee/sheetsync/internal/config"
	"github.com/gerhard-ee/sheetsync/internal/runner"
)

var configPath = flag.String("config_path", "configuration.yaml", "Path to the YAML configuration file")

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	r, err := runner.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create runner: %v", err)
	}

	if err := r.Run(ctx); err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	log.Info("All tasks completed successfully")
}
