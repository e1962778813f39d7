// Package main provides the netwizard binary: it hosts an island session or
// joins one as a peer, logging wizard events as they arrive.
package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/cory-johannsen/isleforge/internal/config"
	"github.com/cory-johannsen/isleforge/internal/multiplayer"
	"github.com/cory-johannsen/isleforge/internal/observability"
	"github.com/cory-johannsen/isleforge/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty = built-in defaults")
	joinURL := flag.String("join", "", "ws://host:port of a hosting peer; empty = host a session")
	flag.Parse()

	var (
		cfg config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	wizard := multiplayer.NewWizard(logger, cfg.Multiplayer.EventBuffer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go logEvents(logger, wizard)

	life := server.NewLifecycle(logger)
	life.Add("wizard", &server.FuncService{
		StartFn: func() error {
			if *joinURL != "" {
				return wizard.Join(ctx, *joinURL)
			}
			return wizard.Host(ctx, cfg.Multiplayer.Addr())
		},
		StopFn: cancel,
	})

	if err := life.Run(ctx); err != nil {
		logger.Fatal("wizard failed", zap.Error(err))
	}
}

func logEvents(logger *zap.Logger, wizard *multiplayer.Wizard) {
	for ev := range wizard.Events() {
		switch ev.Kind {
		case multiplayer.EventMessage:
			logger.Info("wizard", zap.String("message", ev.Text))
		case multiplayer.EventError:
			logger.Warn("wizard", zap.String("error", ev.Text))
		case multiplayer.EventLogEntry:
			logger.Info("replication log entry",
				zap.Uint64("entry", ev.Entry.Entry),
				zap.Int("bytes", len(ev.Entry.Value)),
			)
		}
	}
}
