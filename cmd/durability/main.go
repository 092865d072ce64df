package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zeusync/durability/internal/config"
	"github.com/zeusync/durability/internal/core/durability"
	"github.com/zeusync/durability/internal/core/observability/log"
	"github.com/zeusync/durability/internal/injector"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file; defaults are used when empty")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "durability:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	app, cleanup, err := injector.InitializeApp(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.Logger.Info("Seeded demo world", log.Int("structures", app.World.Len()))

	if err = app.Engine.Start(ctx); err != nil {
		return err
	}

	if cfg.Engine.Strategy == durability.StrategyTick {
		hostLoop(ctx, app.Engine, cfg.Engine.HostTick)
	} else {
		<-ctx.Done()
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.Engine.Stop(stopCtx)
}

// hostLoop stands in for a host simulation calling Tick every frame.
func hostLoop(ctx context.Context, engine *durability.Engine, every time.Duration) {
	if every <= 0 {
		every = durability.DefaultConfig().HostTick
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			engine.Tick()
		}
	}
}
