package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/streamgrid/internal/server"
	"github.com/desertthunder/streamgrid/internal/tasks"
	"github.com/desertthunder/streamgrid/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve runs the web grid until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	tracker, err := r.tracker(cmd, true)
	if err != nil {
		return err
	}
	defer r.Close()

	cfg := r.config.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = int(cmd.Int("port"))
	}

	app, err := web.New(web.Options{
		Tracker:      tracker,
		Logger:       r.logger,
		RefreshRate:  cfg.RefreshRate,
		RefreshBurst: cfg.RefreshBurst,
	})
	if err != nil {
		return fmt.Errorf("failed to create web app: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go r.refreshLoop(ctx, tracker, r.config.Channels.RefreshInterval())

	router := app.Router()
	r.logger.Debug("registered routes", "patterns", router.Patterns())

	return server.Serve(ctx, cfg.Addr(), router, r.logger)
}

// refreshLoop refreshes tracker now and then every interval until ctx is done.
// A zero interval refreshes once.
func (r *Runner) refreshLoop(ctx context.Context, tracker *tasks.Tracker, interval time.Duration) {
	refresh := func() {
		if _, err := tracker.Refresh(ctx, nil); err != nil && ctx.Err() == nil {
			r.logger.Error("background refresh failed", "error", err)
		}
	}

	refresh()
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh()
		}
	}
}
