package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/streamgrid/internal/shared"
	"github.com/desertthunder/streamgrid/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal grid.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Log.Level))
	r.SetLogger(fileLogger)

	tracker, err := r.tracker(cmd, true)
	if err != nil {
		return err
	}
	defer r.Close()

	interval := r.config.Channels.RefreshInterval()
	if cmd.IsSet("interval") {
		interval = cmd.Duration("interval")
	}

	model := ui.NewModel(ctx, ui.Options{
		Tracker:         tracker,
		RefreshInterval: interval,
		Logger:          fileLogger,
		Clipboard:       r.clipboard,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
