package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/streamgrid/internal/formatter"
	"github.com/desertthunder/streamgrid/internal/shared"
	"github.com/desertthunder/streamgrid/internal/view"
	"github.com/urfave/cli/v3"
)

// ChannelsList refreshes every tracked channel and prints the rendered grid.
func (r *Runner) ChannelsList(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	if !formatter.ValidFormat(format) {
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}

	tracker, err := r.tracker(cmd, true)
	if err != nil {
		return err
	}
	defer r.Close()

	tracker.SetFilter(view.Filter{OnlineOnly: cmd.Bool("online")})

	if _, err := tracker.Refresh(ctx, nil); err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	out, err := formatter.RenderItems(tracker.Items(), format, cmd.Bool("details"))
	if err != nil {
		return err
	}
	return r.writeBytes(out)
}

// ChannelsAdd tracks each name argument.
func (r *Runner) ChannelsAdd(ctx context.Context, cmd *cli.Command) error {
	names := cmd.Args().Slice()
	if len(names) == 0 {
		return fmt.Errorf("%w: at least one channel name is required", shared.ErrMissingArgument)
	}

	tracker, err := r.tracker(cmd, false)
	if err != nil {
		return err
	}
	defer r.Close()

	added := tracker.Add(names...)
	for _, name := range added {
		r.writePlain("added %s\n", name)
	}
	if skipped := len(names) - len(added); skipped > 0 {
		r.logger.Info("skipped names already tracked or blank", "count", skipped)
	}
	return nil
}

// ChannelsRemove stops tracking each name argument.
func (r *Runner) ChannelsRemove(ctx context.Context, cmd *cli.Command) error {
	names := cmd.Args().Slice()
	if len(names) == 0 {
		return fmt.Errorf("%w: at least one channel name is required", shared.ErrMissingArgument)
	}

	tracker, err := r.tracker(cmd, false)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, name := range names {
		if tracker.Remove(name) {
			r.writePlain("removed %s\n", shared.NormalizeChannelName(name))
		} else {
			r.logger.Warn("channel not tracked", "name", name)
		}
	}
	return nil
}

// ChannelsImport adds one channel per line of a text file, or of stdin for "-".
func (r *Runner) ChannelsImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: file path is required", shared.ErrMissingArgument)
	}

	input := os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
		}
		defer f.Close()
		input = f
	}

	tracker, err := r.tracker(cmd, false)
	if err != nil {
		return err
	}
	defer r.Close()

	added, err := tracker.Import(input)
	if err != nil {
		return err
	}

	r.logger.Info("imported channels", "added", len(added), "tracked", tracker.Len())
	return r.writePlain("imported %d channels\n", len(added))
}

// ChannelsExport prints the tracked names, or copies them with --clipboard.
func (r *Runner) ChannelsExport(ctx context.Context, cmd *cli.Command) error {
	tracker, err := r.tracker(cmd, false)
	if err != nil {
		return err
	}
	defer r.Close()

	out, err := formatter.ExportNames(tracker.Names(), cmd.String("format"))
	if err != nil {
		return err
	}

	if path := cmd.String("output"); path != "" {
		if err := os.WriteFile(path, out, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		r.logger.Info("exported channels", "path", path, "count", tracker.Len())
	}

	if cmd.Bool("clipboard") {
		if err := r.clipboard(strings.TrimRight(string(out), "\n")); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		return r.writePlain("copied %d channels to the clipboard\n", tracker.Len())
	}

	if cmd.String("output") != "" {
		return nil
	}
	return r.writeBytes(out)
}

// ChannelsReset replaces the tracked channels with the configured defaults.
func (r *Runner) ChannelsReset(ctx context.Context, cmd *cli.Command) error {
	tracker, err := r.tracker(cmd, false)
	if err != nil {
		return err
	}
	defer r.Close()

	tracker.Reset()
	return r.writePlain("reset to %d default channels\n", tracker.Len())
}
