// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/desertthunder/streamgrid/internal/formatter"
	"github.com/urfave/cli/v3"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func formatFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   usage + " (" + strings.Join(formatter.Formats, ", ") + ")",
		Value:   formatter.FormatText,
	}
}

// channelsCommand manages the tracked channel list
func channelsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "channels",
		Aliases: []string{"ch"},
		Usage:   "Manage tracked channels",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "Refresh and print the channel grid",
				Flags: []cli.Flag{
					configFlag(),
					formatFlag("Output format"),
					&cli.BoolFlag{
						Name:    "online",
						Aliases: []string{"o"},
						Usage:   "Only show live channels",
					},
					&cli.BoolFlag{
						Name:    "details",
						Aliases: []string{"d"},
						Usage:   "Include game, status, viewers and video for live channels",
					},
				},
				Action: r.ChannelsList,
			},
			{
				Name:      "add",
				Usage:     "Track one or more channels",
				ArgsUsage: "<name>...",
				Flags:     []cli.Flag{configFlag()},
				Action:    r.ChannelsAdd,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Stop tracking one or more channels",
				ArgsUsage: "<name>...",
				Flags:     []cli.Flag{configFlag()},
				Action:    r.ChannelsRemove,
			},
			{
				Name:  "import",
				Usage: "Track every name in a text file, one per line (- for stdin)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "file"},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.ChannelsImport,
			},
			{
				Name:  "export",
				Usage: "Print the tracked channel names",
				Flags: []cli.Flag{
					configFlag(),
					formatFlag("Export format"),
					&cli.StringFlag{
						Name:  "output",
						Usage: "Write the export to a file",
					},
					&cli.BoolFlag{
						Name:  "clipboard",
						Usage: "Copy the names to the system clipboard",
					},
				},
				Action: r.ChannelsExport,
			},
			{
				Name:   "reset",
				Usage:  "Replace the tracked channels with the configured defaults",
				Flags:  []cli.Flag{configFlag()},
				Action: r.ChannelsReset,
			},
		},
	}
}

// statusCommand looks up a single channel
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Fetch and print one channel's parsed status",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "name"},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "Print compact JSON",
			},
		},
		Action: r.Status,
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the status API",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the status API, prints the raw response",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "base-url",
						Usage: "Override twitch.base_url",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// serveCommand runs the web grid
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the channel grid over HTTP",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (overrides server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (overrides server.port)",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles database and configuration setup.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create config.toml if missing, initialize the database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:   "status",
				Usage:  "List migrations and whether they are applied",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupStatus,
			},
			{
				Name:   "rollback",
				Usage:  "Revert the most recently applied migration",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupRollback,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for the interactive grid.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive channel grid",
		Flags: []cli.Flag{
			configFlag(),
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "Auto refresh period (overrides channels.refresh_interval_seconds, 0 disables)",
			},
		},
		Action: r.TUI,
	}
}
