package main

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/streamgrid/internal/repositories"
	"github.com/desertthunder/streamgrid/internal/services"
	"github.com/desertthunder/streamgrid/internal/shared"
	"github.com/desertthunder/streamgrid/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The fetcher and name store are built from the config on first use unless injected.
type Runner struct {
	config     *shared.Config
	fetcher    services.StatusFetcher
	store      tasks.NameStore
	db         *sql.DB
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	clipboard  func(string) error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Fetcher    services.StatusFetcher
	Store      tasks.NameStore
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Clipboard  func(string) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Config.Twitch.Timeout()}
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	return &Runner{
		config:     opts.Config,
		fetcher:    opts.Fetcher,
		store:      opts.Store,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		clipboard:  opts.Clipboard,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, channelsCommand, statusCommand, apiCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the logger used by subsequent commands.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// Close releases the database opened by [Runner.nameStore], if any.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	r.store = nil
	return err
}

// loadConfig replaces the config when --config was given explicitly.
func (r *Runner) loadConfig(cmd *cli.Command) error {
	if !cmd.IsSet("config") {
		return nil
	}

	config, err := shared.LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	r.config = config
	shared.SetLogLevel(r.logger, shared.ParseLogLevel(config.Log.Level))
	return nil
}

func (r *Runner) statusFetcher() (services.StatusFetcher, error) {
	if r.fetcher != nil {
		return r.fetcher, nil
	}

	fetcher, err := services.NewFetcher(r.config.Twitch, r.httpClient)
	if err != nil {
		return nil, err
	}

	r.fetcher = fetcher
	return fetcher, nil
}

// nameStore opens the configured database. Storage problems only disable
// persistence, so a nil store is returned with a warning.
func (r *Runner) nameStore() tasks.NameStore {
	if r.store != nil {
		return r.store
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		r.logger.Warn("storage unavailable, channel changes will not be saved", "error", err)
		return nil
	}

	store := repositories.NewNameStore(db)
	if !store.Available() {
		r.logger.Warn("storage is read-only, channel changes will not be saved", "path", r.config.Database.Path)
		db.Close()
		return nil
	}

	r.db = db
	r.store = store
	return store
}

// tracker builds a loaded [tasks.Tracker] from the runner's dependencies.
// The status fetcher is only built when refresh is set, so commands that
// just edit the channel list work without API credentials.
func (r *Runner) tracker(cmd *cli.Command, refresh bool) (*tasks.Tracker, error) {
	if err := r.loadConfig(cmd); err != nil {
		return nil, err
	}

	var fetcher services.StatusFetcher
	if refresh {
		f, err := r.statusFetcher()
		if err != nil {
			return nil, err
		}
		fetcher = f
	}

	tracker := tasks.NewTracker(tasks.TrackerOpts{
		Engine:   tasks.NewEngine(fetcher, r.config.Channels.MaxConcurrency),
		Store:    r.nameStore(),
		Defaults: r.config.Channels.Defaults,
		Logger:   r.logger,
	})
	tracker.Load()
	return tracker, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeBytes(b []byte) error {
	if _, err := r.output.Write(b); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
