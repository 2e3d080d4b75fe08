package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/pranavsinghpatil/meshmemory/internal/api"
	"github.com/pranavsinghpatil/meshmemory/internal/commands"
	"github.com/pranavsinghpatil/meshmemory/internal/core/config"
	"github.com/pranavsinghpatil/meshmemory/internal/core/logging"
	"github.com/pranavsinghpatil/meshmemory/internal/core/styles"
	"github.com/pranavsinghpatil/meshmemory/internal/state"
	"github.com/pranavsinghpatil/meshmemory/internal/state/persist"
	"github.com/pranavsinghpatil/meshmemory/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		sqlStore  *persist.SQLiteStore
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "meshmemory",
		Usage:     "Browse AI conversation transcripts",
		UsageText: "meshmemory [global options] command [command options]",
		Description: `Meshmemory is a terminal browser for AI conversation transcripts.

Transcripts are fetched page by page from a meshmemory server; display
switches between full and paginated rendering based on transcript size.
Identity, workspace and UI preferences persist across runs.

Run 'meshmemory --source <id>' or 'meshmemory --thread <id>' to browse.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("MESHMEMORY_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/meshmemory.log)",
				Sources:     cli.EnvVars("MESHMEMORY_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("MESHMEMORY_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("MESHMEMORY_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; use explicit path or default to <datadir>/meshmemory.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "meshmemory.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.TUI.Theme)
			styles.SetTheme(palette)

			// Open the snapshot backend and start hydrating; commands that
			// need state immediately call HydrateWait themselves.
			var snapshots persist.SnapshotStore
			switch cfg.Storage.Backend {
			case config.BackendSQLite:
				sqlStore, err = persist.NewSQLiteStore(filepath.Join(cfg.DataDir, "meshmemory.db"))
				if err != nil {
					return ctx, fmt.Errorf("open snapshot db: %w", err)
				}
				snapshots = sqlStore
			default:
				snapshots = persist.NewFileStore(filepath.Join(cfg.DataDir, "state"))
			}

			flags.Store = state.New(snapshots)
			flags.Store.Hydrate()

			flags.Client, err = api.NewClient(cfg.API.BaseURL, cfg.API.Timeout())
			if err != nil {
				return ctx, fmt.Errorf("create api client: %w", err)
			}

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if sqlStore != nil {
				if err := sqlStore.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close snapshot db")
					return err
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	browseCmd := commands.NewBrowseCmd(flags)

	app = commands.NewStateCmd(flags).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Register browse flags on root command
	app.Flags = append(app.Flags, browseCmd.Flags()...)

	// Set the browser as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'meshmemory --help' for usage", c.Args().First())
		}
		return browseCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
