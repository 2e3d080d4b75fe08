package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/pranavsinghpatil/meshmemory/internal/api"
	"github.com/pranavsinghpatil/meshmemory/internal/paging"
	"github.com/pranavsinghpatil/meshmemory/internal/profiler"
	"github.com/pranavsinghpatil/meshmemory/internal/tui"
)

type BrowseCmd struct {
	flags *Flags

	sourceID string
	threadID string
	limit    int
}

// NewBrowseCmd creates a new browse command
func NewBrowseCmd(flags *Flags) *BrowseCmd {
	return &BrowseCmd{flags: flags}
}

// Flags returns the browse-specific flags for registration on the root command
func (cmd *BrowseCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "source",
			Usage:       "source id of the transcript to browse",
			Sources:     cli.EnvVars("MESHMEMORY_SOURCE"),
			Destination: &cmd.sourceID,
		},
		&cli.StringFlag{
			Name:        "thread",
			Usage:       "thread id of the transcript to browse (ignored when --source is set)",
			Sources:     cli.EnvVars("MESHMEMORY_THREAD"),
			Destination: &cmd.threadID,
		},
		&cli.IntFlag{
			Name:        "limit",
			Usage:       fmt.Sprintf("chunks per page %v", paging.AllowedLimits),
			Destination: &cmd.limit,
		},
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("MESHMEMORY_PROFILER_PORT"),
			Destination: &cmd.flags.ProfilerPort,
		},
	}
}

// Run executes the transcript browser. Exported for use as default command.
func (cmd *BrowseCmd) Run(ctx context.Context, c *cli.Command) error {
	ref := api.ChunkRef{SourceID: cmd.sourceID, ThreadID: cmd.threadID}
	if ref.IsZero() {
		return fmt.Errorf("nothing to browse: pass --source or --thread")
	}

	if cmd.flags.ProfilerPort > 0 {
		profServer := profiler.New(cmd.flags.ProfilerPort)
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
	}

	// The store hydrates in the background from main; this command reads and
	// writes the ui-prefs namespace right away, so wait for that one slice.
	// Hydrate blocks until the first call, wherever it started, has finished.
	cmd.flags.Store.UIPrefs.Hydrate()

	if cmd.limit > 0 {
		allowed := false
		for _, l := range paging.AllowedLimits {
			if cmd.limit == l {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("invalid --limit %d, allowed values are %v", cmd.limit, paging.AllowedLimits)
		}
		cmd.flags.Store.SetPageLimit(cmd.limit)
	}

	m := tui.New(cmd.flags.Config, cmd.flags.Client, cmd.flags.Store, ref)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
