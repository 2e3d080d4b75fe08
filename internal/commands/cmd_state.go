package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/pranavsinghpatil/meshmemory/internal/state"
	"github.com/pranavsinghpatil/meshmemory/pkg/iojson"
)

type StateCmd struct {
	flags *Flags

	importReader iojson.FileReader[stateDump]
}

// stateDump is the JSON shape used by `state show` and `state import`. The
// session-scoped selection namespace is deliberately absent: it never leaves
// the process.
type stateDump struct {
	Identity  *state.User          `json:"identity"`
	Workspace state.WorkspaceState `json:"workspace"`
	UIPrefs   state.UIPrefs        `json:"uiPrefs"`
}

// NewStateCmd creates a new state command
func NewStateCmd(flags *Flags) *StateCmd {
	return &StateCmd{flags: flags}
}

// Register adds the state command to the application.
func (cmd *StateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "state",
		Usage: "Inspect and manage persisted browser state",
		Commands: []*cli.Command{
			{
				Name:        "show",
				Usage:       "Print the persisted state namespaces as JSON",
				UsageText:   "meshmemory state show",
				Description: "Hydrates every persisted namespace and prints the result. Corrupt or missing snapshots show as defaults.",
				Action:      cmd.runShow,
			},
			{
				Name:        "reset",
				Usage:       "Reset all state namespaces to defaults",
				UsageText:   "meshmemory state reset",
				Action:      cmd.runReset,
			},
			{
				Name:      "import",
				Usage:     "Replace persisted state from a JSON dump",
				UsageText: "meshmemory state import -f state.json",
				Flags: []cli.Flag{
					cmd.importReader.Flag(),
				},
				Action: cmd.runImport,
			},
		},
	})

	return app
}

func (cmd *StateCmd) runShow(ctx context.Context, c *cli.Command) error {
	cmd.flags.Store.HydrateWait()

	return iojson.Write(stateDump{
		Identity:  cmd.flags.Store.User(),
		Workspace: cmd.flags.Store.Workspace.Get(),
		UIPrefs:   cmd.flags.Store.UIPrefs.Get(),
	})
}

func (cmd *StateCmd) runReset(ctx context.Context, c *cli.Command) error {
	cmd.flags.Store.HydrateWait()
	cmd.flags.Store.Reset()

	fmt.Fprintln(c.Root().Writer, "state reset to defaults")
	return nil
}

func (cmd *StateCmd) runImport(ctx context.Context, c *cli.Command) error {
	dump, err := cmd.importReader.Read()
	if err != nil {
		return iojson.WriteError("read state dump", map[string]any{"error": err.Error()})
	}

	cmd.flags.Store.HydrateWait()
	cmd.flags.Store.SetUser(dump.Identity)
	cmd.flags.Store.Workspace.Set(dump.Workspace)
	cmd.flags.Store.UIPrefs.Set(dump.UIPrefs)

	fmt.Fprintln(c.Root().Writer, "state imported")
	return nil
}
