package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/pranavsinghpatil/meshmemory/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "meshmemory config validate [options]",
				Description: "Validates the configuration file, checking the API base URL, page limit, render settings and theme name.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	// The Before hook already loaded and validated the config; getting here
	// means it passed. Re-validate anyway so this command keeps working if
	// loading ever stops validating eagerly.
	err := cmd.flags.Config.Validate()

	if cmd.format == "json" {
		out := struct {
			Valid  bool   `json:"valid"`
			Error  string `json:"error,omitempty"`
			Config string `json:"config"`
		}{
			Valid:  err == nil,
			Config: cmd.flags.ConfigPath,
		}
		if err != nil {
			out.Error = err.Error()
		}
		return iojson.Write(out)
	}

	if err != nil {
		fmt.Fprintf(c.Root().Writer, "configuration invalid: %v\n", err)
		return cli.Exit("", 1)
	}

	fmt.Fprintf(c.Root().Writer, "configuration valid: %s\n", cmd.flags.ConfigPath)
	return nil
}
