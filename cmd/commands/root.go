package commands

import (
	"github.com/urfave/cli/v3"

	"cosmic/internal/config"
)

// NewRootCommand returns the top-level CLI command. Without a subcommand it
// opens the interactive list.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "cosmic",
		Usage: "A small task list that celebrates with you",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ResolveConfigPath(),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			NewTUICommand(),
			NewAddCommand(),
			NewListCommand(),
			NewToggleCommand(),
			NewEditCommand(),
			NewRemoveCommand(),
			NewMoveCommand(),
			NewStatsCommand(),
		},
		Action: runTUI,
	}
}
