package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"cosmic/internal/ui"
)

// NewTUICommand returns the tui subcommand.
func NewTUICommand() *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive task list",
		Action: runTUI,
	}
}

func runTUI(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	return ui.Run(s.store, s.cfg, s.configPath, s.firstLaunch)
}
