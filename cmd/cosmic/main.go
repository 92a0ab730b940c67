package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"cosmic/cmd/commands"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cmd := commands.NewRootCommand()
	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "cosmic: %v\n", err)
		os.Exit(1)
	}
}
