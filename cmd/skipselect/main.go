package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/skipwise/skipselect/internal/cli"
	"github.com/skipwise/skipselect/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command with signal-aware cancellation so an
// interrupt aborts any in-flight catalogue request.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	if err := root.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
