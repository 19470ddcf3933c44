package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lucrnz/dtparse/internal/cleanup"
	"github.com/lucrnz/dtparse/internal/cli"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create cleanup tracker for partially written output
	tracker := cleanup.NewTracker()

	err := cli.ExecuteContext(ctx, tracker)
	if err == nil {
		return
	}
	// Check if error is due to context cancellation (interrupt)
	interrupted := errors.Is(ctx.Err(), context.Canceled)

	// os.Exit skips deferred calls
	tracker.Cleanup()
	stop()

	if interrupted {
		fmt.Fprintln(os.Stderr, "\nInterrupted")
		os.Exit(130) // Standard exit code for SIGINT
	}

	var exit *cli.ExitError
	if !errors.As(err, &exit) || exit.Err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(cli.ExitCode(err))
}
