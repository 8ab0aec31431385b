package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"roadworthy/internal/cli/commands"
	"roadworthy/internal/config"
)

func main() {
	// Load unified config (env + flags)
	cfg := config.NewConfig()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// dispatcher
	exitCode := commands.Dispatch(ctx, cfg, flag.Args())
	if exitCode == 0 {
		return
	}
	os.Exit(exitCode)
}
