package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"journeybuilder/infrastructure/config"
	"journeybuilder/infrastructure/di"
)

const (
	exitSuccess = 0
	exitError   = 1
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(os.Stdout, di.InitializeContainer, config.LoadConfig)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	return exitSuccess
}
