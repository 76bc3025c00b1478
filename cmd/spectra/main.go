package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/wandb/spectra/cmd/spectra/root"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err := root.NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
