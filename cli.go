//go:build cli
// +build cli

package main

import (
	"context"
	"os/signal"
	"syscall"

	_ "dashboard.GO/custom"

	"dashboard.GO/cmd"
	"dashboard.GO/config"
)

func main() {
	config.LoadEnv()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cmd.Execute(ctx)
}
