package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/hkaraca/rmosdesk/internal/cli"
	"github.com/hkaraca/rmosdesk/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)
	app.Run(ctx)
}
