package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/gophmedia/internal/client/cli"
	"github.com/dmitrijs2005/gophmedia/internal/client/config"
	"github.com/dmitrijs2005/gophmedia/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.LoadConfig()
	log := logging.New(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to start", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
