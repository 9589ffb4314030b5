package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/odooclock/internal/client/cli"
	"github.com/dmitrijs2005/odooclock/internal/client/config"
	"github.com/dmitrijs2005/odooclock/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	app, err := cli.NewApp(cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
