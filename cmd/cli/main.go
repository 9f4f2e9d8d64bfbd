package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/vakwetoweya/internal/buildinfo"
	"github.com/dmitrijs2005/vakwetoweya/internal/client/cli"
	"github.com/dmitrijs2005/vakwetoweya/internal/client/config"
	"github.com/dmitrijs2005/vakwetoweya/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.New(logging.Options{
		Backend: logging.Backend(cfg.LogBackend),
		Level:   cfg.LogLevel,
		Output:  os.Stderr,
		Service: "cli",
	})
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
