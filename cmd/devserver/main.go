package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/vakwetoweya/internal/buildinfo"
	"github.com/dmitrijs2005/vakwetoweya/internal/devserver"
	"github.com/dmitrijs2005/vakwetoweya/internal/devserver/config"
	"github.com/dmitrijs2005/vakwetoweya/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.New(logging.Options{
		Backend: logging.Backend(cfg.LogBackend),
		Level:   cfg.LogLevel,
		Output:  os.Stdout,
		Service: "devserver",
	})
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := devserver.NewApp(cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}
