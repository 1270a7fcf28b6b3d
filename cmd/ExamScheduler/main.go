package main

import (
	"fmt"
	"os"

	"github.com/rhyrak/exam-schedule/internal/cli"
	"github.com/rhyrak/exam-schedule/internal/config"
	"github.com/rhyrak/exam-schedule/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync()

	app := &cli.App{Cfg: cfg, Log: log}
	return cli.NewRootCmd(app).Execute()
}
