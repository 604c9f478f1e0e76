package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sadopc/habitr/internal/analytics"
	"github.com/sadopc/habitr/internal/cli"
	"github.com/sadopc/habitr/internal/config"
	"github.com/sadopc/habitr/internal/logger"
	"github.com/sadopc/habitr/internal/store"
)

func main() {
	var grammar cli.CLI
	ctx := kong.Parse(&grammar,
		kong.Name("habitr"),
		kong.Description("Track daily habits from the terminal."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
	)

	cfg, err := config.LoadFrom(grammar.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if grammar.DB != "" {
		cfg.Storage.DBPath = grammar.DB
	}
	if grammar.Debug {
		cfg.Log.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Log.Debug, Level: cfg.Log.Level, Dir: cfg.Log.Dir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: init logging: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}

	appCtx := &cli.Context{
		Store:     s,
		Config:    cfg,
		Analytics: analytics.New(nil),
	}
	err = ctx.Run(appCtx)
	s.Close()
	if err != nil {
		logger.Error("command failed", "command", ctx.Command(), "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
