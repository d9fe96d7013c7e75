package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"moneybags/internal/cli"
	"moneybags/internal/commands"
	"moneybags/internal/repl"
	"moneybags/internal/services"
)

func main() {
	file := flag.String("file", "", "ledger snapshot file (overrides MONEYBAGS_FILE)")
	autosave := flag.Bool("autosave", false, "save after every mutation")
	flag.Parse()

	// .env goes first so LOG_LEVEL set there reaches the logger setup.
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)
	if *file != "" {
		cfg.LedgerFile = *file
	}
	if *autosave {
		cfg.Autosave = true
	}

	st := cli.OpenStore(logger, cfg)
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("Failed to close store", "error", err)
		}
	}()

	ctx := context.Background()
	svc, err := services.NewLedgerService(ctx, st, logger, services.Options{
		ReferenceYear: cfg.ReferenceYear,
		Autosave:      cfg.Autosave,
	})
	if err != nil {
		logger.Error("Failed to load ledger", "error", err)
		os.Exit(1)
	}

	r := repl.New(svc, os.Stdin, os.Stdout)

	// Positional arguments run a single command; without them we drop into
	// the interactive prompt.
	if args := flag.Args(); len(args) > 0 {
		cmd, err := commands.ParseArgs(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprintln(os.Stderr, commands.Usage())
			os.Exit(2)
		}
		if _, err := r.Execute(ctx, cmd); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := svc.Save(ctx, ""); err != nil {
			logger.Error("Failed to save ledger", "error", err)
			os.Exit(1)
		}
		return
	}

	logger.Info("Starting session", "backend", cfg.StoreBackend, "autosave", cfg.Autosave)
	if err := r.Run(ctx); err != nil {
		logger.Error("Session failed", "error", err)
		os.Exit(1)
	}
	if err := svc.Save(ctx, ""); err != nil {
		logger.Error("Failed to save ledger", "error", err)
		os.Exit(1)
	}
}
