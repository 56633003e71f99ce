package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"

	"github.com/fatali-fataliyev/finance_ledger/cli"
	"github.com/fatali-fataliyev/finance_ledger/config"
	"github.com/fatali-fataliyev/finance_ledger/internal/budget"
	"github.com/fatali-fataliyev/finance_ledger/internal/storage"
	"github.com/fatali-fataliyev/finance_ledger/logging"
	"github.com/google/subcommands"
)

var (
	verbose = flag.Bool("v", false, "Also write logs to stderr.")
	raw     = flag.Bool("raw", false, "Print markdown output as is, without terminal styling.")
)

func main() {
	os.Exit(int(run()))
}

func run() subcommands.ExitStatus {
	// Answers shell completion requests and exits; a no-op otherwise.
	cli.Completion().Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	app := cli.NewApp(nil)
	cli.Register(commander, app)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := logging.Init(cfg.LogLevel, cfg.LogDir, cfg.AppEnv, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return subcommands.ExitFailure
	}
	logging.Logger.Info("application starting...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		logging.Logger.Errorf("failed to initialize database: %v", err)
		fmt.Fprintf(os.Stderr, "failed to initialize database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Logger.Warnf("failed to close database: %v", err)
		}
	}()

	app.Tracker = budget.NewBudgetTracker(store)
	app.Raw = *raw

	status := commander.Execute(ctx)
	logging.Logger.Infof("application finished with status %d", status)
	return status
}
