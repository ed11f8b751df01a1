package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/linkspark/internal/client/analytics"
	"github.com/iudanet/linkspark/internal/client/cli"
	"github.com/iudanet/linkspark/internal/client/contact"
	"github.com/iudanet/linkspark/internal/client/history"
	"github.com/iudanet/linkspark/internal/client/iocli"
	"github.com/iudanet/linkspark/internal/client/storage/boltdb"
	"github.com/iudanet/linkspark/internal/client/storage/sqlite"
	"github.com/iudanet/linkspark/internal/config"
	"github.com/iudanet/linkspark/internal/payload"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Глобальные флаги переопределяют переменные окружения
	showVersion := flag.Bool("version", false, "Show version information")
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if *showVersion {
		printVersion()
		return 0
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger := cfg.Logger(os.Stderr)
	term := iocli.NewStdio()

	args := flag.Args()
	if len(args) == 0 {
		cli.New(term, nil, nil, nil, nil, logger, cfg.Debounce).PrintUsage()
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		return 1
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// SQLite хранит журнал событий и сообщения обратной связи
	eventStorage, err := sqlite.New(ctx, cfg.EventsDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open events database: %v\n", err)
		return 1
	}
	defer func() {
		if err := eventStorage.Close(); err != nil {
			logger.Error("failed to close events database", "error", err)
		}
	}()

	tracker := analytics.Nop()
	if cfg.Analytics {
		tracker = analytics.NewTracker(eventStorage, logger)
	}

	formatter := payload.New(payload.WithLocation(loc))
	historyService := history.NewService(boltStorage, tracker, logger, history.WithFormatter(formatter))
	contactService := contact.NewService(eventStorage, tracker, logger, cfg.ContactDelay)

	app := cli.New(term, historyService, contactService, tracker, formatter, logger, cfg.Debounce)
	if err := app.Run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printVersion() {
	fmt.Printf("LinkSpark\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
