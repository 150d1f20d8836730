package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/kanri/internal/cli"
	"github.com/alexanderramin/kanri/internal/config"
	"github.com/alexanderramin/kanri/internal/db"
	"github.com/alexanderramin/kanri/internal/repository"
	"github.com/alexanderramin/kanri/internal/service"
	"github.com/alexanderramin/kanri/internal/snapshot"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		// The import report already lists what went wrong.
		if !errors.Is(err, cli.ErrImportFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := cfg.NewLogger()

	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)
	board := service.NewBoardService(database, uow)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.Log.UseCases {
		observer = service.NewLogUseCaseObserver(logger)
	}
	opts := []snapshot.Option{
		snapshot.WithLogger(logger.With("component", "snapshot")),
		snapshot.WithFanoutLimit(cfg.Snapshot.FanoutLimit),
	}

	app := &cli.App{
		Projects:    service.NewProjectService(repository.NewSQLiteProjectRepo(database)),
		Users:       service.NewUserService(repository.NewSQLiteUserRepo(database)),
		Board:       board,
		Imports:     service.NewImportService(board, opts, observer),
		Exports:     service.NewExportService(board, opts, observer),
		Interactive: isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd()),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
