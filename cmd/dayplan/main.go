package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/dayplan/internal/cli"
	"github.com/alexanderramin/dayplan/internal/config"
	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("DAYPLAN_CONFIG")
	if configPath == "" {
		configPath = config.DefaultPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := service.NewLogger(os.Stderr, cfg.LogLevel())
	if err != nil {
		return err
	}
	for _, w := range cfg.Warnings {
		logger.Warn("config", "path", configPath, "problem", w)
	}

	sessionPath := os.Getenv("DAYPLAN_SESSION")
	if sessionPath == "" {
		sessionPath = config.DefaultSessionFile
	}

	clock := domain.SystemClock{}

	// Wire document storage
	var docs repository.DocumentRepo
	switch cfg.Storage() {
	case config.StorageSQLite:
		database, err := db.OpenDB(cfg.DatabasePath())
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		uow := db.NewSQLiteUnitOfWork(database)
		docs = repository.NewSQLiteDocumentRepo(database, uow, cfg.FileExtension(), clock, logger)
	default:
		docs = repository.NewFileDocumentRepo(cfg.DataDir(), cfg.FileExtension(), clock, logger)
	}

	planner := service.NewPlannerService(
		docs,
		config.SessionState{Path: sessionPath},
		clock,
		service.PlannerSettings{
			Extension:    cfg.FileExtension(),
			DayLength:    cfg.DayLengthMinutes(),
			DefaultStart: cfg.DefaultStart(),
			Logger:       logger,
		},
		service.NewLogUseCaseObserver(logger),
	)

	app := &cli.App{
		Planner:    planner,
		Clock:      clock,
		Config:     cfg,
		ConfigPath: configPath,
	}

	// The planner UI only runs on a terminal; otherwise the root command lists.
	app.IsInteractive = func() bool {
		fd := os.Stdout.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}

	return cli.NewRootCmd(app).Execute()
}
