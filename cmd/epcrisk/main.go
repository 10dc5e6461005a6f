package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/epcrisk/internal/cli"
	"github.com/alexanderramin/epcrisk/internal/config"
	"github.com/alexanderramin/epcrisk/internal/db"
	"github.com/alexanderramin/epcrisk/internal/metrics"
	"github.com/alexanderramin/epcrisk/internal/repository"
	"github.com/alexanderramin/epcrisk/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	configPath := config.DefaultPath(home)
	cfg, err := config.Load(configPath, home)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	registry := metrics.NewRegistry()
	if cfg.Metrics.Textfile != "" {
		defer func() {
			if werr := registry.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
				logger.Warn("metrics_textfile_failed", zap.String("path", cfg.Metrics.Textfile), zap.Error(werr))
			}
		}()
	}

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	milestoneRepo := repository.NewSQLiteMilestoneRepo(database)
	logRepo := repository.NewSQLiteSpendLogRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.Log.Enabled {
		observer = service.NewLogUseCaseObserver(logger)
	}

	// Wire services
	riskSvc := service.NewRiskService(projectRepo, milestoneRepo, logRepo, cfg.Thresholds.Scoring(), registry, observer)

	app := &cli.App{
		Projects:   service.NewProjectService(projectRepo, observer),
		Milestones: service.NewMilestoneService(milestoneRepo, logRepo, uow, observer),
		Spend:      service.NewSpendService(logRepo, milestoneRepo, registry, observer),
		Risk:       riskSvc,
		Export:     service.NewExportService(riskSvc, milestoneRepo, logRepo, observer),
		Import:     service.NewImportService(uow, observer),
		Config:     cfg,
		ConfigPath: configPath,
	}

	// Prompts only run when stdin is a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

// newLogger returns a JSON logger on stderr at the configured level, or a
// no-op logger when logging is disabled.
func newLogger(c config.LogConfig) (*zap.Logger, error) {
	if !c.Enabled {
		return zap.NewNop(), nil
	}
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = level
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}
