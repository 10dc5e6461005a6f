package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/epcrisk/internal/app"
	"github.com/alexanderramin/epcrisk/internal/db"
	"github.com/alexanderramin/epcrisk/internal/importer"
	"github.com/alexanderramin/epcrisk/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportLegacyFile(ctx context.Context, path string, opts importer.Options) (*app.ImportResult, error) {
	store, err := importer.LoadLegacyStore(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportLegacy(ctx, store, opts)
}

// ImportLegacy creates a new project holding every legacy milestone and log.
// Nothing is written unless the whole store imports.
func (s *importService) ImportLegacy(ctx context.Context, store *importer.LegacyStore, opts importer.Options) (result *app.ImportResult, err error) {
	fields := map[string]any{"project": opts.ProjectName}
	done := observe(ctx, s.observer, "import-legacy", fields)
	defer func() { done(err) }()

	if errs := importer.ValidateLegacyStore(store); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	converted, err := importer.Convert(store, opts, time.Now())
	if err != nil {
		return nil, fmt.Errorf("converting legacy store: %w", err)
	}

	var logCount int
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		projects := repository.NewSQLiteProjectRepo(tx)
		milestones := repository.NewSQLiteMilestoneRepo(tx)
		logs := repository.NewSQLiteSpendLogRepo(tx)
		seqs := repository.NewSQLiteProjectSequenceRepo(tx)

		if err := projects.Create(ctx, converted.Project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		for _, m := range converted.Milestones {
			seq, err := seqs.NextProjectSeq(ctx, m.ProjectID)
			if err != nil {
				return err
			}
			m.Seq = seq
			if err := milestones.Create(ctx, m); err != nil {
				return fmt.Errorf("creating milestone %q: %w", m.Name, err)
			}
			for i := range m.Logs {
				if err := logs.Create(ctx, &m.Logs[i]); err != nil {
					return fmt.Errorf("creating log for %q: %w", m.Name, err)
				}
				logCount++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["milestones"] = len(converted.Milestones)
	fields["logs"] = logCount
	fields["merged"] = converted.Merged
	return &app.ImportResult{
		Project:        converted.Project,
		MilestoneCount: len(converted.Milestones),
		LogCount:       logCount,
		Merged:         converted.Merged,
		Skipped:        converted.Skipped,
	}, nil
}

func formatValidationErrors(errs []error) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = "  - " + e.Error()
	}
	return errors.New("import validation failed:\n" + strings.Join(msgs, "\n"))
}
