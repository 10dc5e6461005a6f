package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/epcrisk/internal/app"
	"github.com/alexanderramin/epcrisk/internal/report"
	"github.com/alexanderramin/epcrisk/internal/repository"
)

type exportService struct {
	risk       RiskService
	milestones repository.MilestoneRepo
	logs       repository.SpendLogRepo
	observer   UseCaseObserver
}

func NewExportService(
	risk RiskService,
	milestones repository.MilestoneRepo,
	logs repository.SpendLogRepo,
	observers ...UseCaseObserver,
) ExportService {
	return &exportService{
		risk:       risk,
		milestones: milestones,
		logs:       logs,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// WriteMilestoneCSV writes the scored dashboard as of req.AsOf.
func (s *exportService) WriteMilestoneCSV(ctx context.Context, w io.Writer, req app.RiskRequest) (err error) {
	done := observe(ctx, s.observer, "export-milestones", map[string]any{"project_id": req.ProjectID})
	defer func() { done(err) }()

	resp, err := s.risk.Assess(ctx, req)
	if err != nil {
		return err
	}
	return report.WriteMilestones(w, resp.Results)
}

// WriteSpendCSV writes every stored log of the project.
func (s *exportService) WriteSpendCSV(ctx context.Context, w io.Writer, projectID string) (err error) {
	done := observe(ctx, s.observer, "export-spend", map[string]any{"project_id": projectID})
	defer func() { done(err) }()

	portfolio, err := loadPortfolio(ctx, s.milestones, s.logs, projectID, time.Time{})
	if err != nil {
		return err
	}
	return report.WriteSpend(w, portfolio)
}
