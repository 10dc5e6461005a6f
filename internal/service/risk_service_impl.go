package service

import (
	"context"
	"time"

	"github.com/alexanderramin/epcrisk/internal/app"
	"github.com/alexanderramin/epcrisk/internal/metrics"
	"github.com/alexanderramin/epcrisk/internal/repository"
	"github.com/alexanderramin/epcrisk/internal/scoring"
)

// riskService recomputes every score from stored facts on each call; nothing
// derived is cached or persisted.
type riskService struct {
	projects   repository.ProjectRepo
	milestones repository.MilestoneRepo
	logs       repository.SpendLogRepo
	thresholds scoring.Thresholds
	recorder   metrics.Recorder
	observer   UseCaseObserver
}

func NewRiskService(
	projects repository.ProjectRepo,
	milestones repository.MilestoneRepo,
	logs repository.SpendLogRepo,
	thresholds scoring.Thresholds,
	recorder metrics.Recorder,
	observers ...UseCaseObserver,
) RiskService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &riskService{
		projects:   projects,
		milestones: milestones,
		logs:       logs,
		thresholds: thresholds,
		recorder:   recorder,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *riskService) Assess(ctx context.Context, req app.RiskRequest) (resp *app.RiskResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": req.ProjectID}
	done := observe(ctx, s.observer, "risk-assess", fields)
	defer func() { done(err) }()

	th := s.thresholds
	if req.Thresholds != nil {
		th = *req.Thresholds
	}
	if err = th.Validate(); err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	asOf := resolveAsOf(req.AsOf)
	fields["as_of"] = asOf.Format("2006-01-02")

	portfolio, err := loadPortfolio(ctx, s.milestones, s.logs, project.ID, asOf)
	if err != nil {
		return nil, err
	}

	results := scoring.ScorePortfolio(portfolio, asOf, th)
	alerts := scoring.Advise(results, th)
	scoring.SortResults(results)

	for _, r := range results {
		if r.Valid() {
			s.recorder.ObserveMilestone(r.Score.Level, true)
		} else {
			s.recorder.ObserveMilestone("", false)
		}
	}
	for _, a := range alerts {
		s.recorder.ObserveAlert(a.Kind, a.Severity)
	}
	s.recorder.ObserveAssessment(project.ID, time.Since(startedAt))

	summary := app.Summarize(results, alerts)
	fields["milestones"] = summary.Milestones
	fields["invalid"] = summary.Invalid
	fields["alerts"] = summary.AlertCount

	return &app.RiskResponse{
		Project: project,
		AsOf:    asOf,
		Results: results,
		Alerts:  alerts,
		Summary: summary,
	}, nil
}
