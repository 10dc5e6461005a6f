package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/alexanderramin/epcrisk/internal/metrics"
	"github.com/alexanderramin/epcrisk/internal/repository"
)

type spendService struct {
	logs       repository.SpendLogRepo
	milestones repository.MilestoneRepo
	recorder   metrics.Recorder
	observer   UseCaseObserver
}

func NewSpendService(
	logs repository.SpendLogRepo,
	milestones repository.MilestoneRepo,
	recorder metrics.Recorder,
	observers ...UseCaseObserver,
) SpendService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &spendService{
		logs:       logs,
		milestones: milestones,
		recorder:   recorder,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// LogSpend records one day of spend. A second entry for the same milestone
// and date fails with repository.ErrDuplicateLogDate.
func (s *spendService) LogSpend(ctx context.Context, l *domain.DailySpendLog) (err error) {
	fields := map[string]any{"milestone_id": l.MilestoneID}
	done := observe(ctx, s.observer, "spend-log", fields)
	defer func() { done(err) }()

	if l.Date.IsZero() {
		return fmt.Errorf("spend log date is required")
	}
	if !domain.IsFinite(l.Wages) || !domain.IsFinite(l.Materials) || !domain.IsFinite(l.Machinery) {
		return fmt.Errorf("spend amounts must be finite numbers")
	}
	if l.Wages < 0 || l.Materials < 0 || l.Machinery < 0 {
		return fmt.Errorf("spend amounts must not be negative")
	}
	if _, err = s.milestones.GetByID(ctx, l.MilestoneID); err != nil {
		return err
	}

	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	l.Date = domain.DateOnly(l.Date)
	l.Notes = strings.TrimSpace(l.Notes)
	l.CreatedAt = time.Now().UTC()
	fields["date"] = l.Date.Format("2006-01-02")
	fields["total"] = l.Total()

	if err = s.logs.Create(ctx, l); err != nil {
		return err
	}
	s.recorder.ObserveSpendLogged(l.MilestoneID, l.Total())
	return nil
}

func (s *spendService) GetByID(ctx context.Context, id string) (*domain.DailySpendLog, error) {
	return s.logs.GetByID(ctx, id)
}

func (s *spendService) ListByMilestone(ctx context.Context, milestoneID string) ([]domain.DailySpendLog, error) {
	return s.logs.ListByMilestone(ctx, milestoneID)
}

func (s *spendService) Delete(ctx context.Context, id string) (err error) {
	done := observe(ctx, s.observer, "spend-delete", map[string]any{"log_id": id})
	defer func() { done(err) }()
	return s.logs.Delete(ctx, id)
}
