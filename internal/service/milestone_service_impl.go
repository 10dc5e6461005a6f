package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/epcrisk/internal/db"
	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/alexanderramin/epcrisk/internal/repository"
)

type milestoneService struct {
	milestones repository.MilestoneRepo
	logs       repository.SpendLogRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewMilestoneService(
	milestones repository.MilestoneRepo,
	logs repository.SpendLogRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) MilestoneService {
	return &milestoneService{
		milestones: milestones,
		logs:       logs,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// Create assigns the next project sequence number and stores the milestone
// and its resource plan atomically. The milestone is stored even when its
// data would not score; validation problems surface in the risk view.
func (s *milestoneService) Create(ctx context.Context, m *domain.Milestone) (err error) {
	done := observe(ctx, s.observer, "milestone-create", map[string]any{"project_id": m.ProjectID, "name": m.Name})
	defer func() { done(err) }()

	if err = checkMilestoneInput(m); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	normaliseMilestoneDates(m)
	if m.Status == "" {
		m.Status = domain.MilestoneOpen
	}
	if m.Phases == 0 {
		m.Phases = 1
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		seq, err := repository.NewSQLiteProjectSequenceRepo(tx).NextProjectSeq(ctx, m.ProjectID)
		if err != nil {
			return err
		}
		m.Seq = seq
		return repository.NewSQLiteMilestoneRepo(tx).Create(ctx, m)
	})
}

func (s *milestoneService) GetByID(ctx context.Context, id string) (*domain.Milestone, error) {
	m, err := s.milestones.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Logs, err = s.logs.ListByMilestone(ctx, m.ID); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *milestoneService) GetBySeq(ctx context.Context, projectID string, seq int) (*domain.Milestone, error) {
	m, err := s.milestones.GetBySeq(ctx, projectID, seq)
	if err != nil {
		return nil, err
	}
	if m.Logs, err = s.logs.ListByMilestone(ctx, m.ID); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *milestoneService) ListByProject(ctx context.Context, projectID string) ([]*domain.Milestone, error) {
	return loadPortfolio(ctx, s.milestones, s.logs, projectID, time.Time{})
}

func (s *milestoneService) Update(ctx context.Context, m *domain.Milestone) (err error) {
	done := observe(ctx, s.observer, "milestone-update", map[string]any{"milestone_id": m.ID})
	defer func() { done(err) }()

	if err = checkMilestoneInput(m); err != nil {
		return err
	}
	normaliseMilestoneDates(m)
	m.UpdatedAt = time.Now().UTC()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteMilestoneRepo(tx).Update(ctx, m)
	})
}

func (s *milestoneService) Close(ctx context.Context, id string) error {
	return s.transition(ctx, id, "milestone-close", (*domain.Milestone).Close)
}

func (s *milestoneService) Reopen(ctx context.Context, id string) error {
	return s.transition(ctx, id, "milestone-reopen", (*domain.Milestone).Reopen)
}

func (s *milestoneService) transition(ctx context.Context, id, name string, apply func(*domain.Milestone, time.Time) error) (err error) {
	done := observe(ctx, s.observer, name, map[string]any{"milestone_id": id})
	defer func() { done(err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteMilestoneRepo(tx)
		m, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := apply(m, time.Now().UTC()); err != nil {
			return err
		}
		return repo.Update(ctx, m)
	})
}

func (s *milestoneService) Delete(ctx context.Context, id string) (err error) {
	done := observe(ctx, s.observer, "milestone-delete", map[string]any{"milestone_id": id})
	defer func() { done(err) }()
	return s.milestones.Delete(ctx, id)
}

// checkMilestoneInput rejects input no caller could have meant. Data that is
// merely unscorable (zero budget, inverted dates) is accepted and reported by
// domain validation at assessment time.
func checkMilestoneInput(m *domain.Milestone) error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return fmt.Errorf("milestone name is required")
	}
	if m.ProjectID == "" {
		return fmt.Errorf("milestone project is required")
	}
	if !domain.IsFinite(m.PlannedBudget) {
		return fmt.Errorf("planned budget must be a finite number (got %v)", m.PlannedBudget)
	}
	if !domain.IsFinite(m.DelayPenaltyPerDay) {
		return fmt.Errorf("delay penalty per day must be a finite number (got %v)", m.DelayPenaltyPerDay)
	}
	if !domain.IsFinite(m.Resources.PlannedTotal()) {
		return fmt.Errorf("resource plan has a non-finite rate or quantity")
	}
	for _, l := range m.Resources.Labourers {
		if l.Count < 0 || l.DailyRate < 0 || l.Days < 0 {
			return fmt.Errorf("labour line %q has a negative value", l.Role)
		}
	}
	for _, mat := range m.Resources.Materials {
		if mat.Quantity < 0 || mat.UnitCost < 0 {
			return fmt.Errorf("material line %q has a negative value", mat.Name)
		}
	}
	for _, mc := range m.Resources.Machines {
		if mc.Count < 0 || mc.DailyRate < 0 || mc.Days < 0 {
			return fmt.Errorf("machine line %q has a negative value", mc.Name)
		}
	}
	return nil
}

func normaliseMilestoneDates(m *domain.Milestone) {
	if !m.StartDate.IsZero() {
		m.StartDate = domain.DateOnly(m.StartDate)
	}
	if !m.DueDate.IsZero() {
		m.DueDate = domain.DateOnly(m.DueDate)
	}
	if !m.PaymentTriggerDate.IsZero() {
		m.PaymentTriggerDate = domain.DateOnly(m.PaymentTriggerDate)
	}
}
