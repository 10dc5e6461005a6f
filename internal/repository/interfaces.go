package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/epcrisk/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// MilestoneRepo persists milestones together with their resource plan.
// Spend logs are owned by SpendLogRepo and are never populated here.
type MilestoneRepo interface {
	Create(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, id string) (*domain.Milestone, error)
	GetBySeq(ctx context.Context, projectID string, seq int) (*domain.Milestone, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Milestone, error)
	Update(ctx context.Context, m *domain.Milestone) error
	Delete(ctx context.Context, id string) error
}

type SpendLogRepo interface {
	Create(ctx context.Context, l *domain.DailySpendLog) error
	GetByID(ctx context.Context, id string) (*domain.DailySpendLog, error)
	ListByMilestone(ctx context.Context, milestoneID string) ([]domain.DailySpendLog, error)
	// ListByProject returns logs for every milestone of the project dated on
	// or before asOf. A zero asOf returns everything.
	ListByProject(ctx context.Context, projectID string, asOf time.Time) ([]domain.DailySpendLog, error)
	Delete(ctx context.Context, id string) error
}

type ProjectSequenceRepo interface {
	NextProjectSeq(ctx context.Context, projectID string) (int, error)
}
