package service

import (
	"context"
	"io"

	"github.com/alexanderramin/epcrisk/internal/app"
	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/alexanderramin/epcrisk/internal/importer"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// MilestoneService returns milestones hydrated with their resource plan and
// every spend log.
type MilestoneService interface {
	Create(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, id string) (*domain.Milestone, error)
	GetBySeq(ctx context.Context, projectID string, seq int) (*domain.Milestone, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Milestone, error)
	Update(ctx context.Context, m *domain.Milestone) error
	Close(ctx context.Context, id string) error
	Reopen(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type SpendService interface {
	LogSpend(ctx context.Context, l *domain.DailySpendLog) error
	GetByID(ctx context.Context, id string) (*domain.DailySpendLog, error)
	ListByMilestone(ctx context.Context, milestoneID string) ([]domain.DailySpendLog, error)
	Delete(ctx context.Context, id string) error
}

type RiskService interface {
	Assess(ctx context.Context, req app.RiskRequest) (*app.RiskResponse, error)
}

type ExportService interface {
	WriteMilestoneCSV(ctx context.Context, w io.Writer, req app.RiskRequest) error
	WriteSpendCSV(ctx context.Context, w io.Writer, projectID string) error
}

type ImportService interface {
	ImportLegacyFile(ctx context.Context, path string, opts importer.Options) (*app.ImportResult, error)
	ImportLegacy(ctx context.Context, store *importer.LegacyStore, opts importer.Options) (*app.ImportResult, error)
}

var (
	_ app.AssessRiskUseCase   = (RiskService)(nil)
	_ app.ExportUseCase       = (ExportService)(nil)
	_ app.ImportLegacyUseCase = (ImportService)(nil)
)
