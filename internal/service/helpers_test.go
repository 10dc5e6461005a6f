package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/alexanderramin/epcrisk/internal/metrics"
	"github.com/alexanderramin/epcrisk/internal/repository"
	"github.com/alexanderramin/epcrisk/internal/scoring"
	"github.com/alexanderramin/epcrisk/internal/testutil"
)

// recordingObserver keeps every event for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) named(name string) []UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []UseCaseEvent
	for _, e := range o.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

type harness struct {
	db         *sql.DB
	observer   *recordingObserver
	registry   *metrics.Registry
	projects   ProjectService
	milestones MilestoneService
	spend      SpendService
	risk       RiskService
	export     ExportService
	imports    ImportService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	obs := &recordingObserver{}
	reg := metrics.NewRegistry()

	projectRepo := repository.NewSQLiteProjectRepo(database)
	milestoneRepo := repository.NewSQLiteMilestoneRepo(database)
	logRepo := repository.NewSQLiteSpendLogRepo(database)

	risk := NewRiskService(projectRepo, milestoneRepo, logRepo, scoring.DefaultThresholds(), reg, obs)
	return &harness{
		db:         database,
		observer:   obs,
		registry:   reg,
		projects:   NewProjectService(projectRepo, obs),
		milestones: NewMilestoneService(milestoneRepo, logRepo, uow, obs),
		spend:      NewSpendService(logRepo, milestoneRepo, reg, obs),
		risk:       risk,
		export:     NewExportService(risk, milestoneRepo, logRepo, obs),
		imports:    NewImportService(uow, obs),
	}
}

func (h *harness) project(t *testing.T, name string) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject(name)
	p.ID = ""
	require.NoError(t, h.projects.Create(context.Background(), p))
	return p
}

func (h *harness) milestone(t *testing.T, projectID, name string, opts ...testutil.MilestoneOption) *domain.Milestone {
	t.Helper()
	m := testutil.NewTestMilestone(projectID, name, opts...)
	m.ID = ""
	require.NoError(t, h.milestones.Create(context.Background(), m))
	return m
}

// spread logs total evenly over entries consecutive days from day `from`.
func (h *harness) spread(t *testing.T, milestoneID string, from, entries int, total float64) {
	t.Helper()
	per := total / float64(entries)
	for i := 0; i < entries; i++ {
		l := testutil.NewTestSpendLog(milestoneID, from+i, per)
		l.ID = ""
		require.NoError(t, h.spend.LogSpend(context.Background(), l))
	}
}
