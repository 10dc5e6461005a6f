package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/alexanderramin/epcrisk/internal/scoring"
	"github.com/stretchr/testify/assert"
)

func sampleMilestone() *domain.Milestone {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	return &domain.Milestone{
		ID:                 "m1",
		Seq:                3,
		Name:               "Piling",
		PlannedBudget:      50000,
		StartDate:          start,
		DueDate:            start.AddDate(0, 0, 30),
		PaymentTriggerDate: start.AddDate(0, 0, 35),
		Status:             domain.MilestoneOpen,
		Phases:             2,
		Resources: domain.ResourcePlan{
			Labourers: []domain.LabourLine{{Role: "Mason", Count: 4, DailyRate: 150, Days: 20}},
			Materials: []domain.MaterialLine{{Name: "Cement", Quantity: 200, UnitCost: 12.5}},
		},
		Logs: []domain.DailySpendLog{{ID: "l1", Date: start, Wages: 600, Materials: 400}},
	}
}

func TestFormatMilestoneList(t *testing.T) {
	out := FormatMilestoneList([]*domain.Milestone{sampleMilestone()})

	assert.Contains(t, out, "#3")
	assert.Contains(t, out, "Piling")
	assert.Contains(t, out, "50,000.00")
	assert.Contains(t, out, "1,000.00")
	assert.Contains(t, out, "2025-02-05")
	assert.Contains(t, out, "Open")
}

func TestFormatMilestoneList_Empty(t *testing.T) {
	assert.Contains(t, FormatMilestoneList(nil), "No milestones yet")
}

func TestFormatMilestoneInspect_WithScore(t *testing.T) {
	m := sampleMilestone()
	r := scoring.MilestoneResult{
		Milestone: m,
		Metrics:   scoring.Metrics{AsOf: m.StartDate.AddDate(0, 0, 15), RawBurnRate: 0.02, TimeConsumed: 0.5, ScheduleDays: 30, DaysRemaining: 15},
		Score:     &scoring.RiskScore{PoD: 26.5, CoDNorm: 100, CoDRaw: 3333.33, CFTS: 41.2, Composite: 56.1, Level: domain.RiskHigh},
	}
	r.Metrics.RunwayDays = 49

	out := FormatMilestoneInspect(m, &r)

	assert.Contains(t, out, "#3 PILING")
	assert.Contains(t, out, "HIGH")
	assert.Contains(t, out, "56.1")
	assert.Contains(t, out, "3,333.33/day")
	assert.Contains(t, out, "50% of 30 days")
	assert.Contains(t, out, "49 days")
	assert.Contains(t, out, "Mason")
	assert.Contains(t, out, "14,500.00")
}

func TestFormatMilestoneInspect_Invalid(t *testing.T) {
	m := sampleMilestone()
	r := scoring.MilestoneResult{
		Milestone: m,
		Err:       &domain.MilestoneDataError{MilestoneID: "m1", Reasons: []string{"due date is before start date"}},
	}

	out := FormatMilestoneInspect(m, &r)

	assert.Contains(t, out, InvalidLabel)
	assert.Contains(t, out, "due date is before start date")
	assert.NotContains(t, out, "LOW")
}

func TestFormatSpendLogs_Totals(t *testing.T) {
	out := FormatSpendLogs([]domain.DailySpendLog{
		{ID: "l1", Date: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), Wages: 600, Materials: 400, Notes: "pour"},
		{ID: "l2", Date: time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC), Wages: 600, Machinery: 250},
	})

	assert.Contains(t, out, "pour")
	assert.Contains(t, out, "1,200.00")
	assert.Contains(t, out, "1,850.00")
}

func TestFormatProjectInspect(t *testing.T) {
	p := &domain.Project{ID: "p1", ShortID: "HAR01", Name: "Harbour Works", Description: "Quay wall"}
	out := FormatProjectInspect(p, []*domain.Milestone{sampleMilestone()})

	assert.Contains(t, out, "HAR01 HARBOUR WORKS")
	assert.Contains(t, out, "Quay wall")
	assert.Contains(t, out, "1 of 1 milestones")
	assert.Contains(t, out, "Piling")
}

func TestFormatProjectList_UsesShortIDWhenPresent(t *testing.T) {
	out := FormatProjectList([]*domain.Project{{ID: "12345678-aaaa-bbbb", ShortID: "HAR01", Name: "Harbour Works"}})

	assert.Contains(t, out, "HAR01")
	assert.NotContains(t, out, "12345678")
}
