package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/alexanderramin/epcrisk/internal/scoring"
)

func result(id string, budget, spend, composite float64, level domain.RiskLevel) scoring.MilestoneResult {
	return scoring.MilestoneResult{
		Milestone: &domain.Milestone{ID: id, PlannedBudget: budget},
		Metrics:   scoring.Metrics{CumulativeSpend: spend},
		Score:     &scoring.RiskScore{Composite: composite, Level: level},
	}
}

func TestSummarize(t *testing.T) {
	results := []scoring.MilestoneResult{
		result("a", 1000, 400, 72, domain.RiskCritical),
		result("b", 2000, 100, 30, domain.RiskMedium),
		{Milestone: &domain.Milestone{ID: "c", PlannedBudget: 500}, Err: errors.New("bad")},
	}
	alerts := []scoring.Alert{
		{Kind: domain.AlertCompositeCritical, Severity: domain.SeverityCritical, MilestoneID: "a"},
		{Kind: domain.AlertSlowBurn, Severity: domain.SeverityInfo, MilestoneID: "b"},
	}

	s := Summarize(results, alerts)

	assert.Equal(t, 3, s.Milestones)
	assert.Equal(t, 2, s.Valid)
	assert.Equal(t, 1, s.Invalid)
	assert.Equal(t, 1, s.ByLevel[domain.RiskCritical])
	assert.Equal(t, 1, s.ByLevel[domain.RiskMedium])
	assert.InDelta(t, 3500, s.PlannedBudget, 1e-9)
	assert.InDelta(t, 500, s.CumulativeSpend, 1e-9)
	require.NotNil(t, s.Highest)
	assert.Equal(t, "a", s.Highest.Milestone.ID)
	assert.Equal(t, 2, s.AlertCount)
	assert.Equal(t, 1, s.CriticalCount)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil)
	assert.Zero(t, s.Milestones)
	assert.Nil(t, s.Highest)
	assert.NotNil(t, s.ByLevel)
}
