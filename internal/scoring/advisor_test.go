package scoring

import (
	"testing"

	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(alerts []Alert) []domain.AlertKind {
	out := make([]domain.AlertKind, len(alerts))
	for i, a := range alerts {
		out[i] = a.Kind
	}
	return out
}

func findAlert(alerts []Alert, kind domain.AlertKind) *Alert {
	for i := range alerts {
		if alerts[i].Kind == kind {
			return &alerts[i]
		}
	}
	return nil
}

func TestAdvise_ReferenceScenario(t *testing.T) {
	m := newMilestone("ms-ref", 100000, 0, 100, 90)
	spread(m, 70, 10, 95000)

	results := ScorePortfolio([]*domain.Milestone{m}, day(80), DefaultThresholds())
	alerts := Advise(results, DefaultThresholds())

	overspend := findAlert(alerts, domain.AlertOverspend)
	require.NotNil(t, overspend, "90%% early-warning overspend expected")
	assert.Equal(t, domain.SeverityWarning, overspend.Severity)
	assert.Contains(t, overspend.Message, "95% of budget spent at 80% of schedule")

	deadline := findAlert(alerts, domain.AlertDeadlineRisk)
	require.NotNil(t, deadline)
	assert.Equal(t, domain.SeverityHigh, deadline.Severity)
	assert.Contains(t, deadline.Message, "Deadline in 20 days")

	require.NotNil(t, findAlert(alerts, domain.AlertCompositeCritical))

	for i := 1; i < len(alerts); i++ {
		assert.GreaterOrEqual(t, alerts[i-1].Severity.Rank(), alerts[i].Severity.Rank(), "alerts must be ordered by severity")
	}
	for _, a := range alerts {
		assert.Equal(t, "ms-ref", a.MilestoneID)
		assert.Equal(t, "Milestone ms-ref", a.MilestoneName)
	}
}

func TestAdvise_HealthyMilestoneHasNoAlerts(t *testing.T) {
	m := newMilestone("ms-calm", 100000, 0, 200, 150)
	spread(m, 0, 20, 9000)

	results := ScorePortfolio([]*domain.Milestone{m}, day(20), DefaultThresholds())
	require.True(t, results[0].Valid())
	alerts := Advise(results, DefaultThresholds())
	assert.Empty(t, alerts)
	assert.NotNil(t, results[0].Score, "no alerts is not an error")
}

func TestAdvise_OverspendSeverityScalesWithExcess(t *testing.T) {
	th := DefaultThresholds()

	slight := newMilestone("ms-slight", 10000, 0, 100, 200)
	spread(slight, 0, 2, 10500) // 5% over
	heavy := newMilestone("ms-heavy", 10000, 0, 100, 200)
	spread(heavy, 0, 2, 13000) // 30% over

	alerts := Advise(ScorePortfolio([]*domain.Milestone{slight, heavy}, day(2), th), th)

	var slightSev, heavySev domain.Severity
	for _, a := range alerts {
		if a.Kind != domain.AlertOverspend {
			continue
		}
		switch a.MilestoneID {
		case "ms-slight":
			slightSev = a.Severity
		case "ms-heavy":
			heavySev = a.Severity
		}
	}
	assert.Equal(t, domain.SeverityHigh, slightSev)
	assert.Equal(t, domain.SeverityCritical, heavySev)
}

func TestAdvise_EarlyWarningOnlyWhileTimeRemains(t *testing.T) {
	th := DefaultThresholds()
	m := newMilestone("ms-end", 10000, 0, 10, 100)
	spread(m, 0, 2, 9200)
	m.Status = domain.MilestoneClosed

	alerts := Advise(ScorePortfolio([]*domain.Milestone{m}, day(10), th), th)
	assert.Nil(t, findAlert(alerts, domain.AlertOverspend), "time consumed = 1 suppresses the early warning")
}

func TestAdvise_DeadlineRiskOnlyForOpenMilestones(t *testing.T) {
	th := DefaultThresholds()
	open := newMilestone("ms-open", 10000, 0, 10, 100)
	closed := newMilestone("ms-closed", 10000, 0, 10, 100)
	closed.Status = domain.MilestoneClosed

	alerts := Advise(ScorePortfolio([]*domain.Milestone{open, closed}, day(15), th), th)

	var deadlineIDs []string
	for _, a := range alerts {
		if a.Kind == domain.AlertDeadlineRisk {
			deadlineIDs = append(deadlineIDs, a.MilestoneID)
			assert.Equal(t, domain.SeverityCritical, a.Severity, "past due and open")
		}
	}
	assert.Equal(t, []string{"ms-open"}, deadlineIDs)
}

func TestAdvise_CashRunwayShortfall(t *testing.T) {
	th := DefaultThresholds()
	// 40000 remaining at 2000/day = 20 days of runway; trigger 30 days out.
	m := newMilestone("ms-cash", 60000, 0, 300, 40)
	spread(m, 0, 10, 20000)

	alerts := Advise(ScorePortfolio([]*domain.Milestone{m}, day(10), th), th)
	cash := findAlert(alerts, domain.AlertCashRunway)
	require.NotNil(t, cash)
	assert.Equal(t, domain.SeverityHigh, cash.Severity)
	assert.Contains(t, cash.Message, "20.0 days of cash runway")
	assert.Contains(t, cash.Message, "30 days away")

	// Enough runway once the trigger moves closer.
	m.PaymentTriggerDate = day(25)
	alerts = Advise(ScorePortfolio([]*domain.Milestone{m}, day(10), th), th)
	assert.Nil(t, findAlert(alerts, domain.AlertCashRunway))

	// A margin pushes it back into shortfall.
	th.CashRunwayMarginDays = 10
	alerts = Advise(ScorePortfolio([]*domain.Milestone{m}, day(10), th), th)
	assert.NotNil(t, findAlert(alerts, domain.AlertCashRunway))
}

func TestAdvise_NoRunwayAlertWithoutSpend(t *testing.T) {
	th := DefaultThresholds()
	m := newMilestone("ms-idle", 60000, 0, 300, 40)
	alerts := Advise(ScorePortfolio([]*domain.Milestone{m}, day(10), th), th)
	assert.Nil(t, findAlert(alerts, domain.AlertCashRunway))
}

func TestAdvise_SkipsInvalidMilestones(t *testing.T) {
	th := DefaultThresholds()
	bad := newMilestone("ms-bad", 0, 0, 10, 10)
	good := newMilestone("ms-good", 10000, 0, 10, 5)

	results := ScorePortfolio([]*domain.Milestone{bad, good}, day(20), th)
	alerts := Advise(results, th)
	require.NotEmpty(t, alerts)
	for _, a := range alerts {
		assert.Equal(t, "ms-good", a.MilestoneID)
	}
}

func TestAdvise_SupplementaryRules(t *testing.T) {
	th := DefaultThresholds()

	labour := newMilestone("ms-labour", 10000, 0, 100, 400)
	labour.Resources.Labourers = []domain.LabourLine{{Role: "Welder", Count: 3, DailyRate: 50, Days: 50}} // 7500

	material := newMilestone("ms-material", 10000, 0, 100, 400)
	material.Logs = []domain.DailySpendLog{{Date: day(1), Materials: 4500}}

	slow := newMilestone("ms-slow", 100000, 0, 100, 400)
	slow.Logs = []domain.DailySpendLog{{Date: day(1), Wages: 1000}}

	alerts := Advise(ScorePortfolio([]*domain.Milestone{labour, material, slow}, day(50), th), th)

	byMilestone := map[string][]domain.AlertKind{}
	for _, a := range alerts {
		byMilestone[a.MilestoneID] = append(byMilestone[a.MilestoneID], a.Kind)
	}
	assert.Contains(t, byMilestone["ms-labour"], domain.AlertLabourShare)
	assert.Contains(t, byMilestone["ms-material"], domain.AlertMaterialShare)
	assert.Contains(t, byMilestone["ms-slow"], domain.AlertSlowBurn)
	assert.Contains(t, byMilestone["ms-material"], domain.AlertBudgetOverrun, "4500/day for 100 days far exceeds budget")

	// 30% spent at 20% of schedule: efficiency 1.5.
	pace := newMilestone("ms-pace", 100000, 0, 100, 400)
	spread(pace, 0, 10, 30000)

	// 22% spent at 20% of schedule: efficiency 1.1, under the pace threshold.
	machinery := newMilestone("ms-machinery", 100000, 0, 100, 400)
	machinery.Resources.Machines = []domain.MachineLine{
		{Name: "Crane", Count: 1, DailyRate: 500, Days: 10},
		{Name: "Excavator", Count: 1, DailyRate: 300, Days: 10},
		{Name: "Pump", Count: 2, DailyRate: 50, Days: 10},
	}
	spread(machinery, 0, 10, 22000)

	alerts = Advise(ScorePortfolio([]*domain.Milestone{pace, machinery}, day(20), th), th)
	byMilestone = map[string][]domain.AlertKind{}
	for _, a := range alerts {
		byMilestone[a.MilestoneID] = append(byMilestone[a.MilestoneID], a.Kind)
	}
	assert.Contains(t, byMilestone["ms-pace"], domain.AlertPaceRisk)
	assert.NotContains(t, byMilestone["ms-pace"], domain.AlertMachinerySavings, "no machines planned")
	assert.Contains(t, byMilestone["ms-machinery"], domain.AlertMachinerySavings)
	assert.NotContains(t, byMilestone["ms-machinery"], domain.AlertPaceRisk)

	savings := findAlert(alerts, domain.AlertMachinerySavings)
	require.NotNil(t, savings)
	assert.Equal(t, domain.SeverityInfo, savings.Severity)
	assert.Contains(t, savings.Message, "Crane, Excavator")
	assert.NotContains(t, savings.Message, "Pump")

	paceAlert := findAlert(alerts, domain.AlertPaceRisk)
	require.NotNil(t, paceAlert)
	assert.Equal(t, domain.SeverityWarning, paceAlert.Severity)
	assert.Contains(t, paceAlert.Message, "50% above plan")

	relaxed := th
	relaxed.PaceRiskEfficiency = 2
	relaxed.MachineryEfficiency = 2
	alerts = Advise(ScorePortfolio([]*domain.Milestone{pace, machinery}, day(20), relaxed), relaxed)
	assert.Nil(t, findAlert(alerts, domain.AlertPaceRisk))
	assert.Nil(t, findAlert(alerts, domain.AlertMachinerySavings))
}

func TestAdvise_PaceRiskYieldsToOverspend(t *testing.T) {
	th := DefaultThresholds()
	m := newMilestone("ms-over", 10000, 0, 100, 400)
	spread(m, 0, 10, 12000)

	alerts := Advise(ScorePortfolio([]*domain.Milestone{m}, day(20), th), th)
	assert.NotNil(t, findAlert(alerts, domain.AlertOverspend))
	assert.Nil(t, findAlert(alerts, domain.AlertPaceRisk), "past budget only overspend is raised")
}

func TestSortAlerts_Canonical(t *testing.T) {
	alerts := []Alert{
		{Kind: domain.AlertSlowBurn, Severity: domain.SeverityInfo, MilestoneID: "a", Score: 90},
		{Kind: domain.AlertDeadlineRisk, Severity: domain.SeverityHigh, MilestoneID: "b", Score: 40},
		{Kind: domain.AlertCashRunway, Severity: domain.SeverityCritical, MilestoneID: "c", Score: 50},
		{Kind: domain.AlertCompositeCritical, Severity: domain.SeverityCritical, MilestoneID: "c", Score: 50},
		{Kind: domain.AlertOverspend, Severity: domain.SeverityCritical, MilestoneID: "d", Score: 80},
		{Kind: domain.AlertOverspend, Severity: domain.SeverityHigh, MilestoneID: "a", Score: 90},
	}
	SortAlerts(alerts)

	assert.Equal(t, []domain.AlertKind{
		domain.AlertOverspend,
		domain.AlertCompositeCritical,
		domain.AlertCashRunway,
		domain.AlertOverspend,
		domain.AlertDeadlineRisk,
		domain.AlertSlowBurn,
	}, kinds(alerts))
	assert.Equal(t, "d", alerts[0].MilestoneID)
	assert.Equal(t, "a", alerts[3].MilestoneID)
}

func TestSortResults_InvalidLast(t *testing.T) {
	th := DefaultThresholds()
	a := newMilestone("a", 1000, 0, 100, 100)
	a.Seq = 1
	b := newMilestone("b", 0, 0, 100, 100)
	b.Seq = 2
	c := newMilestone("c", 1000, 0, 10, 5)
	c.Seq = 3

	results := ScorePortfolio([]*domain.Milestone{a, b, c}, day(8), th)
	SortResults(results)
	assert.Equal(t, "c", results[0].Milestone.ID)
	assert.Equal(t, "a", results[1].Milestone.ID)
	assert.Equal(t, "b", results[2].Milestone.ID)
}
