package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/epcrisk/internal/domain"
)

// Alert is a derived optimisation suggestion for one milestone.
type Alert struct {
	Kind          domain.AlertKind
	Severity      domain.Severity
	MilestoneID   string
	MilestoneName string
	Score         float64 // composite score of the milestone, for ordering
	Message       string
}

type rule func(r MilestoneResult, th Thresholds) *Alert

var rules = []rule{
	ruleOverspend,
	ruleDeadlineRisk,
	ruleCashRunway,
	ruleCompositeCritical,
	ruleBudgetOverrun,
	ruleSlowBurn,
	ruleLabourShare,
	ruleMaterialShare,
	rulePaceRisk,
	ruleMachinerySavings,
}

// Advise evaluates every rule against every scored milestone and returns
// the alerts in canonical order. Invalid milestones are skipped. An empty
// result means every indicator is within its normal range.
func Advise(results []MilestoneResult, th Thresholds) []Alert {
	var alerts []Alert
	for _, r := range results {
		if !r.Valid() {
			continue
		}
		for _, f := range rules {
			a := f(r, th)
			if a == nil {
				continue
			}
			a.MilestoneID = r.Milestone.ID
			a.MilestoneName = r.Milestone.Name
			a.Score = r.Score.Composite
			alerts = append(alerts, *a)
		}
	}
	SortAlerts(alerts)
	return alerts
}

func ruleOverspend(r MilestoneResult, th Thresholds) *Alert {
	m, budget := r.Metrics, r.Milestone.PlannedBudget
	if m.CumulativeSpend > budget {
		excess := m.RawBurnRate - 1
		sev := domain.SeverityHigh
		if excess >= th.OverspendCriticalExcess {
			sev = domain.SeverityCritical
		}
		return &Alert{
			Kind:     domain.AlertOverspend,
			Severity: sev,
			Message: fmt.Sprintf("Spent %s against a %s budget (%.0f%% over). Freeze discretionary spend and review labour allocation and machinery hours.",
				money(m.CumulativeSpend), money(budget), excess*100),
		}
	}
	if m.TimeConsumed < 1 && m.RawBurnRate >= th.EarlyWarningFraction {
		return &Alert{
			Kind:     domain.AlertOverspend,
			Severity: domain.SeverityWarning,
			Message: fmt.Sprintf("%.0f%% of budget spent at %.0f%% of schedule. Verify physical progress matches expenditure.",
				m.RawBurnRate*100, m.TimeConsumed*100),
		}
	}
	return nil
}

func ruleDeadlineRisk(r MilestoneResult, th Thresholds) *Alert {
	if !r.Milestone.IsOpen() || r.Score.PoD <= th.PoDHighThreshold {
		return nil
	}
	if r.Metrics.DaysRemaining < 0 {
		return &Alert{
			Kind:     domain.AlertDeadlineRisk,
			Severity: domain.SeverityCritical,
			Message: fmt.Sprintf("Due date passed %d days ago and the milestone is still open (%.0f%% delay probability). Escalate to the senior PM.",
				-r.Metrics.DaysRemaining, r.Score.PoD),
		}
	}
	return &Alert{
		Kind:     domain.AlertDeadlineRisk,
		Severity: domain.SeverityHigh,
		Message: fmt.Sprintf("Deadline in %d days with %.0f%% delay probability. Trigger a resource surge on critical-path activities.",
			r.Metrics.DaysRemaining, r.Score.PoD),
	}
}

func ruleCashRunway(r MilestoneResult, th Thresholds) *Alert {
	m := r.Metrics
	if !r.Milestone.IsOpen() || m.DaysToTrigger <= 0 || !m.HasRunwayLimit() {
		return nil
	}
	needed := float64(m.DaysToTrigger) + th.CashRunwayMarginDays
	if m.RunwayDays >= needed {
		return nil
	}
	sev := domain.SeverityHigh
	if m.RunwayDays < float64(m.DaysToTrigger)/2 {
		sev = domain.SeverityCritical
	}
	return &Alert{
		Kind:     domain.AlertCashRunway,
		Severity: sev,
		Message: fmt.Sprintf("Only %.1f days of cash runway at %s/day, but the payment trigger is %d days away. Activate an overdraft facility or accelerate billing.",
			m.RunwayDays, money(m.RecentDailyBurn), m.DaysToTrigger),
	}
}

func ruleCompositeCritical(r MilestoneResult, _ Thresholds) *Alert {
	if r.Score.Level != domain.RiskCritical {
		return nil
	}
	return &Alert{
		Kind:     domain.AlertCompositeCritical,
		Severity: domain.SeverityCritical,
		Message: fmt.Sprintf("Composite risk %.1f/100 (PoD %.0f, CoD %.0f, CFTS %.0f). Review this milestone first.",
			r.Score.Composite, r.Score.PoD, r.Score.CoDNorm, r.Score.CFTS),
	}
}

func ruleBudgetOverrun(r MilestoneResult, th Thresholds) *Alert {
	m, budget := r.Metrics, r.Milestone.PlannedBudget
	if m.DaysLogged == 0 || m.ProjectedTotal <= budget*(1+th.ProjectedOverrunFraction) {
		return nil
	}
	return &Alert{
		Kind:     domain.AlertBudgetOverrun,
		Severity: domain.SeverityHigh,
		Message: fmt.Sprintf("Projected to finish at %s, %.0f%% over budget. Renegotiate scope or reduce resource intensity.",
			money(m.ProjectedTotal), (m.ProjectedTotal/budget-1)*100),
	}
}

func ruleSlowBurn(r MilestoneResult, th Thresholds) *Alert {
	m := r.Metrics
	if !r.Milestone.IsOpen() || m.TimeConsumed <= th.SlowBurnMinTime || m.BurnEfficiency >= th.SlowBurnEfficiency {
		return nil
	}
	return &Alert{
		Kind:     domain.AlertSlowBurn,
		Severity: domain.SeverityInfo,
		Message: fmt.Sprintf("Only %.0f%% of budget used at %.0f%% of the timeline. Confirm physical progress; a back-loaded cost surge is likely.",
			m.RawBurnRate*100, m.TimeConsumed*100),
	}
}

func ruleLabourShare(r MilestoneResult, th Thresholds) *Alert {
	plan, budget := r.Milestone.Resources, r.Milestone.PlannedBudget
	labour := plan.PlannedLabour()
	if len(plan.Labourers) == 0 || labour <= budget*th.LabourShareFraction {
		return nil
	}
	return &Alert{
		Kind:     domain.AlertLabourShare,
		Severity: domain.SeverityWarning,
		Message: fmt.Sprintf("Planned labour is %.0f%% of budget. Audit utilisation of all %d workers and redeploy idle staff to critical-path work.",
			labour/budget*100, plan.TotalWorkers()),
	}
}

func ruleMaterialShare(r MilestoneResult, th Thresholds) *Alert {
	budget := r.Milestone.PlannedBudget
	spent := r.Metrics.Spend.Materials
	if spent <= budget*th.MaterialShareFraction {
		return nil
	}
	return &Alert{
		Kind:     domain.AlertMaterialShare,
		Severity: domain.SeverityWarning,
		Message: fmt.Sprintf("Material spend is %.0f%% of budget. Review the procurement schedule to avoid over-ordering.",
			spent/budget*100),
	}
}

// rulePaceRisk covers spend running ahead of the schedule before the budget
// is exhausted. Past the budget the overspend rule takes over.
func rulePaceRisk(r MilestoneResult, th Thresholds) *Alert {
	m := r.Metrics
	if !r.Milestone.IsOpen() || m.CumulativeSpend > r.Milestone.PlannedBudget || m.BurnEfficiency <= th.PaceRiskEfficiency {
		return nil
	}
	return &Alert{
		Kind:     domain.AlertPaceRisk,
		Severity: domain.SeverityWarning,
		Message: fmt.Sprintf("Spend pace %.0f%% above plan. Verify that physical progress matches expenditure.",
			(m.BurnEfficiency-1)*100),
	}
}

func ruleMachinerySavings(r MilestoneResult, th Thresholds) *Alert {
	machines := r.Milestone.Resources.Machines
	if !r.Milestone.IsOpen() || len(machines) == 0 || r.Metrics.BurnEfficiency <= th.MachineryEfficiency {
		return nil
	}
	names := make([]string, 0, 2)
	for _, mc := range machines[:min(len(machines), 2)] {
		names = append(names, mc.Name)
	}
	return &Alert{
		Kind:     domain.AlertMachinerySavings,
		Severity: domain.SeverityInfo,
		Message: fmt.Sprintf("Machinery costs elevated. Shift %s to off-peak hours or return idle units to cut rental spend.",
			strings.Join(names, ", ")),
	}
}

func money(v float64) string {
	neg := v < 0
	n := int64(math.Round(math.Abs(v)))
	s := fmt.Sprintf("%d", n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-$" + s
	}
	return "$" + s
}
