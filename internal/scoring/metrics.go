package scoring

import (
	"math"
	"time"

	"github.com/alexanderramin/epcrisk/internal/domain"
)

// Metrics are the intermediate quantities derived from a milestone's spend
// and schedule as of a given date. Only logs dated on or before the as-of
// date count toward spend.
type Metrics struct {
	AsOf            time.Time
	DaysLogged      int
	Spend           domain.SpendBreakdown
	CumulativeSpend float64
	RawBurnRate     float64 // spend / budget, unclamped
	BurnRate        float64 // RawBurnRate clamped to [0, 1]
	TimeConsumed    float64 // [0, 1]
	ScheduleDays    int
	DaysRemaining   int // negative once the due date has passed
	DaysToTrigger   int // negative once the payment trigger has passed
	AvgDailyBurn    float64
	RecentDailyBurn float64
	ProjectedTotal  float64
	RemainingBudget float64
	RunwayDays      float64 // +Inf when there is no recent burn
	BurnEfficiency  float64 // burn rate relative to time consumed; 1 = on plan
	CoDRaw          float64
}

// HasRunwayLimit reports whether the runway is finite.
func (m Metrics) HasRunwayLimit() bool {
	return !math.IsInf(m.RunwayDays, 1)
}

// ComputeMetrics derives Metrics without validating the milestone. Callers
// must validate first; ScoreMilestone and ScorePortfolio do.
func ComputeMetrics(m *domain.Milestone, asOf time.Time, th Thresholds) Metrics {
	asOf = domain.DateOnly(asOf)
	out := Metrics{AsOf: asOf}

	var counted []domain.DailySpendLog
	for _, l := range m.SortedLogs() {
		if domain.DateOnly(l.Date).After(asOf) {
			continue
		}
		counted = append(counted, l)
		out.Spend.Wages += l.Wages
		out.Spend.Materials += l.Materials
		out.Spend.Machinery += l.Machinery
	}
	out.DaysLogged = len(counted)
	out.CumulativeSpend = out.Spend.Total()

	out.RawBurnRate = out.CumulativeSpend / m.PlannedBudget
	out.BurnRate = clamp01(out.RawBurnRate)

	out.ScheduleDays = domain.DaysBetween(m.StartDate, m.DueDate)
	if out.ScheduleDays <= 0 {
		out.TimeConsumed = 1
	} else {
		elapsed := domain.DaysBetween(m.StartDate, asOf)
		out.TimeConsumed = clamp01(float64(elapsed) / float64(out.ScheduleDays))
	}
	out.DaysRemaining = domain.DaysBetween(asOf, m.DueDate)
	out.DaysToTrigger = domain.DaysBetween(asOf, m.PaymentTriggerDate)

	if out.DaysLogged > 0 {
		out.AvgDailyBurn = out.CumulativeSpend / float64(out.DaysLogged)
		out.ProjectedTotal = out.AvgDailyBurn * float64(max(out.ScheduleDays, 1))
	} else {
		out.ProjectedTotal = m.PlannedBudget
	}

	window := th.RecentBurnWindow
	if window < 1 {
		window = 1
	}
	if n := len(counted); n > 0 {
		recent := counted[max(0, n-window):]
		var sum float64
		for _, l := range recent {
			sum += l.Total()
		}
		out.RecentDailyBurn = sum / float64(len(recent))
	}

	out.RemainingBudget = math.Max(m.PlannedBudget-out.CumulativeSpend, 0)
	if out.RecentDailyBurn > 0 {
		out.RunwayDays = out.RemainingBudget / out.RecentDailyBurn
	} else {
		out.RunwayDays = math.Inf(1)
	}

	if out.TimeConsumed > 0.05 {
		out.BurnEfficiency = out.RawBurnRate / out.TimeConsumed
	} else {
		out.BurnEfficiency = 1
	}

	if m.DelayPenaltyPerDay > 0 {
		out.CoDRaw = m.DelayPenaltyPerDay
	} else {
		out.CoDRaw = m.PlannedBudget / float64(max(out.DaysRemaining, 1))
	}

	return out
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(hi, math.Max(lo, v))
}
