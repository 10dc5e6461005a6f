package scoring

import (
	"time"

	"github.com/alexanderramin/epcrisk/internal/domain"
)

// RiskScore is the derived, never-persisted risk view of one milestone.
type RiskScore struct {
	PoD       float64
	CoDRaw    float64
	CoDNorm   float64
	CFTS      float64
	Composite float64
	Level     domain.RiskLevel
}

// MilestoneResult carries either a Score or an Err for one milestone.
// Metrics are only populated when Err is nil.
type MilestoneResult struct {
	Milestone *domain.Milestone
	Metrics   Metrics
	Score     *RiskScore
	Err       error
}

func (r MilestoneResult) Valid() bool {
	return r.Err == nil && r.Score != nil
}

// Urgency is the nonlinear deadline boost g(t) = t². Its slope 2t is
// steepest as the deadline approaches; g is bounded in [0, 1].
func Urgency(timeConsumed float64) float64 {
	t := clamp01(timeConsumed)
	return t * t
}

// ProbabilityOfDelay combines burn rate and urgency as 100·(1-(1-b)(1-g(t))).
// It is non-decreasing in both inputs, 0 when both are 0, and 100 when
// either reaches 1.
func ProbabilityOfDelay(burnRate, timeConsumed float64) float64 {
	b := clamp01(burnRate)
	g := Urgency(timeConsumed)
	return clamp(100*(1-(1-b)*(1-g)), 0, 100)
}

// CashFlowTimingSensitivity is 100·H/(H+d) for a trigger d days out. An open
// milestone whose trigger has passed is at 100; a closed milestone has met
// its payment event and scores 0.
func CashFlowTimingSensitivity(daysToTrigger int, open bool, halfLifeDays float64) float64 {
	if !open {
		return 0
	}
	if daysToTrigger < 0 {
		return 100
	}
	if halfLifeDays <= 0 {
		halfLifeDays = DefaultThresholds().CFTSHalfLifeDays
	}
	return clamp(100*halfLifeDays/(halfLifeDays+float64(daysToTrigger)), 0, 100)
}

// Composite blends the three sub-scores with the fixed weights.
func Composite(pod, codNorm, cfts float64) float64 {
	return clamp(pod*WeightPoD+codNorm*WeightCoDNorm+cfts*WeightCFTS, 0, 100)
}

// ScoreMilestone scores a milestone on its own, so CoD_norm is 100.
func ScoreMilestone(m *domain.Milestone, asOf time.Time, th Thresholds) (RiskScore, Metrics, error) {
	if err := m.Validate(); err != nil {
		return RiskScore{}, Metrics{}, err
	}
	metrics := ComputeMetrics(m, asOf, th)
	return scoreFromMetrics(m, metrics, metrics.CoDRaw, th), metrics, nil
}

// ScorePortfolio scores every milestone of a project as of the given date.
// Results keep input order. CoD is normalised against the largest CoD among
// the valid milestones; invalid milestones carry an Err and do not affect
// the others.
func ScorePortfolio(milestones []*domain.Milestone, asOf time.Time, th Thresholds) []MilestoneResult {
	results := make([]MilestoneResult, len(milestones))
	var maxCoD float64
	for i, m := range milestones {
		results[i].Milestone = m
		if err := m.Validate(); err != nil {
			results[i].Err = err
			continue
		}
		results[i].Metrics = ComputeMetrics(m, asOf, th)
		if results[i].Metrics.CoDRaw > maxCoD {
			maxCoD = results[i].Metrics.CoDRaw
		}
	}

	for i := range results {
		if results[i].Err != nil {
			continue
		}
		score := scoreFromMetrics(results[i].Milestone, results[i].Metrics, maxCoD, th)
		results[i].Score = &score
	}
	return results
}

func scoreFromMetrics(m *domain.Milestone, metrics Metrics, maxCoD float64, th Thresholds) RiskScore {
	s := RiskScore{
		PoD:    ProbabilityOfDelay(metrics.BurnRate, metrics.TimeConsumed),
		CoDRaw: metrics.CoDRaw,
		CFTS:   CashFlowTimingSensitivity(metrics.DaysToTrigger, m.IsOpen(), th.CFTSHalfLifeDays),
	}
	if maxCoD < metrics.CoDRaw {
		maxCoD = metrics.CoDRaw
	}
	if maxCoD > 0 {
		s.CoDNorm = clamp(100*metrics.CoDRaw/maxCoD, 0, 100)
	}
	s.Composite = Composite(s.PoD, s.CoDNorm, s.CFTS)
	s.Level = Classify(s.Composite)
	return s
}
