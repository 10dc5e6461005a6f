package app

import (
	"time"

	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/alexanderramin/epcrisk/internal/scoring"
)

// RiskRequest asks for a fresh assessment of one project. AsOf is always
// explicit so results are reproducible; a zero AsOf means today (UTC).
type RiskRequest struct {
	ProjectID  string
	AsOf       time.Time
	Thresholds *scoring.Thresholds
}

func NewRiskRequest(projectID string, asOf time.Time) RiskRequest {
	return RiskRequest{ProjectID: projectID, AsOf: asOf}
}

type RiskSummary struct {
	Milestones      int
	Valid           int
	Invalid         int
	ByLevel         map[domain.RiskLevel]int
	PlannedBudget   float64
	CumulativeSpend float64
	// Highest is the valid milestone with the largest composite score.
	Highest       *scoring.MilestoneResult
	AlertCount    int
	CriticalCount int
}

type RiskResponse struct {
	Project *domain.Project
	AsOf    time.Time
	// Results are in dashboard order: valid milestones by composite score
	// descending, then invalid ones.
	Results []scoring.MilestoneResult
	Alerts  []scoring.Alert
	Summary RiskSummary
}

// Summarize folds scored results and alerts into the dashboard footer.
func Summarize(results []scoring.MilestoneResult, alerts []scoring.Alert) RiskSummary {
	s := RiskSummary{ByLevel: make(map[domain.RiskLevel]int, len(domain.RiskLevels))}
	for i := range results {
		r := &results[i]
		s.Milestones++
		s.PlannedBudget += r.Milestone.PlannedBudget
		if !r.Valid() {
			s.Invalid++
			continue
		}
		s.Valid++
		s.CumulativeSpend += r.Metrics.CumulativeSpend
		s.ByLevel[r.Score.Level]++
		if s.Highest == nil || r.Score.Composite > s.Highest.Score.Composite {
			top := *r
			s.Highest = &top
		}
	}
	s.AlertCount = len(alerts)
	for _, a := range alerts {
		if a.Severity == domain.SeverityCritical {
			s.CriticalCount++
		}
	}
	return s
}
