package scoring

import (
	"sort"

	"github.com/alexanderramin/epcrisk/internal/domain"
)

// KindPriority returns a sort priority (lower = shown first) for a kind.
func KindPriority(k domain.AlertKind) int {
	for i, kind := range domain.AlertKinds {
		if kind == k {
			return i
		}
	}
	return len(domain.AlertKinds)
}

// SortAlerts sorts alerts by the canonical rules:
// 1. Severity: critical > high > warning > info
// 2. Milestone composite score: higher first
// 3. Milestone ID: lexical ascending
// 4. Kind priority
func SortAlerts(alerts []Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		a, b := alerts[i], alerts[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.MilestoneID != b.MilestoneID {
			return a.MilestoneID < b.MilestoneID
		}
		return KindPriority(a.Kind) < KindPriority(b.Kind)
	})
}

// SortResults orders results by composite score descending, invalid
// milestones last, ties broken by milestone sequence.
func SortResults(results []MilestoneResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Valid() != b.Valid() {
			return a.Valid()
		}
		if a.Valid() && a.Score.Composite != b.Score.Composite {
			return a.Score.Composite > b.Score.Composite
		}
		return a.Milestone.Seq < b.Milestone.Seq
	})
}
