package domain

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Milestone is a payable unit of an EPC project. It owns its resource plan
// and its daily spend logs.
type Milestone struct {
	ID                 string
	ProjectID          string
	Seq                int // project-scoped sequential number, in creation order
	Name               string
	PlannedBudget      float64
	StartDate          time.Time
	DueDate            time.Time
	PaymentTriggerDate time.Time
	Status             MilestoneStatus
	Phases             int
	// DelayPenaltyPerDay overrides the derived cost of delay when > 0.
	DelayPenaltyPerDay float64
	Resources          ResourcePlan
	Logs               []DailySpendLog
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DisplayID returns "#<seq>" when a sequence is assigned, otherwise a short ID prefix.
func (m *Milestone) DisplayID() string {
	if m.Seq > 0 {
		return fmt.Sprintf("#%d", m.Seq)
	}
	if len(m.ID) >= 8 {
		return m.ID[:8]
	}
	return m.ID
}

func (m *Milestone) IsOpen() bool {
	return m.Status != MilestoneClosed
}

// Close marks the milestone's payment event as met.
func (m *Milestone) Close(now time.Time) error {
	if m.Status == MilestoneClosed {
		return fmt.Errorf("milestone %s is already closed", m.DisplayID())
	}
	m.Status = MilestoneClosed
	m.UpdatedAt = now
	return nil
}

func (m *Milestone) Reopen(now time.Time) error {
	if m.Status != MilestoneClosed {
		return fmt.Errorf("milestone %s is not closed", m.DisplayID())
	}
	m.Status = MilestoneOpen
	m.UpdatedAt = now
	return nil
}

// CumulativeSpend sums every logged cost to date.
func (m *Milestone) CumulativeSpend() float64 {
	return m.SpendBreakdown().Total()
}

func (m *Milestone) SpendBreakdown() SpendBreakdown {
	var b SpendBreakdown
	for _, l := range m.Logs {
		b.Wages += l.Wages
		b.Materials += l.Materials
		b.Machinery += l.Machinery
	}
	return b
}

// SortedLogs returns a copy of the logs ordered by date ascending.
func (m *Milestone) SortedLogs() []DailySpendLog {
	logs := make([]DailySpendLog, len(m.Logs))
	copy(logs, m.Logs)
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date.Before(logs[j].Date)
	})
	return logs
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate checks the inputs the scoring engine depends on. All problems are
// collected into a single *MilestoneDataError.
func (m *Milestone) Validate() error {
	var reasons []string

	if !IsFinite(m.PlannedBudget) {
		reasons = append(reasons, fmt.Sprintf("planned budget must be a finite number (got %v)", m.PlannedBudget))
	} else if m.PlannedBudget <= 0 {
		reasons = append(reasons, fmt.Sprintf("planned budget must be positive (got %.2f)", m.PlannedBudget))
	}
	if m.StartDate.IsZero() {
		reasons = append(reasons, "start date is missing")
	}
	if m.DueDate.IsZero() {
		reasons = append(reasons, "due date is missing")
	}
	if m.PaymentTriggerDate.IsZero() {
		reasons = append(reasons, "payment trigger date is missing")
	}
	if !m.StartDate.IsZero() && !m.DueDate.IsZero() && DateOnly(m.DueDate).Before(DateOnly(m.StartDate)) {
		reasons = append(reasons, fmt.Sprintf("due date %s is before start date %s",
			m.DueDate.Format("2006-01-02"), m.StartDate.Format("2006-01-02")))
	}
	if !IsFinite(m.DelayPenaltyPerDay) {
		reasons = append(reasons, fmt.Sprintf("delay penalty per day must be a finite number (got %v)", m.DelayPenaltyPerDay))
	} else if m.DelayPenaltyPerDay < 0 {
		reasons = append(reasons, "delay penalty per day must not be negative")
	}

	if !IsFinite(m.Resources.PlannedTotal()) {
		reasons = append(reasons, "resource plan has a non-finite rate or quantity")
	}

	seen := make(map[string]bool, len(m.Logs))
	for _, l := range m.Logs {
		day := l.Date.Format("2006-01-02")
		if l.Date.IsZero() {
			reasons = append(reasons, "spend log has no date")
			continue
		}
		if !IsFinite(l.Wages) || !IsFinite(l.Materials) || !IsFinite(l.Machinery) {
			reasons = append(reasons, fmt.Sprintf("spend log %s has a non-finite cost", day))
		} else if l.Wages < 0 || l.Materials < 0 || l.Machinery < 0 {
			reasons = append(reasons, fmt.Sprintf("spend log %s has a negative cost", day))
		}
		if seen[day] {
			reasons = append(reasons, fmt.Sprintf("duplicate spend log for %s", day))
		}
		seen[day] = true
	}

	if len(reasons) > 0 {
		return &MilestoneDataError{MilestoneID: m.ID, Reasons: reasons}
	}
	return nil
}
