package importer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/epcrisk/internal/domain"
)

// Options controls the project the legacy milestones are imported into.
type Options struct {
	ProjectName string
	ShortID     string
}

// Converted is a legacy store mapped onto domain objects. Each milestone
// carries its logs.
type Converted struct {
	Project    *domain.Project
	Milestones []*domain.Milestone
	// Merged counts legacy logs folded into another entry for the same day.
	Merged  int
	Skipped []string
}

// Convert maps a validated store. The legacy format only knew a deadline
// relative to creation, so due = created_at + deadline_days and the payment
// trigger falls on the due date. Multiple logs for one milestone and day are
// summed, since the store allows at most one entry per day.
func Convert(store *LegacyStore, opts Options, now time.Time) (*Converted, error) {
	now = now.UTC()
	name := strings.TrimSpace(opts.ProjectName)
	if name == "" {
		name = "Imported project"
	}
	shortID := strings.ToUpper(strings.TrimSpace(opts.ShortID))
	if shortID == "" {
		shortID = DeriveShortID(name)
	}
	project := &domain.Project{
		ID:          uuid.New().String(),
		ShortID:     shortID,
		Name:        name,
		Description: "Imported from legacy store",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := project.ValidateShortID(); err != nil {
		return nil, err
	}

	out := &Converted{Project: project}

	byLegacyID := make(map[string]*domain.Milestone, len(store.Milestones))
	for i, lm := range store.Milestones {
		created, err := parseLegacyDate(lm.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("milestone %s: %w", lm.ID, err)
		}
		phases := lm.Phases
		if phases == 0 {
			phases = 1
		}
		due := created.AddDate(0, 0, lm.DeadlineDays)
		m := &domain.Milestone{
			ID:                 uuid.New().String(),
			ProjectID:          out.Project.ID,
			Seq:                i + 1,
			Name:               lm.Title,
			PlannedBudget:      lm.TotalCost,
			StartDate:          created,
			DueDate:            due,
			PaymentTriggerDate: due,
			Status:             domain.MilestoneOpen,
			Phases:             phases,
			Resources:          convertResources(lm),
			CreatedAt:          created,
			UpdatedAt:          now,
		}
		out.Milestones = append(out.Milestones, m)
		byLegacyID[lm.ID] = m
	}

	type dayKey struct {
		milestone *domain.Milestone
		day       string
	}
	index := make(map[dayKey]int)
	for _, ll := range store.DailyLogs {
		m, ok := byLegacyID[ll.MilestoneID]
		if !ok {
			out.Skipped = append(out.Skipped, fmt.Sprintf("log %s: unknown milestone %q", ll.ID, ll.MilestoneID))
			continue
		}
		date, err := parseLegacyDate(ll.Date)
		if err != nil {
			return nil, fmt.Errorf("log %s: %w", ll.ID, err)
		}

		key := dayKey{milestone: m, day: date.Format("2006-01-02")}
		if pos, seen := index[key]; seen {
			existing := &m.Logs[pos]
			existing.Wages += ll.Wages
			existing.Materials += ll.Materials
			existing.Machinery += ll.Machinery
			existing.Notes = joinNotes(existing.Notes, ll.Notes)
			out.Merged++
			continue
		}
		index[key] = len(m.Logs)
		m.Logs = append(m.Logs, domain.DailySpendLog{
			ID:          uuid.New().String(),
			MilestoneID: m.ID,
			Date:        date,
			Wages:       ll.Wages,
			Materials:   ll.Materials,
			Machinery:   ll.Machinery,
			Notes:       strings.TrimSpace(ll.Notes),
			CreatedAt:   now,
		})
	}

	for _, m := range out.Milestones {
		sort.SliceStable(m.Logs, func(i, j int) bool { return m.Logs[i].Date.Before(m.Logs[j].Date) })
	}
	return out, nil
}

func convertResources(lm LegacyMilestone) domain.ResourcePlan {
	var plan domain.ResourcePlan
	for _, l := range lm.Labourers {
		plan.Labourers = append(plan.Labourers, domain.LabourLine{
			Role: l.Name, Count: l.Count, DailyRate: l.DailyRate, Days: l.Days,
		})
	}
	for _, m := range lm.Materials {
		plan.Materials = append(plan.Materials, domain.MaterialLine{
			Name: m.Name, Quantity: m.Quantity, UnitCost: m.UnitCost,
		})
	}
	for _, m := range lm.Machines {
		plan.Machines = append(plan.Machines, domain.MachineLine{
			Name: m.Name, Count: m.Count, DailyRate: m.DailyRate, Days: m.Days,
		})
	}
	return plan
}

func joinNotes(a, b string) string {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "; " + b
	}
}

// DeriveShortID builds a short ID from the first letters of name, e.g.
// "Harbour Road" becomes "HAR01".
func DeriveShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	return string(letters) + "01"
}
