package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/alexanderramin/epcrisk/internal/scoring"
)

// InvalidLevel is written in the risk_level column for milestones whose
// data failed validation. Their score columns are left empty.
const InvalidLevel = "INVALID"

var (
	MilestoneHeader = []string{
		"milestone_id", "name", "pod", "cod_norm", "cfts",
		"composite_score", "risk_level", "cumulative_spend", "planned_budget",
	}
	SpendHeader = []string{
		"milestone_id", "date", "wage_cost", "material_cost", "machinery_cost",
	}
)

// WriteMilestones writes one row per result in the given order.
func WriteMilestones(w io.Writer, results []scoring.MilestoneResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(MilestoneHeader); err != nil {
		return fmt.Errorf("writing milestone header: %w", err)
	}
	for _, r := range results {
		m := r.Milestone
		row := []string{m.ID, m.Name, "", "", "", "", InvalidLevel, money(m.CumulativeSpend()), money(m.PlannedBudget)}
		if r.Valid() {
			row[2] = score(r.Score.PoD)
			row[3] = score(r.Score.CoDNorm)
			row[4] = score(r.Score.CFTS)
			row[5] = score(r.Score.Composite)
			row[6] = string(r.Score.Level)
			row[7] = money(r.Metrics.CumulativeSpend)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing milestone %s: %w", m.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSpend writes every log of every milestone, milestones in the given
// order and logs by date.
func WriteSpend(w io.Writer, milestones []*domain.Milestone) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SpendHeader); err != nil {
		return fmt.Errorf("writing spend header: %w", err)
	}
	for _, m := range milestones {
		for _, l := range m.SortedLogs() {
			row := []string{
				m.ID,
				l.Date.Format("2006-01-02"),
				money(l.Wages),
				money(l.Materials),
				money(l.Machinery),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing spend log %s: %w", l.ID, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func score(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
