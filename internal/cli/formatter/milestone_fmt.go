package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/alexanderramin/epcrisk/internal/scoring"
	"github.com/charmbracelet/lipgloss"
)

// FormatMilestoneList renders a project's milestones in sequence order.
func FormatMilestoneList(milestones []*domain.Milestone) string {
	if len(milestones) == 0 {
		return Dim("No milestones yet. Add one with: epcrisk milestone add") + "\n"
	}

	headers := []string{"ID", "NAME", "BUDGET", "SPENT", "START", "DUE", "TRIGGER", "STATUS"}
	rows := make([][]string, 0, len(milestones))
	for _, m := range milestones {
		rows = append(rows, []string{
			m.DisplayID(),
			Bold(m.Name),
			Money(m.PlannedBudget),
			Money(m.CumulativeSpend()),
			FormatDate(m.StartDate),
			FormatDate(m.DueDate),
			FormatDate(m.PaymentTriggerDate),
			StatusPill(m.Status),
		})
	}
	return RenderTable(headers, rows, 2, 3)
}

// FormatMilestoneInspect renders a milestone card: schedule and budget on
// the left, the risk breakdown on the right, the resource plan below. A nil
// result omits the risk panel.
func FormatMilestoneInspect(m *domain.Milestone, r *scoring.MilestoneResult) string {
	left := milestoneMetaPanel(m)
	body := left
	if r != nil {
		right := riskPanel(*r)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
	}

	var b strings.Builder
	b.WriteString(body)
	if !m.Resources.IsEmpty() {
		b.WriteString("\n\n")
		b.WriteString(FormatResourcePlan(m.Resources))
	}

	return RenderBox(fmt.Sprintf("%s %s", m.DisplayID(), m.Name), b.String())
}

func milestoneMetaPanel(m *domain.Milestone) string {
	lines := []string{
		kv("Status", StatusPill(m.Status)),
		kv("Budget", Money(m.PlannedBudget)),
		kv("Spent", Money(m.CumulativeSpend())),
		kv("Start", FormatDate(m.StartDate)),
		kv("Due", FormatDate(m.DueDate)),
		kv("Trigger", FormatDate(m.PaymentTriggerDate)),
		kv("Phases", strconv.Itoa(m.Phases)),
		kv("Logs", strconv.Itoa(len(m.Logs))),
	}
	if m.DelayPenaltyPerDay > 0 {
		lines = append(lines, kv("Penalty", Money(m.DelayPenaltyPerDay)+"/day"))
	}
	return strings.Join(lines, "\n")
}

func riskPanel(r scoring.MilestoneResult) string {
	if !r.Valid() {
		lines := []string{Bold("Risk"), InvalidIndicator()}
		for _, reason := range InvalidReasons(r.Err) {
			lines = append(lines, Dim("• "+reason))
		}
		return strings.Join(lines, "\n")
	}

	s, mt := r.Score, r.Metrics
	runway := "unlimited"
	if mt.HasRunwayLimit() {
		runway = fmt.Sprintf("%.0f days", mt.RunwayDays)
	}
	lines := []string{
		Bold("Risk") + "  " + Dim("as of "+FormatDate(mt.AsOf)),
		kv("Level", RiskIndicator(s.Level)),
		kv("Score", RenderScoreBar(s.Composite, 12)+" "+Score(s.Composite)),
		kv("PoD", Score(s.PoD)),
		kv("CoD", Score(s.CoDNorm)+Dim(" ("+Money(s.CoDRaw)+"/day)")),
		kv("CFTS", Score(s.CFTS)),
		kv("Burn", RenderBurnBar(mt.RawBurnRate, 10)),
		kv("Time", Percent(mt.TimeConsumed)+" of "+strconv.Itoa(mt.ScheduleDays)+" days"),
		kv("Due", DaysLabelStyled(mt.DaysRemaining)),
		kv("Runway", runway),
	}
	return strings.Join(lines, "\n")
}

// FormatResourcePlan renders the planned labour, material and machine lines.
func FormatResourcePlan(plan domain.ResourcePlan) string {
	headers := []string{"KIND", "ITEM", "QTY", "RATE", "DAYS", "COST"}
	var rows [][]string
	for _, l := range plan.Labourers {
		rows = append(rows, []string{"labour", l.Role, strconv.Itoa(l.Count), Money(l.DailyRate), strconv.Itoa(l.Days), Money(l.Cost())})
	}
	for _, mat := range plan.Materials {
		rows = append(rows, []string{"material", mat.Name, strconv.FormatFloat(mat.Quantity, 'f', -1, 64), Money(mat.UnitCost), "", Money(mat.Cost())})
	}
	for _, mc := range plan.Machines {
		rows = append(rows, []string{"machine", mc.Name, strconv.Itoa(mc.Count), Money(mc.DailyRate), strconv.Itoa(mc.Days), Money(mc.Cost())})
	}
	rows = append(rows, []string{"", Bold("Planned total"), "", "", "", Bold(Money(plan.PlannedTotal()))})
	return RenderTable(headers, rows, 2, 3, 4, 5)
}

func kv(label, value string) string {
	return Dim(fmt.Sprintf("%-8s", label)) + " " + value
}
