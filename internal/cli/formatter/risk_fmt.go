package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/epcrisk/internal/app"
	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/alexanderramin/epcrisk/internal/scoring"
)

// ScoreCell renders the composite score of a result, or InvalidLabel.
func ScoreCell(r scoring.MilestoneResult) string {
	if !r.Valid() {
		return StylePurple.Render(InvalidLabel)
	}
	return RiskColor(r.Score.Level).Render(Score(r.Score.Composite))
}

// LevelCell renders the level badge of a result. Invalid results get a
// distinct marker rather than a level.
func LevelCell(r scoring.MilestoneResult) string {
	if !r.Valid() {
		return InvalidIndicator()
	}
	return RiskIndicator(r.Score.Level)
}

// InvalidReasons extracts the data problems behind an invalid result.
func InvalidReasons(err error) []string {
	var dataErr *domain.MilestoneDataError
	if errors.As(err, &dataErr) {
		return dataErr.Reasons
	}
	if err != nil {
		return []string{err.Error()}
	}
	return nil
}

// FormatRiskDashboard renders the per-milestone score table with a
// portfolio summary underneath.
func FormatRiskDashboard(resp *app.RiskResponse) string {
	var b strings.Builder

	title := fmt.Sprintf("Risk · %s %s", ProjectLabel(resp.Project), resp.Project.Name)
	b.WriteString(Header(title))
	b.WriteString("\n")
	b.WriteString(Dim("as of " + FormatDate(resp.AsOf)))
	b.WriteString("\n\n")

	if len(resp.Results) == 0 {
		b.WriteString(Dim("No milestones to score."))
		b.WriteString("\n")
		return b.String()
	}

	headers := []string{"ID", "MILESTONE", "POD", "COD", "CFTS", "SCORE", "LEVEL", "BURN", "TRIGGER"}
	rows := make([][]string, 0, len(resp.Results))
	var invalid []scoring.MilestoneResult

	for _, r := range resp.Results {
		m := r.Milestone
		if !r.Valid() {
			invalid = append(invalid, r)
			rows = append(rows, []string{
				m.DisplayID(),
				m.Name,
				Dim("--"), Dim("--"), Dim("--"),
				ScoreCell(r),
				LevelCell(r),
				Dim("--"),
				Dim(FormatDate(m.PaymentTriggerDate)),
			})
			continue
		}

		trigger := DaysLabelStyled(r.Metrics.DaysToTrigger)
		if !m.IsOpen() {
			trigger = Dim("paid")
		}
		rows = append(rows, []string{
			m.DisplayID(),
			Bold(m.Name),
			Score(r.Score.PoD),
			Score(r.Score.CoDNorm),
			Score(r.Score.CFTS),
			ScoreCell(r),
			LevelCell(r),
			RenderBurnBar(r.Metrics.RawBurnRate, 10),
			trigger,
		})
	}
	b.WriteString(RenderTable(headers, rows, 2, 3, 4, 5))

	if len(invalid) > 0 {
		b.WriteString("\n")
		for _, r := range invalid {
			b.WriteString(fmt.Sprintf("%s %s: %s\n",
				StylePurple.Render("✖"),
				r.Milestone.DisplayID(),
				strings.Join(InvalidReasons(r.Err), "; ")))
		}
	}

	b.WriteString("\n")
	b.WriteString(FormatRiskSummary(resp.Summary))
	return b.String()
}

// FormatRiskSummary renders the dashboard footer.
func FormatRiskSummary(s app.RiskSummary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Milestones  %d scored", s.Valid))
	if s.Invalid > 0 {
		b.WriteString(StylePurple.Render(fmt.Sprintf(", %d with invalid data", s.Invalid)))
	}
	b.WriteString("\n")

	levels := make([]string, 0, len(domain.RiskLevels))
	for i := len(domain.RiskLevels) - 1; i >= 0; i-- {
		lvl := domain.RiskLevels[i]
		levels = append(levels, RiskColor(lvl).Render(fmt.Sprintf("%s %d", lvl, s.ByLevel[lvl])))
	}
	b.WriteString("Levels      " + strings.Join(levels, "  ") + "\n")

	b.WriteString(fmt.Sprintf("Budget      %s planned, %s spent\n", Money(s.PlannedBudget), Money(s.CumulativeSpend)))

	if s.Highest != nil {
		h := s.Highest
		b.WriteString(fmt.Sprintf("Highest     %s %s at %s\n",
			h.Milestone.DisplayID(), h.Milestone.Name, RiskColor(h.Score.Level).Render(Score(h.Score.Composite))))
	}

	switch {
	case s.AlertCount == 0:
		b.WriteString("Alerts      " + StyleGreen.Render("none") + "\n")
	case s.CriticalCount > 0:
		b.WriteString(fmt.Sprintf("Alerts      %d (%s)\n", s.AlertCount, StyleRed.Render(fmt.Sprintf("%d critical", s.CriticalCount))))
	default:
		b.WriteString(fmt.Sprintf("Alerts      %d\n", s.AlertCount))
	}

	return b.String()
}
