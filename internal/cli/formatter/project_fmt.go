package formatter

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/epcrisk/internal/domain"
)

// FormatProjectList renders projects inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "DESCRIPTION", "CREATED"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		desc := Dim("--")
		if strings.TrimSpace(p.Description) != "" {
			desc = p.Description
		}
		rows = append(rows, []string{
			ProjectLabel(p),
			Bold(p.Name),
			desc,
			FormatDate(p.CreatedAt),
		})
	}

	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatProjectInspect renders a project with its milestones and totals.
func FormatProjectInspect(p *domain.Project, milestones []*domain.Milestone) string {
	var budget, spent float64
	open := 0
	for _, m := range milestones {
		budget += m.PlannedBudget
		spent += m.CumulativeSpend()
		if m.IsOpen() {
			open++
		}
	}

	var b strings.Builder
	b.WriteString(kv("ID", p.ID) + "\n")
	if p.Description != "" {
		b.WriteString(kv("About", p.Description) + "\n")
	}
	b.WriteString(kv("Open", strconv.Itoa(open)+" of "+strconv.Itoa(len(milestones))+" milestones") + "\n")
	b.WriteString(kv("Budget", Money(budget)) + "\n")
	b.WriteString(kv("Spent", Money(spent)+"  "+RenderBurnBar(burn(spent, budget), 10)) + "\n\n")
	b.WriteString(FormatMilestoneList(milestones))

	return RenderBox(ProjectLabel(p)+" "+p.Name, strings.TrimRight(b.String(), "\n"))
}

func burn(spent, budget float64) float64 {
	if budget <= 0 {
		return 0
	}
	return spent / budget
}
