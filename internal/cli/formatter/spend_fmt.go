package formatter

import (
	"github.com/alexanderramin/epcrisk/internal/domain"
)

// FormatSpendLogs renders daily spend entries with a totals row.
func FormatSpendLogs(logs []domain.DailySpendLog) string {
	if len(logs) == 0 {
		return Dim("No spend logged.") + "\n"
	}

	headers := []string{"DATE", "WAGES", "MATERIALS", "MACHINERY", "TOTAL", "NOTES", "ID"}
	rows := make([][]string, 0, len(logs)+1)
	var sum domain.SpendBreakdown
	for _, l := range logs {
		sum.Wages += l.Wages
		sum.Materials += l.Materials
		sum.Machinery += l.Machinery
		rows = append(rows, []string{
			FormatDate(l.Date),
			Money(l.Wages),
			Money(l.Materials),
			Money(l.Machinery),
			Bold(Money(l.Total())),
			l.Notes,
			TruncID(l.ID),
		})
	}
	rows = append(rows, []string{
		Bold("Total"),
		Money(sum.Wages),
		Money(sum.Materials),
		Money(sum.Machinery),
		Bold(Money(sum.Total())),
		"",
		"",
	})
	return RenderTable(headers, rows, 1, 2, 3, 4)
}
