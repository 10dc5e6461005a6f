package formatter

import (
	"strings"

	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/alexanderramin/epcrisk/internal/scoring"
)

// NoAlertsMessage is shown when the advisor raised nothing.
const NoAlertsMessage = "No alerts. Every indicator is within its normal range."

// KindLabel turns an alert kind into a title such as "Cash runway".
func KindLabel(k domain.AlertKind) string {
	s := strings.ReplaceAll(string(k), "_", " ")
	if s == "" {
		return "--"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FormatAlerts renders alerts in the order given, which is expected to be
// the advisor's canonical order.
func FormatAlerts(alerts []scoring.Alert) string {
	if len(alerts) == 0 {
		return StyleGreen.Render(NoAlertsMessage) + "\n"
	}

	headers := []string{"SEVERITY", "KIND", "MILESTONE", "SCORE", "MESSAGE"}
	rows := make([][]string, 0, len(alerts))
	for _, a := range alerts {
		rows = append(rows, []string{
			SeverityPill(a.Severity),
			KindLabel(a.Kind),
			a.MilestoneName,
			RiskColor(scoring.Classify(a.Score)).Render(Score(a.Score)),
			a.Message,
		})
	}
	return RenderTable(headers, rows, 3)
}
