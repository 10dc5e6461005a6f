package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// InvalidLabel replaces the score of a milestone with invalid data.
const InvalidLabel = "n/a (invalid data)"

const dateLayout = "2006-01-02"

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title == "" {
		return box.Render(content)
	}
	return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// Money formats an amount with two decimals and thousands separators.
func Money(v float64) string {
	neg := v < 0
	s := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// Score formats a 0-100 score with one decimal.
func Score(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// Percent formats a fraction (0.42) as "42%".
func Percent(frac float64) string {
	return fmt.Sprintf("%.0f%%", frac*100)
}

// FormatDate renders a calendar date, or "--" for the zero date.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.UTC().Format(dateLayout)
}

// DaysLabel describes a signed day gap relative to the as-of date.
func DaysLabel(days int) string {
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "in 1d"
	case days > 1:
		return fmt.Sprintf("in %dd", days)
	case days == -1:
		return "1d overdue"
	default:
		return fmt.Sprintf("%dd overdue", -days)
	}
}

// DaysLabelStyled colors DaysLabel by urgency: red when past or within two
// days, yellow within a week.
func DaysLabelStyled(days int) string {
	text := DaysLabel(days)
	switch {
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// StatusPill renders a milestone status.
func StatusPill(status domain.MilestoneStatus) string {
	switch status {
	case domain.MilestoneOpen:
		return StyleGreen.Render("● Open")
	case domain.MilestoneClosed:
		return StyleDim.Render("✔ Closed")
	default:
		return StyleDim.Render(string(status))
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// ProjectLabel prefers the short ID and falls back to a dimmed UUID prefix.
func ProjectLabel(p *domain.Project) string {
	if strings.TrimSpace(p.ShortID) != "" {
		return p.ShortID
	}
	if p.ID == "" {
		return "--"
	}
	return TruncID(p.ID)
}
