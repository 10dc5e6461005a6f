package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = ColorOrange
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleOrange = lipgloss.NewStyle().Foreground(ColorOrange)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// RiskColor maps a risk level to its style. CRITICAL is red, HIGH orange,
// MEDIUM yellow and LOW green.
func RiskColor(level domain.RiskLevel) lipgloss.Style {
	switch level {
	case domain.RiskCritical:
		return StyleRed
	case domain.RiskHigh:
		return StyleOrange
	case domain.RiskMedium:
		return StyleYellow
	case domain.RiskLow:
		return StyleGreen
	default:
		return StyleDim
	}
}

// RiskIndicator returns a colored level badge such as "● CRITICAL".
func RiskIndicator(level domain.RiskLevel) string {
	if level.Rank() < 0 {
		return StyleDim.Render("● UNKNOWN")
	}
	return RiskColor(level).Render("● " + string(level))
}

// InvalidIndicator marks a milestone whose score could not be computed. It
// must never look like a LOW badge.
func InvalidIndicator() string {
	return StylePurple.Render("✖ " + InvalidLabel)
}

// SeverityPill renders an alert severity.
func SeverityPill(s domain.Severity) string {
	label := strings.ToUpper(string(s))
	switch s {
	case domain.SeverityCritical:
		return StyleRed.Render("▲ " + label)
	case domain.SeverityHigh:
		return StyleOrange.Render("▲ " + label)
	case domain.SeverityWarning:
		return StyleYellow.Render("● " + label)
	case domain.SeverityInfo:
		return StyleBlue.Render("○ " + label)
	default:
		return StyleDim.Render(label)
	}
}

// Header renders an upper-cased section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
