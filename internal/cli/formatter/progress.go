package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/epcrisk/internal/scoring"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBurnBar renders budget consumption like [████░░░░]  45%. Unlike a
// progress bar, fuller is worse: green below 66%, yellow below 90%, red
// from 90% up. Overspend above 100% fills the bar and prints the real
// percentage.
func RenderBurnBar(frac float64, width int) string {
	if width < 2 {
		width = 2
	}
	shown := frac
	if shown < 0 {
		shown = 0
	}
	if shown > 1 {
		shown = 1
	}

	filled := min(int(shown*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case frac >= 0.9:
		style = StyleRed
	case frac >= 0.66:
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %4.0f%%", style.Render(bar), frac*100)
}

// RenderScoreBar renders a 0-100 score as a compact bar colored by its level.
func RenderScoreBar(score float64, width int) string {
	if width < 2 {
		width = 2
	}
	frac := score / 100
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := min(int(frac*float64(width)), width)
	return RiskColor(scoring.Classify(score)).Render(strings.Repeat(filledBlock, filled)) + StyleDim.Render(strings.Repeat(emptyBlock, width-filled))
}
