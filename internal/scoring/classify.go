package scoring

import "github.com/alexanderramin/epcrisk/internal/domain"

// Classify maps a composite score to its risk level. Boundaries are
// inclusive on the low side: 70 is CRITICAL, 69.999 is HIGH.
func Classify(score float64) domain.RiskLevel {
	switch {
	case score >= CriticalFloor:
		return domain.RiskCritical
	case score >= HighFloor:
		return domain.RiskHigh
	case score >= MediumFloor:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}
