package scoring

import (
	"fmt"
	"math"
)

// Composite weights. These are fixed by the scoring model and are not configurable.
const (
	WeightPoD     = 0.40
	WeightCoDNorm = 0.35
	WeightCFTS    = 0.25
)

// Classifier boundaries, inclusive on the low side.
const (
	CriticalFloor = 70.0
	HighFloor     = 45.0
	MediumFloor   = 25.0
)

// Thresholds parameterise the engine and the advisor rules.
type Thresholds struct {
	// EarlyWarningFraction of budget spent (while time remains) raises an overspend warning.
	EarlyWarningFraction float64
	// OverspendCriticalExcess is the excess over budget (0.10 = 10%) at which overspend turns critical.
	OverspendCriticalExcess float64
	// PoDHighThreshold is the PoD above which an open milestone gets a deadline alert.
	PoDHighThreshold float64
	// CashRunwayMarginDays is added to the days-to-trigger before comparing with the runway.
	CashRunwayMarginDays float64
	// RecentBurnWindow is how many of the most recent log entries feed the recent burn rate.
	RecentBurnWindow int
	// CFTSHalfLifeDays is the trigger gap at which CFTS falls to 50.
	CFTSHalfLifeDays float64

	// ProjectedOverrunFraction is how far the projected total may exceed budget before a budget overrun alert.
	ProjectedOverrunFraction float64
	// SlowBurnEfficiency is the burn efficiency below which an open milestone is burning slowly.
	SlowBurnEfficiency float64
	// SlowBurnMinTime is the time consumed after which slow burn is reported.
	SlowBurnMinTime float64
	// LabourShareFraction of budget taken by planned labour raises a labour share alert.
	LabourShareFraction float64
	// MaterialShareFraction of budget spent on materials raises a material share alert.
	MaterialShareFraction float64
	// PaceRiskEfficiency is the burn efficiency above which spend is outpacing the schedule.
	PaceRiskEfficiency float64
	// MachineryEfficiency is the burn efficiency above which planned machines get a savings alert.
	MachineryEfficiency float64
}

// DefaultThresholds returns the calibrated defaults used when no config overrides them.
func DefaultThresholds() Thresholds {
	return Thresholds{
		EarlyWarningFraction:     0.90,
		OverspendCriticalExcess:  0.10,
		PoDHighThreshold:         70,
		CashRunwayMarginDays:     0,
		RecentBurnWindow:         7,
		CFTSHalfLifeDays:         14,
		ProjectedOverrunFraction: 0.10,
		SlowBurnEfficiency:       0.55,
		SlowBurnMinTime:          0.25,
		LabourShareFraction:      0.60,
		MaterialShareFraction:    0.40,
		PaceRiskEfficiency:       1.20,
		MachineryEfficiency:      1.05,
	}
}

// Validate rejects thresholds outside their meaningful ranges.
func (t Thresholds) Validate() error {
	checks := []struct {
		name     string
		value    float64
		min, max float64
	}{
		{"early_warning_fraction", t.EarlyWarningFraction, 0.01, 1},
		{"overspend_critical_excess", t.OverspendCriticalExcess, 0, 10},
		{"pod_high_threshold", t.PoDHighThreshold, 0, 100},
		{"cash_runway_margin_days", t.CashRunwayMarginDays, 0, 3650},
		{"cfts_half_life_days", t.CFTSHalfLifeDays, 0.5, 3650},
		{"projected_overrun_fraction", t.ProjectedOverrunFraction, 0, 10},
		{"slow_burn_efficiency", t.SlowBurnEfficiency, 0, 1},
		{"slow_burn_min_time", t.SlowBurnMinTime, 0, 1},
		{"labour_share_fraction", t.LabourShareFraction, 0.01, 1},
		{"material_share_fraction", t.MaterialShareFraction, 0.01, 1},
		{"pace_risk_efficiency", t.PaceRiskEfficiency, 1, 10},
		{"machinery_efficiency", t.MachineryEfficiency, 1, 10},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || c.value < c.min || c.value > c.max {
			return fmt.Errorf("threshold %s = %v out of range [%v, %v]", c.name, c.value, c.min, c.max)
		}
	}
	if t.RecentBurnWindow < 1 {
		return fmt.Errorf("threshold recent_burn_window = %d must be at least 1", t.RecentBurnWindow)
	}
	return nil
}
