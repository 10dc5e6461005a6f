package domain

// RiskLevel is the discrete classification of a composite risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// RiskLevels lists every level from least to most severe.
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskCritical}

// Rank orders levels: LOW=0 .. CRITICAL=3. Unknown levels rank -1.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	default:
		return -1
	}
}

type MilestoneStatus string

const (
	MilestoneOpen   MilestoneStatus = "open"
	MilestoneClosed MilestoneStatus = "closed"
)

// AlertKind identifies which advisory rule raised an alert.
type AlertKind string

const (
	AlertOverspend         AlertKind = "overspend"
	AlertDeadlineRisk      AlertKind = "deadline_risk"
	AlertCashRunway        AlertKind = "cash_runway"
	AlertCompositeCritical AlertKind = "composite_critical"
	AlertBudgetOverrun     AlertKind = "budget_overrun"
	AlertSlowBurn          AlertKind = "slow_burn"
	AlertLabourShare       AlertKind = "labour_share"
	AlertMaterialShare     AlertKind = "material_share"
	AlertPaceRisk          AlertKind = "pace_risk"
	AlertMachinerySavings  AlertKind = "machinery_savings"
)

// AlertKinds is the closed set of alert kinds in display priority order.
var AlertKinds = []AlertKind{
	AlertCompositeCritical,
	AlertOverspend,
	AlertDeadlineRisk,
	AlertCashRunway,
	AlertBudgetOverrun,
	AlertPaceRisk,
	AlertSlowBurn,
	AlertLabourShare,
	AlertMaterialShare,
	AlertMachinerySavings,
}

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank orders severities: info=0 .. critical=3. Unknown severities rank -1.
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 0
	case SeverityWarning:
		return 1
	case SeverityHigh:
		return 2
	case SeverityCritical:
		return 3
	default:
		return -1
	}
}

type ResourceKind string

const (
	ResourceLabour   ResourceKind = "labour"
	ResourceMaterial ResourceKind = "material"
	ResourceMachine  ResourceKind = "machine"
)
