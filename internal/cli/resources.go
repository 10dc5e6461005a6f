package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/epcrisk/internal/domain"
)

// Resource flags use colon-separated fields:
//
//	--labour   ROLE:COUNT:DAILY_RATE:DAYS
//	--material NAME:QUANTITY:UNIT_COST
//	--machine  NAME:COUNT:DAILY_RATE:DAYS
type resourceFlags struct {
	labour   []string
	material []string
	machine  []string
}

func (r resourceFlags) empty() bool {
	return len(r.labour) == 0 && len(r.material) == 0 && len(r.machine) == 0
}

func (r resourceFlags) plan() (domain.ResourcePlan, error) {
	var plan domain.ResourcePlan
	for _, s := range r.labour {
		name, count, rate, days, err := parseCrewLine("labour", s)
		if err != nil {
			return plan, err
		}
		plan.Labourers = append(plan.Labourers, domain.LabourLine{Role: name, Count: count, DailyRate: rate, Days: days})
	}
	for _, s := range r.material {
		line, err := parseMaterialLine(s)
		if err != nil {
			return plan, err
		}
		plan.Materials = append(plan.Materials, line)
	}
	for _, s := range r.machine {
		name, count, rate, days, err := parseCrewLine("machine", s)
		if err != nil {
			return plan, err
		}
		plan.Machines = append(plan.Machines, domain.MachineLine{Name: name, Count: count, DailyRate: rate, Days: days})
	}
	return plan, nil
}

func parseCrewLine(kind, s string) (name string, count int, rate float64, days int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 || strings.TrimSpace(parts[0]) == "" {
		return "", 0, 0, 0, fmt.Errorf("invalid --%s %q, expected NAME:COUNT:DAILY_RATE:DAYS", kind, s)
	}
	name = strings.TrimSpace(parts[0])
	if count, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil || count < 0 {
		return "", 0, 0, 0, fmt.Errorf("invalid --%s %q: count must be a non-negative integer", kind, s)
	}
	if rate, err = strconv.ParseFloat(strings.TrimSpace(parts[2]), 64); err != nil || rate < 0 {
		return "", 0, 0, 0, fmt.Errorf("invalid --%s %q: daily rate must be a non-negative number", kind, s)
	}
	if days, err = strconv.Atoi(strings.TrimSpace(parts[3])); err != nil || days < 0 {
		return "", 0, 0, 0, fmt.Errorf("invalid --%s %q: days must be a non-negative integer", kind, s)
	}
	return name, count, rate, days, nil
}

func parseMaterialLine(s string) (domain.MaterialLine, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 || strings.TrimSpace(parts[0]) == "" {
		return domain.MaterialLine{}, fmt.Errorf("invalid --material %q, expected NAME:QUANTITY:UNIT_COST", s)
	}
	qty, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || qty < 0 {
		return domain.MaterialLine{}, fmt.Errorf("invalid --material %q: quantity must be a non-negative number", s)
	}
	cost, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil || cost < 0 {
		return domain.MaterialLine{}, fmt.Errorf("invalid --material %q: unit cost must be a non-negative number", s)
	}
	return domain.MaterialLine{Name: strings.TrimSpace(parts[0]), Quantity: qty, UnitCost: cost}, nil
}
