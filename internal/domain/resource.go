package domain

// LabourLine is one labourer category: Count workers at DailyRate for Days.
type LabourLine struct {
	Role      string
	Count     int
	DailyRate float64
	Days      int
}

func (l LabourLine) Cost() float64 {
	return float64(l.Count) * l.DailyRate * float64(l.Days)
}

type MaterialLine struct {
	Name     string
	Quantity float64
	UnitCost float64
}

func (m MaterialLine) Cost() float64 {
	return m.Quantity * m.UnitCost
}

type MachineLine struct {
	Name      string
	Count     int
	DailyRate float64
	Days      int
}

func (m MachineLine) Cost() float64 {
	return float64(m.Count) * m.DailyRate * float64(m.Days)
}

// ResourcePlan is the planning baseline for a milestone. Actual spend from
// daily logs is compared against it.
type ResourcePlan struct {
	Labourers []LabourLine
	Materials []MaterialLine
	Machines  []MachineLine
}

func (r ResourcePlan) PlannedLabour() float64 {
	var total float64
	for _, l := range r.Labourers {
		total += l.Cost()
	}
	return total
}

func (r ResourcePlan) PlannedMaterial() float64 {
	var total float64
	for _, m := range r.Materials {
		total += m.Cost()
	}
	return total
}

func (r ResourcePlan) PlannedMachinery() float64 {
	var total float64
	for _, m := range r.Machines {
		total += m.Cost()
	}
	return total
}

func (r ResourcePlan) PlannedTotal() float64 {
	return r.PlannedLabour() + r.PlannedMaterial() + r.PlannedMachinery()
}

// TotalWorkers sums headcount across labourer categories.
func (r ResourcePlan) TotalWorkers() int {
	var n int
	for _, l := range r.Labourers {
		n += l.Count
	}
	return n
}

func (r ResourcePlan) IsEmpty() bool {
	return len(r.Labourers) == 0 && len(r.Materials) == 0 && len(r.Machines) == 0
}
