package importer

import "fmt"

// ValidateLegacyStore reports every structural problem in the store. A
// non-positive budget is not structural: such milestones import and are
// later reported as invalid by the scoring engine.
func ValidateLegacyStore(store *LegacyStore) []error {
	var errs []error

	ids := make(map[string]bool, len(store.Milestones))
	for i, m := range store.Milestones {
		prefix := fmt.Sprintf("milestones[%d]", i)
		if m.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if ids[m.ID] {
			errs = append(errs, fmt.Errorf("%s.id %q is duplicated", prefix, m.ID))
		}
		ids[m.ID] = true

		if m.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if m.DeadlineDays < 0 {
			errs = append(errs, fmt.Errorf("%s.deadline_days must not be negative", prefix))
		}
		if m.Phases < 0 {
			errs = append(errs, fmt.Errorf("%s.phases must not be negative", prefix))
		}
		if m.CreatedAt == "" {
			errs = append(errs, fmt.Errorf("%s.created_at is required", prefix))
		} else if _, err := parseLegacyDate(m.CreatedAt); err != nil {
			errs = append(errs, fmt.Errorf("%s.created_at: %w", prefix, err))
		}

		for j, l := range m.Labourers {
			if l.Count < 0 || l.DailyRate < 0 || l.Days < 0 {
				errs = append(errs, fmt.Errorf("%s.labourers[%d] has a negative value", prefix, j))
			}
		}
		for j, mat := range m.Materials {
			if mat.Quantity < 0 || mat.UnitCost < 0 {
				errs = append(errs, fmt.Errorf("%s.materials[%d] has a negative value", prefix, j))
			}
		}
		for j, mc := range m.Machines {
			if mc.Count < 0 || mc.DailyRate < 0 || mc.Days < 0 {
				errs = append(errs, fmt.Errorf("%s.machines[%d] has a negative value", prefix, j))
			}
		}
	}

	for i, l := range store.DailyLogs {
		prefix := fmt.Sprintf("daily_logs[%d]", i)
		if l.MilestoneID == "" {
			errs = append(errs, fmt.Errorf("%s.milestone_id is required", prefix))
		}
		if _, err := parseLegacyDate(l.Date); err != nil {
			errs = append(errs, fmt.Errorf("%s.date: %w", prefix, err))
		}
		if l.Wages < 0 || l.Materials < 0 || l.Machinery < 0 {
			errs = append(errs, fmt.Errorf("%s has a negative cost", prefix))
		}
	}

	return errs
}
