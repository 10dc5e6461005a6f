package service

import (
	"context"
	"time"

	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/alexanderramin/epcrisk/internal/repository"
)

// loadPortfolio returns the project's milestones with their logs attached.
// Only logs dated on or before asOf are included; a zero asOf keeps all.
func loadPortfolio(
	ctx context.Context,
	milestones repository.MilestoneRepo,
	logs repository.SpendLogRepo,
	projectID string,
	asOf time.Time,
) ([]*domain.Milestone, error) {
	list, err := milestones.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	entries, err := logs.ListByProject(ctx, projectID, asOf)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Milestone, len(list))
	for _, m := range list {
		byID[m.ID] = m
	}
	for _, l := range entries {
		if m, ok := byID[l.MilestoneID]; ok {
			m.Logs = append(m.Logs, l)
		}
	}
	return list, nil
}

// resolveAsOf defaults a zero as-of date to today and strips the time part.
func resolveAsOf(asOf time.Time) time.Time {
	if asOf.IsZero() {
		return domain.DateOnly(time.Now().UTC())
	}
	return domain.DateOnly(asOf)
}
