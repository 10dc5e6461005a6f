package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/alexanderramin/epcrisk/internal/repository"
)

// resolveProjectID resolves a short ID, a full UUID or a unique UUID prefix.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("project is required (use --project with a short ID or UUID)")
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range projects {
		if strings.EqualFold(p.ShortID, input) || p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveMilestone resolves a milestone by its project sequence number
// ("3" or "#3", requires a project) or by UUID.
func resolveMilestone(ctx context.Context, app *App, input, projectRef string) (*domain.Milestone, error) {
	input = strings.TrimSpace(input)
	if seq, err := strconv.Atoi(strings.TrimPrefix(input, "#")); err == nil && seq > 0 {
		if projectRef == "" {
			return nil, fmt.Errorf("milestone #%d requires project context (use --project)", seq)
		}
		projectID, err := resolveProjectID(ctx, app, projectRef)
		if err != nil {
			return nil, err
		}
		m, err := app.Milestones.GetBySeq(ctx, projectID, seq)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("milestone #%d not found in project", seq)
			}
			return nil, err
		}
		return m, nil
	}

	m, err := app.Milestones.GetByID(ctx, input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("milestone not found: %q", input)
		}
		return nil, err
	}
	return m, nil
}
