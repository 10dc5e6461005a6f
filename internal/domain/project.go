package domain

import (
	"fmt"
	"regexp"
	"time"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{2,6}[0-9]{2,4}$`)

// Project is an EPC contract. It owns its milestones; deleting a project
// cascades to every milestone, resource line and spend log beneath it.
type Project struct {
	ID          string
	ShortID     string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateShortID checks that ShortID matches 2-6 uppercase letters followed
// by 2-4 digits (e.g. EPC01, SOLAR2024).
func (p *Project) ValidateShortID() error {
	if p.ShortID == "" {
		return fmt.Errorf("short ID is required (use --id flag)")
	}
	if !shortIDPattern.MatchString(p.ShortID) {
		return fmt.Errorf("short ID %q must be 2-6 uppercase letters followed by 2-4 digits (e.g. EPC01)", p.ShortID)
	}
	return nil
}

// DisplayID prefers ShortID and falls back to the first 8 characters of ID.
func (p *Project) DisplayID() string {
	if p.ShortID != "" {
		return p.ShortID
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
