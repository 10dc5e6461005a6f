package domain

import (
	"errors"
	"strings"
)

// ErrInvalidMilestoneData is the sentinel for milestones that cannot be scored.
var ErrInvalidMilestoneData = errors.New("invalid milestone data")

// MilestoneDataError describes why one milestone could not be scored. It is
// reported against that milestone only and never aborts a portfolio.
type MilestoneDataError struct {
	MilestoneID string
	Reasons     []string
}

func (e *MilestoneDataError) Error() string {
	return "invalid milestone data for " + e.MilestoneID + ": " + strings.Join(e.Reasons, "; ")
}

func (e *MilestoneDataError) Unwrap() error {
	return ErrInvalidMilestoneData
}
