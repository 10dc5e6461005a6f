package repository

import (
	"errors"
	"strings"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrDuplicateLogDate is returned when a milestone already has a spend
	// log for the given calendar day.
	ErrDuplicateLogDate = errors.New("spend log already exists for that date")
	ErrDuplicateShortID = errors.New("short ID already in use")
)

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
