package domain

import "time"

// DailySpendLog records one day of actual spend on a milestone. There is at
// most one entry per (milestone, date).
type DailySpendLog struct {
	ID          string
	MilestoneID string
	Date        time.Time
	Wages       float64
	Materials   float64
	Machinery   float64
	Notes       string
	CreatedAt   time.Time
}

func (l DailySpendLog) Total() float64 {
	return l.Wages + l.Materials + l.Machinery
}

// SpendBreakdown is cumulative spend split by cost category.
type SpendBreakdown struct {
	Wages     float64
	Materials float64
	Machinery float64
}

func (b SpendBreakdown) Total() float64 {
	return b.Wages + b.Materials + b.Machinery
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b (negative when b is before a).
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
