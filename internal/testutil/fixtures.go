package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// Epoch is the fixed reference day fixtures are built around.
var Epoch = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

// Day returns Epoch shifted by n days.
func Day(n int) time.Time {
	return Epoch.AddDate(0, 0, n)
}

type ProjectOption func(*domain.Project)

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

func WithDescription(d string) ProjectOption {
	return func(p *domain.Project) {
		p.Description = d
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n%10000)
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type MilestoneOption func(*domain.Milestone)

func WithBudget(b float64) MilestoneOption {
	return func(m *domain.Milestone) {
		m.PlannedBudget = b
	}
}

// WithSchedule sets start, due and payment trigger as day offsets from Epoch.
func WithSchedule(start, due, trigger int) MilestoneOption {
	return func(m *domain.Milestone) {
		m.StartDate = Day(start)
		m.DueDate = Day(due)
		m.PaymentTriggerDate = Day(trigger)
	}
}

func WithSeq(seq int) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Seq = seq
	}
}

func WithStatus(s domain.MilestoneStatus) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Status = s
	}
}

func WithDelayPenalty(p float64) MilestoneOption {
	return func(m *domain.Milestone) {
		m.DelayPenaltyPerDay = p
	}
}

func WithResources(r domain.ResourcePlan) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Resources = r
	}
}

// NewTestMilestone returns an open 100k milestone running from Epoch for 30
// days, paid on its due date.
func NewTestMilestone(projectID, name string, opts ...MilestoneOption) *domain.Milestone {
	now := time.Now().UTC().Truncate(time.Second)
	m := &domain.Milestone{
		ID:                 uuid.New().String(),
		ProjectID:          projectID,
		Name:               name,
		PlannedBudget:      100000,
		StartDate:          Day(0),
		DueDate:            Day(30),
		PaymentTriggerDate: Day(30),
		Status:             domain.MilestoneOpen,
		Phases:             1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewTestSpendLog books wages only; adjust the other buckets on the result.
func NewTestSpendLog(milestoneID string, day int, wages float64) *domain.DailySpendLog {
	return &domain.DailySpendLog{
		ID:          uuid.New().String(),
		MilestoneID: milestoneID,
		Date:        Day(day),
		Wages:       wages,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
}
