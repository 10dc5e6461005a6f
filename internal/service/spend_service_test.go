package service

import (
	"context"
	"math"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/alexanderramin/epcrisk/internal/repository"
	"github.com/alexanderramin/epcrisk/internal/testutil"
)

func TestSpendService_LogSpend(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	p := h.project(t, "Spend")
	m := h.milestone(t, p.ID, "Piling")

	l := &domain.DailySpendLog{
		MilestoneID: m.ID,
		Date:        testutil.Day(3).Add(15*time.Hour + time.Second),
		Wages:       1200,
		Materials:   300,
		Machinery:   500,
		Notes:       "  rig hire  ",
	}
	require.NoError(t, h.spend.LogSpend(ctx, l))
	assert.NotEmpty(t, l.ID)
	assert.True(t, testutil.Day(3).Equal(l.Date), "date is normalised to the calendar day")
	assert.Equal(t, "rig hire", l.Notes)

	logs, err := h.spend.ListByMilestone(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.InDelta(t, 2000, logs[0].Total(), 1e-9)

	assert.Equal(t, 1.0, promtest.ToFloat64(h.registry.SpendLogged))
	assert.Equal(t, 2000.0, promtest.ToFloat64(h.registry.SpendLoggedAmount))
}

func TestSpendService_LogSpend_DuplicateDate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	p := h.project(t, "Dup")
	m := h.milestone(t, p.ID, "Frame")

	require.NoError(t, h.spend.LogSpend(ctx, testutil.NewTestSpendLog(m.ID, 4, 100)))
	err := h.spend.LogSpend(ctx, testutil.NewTestSpendLog(m.ID, 4, 100))
	require.ErrorIs(t, err, repository.ErrDuplicateLogDate)

	events := h.observer.named("spend-log")
	require.Len(t, events, 2)
	assert.False(t, events[1].Success)
}

func TestSpendService_LogSpend_RejectsBadInput(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	p := h.project(t, "Bad")
	m := h.milestone(t, p.ID, "Roof")

	neg := testutil.NewTestSpendLog(m.ID, 1, -5)
	assert.ErrorContains(t, h.spend.LogSpend(ctx, neg), "negative")

	nan := testutil.NewTestSpendLog(m.ID, 2, math.NaN())
	assert.ErrorContains(t, h.spend.LogSpend(ctx, nan), "finite")
	inf := testutil.NewTestSpendLog(m.ID, 3, 5)
	inf.Machinery = math.Inf(1)
	assert.ErrorContains(t, h.spend.LogSpend(ctx, inf), "finite")

	undated := &domain.DailySpendLog{MilestoneID: m.ID, Wages: 5}
	assert.ErrorContains(t, h.spend.LogSpend(ctx, undated), "date is required")

	orphan := testutil.NewTestSpendLog("no-such-milestone", 1, 5)
	assert.ErrorIs(t, h.spend.LogSpend(ctx, orphan), repository.ErrNotFound)

	assert.Equal(t, 0.0, promtest.ToFloat64(h.registry.SpendLogged))
}

func TestSpendService_Delete(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	p := h.project(t, "Del")
	m := h.milestone(t, p.ID, "Walls")

	l := testutil.NewTestSpendLog(m.ID, 1, 100)
	require.NoError(t, h.spend.LogSpend(ctx, l))
	require.NoError(t, h.spend.Delete(ctx, l.ID))
	_, err := h.spend.GetByID(ctx, l.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
