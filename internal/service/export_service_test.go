package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/epcrisk/internal/app"
	"github.com/alexanderramin/epcrisk/internal/report"
	"github.com/alexanderramin/epcrisk/internal/testutil"
)

func TestExportService_WriteMilestoneCSV(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	p := h.project(t, "Export")
	m := h.milestone(t, p.ID, "Pour", testutil.WithSchedule(0, 20, 20))
	h.spread(t, m.ID, 0, 4, 8000)
	h.milestone(t, p.ID, "Unpriced", testutil.WithBudget(0))

	var buf bytes.Buffer
	require.NoError(t, h.export.WriteMilestoneCSV(ctx, &buf, app.NewRiskRequest(p.ID, testutil.Day(5))))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, report.MilestoneHeader, rows[0])
	assert.Equal(t, m.ID, rows[1][0])
	assert.NotEmpty(t, rows[1][5])
	assert.Equal(t, "8000.00", rows[1][7])
	assert.Equal(t, report.InvalidLevel, rows[2][6])
	assert.Empty(t, rows[2][5])
}

func TestExportService_WriteSpendCSV_IncludesEveryLog(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	p := h.project(t, "Spend Export")
	a := h.milestone(t, p.ID, "A")
	h.spread(t, a.ID, 0, 3, 300)
	b := h.milestone(t, p.ID, "B")
	h.spread(t, b.ID, 200, 1, 50)

	var buf bytes.Buffer
	require.NoError(t, h.export.WriteSpendCSV(ctx, &buf, p.ID))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, report.SpendHeader, rows[0])
	assert.Equal(t, a.ID, rows[1][0])
	assert.Equal(t, "2025-01-06", rows[1][1])
	assert.Equal(t, b.ID, rows[4][0])
}
