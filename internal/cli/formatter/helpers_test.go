package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{950, "950.00"},
		{1000, "1,000.00"},
		{1234567.5, "1,234,567.50"},
		{-95000, "-95,000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Money(tt.in))
		})
	}
}

func TestScoreAndPercent(t *testing.T) {
	assert.Equal(t, "70.0", Score(70))
	assert.Equal(t, "44.9", Score(44.94))
	assert.Equal(t, "80%", Percent(0.8))
}

func TestDaysLabel(t *testing.T) {
	assert.Equal(t, "today", DaysLabel(0))
	assert.Equal(t, "in 1d", DaysLabel(1))
	assert.Equal(t, "in 10d", DaysLabel(10))
	assert.Equal(t, "1d overdue", DaysLabel(-1))
	assert.Equal(t, "5d overdue", DaysLabel(-5))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "--", FormatDate(time.Time{}))
	assert.Equal(t, "2025-03-27", FormatDate(time.Date(2025, 3, 27, 0, 0, 0, 0, time.UTC)))
}

func TestProjectLabel(t *testing.T) {
	assert.Equal(t, "HAR01", ProjectLabel(&domain.Project{ID: "abcdef12-3456", ShortID: "HAR01"}))
	assert.Contains(t, ProjectLabel(&domain.Project{ID: "abcdef12-3456"}), "abcdef12")
	assert.Equal(t, "--", ProjectLabel(&domain.Project{}))
}

func TestRenderBurnBar_ReportsRealPercentWhenOverspent(t *testing.T) {
	out := RenderBurnBar(1.25, 10)
	assert.Contains(t, out, "125%")
	assert.NotContains(t, out, emptyBlock)
}

func TestRenderBurnBar_ClampsNegative(t *testing.T) {
	out := RenderBurnBar(-0.5, 4)
	assert.NotContains(t, out, filledBlock)
}
