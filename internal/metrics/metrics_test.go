package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/epcrisk/internal/domain"
)

func TestRegistry_CountsMilestonesAndAlerts(t *testing.T) {
	r := NewRegistry()

	r.ObserveMilestone(domain.RiskCritical, true)
	r.ObserveMilestone(domain.RiskCritical, true)
	r.ObserveMilestone(domain.RiskLow, true)
	r.ObserveMilestone("", false)
	r.ObserveAlert(domain.AlertOverspend, domain.SeverityHigh)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.MilestonesScored.WithLabelValues("CRITICAL")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.MilestonesScored.WithLabelValues("LOW")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.InvalidMilestones))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.AlertsRaised.WithLabelValues("overspend", "high")))
}

func TestRegistry_SpendLogged(t *testing.T) {
	r := NewRegistry()
	r.ObserveSpendLogged("m1", 1200)
	r.ObserveSpendLogged("m1", 300)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.SpendLogged))
	assert.Equal(t, 1500.0, testutil.ToFloat64(r.SpendLoggedAmount))
}

func TestRegistry_WriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.ObserveAssessment("p1", 3*time.Millisecond)
	r.ObserveMilestone(domain.RiskHigh, true)

	path := filepath.Join(t.TempDir(), "epcrisk.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)
	assert.Contains(t, body, `epcrisk_milestones_scored_total{level="HIGH"} 1`)
	assert.Contains(t, body, `epcrisk_assessment_duration_seconds_count{project="p1"} 1`)
}

func TestNop_SatisfiesRecorder(t *testing.T) {
	var rec Recorder = Nop{}
	rec.ObserveAssessment("p", time.Second)
	rec.ObserveMilestone(domain.RiskLow, true)
	rec.ObserveAlert(domain.AlertSlowBurn, domain.SeverityInfo)
	rec.ObserveSpendLogged("m", 1)
}
