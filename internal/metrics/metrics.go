package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/alexanderramin/epcrisk/internal/domain"
)

// Recorder is the subset the services report assessments through.
type Recorder interface {
	ObserveAssessment(projectID string, duration time.Duration)
	ObserveMilestone(level domain.RiskLevel, valid bool)
	ObserveAlert(kind domain.AlertKind, severity domain.Severity)
	ObserveSpendLogged(milestoneID string, amount float64)
}

// Registry owns a private prometheus registry so the CLI can dump it to a
// node_exporter textfile after each run.
type Registry struct {
	reg *prometheus.Registry

	AssessmentDuration *prometheus.HistogramVec
	MilestonesScored   *prometheus.CounterVec
	InvalidMilestones  prometheus.Counter
	AlertsRaised       *prometheus.CounterVec
	SpendLogged        prometheus.Counter
	SpendLoggedAmount  prometheus.Counter
}

func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Registry{
		reg: reg,
		AssessmentDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "epcrisk_assessment_duration_seconds",
				Help:    "Time spent scoring one project portfolio",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
			},
			[]string{"project"},
		),
		MilestonesScored: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "epcrisk_milestones_scored_total",
				Help: "Milestones scored, by risk level",
			},
			[]string{"level"},
		),
		InvalidMilestones: factory.NewCounter(prometheus.CounterOpts{
			Name: "epcrisk_invalid_milestones_total",
			Help: "Milestones skipped because their data failed validation",
		}),
		AlertsRaised: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "epcrisk_alerts_total",
				Help: "Optimisation alerts raised, by kind and severity",
			},
			[]string{"kind", "severity"},
		),
		SpendLogged: factory.NewCounter(prometheus.CounterOpts{
			Name: "epcrisk_spend_logs_total",
			Help: "Daily spend log entries recorded",
		}),
		SpendLoggedAmount: factory.NewCounter(prometheus.CounterOpts{
			Name: "epcrisk_spend_logged_amount_total",
			Help: "Sum of wages, materials and machinery recorded",
		}),
	}
}

func (r *Registry) ObserveAssessment(projectID string, duration time.Duration) {
	r.AssessmentDuration.WithLabelValues(projectID).Observe(duration.Seconds())
}

func (r *Registry) ObserveMilestone(level domain.RiskLevel, valid bool) {
	if !valid {
		r.InvalidMilestones.Inc()
		return
	}
	r.MilestonesScored.WithLabelValues(string(level)).Inc()
}

func (r *Registry) ObserveAlert(kind domain.AlertKind, severity domain.Severity) {
	r.AlertsRaised.WithLabelValues(string(kind), string(severity)).Inc()
}

func (r *Registry) ObserveSpendLogged(_ string, amount float64) {
	r.SpendLogged.Inc()
	r.SpendLoggedAmount.Add(amount)
}

// Gatherer exposes the underlying registry, mainly for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// WriteTextfile writes the current values in the text exposition format.
// The write is atomic (temp file + rename).
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

// Nop discards everything.
type Nop struct{}

func (Nop) ObserveAssessment(string, time.Duration) {}
func (Nop) ObserveMilestone(domain.RiskLevel, bool) {}
func (Nop) ObserveAlert(domain.AlertKind, domain.Severity) {}
func (Nop) ObserveSpendLogged(string, float64) {}
