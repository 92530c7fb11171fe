package solver

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors updated by a Solver.
// A nil *Metrics records nothing.
type Metrics struct {
	// BanksTotal counts evaluated banks.
	// Labels: result (solved, skipped, failed)
	BanksTotal *prometheus.CounterVec

	// SelectDuration tracks time spent parsing and selecting one bank.
	SelectDuration prometheus.Histogram

	// RunDuration tracks a whole Run.
	RunDuration prometheus.Histogram

	// BankLength tracks bank sizes in digits.
	BankLength prometheus.Histogram
}

// NewMetrics registers the solver collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		BanksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "joltage",
				Subsystem: "solver",
				Name:      "banks_total",
				Help:      "Total number of banks evaluated by result",
			},
			[]string{"result"},
		),
		SelectDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "joltage",
				Subsystem: "solver",
				Name:      "select_duration_seconds",
				Help:      "Duration of parsing and selecting a single bank in seconds",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
		),
		RunDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "joltage",
				Subsystem: "solver",
				Name:      "run_duration_seconds",
				Help:      "Duration of a complete solver run in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		BankLength: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "joltage",
				Subsystem: "solver",
				Name:      "bank_length_digits",
				Help:      "Number of digits per parsed bank",
				Buckets:   prometheus.ExponentialBuckets(2, 2, 10),
			},
		),
	}
}

func (m *Metrics) recordBank(result string, n int, d time.Duration) {
	if m == nil {
		return
	}
	m.BanksTotal.WithLabelValues(result).Inc()
	m.SelectDuration.Observe(d.Seconds())
	if n > 0 {
		m.BankLength.Observe(float64(n))
	}
}

func (m *Metrics) recordRun(d time.Duration) {
	if m == nil {
		return
	}
	m.RunDuration.Observe(d.Seconds())
}
