package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/harnesslab/harness/types"
)

const (
	MetricsNamespace = "harness"
)

var (
	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of harness-level errors",
	}, []string{
		"error",
	})

	leavesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "leaves_total",
		Help:      "Count of executed leaves by outcome",
	}, []string{
		"status",
	})

	runResults = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_results",
		Help:      "Result of test runs",
	}, []string{
		"run_id",
		"status",
	})

	runDurationSeconds = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_duration_seconds",
		Help:      "Wall-clock duration of the last run",
	}, []string{
		"run_id",
	})
)

// RecordLeaf counts one completed leaf.
func RecordLeaf(status types.Status) {
	leavesTotal.WithLabelValues(string(status)).Inc()
}

// RecordRun records the aggregate result of a run.
func RecordRun(runID string, status types.Status, duration time.Duration) {
	runResults.WithLabelValues(runID, string(status)).Set(1)
	runDurationSeconds.WithLabelValues(runID).Set(duration.Seconds())
}

// RecordError counts a harness-level error by short description.
func RecordError(errorLabel string) {
	errorsTotal.WithLabelValues(errorLabel).Inc()
}
