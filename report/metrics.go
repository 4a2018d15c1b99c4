package report

import (
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "autobahn"

// WriteMetrics writes run statistics in the Prometheus text format, suitable for the
// node_exporter textfile collector.
func WriteMetrics(path string, r *RunReport) error {
	reg := prometheus.NewRegistry()

	cases := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "cases_total",
		Help:      "Number of fuzzing cases by behavior and pass/fail status.",
	}, []string{"behavior", "status"})
	caseDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "case_duration_seconds",
		Help:      "Duration of individual fuzzing cases.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 9),
	})
	runDuration := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "run_duration_seconds",
		Help:      "Sum of the durations of all fuzzing cases in the run.",
	})
	failures := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "run_failures",
		Help:      "Number of failing cases in the run.",
	})
	reg.MustRegister(cases, caseDuration, runDuration, failures)

	for _, c := range r.Cases {
		status := "passed"
		if _, failed := r.failureFor(c.Name); failed {
			status = "failed"
		}
		cases.WithLabelValues(string(c.Behavior), status).Inc()
		caseDuration.Observe(c.Duration().Seconds())
	}
	runDuration.Set(r.TotalDuration().Seconds())
	failures.Set(float64(r.FailureCount))

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return prometheus.WriteToTextfile(path, reg)
}
