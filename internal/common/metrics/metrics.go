// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	CreditEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credit_evaluations_total",
			Help: "Total number of loan offers built, by risk tier",
		},
		[]string{"risk_tier"},
	)

	CreditScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "credit_score",
			Help:    "Distribution of computed credit scores",
			Buckets: []float64{20, 40, 50, 60, 65, 70, 75, 80, 90, 100},
		},
	)

	InvalidProfiles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credit_invalid_profiles_total",
			Help: "Total number of client profiles rejected as incomplete or malformed",
		},
	)
)

// RecordEvaluation counts one built offer.
func RecordEvaluation(tier string, score float64) {
	CreditEvaluations.WithLabelValues(tier).Inc()
	CreditScore.Observe(score)
}

func RecordJobCompleted(taskType string, elapsed time.Duration) {
	WorkerJobsCompleted.WithLabelValues(taskType).Inc()
	WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
}

func RecordJobFailed(taskType, errorCode string) {
	WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
}

// TrackActive increments the active gauge and returns the matching decrement.
func TrackActive(taskType string) func() {
	gauge := WorkerJobsActive.WithLabelValues(taskType)
	gauge.Inc()
	return gauge.Dec
}
