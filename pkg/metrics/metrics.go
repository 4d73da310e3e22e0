package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	transcriptionService = "transcription_service"

	// Job metrics
	jobsTotal           = "jobs_total"
	jobDurationSeconds  = "job_duration_seconds"
	pollTicksTotal      = "poll_ticks_total"
	uploadsTotal        = "uploads_total"
	statusQueryFailures = "status_query_failures_total"

	// Labels
	outcomeLabel = "outcome"
)

// Job outcomes.
const (
	OutcomeCompleted         = "completed"
	OutcomeProcessingFailed  = "processing_failed"
	OutcomeTimeout           = "timeout"
	OutcomeSubmissionFailed  = "submission_failed"
	OutcomePersistenceFailed = "persistence_failed"
	OutcomeCancelled         = "cancelled"
	OutcomeSucceeded         = "succeeded"
	OutcomeFailed            = "failed"
)

var jobsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: transcriptionService,
		Name:      jobsTotal,
		Help:      "number of transcription jobs by terminal outcome",
	},
	[]string{outcomeLabel},
)

var jobDurationMetric = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Subsystem: transcriptionService,
		Name:      jobDurationSeconds,
		Help:      "time from submission to terminal outcome",
		Buckets:   []float64{5, 15, 30, 60, 120, 300, 600},
	},
	[]string{outcomeLabel},
)

var pollTicksMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: transcriptionService,
		Name:      pollTicksTotal,
		Help:      "number of job status queries sent to the processor",
	},
)

var statusQueryFailuresMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: transcriptionService,
		Name:      statusQueryFailures,
		Help:      "number of job status queries that failed at transport level",
	},
)

var uploadsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: transcriptionService,
		Name:      uploadsTotal,
		Help:      "number of audio uploads by outcome",
	},
	[]string{outcomeLabel},
)

func IncreaseJobsTotalMetric(outcome string, elapsed time.Duration) {
	labels := prometheus.Labels{
		outcomeLabel: outcome,
	}
	jobsTotalMetric.With(labels).Inc()
	jobDurationMetric.With(labels).Observe(elapsed.Seconds())
}

func IncreasePollTicksMetric() {
	pollTicksMetric.Inc()
}

func IncreaseStatusQueryFailuresMetric() {
	statusQueryFailuresMetric.Inc()
}

func IncreaseUploadsTotalMetric(outcome string) {
	uploadsTotalMetric.With(prometheus.Labels{outcomeLabel: outcome}).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(jobsTotalMetric)
	prometheus.MustRegister(jobDurationMetric)
	prometheus.MustRegister(pollTicksMetric)
	prometheus.MustRegister(statusQueryFailuresMetric)
	prometheus.MustRegister(uploadsTotalMetric)
}
