package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds every contactpsi collector plus the go/process ones.
	Registry = prometheus.NewRegistry()

	// JobsSubmitted counts jobs accepted by the cluster, per op.
	JobsSubmitted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contactpsi_jobs_submitted_total",
		Help: "Number of jobs accepted by the cluster",
	}, []string{"op"})
	// JobOutcomes counts finished jobs, per op and outcome (ok, failed).
	JobOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contactpsi_job_outcomes_total",
		Help: "Number of jobs finished by the cluster",
	}, []string{"op", "outcome"})
	// JobLatency is the time the cluster spends executing one job.
	JobLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "contactpsi_job_duration_seconds",
		Help:    "Histogram of job execution latencies",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	// Comparisons counts hash comparisons performed by the matcher.
	Comparisons = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "contactpsi_matcher_comparisons_total",
		Help: "Number of hash comparisons performed by the matcher",
	})
	// SessionTransitions counts public status changes, per new status.
	SessionTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contactpsi_session_transitions_total",
		Help: "Number of session status transitions",
	}, []string{"status"})
	// ComputationFaults counts steps abandoned because of a cluster fault.
	ComputationFaults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contactpsi_computation_faults_total",
		Help: "Number of session steps that ended in a computation fault",
	}, []string{"op"})
)

var bindOnce sync.Once

// Bind registers all collectors on Registry. It is safe to call repeatedly.
func Bind() {
	bindOnce.Do(func() {
		Registry.MustRegister(
			prometheus.NewGoCollector(),
			prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
			JobsSubmitted,
			JobOutcomes,
			JobLatency,
			Comparisons,
			SessionTransitions,
			ComputationFaults,
		)
	})
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	Bind()
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
