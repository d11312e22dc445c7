// Package metrics exposes fulfillment events as Prometheus metrics on a private
// registry.
package metrics

import (
	"net/http"
	"strconv"

	"fulfillment/internal/core/domain/model/fulfillment"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fulfillment"

// Prometheus implements commands.Metrics.
type Prometheus struct {
	registry *prometheus.Registry

	jobsCreated    *prometheus.CounterVec
	jobsAdvanced   *prometheus.CounterVec
	attemptsFailed *prometheus.CounterVec
	trackingSynced *prometheus.CounterVec
	syncRuns       prometheus.Counter
}

func NewPrometheus() *Prometheus {
	reg := prometheus.NewRegistry()
	p := &Prometheus{
		registry: reg,
		jobsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_created_total",
			Help:      "Fulfillment jobs created, by fulfillment type.",
		}, []string{"fulfillment_type"}),
		jobsAdvanced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_attempts_succeeded_total",
			Help:      "Successful job attempts, by fulfillment type and resulting status.",
		}, []string{"fulfillment_type", "status"}),
		attemptsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_attempts_failed_total",
			Help:      "Failed job attempts, by fulfillment type and whether retries are exhausted.",
		}, []string{"fulfillment_type", "exhausted"}),
		trackingSynced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tracking_sync_jobs_total",
			Help:      "Jobs visited by tracking sync, by result.",
		}, []string{"result"}),
		syncRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tracking_sync_runs_total",
			Help:      "Completed tracking sync sweeps.",
		}),
	}

	reg.MustRegister(
		p.jobsCreated,
		p.jobsAdvanced,
		p.attemptsFailed,
		p.trackingSynced,
		p.syncRuns,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

func (p *Prometheus) JobsCreated(fulfillmentType fulfillment.Type, count int) {
	p.jobsCreated.WithLabelValues(fulfillmentType.String()).Add(float64(count))
}

func (p *Prometheus) JobAdvanced(fulfillmentType fulfillment.Type, status fulfillment.Status) {
	p.jobsAdvanced.WithLabelValues(fulfillmentType.String(), status.String()).Inc()
}

func (p *Prometheus) JobAttemptFailed(fulfillmentType fulfillment.Type, exhausted bool) {
	p.attemptsFailed.WithLabelValues(fulfillmentType.String(), strconv.FormatBool(exhausted)).Inc()
}

func (p *Prometheus) TrackingSynced(synced, failed int) {
	p.trackingSynced.WithLabelValues("synced").Add(float64(synced))
	p.trackingSynced.WithLabelValues("failed").Add(float64(failed))
	p.syncRuns.Inc()
}

// Registry is exposed for tests and for registering extra collectors.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus text format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}
