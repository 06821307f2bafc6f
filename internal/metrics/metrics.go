// Package metrics exposes workflow runs as Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/spetersoncode/mailroute/notify"
	"github.com/spetersoncode/mailroute/workflow"
)

const namespace = "mailroute"

// Collector implements workflow.Observer and counts webhook failures.
type Collector struct {
	runsStarted   prometheus.Counter
	runsFinished  *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec
	stepDuration  *prometheus.HistogramVec
	stepFailures  *prometheus.CounterVec
	routes        *prometheus.CounterVec
	notifyFailure *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		runsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_started_total",
			Help:      "Total number of workflow runs started.",
		}),
		runsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_finished_total",
			Help:      "Total number of workflow runs finished, by branch and outcome.",
		}, []string{"branch", "outcome"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of workflow runs.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"branch"}),
		stepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Duration of workflow steps.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14),
		}, []string{"step"}),
		stepFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "step_failures_total",
			Help:      "Total number of failed workflow steps.",
		}, []string{"step"}),
		routes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_selected_total",
			Help:      "Total number of routing decisions, by decision.",
		}, []string{"decision"}),
		notifyFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "Total number of failed webhook deliveries, by status code class.",
		}, []string{"status"}),
	}

	reg.MustRegister(
		c.runsStarted,
		c.runsFinished,
		c.runDuration,
		c.stepDuration,
		c.stepFailures,
		c.routes,
		c.notifyFailure,
	)
	return c
}

func (c *Collector) RunStarted() { c.runsStarted.Inc() }

func (c *Collector) StepFinished(node workflow.Node, d time.Duration, err error) {
	c.stepDuration.WithLabelValues(node.String()).Observe(d.Seconds())
	if err != nil {
		c.stepFailures.WithLabelValues(node.String()).Inc()
	}
}

func (c *Collector) RouteSelected(d workflow.Decision) {
	c.routes.WithLabelValues(d.String()).Inc()
}

func (c *Collector) RunFinished(branch workflow.Decision, d time.Duration, err error) {
	label := branch.String()
	if label == "" {
		label = "none"
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.runsFinished.WithLabelValues(label, outcome).Inc()
	c.runDuration.WithLabelValues(label).Observe(d.Seconds())
}

// NotificationFailed records a failed delivery. It matches the signature
// expected by notify.WithErrorHandler.
func (c *Collector) NotificationFailed(err *notify.NotificationError) {
	c.notifyFailure.WithLabelValues(statusClass(err.StatusCode)).Inc()
}

func statusClass(code int) string {
	switch {
	case code == 0:
		return "transport"
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	default:
		return "other"
	}
}

var _ workflow.Observer = (*Collector)(nil)
