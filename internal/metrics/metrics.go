// Package metrics exposes the Prometheus counters shared by the ingress and
// worker processes. prometheus/client_golang is a domain-stack pack
// dependency (kindling-sh-kindling, Azure-containerization-assist); the
// teacher has no metrics layer to imitate.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// WebhooksReceived counts every webhook delivery by forge and event type.
	WebhooksReceived = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "golden_ci_webhooks_received_total",
		Help: "Webhook deliveries received by the ingress server.",
	}, []string{"forge", "event"})

	// WorkflowsStarted counts workflow submissions by outcome (accepted,
	// already_running, rejected).
	WorkflowsStarted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "golden_ci_workflows_started_total",
		Help: "push_to_deploy workflow submissions by outcome.",
	}, []string{"outcome"})

	// ActivityInvocations is a counter vector labelled by activity name and
	// result. It is registered here, but no activity increments it, so it
	// stays at zero.
	ActivityInvocations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "golden_ci_activity_invocations_total",
		Help: "Activity invocations by activity name and result.",
	}, []string{"activity", "result"})
)

func init() {
	prometheus.MustRegister(WebhooksReceived, WorkflowsStarted, ActivityInvocations)
}
