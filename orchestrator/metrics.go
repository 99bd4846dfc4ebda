package orchestrator

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/spacemeshos/solflood/client"
)

const (
	phaseSeed   = "seed"
	phaseFlood  = "flood"
	phaseSteady = "steady"
)

var (
	submissionsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "solflood",
		Subsystem: "orchestrator",
		Name:      "submissions_total",
		Help:      "Number of submitted solutions by phase and outcome",
	}, []string{"phase", "result"})

	productionMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "solflood",
		Subsystem: "orchestrator",
		Name:      "genuine_attempts_total",
		Help:      "Number of genuine solution attempts by outcome",
	}, []string{"result"})

	resolveFailuresMetric = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "solflood",
		Subsystem: "orchestrator",
		Name:      "resolve_failures_total",
		Help:      "Number of failed network state resolutions",
	})

	heightMetric = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "solflood",
		Subsystem: "network",
		Name:      "block_height",
		Help:      "Last resolved chain height",
	})

	epochMetric = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "solflood",
		Subsystem: "network",
		Name:      "epoch",
		Help:      "Last resolved epoch number",
	})

	proofTargetMetric = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "solflood",
		Subsystem: "network",
		Name:      "proof_target",
		Help:      "Last resolved proof target",
	})

	inFlightMetric = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "solflood",
		Subsystem: "orchestrator",
		Name:      "flood_in_flight",
		Help:      "Number of flood submissions still waiting for the node",
	})
)

func submitResult(err error) string {
	var (
		protoErr     *client.ProtocolError
		transportErr *client.TransportError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &protoErr):
		return "rejected"
	case errors.As(err, &transportErr):
		return "unreachable"
	default:
		return "error"
	}
}
