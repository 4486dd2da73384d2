// Package metrics exposes Prometheus instrumentation for the ledger service.
package metrics

import (
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mmynk/pokernight/internal/calculator"
)

const namespace = "pokernight"

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	rpcRequests *prometheus.CounterVec
	rpcDuration *prometheus.HistogramVec
	settlements *prometheus.CounterVec
	transfers   prometheus.Counter
	imbalance   prometheus.Gauge
	gamesClosed prometheus.Counter
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		rpcRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		settlements: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_total",
			Help:      "Settlements computed, by outcome (balanced or imbalanced).",
		}, []string{"outcome"}),
		transfers: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlement_transfers_total",
			Help:      "Transfers produced by settlements.",
		}),
		imbalance: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "settlement_last_imbalance",
			Help:      "Absolute residual left by the most recent settlement.",
		}),
		gamesClosed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_closed_total",
			Help:      "Games moved to the Closed state.",
		}),
	}
}

// ObserveRPC records one finished RPC call.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(d.Seconds())
}

// ObserveSettlement records the outcome of a settlement run.
func (m *Metrics) ObserveSettlement(s calculator.Settlement) {
	if m == nil {
		return
	}
	outcome := "balanced"
	if !s.Balanced() {
		outcome = "imbalanced"
	}
	m.settlements.WithLabelValues(outcome).Inc()
	m.transfers.Add(float64(len(s.Transfers)))
	m.imbalance.Set(math.Abs(s.Imbalance()))
}

// GameClosed records a game reaching the Closed state.
func (m *Metrics) GameClosed() {
	if m == nil {
		return
	}
	m.gamesClosed.Inc()
}
