package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/pokernight/internal/calculator"
)

func TestObserveSettlement(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSettlement(calculator.Settlement{
		Transfers: []calculator.Transfer{{Amount: 10}, {Amount: 5}},
	})
	m.ObserveSettlement(calculator.Settlement{
		Transfers: []calculator.Transfer{{Amount: 50}},
		Residuals: []calculator.Position{{ID: "c", Amount: 30}},
	})

	if got := testutil.ToFloat64(m.settlements.WithLabelValues("balanced")); got != 1 {
		t.Errorf("balanced settlements = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.settlements.WithLabelValues("imbalanced")); got != 1 {
		t.Errorf("imbalanced settlements = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.transfers); got != 3 {
		t.Errorf("transfers = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.imbalance); got != 30 {
		t.Errorf("imbalance = %v, want 30", got)
	}
}

func TestObserveRPC(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRPC("/pokernight.v1.LedgerService/GetGame", "ok", 10*time.Millisecond)
	m.ObserveRPC("/pokernight.v1.LedgerService/GetGame", "not_found", time.Millisecond)
	m.GameClosed()

	if got := testutil.ToFloat64(m.rpcRequests.WithLabelValues("/pokernight.v1.LedgerService/GetGame", "ok")); got != 1 {
		t.Errorf("ok requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.gamesClosed); got != 1 {
		t.Errorf("games closed = %v, want 1", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	// Must not panic.
	m.ObserveRPC("p", "ok", time.Second)
	m.ObserveSettlement(calculator.Settlement{})
	m.GameClosed()
}
