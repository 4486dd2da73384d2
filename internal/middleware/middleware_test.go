package middleware

import (
	"context"
	"errors"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/pokernight/internal/metrics"
)

type emptyMsg struct{}

func TestRecoveryInterceptor(t *testing.T) {
	next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		panic("boom")
	})

	resp, err := RecoveryInterceptor()(next)(context.Background(), connect.NewRequest(&emptyMsg{}))

	if resp != nil {
		t.Errorf("expected nil response, got %v", resp)
	}
	if connect.CodeOf(err) != connect.CodeInternal {
		t.Errorf("expected CodeInternal, got %v", connect.CodeOf(err))
	}
}

func TestRecoveryInterceptor_PassesThrough(t *testing.T) {
	want := connect.NewResponse(&emptyMsg{})
	next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return want, nil
	})

	resp, err := RecoveryInterceptor()(next)(context.Background(), connect.NewRequest(&emptyMsg{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != want {
		t.Errorf("expected the handler response to be returned")
	}
}

func TestMetricsInterceptor(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	ok := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&emptyMsg{}), nil
	})
	failing := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("missing"))
	})

	interceptor := MetricsInterceptor(m)
	interceptor(ok)(context.Background(), connect.NewRequest(&emptyMsg{}))
	interceptor(failing)(context.Background(), connect.NewRequest(&emptyMsg{}))

	// One series per result code.
	count, err := testutil.GatherAndCount(reg, "pokernight_rpc_requests_total")
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 request series, got %d", count)
	}
}
