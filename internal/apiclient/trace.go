package apiclient

import (
	"context"
	"sync/atomic"
	"time"
)

// Trace totals the upstream calls made on behalf of one admin request.
// Dashboard panels load concurrently, so the counters are atomic.
type Trace struct {
	calls  atomic.Int64
	failed atomic.Int64
	nanos  atomic.Int64
}

type traceKey struct{}

// WithTrace attaches a fresh Trace to ctx.
func WithTrace(ctx context.Context) (context.Context, *Trace) {
	t := &Trace{}
	return context.WithValue(ctx, traceKey{}, t), t
}

func traceFrom(ctx context.Context) *Trace {
	t, _ := ctx.Value(traceKey{}).(*Trace)
	return t
}

// status 0 is a transport failure.
func (t *Trace) record(status int, elapsed time.Duration) {
	t.calls.Add(1)
	if status == 0 || status >= 400 {
		t.failed.Add(1)
	}
	t.nanos.Add(int64(elapsed))
}

func (t *Trace) Calls() int64 { return t.calls.Load() }
func (t *Trace) Failed() int64 { return t.failed.Load() }
func (t *Trace) Elapsed() time.Duration { return time.Duration(t.nanos.Load()) }
