package optimize

import (
	"context"

	"colgraph/internal/telemetry"
)

// Options configures a single Optimize call, in the same spirit as
// mini-Spark's ExecutionManager taking a context.Context on every task
// dispatch for cooperative cancellation - colgraph never spawns
// goroutines of its own, but the same context is checked between rewrite
// phases so a caller can bound how long a pathological graph is allowed
// to keep rewriting.
type Options struct {
	Context context.Context

	// Log receives one line per rewrite phase, one with the number of
	// MSCRs formed, and one when the plan is scheduled. The zero value
	// logs with no tag prefix.
	Log telemetry.Logger
}

func (o Options) context() context.Context {
	if o.Context != nil {
		return o.Context
	}
	return context.Background()
}
