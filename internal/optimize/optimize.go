// Package optimize runs the rewrite pipeline over a graph.Arena and hands
// the result to internal/mscr and internal/schedule, the same
// build-then-schedule split mini-Spark draws between its DAG parser
// (internal/dag) and its master scheduler (internal/master/scheduler.go).
package optimize

import (
	"colgraph/internal/graph"
	"colgraph/internal/mscr"
	"colgraph/internal/schedule"
)

// Optimize runs the fixed rewrite sequence from spec §4.2 - sinkFlattens,
// fuseParallelDos, fuseSiblingParallelDos, removeUnnecessaryOps, then MSCR
// formation and scheduling - over g, mutating it in place, and returns the
// resulting execution plan.
func Optimize(g *graph.Arena, inputs, outputs []graph.CollectionHandle, opts Options) (*schedule.ExecutionStep, error) {
	if len(inputs) == 0 {
		return nil, graph.NewError(graph.InvalidArgument, "optimize requires at least one input collection")
	}
	if len(outputs) == 0 {
		return nil, graph.NewError(graph.InvalidArgument, "optimize requires at least one output collection")
	}

	ctx := opts.context()
	log := opts.Log

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Infof("sinkFlattens over %d output(s)", len(outputs))
	for _, out := range outputs {
		if err := sinkFlattens(g, out); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Infof("fuseParallelDos over %d output(s)", len(outputs))
	for _, out := range outputs {
		if err := fuseParallelDos(g, out); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Infof("fuseSiblingParallelDos over %d output(s)", len(outputs))
	for _, out := range outputs {
		if err := fuseSiblingParallelDos(g, out); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	outputSet := make(map[graph.CollectionHandle]bool, len(outputs))
	for _, out := range outputs {
		outputSet[out] = true
	}
	log.Infof("removeUnnecessaryOps over %d input(s)", len(inputs))
	for _, in := range inputs {
		removeUnnecessaryOps(g, in, outputSet)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	blocks, err := mscr.GetMSCRBlocks(g, outputs)
	if err != nil {
		return nil, err
	}
	log.Infof("formed %d MSCR block(s)", len(blocks))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	plan, err := schedule.Schedule(blocks, inputs)
	if err != nil {
		return nil, err
	}
	log.Infof("scheduled execution plan")
	return plan, nil
}
