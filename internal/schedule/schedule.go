// Package schedule orders a set of MSCRs into execution stages by their
// data dependencies, the way mini-Spark's WorkerRegistry/Scheduler pair
// (internal/master/scheduler.go, internal/master/registry.go) walks
// submitted tasks in deterministic slice order rather than trusting map
// iteration - colgraph builds the same kind of linked stage list, just
// over MSCRs instead of worker tasks.
package schedule

import (
	"colgraph/internal/graph"
	"colgraph/internal/mscr"
)

// ExecutionStep is one stage of a schedule: every MSCR in MSCRSteps can
// run concurrently, and NextStep is nil once the whole plan is scheduled.
type ExecutionStep struct {
	MSCRSteps []*mscr.MSCR
	NextStep  *ExecutionStep
}

// Schedule orders mscrs into stages such that every MSCR appears in a
// stage strictly after every other MSCR that produces one of its inputs
// (spec §4.5). It generalizes the original Java's "beginning MSCR" gate -
// which only seeded stage zero with MSCRs touching a literal user input -
// to any MSCR whose dependencies are already fully satisfied, since the
// dependency map derived below already implies that any MSCR reading a
// collection nobody else produces must be reading a genuine graph input.
func Schedule(mscrs []*mscr.MSCR, inputs []graph.CollectionHandle) (*ExecutionStep, error) {
	if len(mscrs) == 0 {
		return nil, nil
	}

	outputOwner := make(map[graph.CollectionHandle]*mscr.MSCR)
	for _, m := range mscrs {
		for out := range m.OutputChannels {
			outputOwner[out] = m
		}
	}

	deps := make(map[*mscr.MSCR][]*mscr.MSCR)
	for _, m := range mscrs {
		seen := make(map[*mscr.MSCR]bool)
		for _, in := range m.Inputs() {
			owner, ok := outputOwner[in]
			if !ok || owner == m || seen[owner] {
				continue
			}
			seen[owner] = true
			deps[m] = append(deps[m], owner)
		}
	}

	scheduled := make(map[*mscr.MSCR]bool, len(mscrs))
	remaining := append([]*mscr.MSCR(nil), mscrs...)
	var stages [][]*mscr.MSCR

	for len(remaining) > 0 {
		var stage, next []*mscr.MSCR
		for _, m := range remaining {
			ready := true
			for _, d := range deps[m] {
				if !scheduled[d] {
					ready = false
					break
				}
			}
			if ready {
				stage = append(stage, m)
			} else {
				next = append(next, m)
			}
		}
		if len(stage) == 0 {
			return nil, graph.NewError(graph.InvariantViolated, "MSCR dependency graph is cyclic")
		}
		for _, m := range stage {
			scheduled[m] = true
		}
		stages = append(stages, stage)
		remaining = next
	}

	return chain(stages), nil
}

func chain(stages [][]*mscr.MSCR) *ExecutionStep {
	head := &ExecutionStep{MSCRSteps: stages[0]}
	cur := head
	for _, s := range stages[1:] {
		cur.NextStep = &ExecutionStep{MSCRSteps: s}
		cur = cur.NextStep
	}
	return head
}
