package optimize

import "colgraph/internal/graph"

// removeUnnecessaryOps prunes branches of the graph that can never reach
// one of outputs, walking top-down from an input - ported from
// Optimizer.removeUnnecessaryOps in the original Java. It returns true
// when input itself became dead, so a caller one level up the recursion
// can drop the op that produced it: either input had no consumers to
// begin with and is not a requested output, or it had consumers and none
// survived the prune. In the second case input is reported dead even
// when it is itself a requested output.
//
// A GroupByKey consuming op is never evaluated for removal: the Java
// original's instanceof chain has no branch for GroupByKey, so a dead
// branch that happens to sit behind a shuffle is never pruned. That
// asymmetry is preserved here rather than "fixed", since the shuffle
// boundary is exactly where MSCR formation needs every input edge to
// still be present.
func removeUnnecessaryOps(g *graph.Arena, input graph.CollectionHandle, outputs map[graph.CollectionHandle]bool) bool {
	col := g.Collection(input)
	if len(col.Consumers) == 0 {
		return !outputs[input]
	}

	kept := make([]graph.OpHandle, 0, len(col.Consumers))
	for _, h := range col.Consumers {
		op := g.Op(h)
		remove := false
		switch op.Kind {
		case graph.OpOneToOne, graph.OpParallelDo, graph.OpFlatten:
			remove = removeUnnecessaryOps(g, op.Dest, outputs)
		case graph.OpMultipleParallelDo:
			remove = true
			for _, d := range op.Dests {
				if !removeUnnecessaryOps(g, d.Dest, outputs) {
					remove = false
				}
			}
		case graph.OpGroupByKey:
			remove = false
		}
		if !remove {
			kept = append(kept, h)
		}
	}
	col.Consumers = kept
	return len(kept) == 0
}
