package optimize

import "colgraph/internal/graph"

// sinkFlattens pushes a Flatten below the single ParallelDo that consumes
// it, so the ParallelDo's function runs once per input branch instead of
// once over the flattened union - ported from Optimizer.sinkFlattens in
// the original Java (Optimizer.java), which recurses upward from a root
// collection applying the rewrite wherever its precondition holds.
//
// The Java original casts output's producing op straight to Flatten once
// it fails the OneToOneOp/ParallelDo checks, which throws a
// ClassCastException if that op is actually a GroupByKey or
// MultipleParallelDo (or if output has no producer at all, i.e. is an
// input). Go has no unchecked downcast, so the switch below has to name
// every Opcode; the GroupByKey/MultipleParallelDo/no-producer arms simply
// stop the recursion rather than crash, which is a defensive Go-shaped
// adaptation of the same reachability the Java relies on the caller never
// violating.
func sinkFlattens(g *graph.Arena, output graph.CollectionHandle) error {
	if g.IsMaterialized(output) {
		return nil
	}
	col := g.Collection(output)
	if col.Producer == (graph.OpHandle{}) {
		return nil
	}
	op := g.Op(col.Producer)

	switch op.Kind {
	case graph.OpOneToOne, graph.OpParallelDo:
		return sinkFlattens(g, op.Origins[0])
	case graph.OpFlatten:
		// fall through to the sinking logic below.
	default: // GroupByKey, MultipleParallelDo
		return nil
	}

	consumers := col.Consumers
	if len(consumers) != 1 {
		for _, origin := range op.Origins {
			if err := sinkFlattens(g, origin); err != nil {
				return err
			}
		}
		return nil
	}

	downOp := g.Op(consumers[0])
	if downOp.Kind != graph.OpParallelDo {
		return nil
	}

	return applySinkFlatten(g, op, downOp)
}

// applySinkFlatten rewrites Flatten(U1..Un) -> P(f) into
// Flatten(P(f,U1)..P(f,Un)), per spec §4.3's "sink a Flatten below a
// ParallelDo" transform.
func applySinkFlatten(g *graph.Arena, flattenOp, pDo *graph.Op) error {
	fn := pDo.Fn
	finalDest := pDo.Dest
	destType := g.Collection(finalDest).ElemType

	newOrigins := make([]graph.CollectionHandle, len(flattenOp.Origins))
	for i, u := range flattenOp.Origins {
		if err := sinkFlattens(g, u); err != nil {
			return err
		}
		v := g.NewCollection(destType, false)
		if err := g.RemoveConsumer(u, flattenOp.Handle); err != nil {
			return err
		}
		if _, err := g.NewOp(graph.Op{
			Kind:    graph.OpParallelDo,
			Origins: []graph.CollectionHandle{u},
			Dest:    v,
			Fn:      fn,
		}); err != nil {
			return err
		}
		newOrigins[i] = v
	}

	if err := g.DetachOp(pDo.Handle); err != nil {
		return err
	}
	_, err := g.NewOp(graph.Op{Kind: graph.OpFlatten, Origins: newOrigins, Dest: finalDest})
	return err
}
