package optimize

import "colgraph/internal/graph"

// fuseSiblingParallelDos merges every ParallelDo reading the same
// collection into one MultipleParallelDo, so the shared input is scanned
// once regardless of how many independent functions read it - ported from
// Optimizer.fuseSiblingParallelDos in the original Java. The Java original
// also stops outright on a MultipleParallelDo (an already-fused group of
// siblings is left as-is, never re-grouped), which the switch below
// preserves as its own arm rather than folding into the GroupByKey/no-op
// default.
func fuseSiblingParallelDos(g *graph.Arena, output graph.CollectionHandle) error {
	if g.IsMaterialized(output) {
		return nil
	}
	col := g.Collection(output)
	if col.Producer == (graph.OpHandle{}) {
		return nil
	}
	op := g.Op(col.Producer)

	switch op.Kind {
	case graph.OpOneToOne:
		return fuseSiblingParallelDos(g, op.Origins[0])
	case graph.OpFlatten:
		for _, origin := range op.Origins {
			if err := fuseSiblingParallelDos(g, origin); err != nil {
				return err
			}
		}
		return nil
	case graph.OpMultipleParallelDo:
		return nil
	case graph.OpParallelDo:
		// fall through to the sibling scan below.
	default: // GroupByKey
		return nil
	}

	orig := op.Origins[0]
	origCol := g.Collection(orig)

	var siblings []graph.OpHandle
	for _, c := range origCol.Consumers {
		if g.Op(c).Kind == graph.OpParallelDo {
			siblings = append(siblings, c)
		}
	}
	if len(siblings) <= 1 {
		return fuseSiblingParallelDos(g, orig)
	}

	dests := make([]graph.MultiDest, len(siblings))
	for i, h := range siblings {
		sib := g.Op(h)
		dests[i] = graph.MultiDest{Fn: sib.Fn, Dest: sib.Dest}
	}
	for i, h := range siblings {
		if err := g.RemoveConsumer(orig, h); err != nil {
			return err
		}
		// Clear the sibling's stale producer edge before the merged op
		// claims it below - NewOp refuses to attach a producer over one
		// that's already set.
		g.ReplaceProducer(dests[i].Dest, graph.OpHandle{})
	}

	if _, err := g.NewOp(graph.Op{
		Kind:    graph.OpMultipleParallelDo,
		Origins: []graph.CollectionHandle{orig},
		Dests:   dests,
	}); err != nil {
		return err
	}
	return fuseSiblingParallelDos(g, orig)
}
