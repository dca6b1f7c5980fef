package optimize

import "colgraph/internal/graph"

// fuseParallelDos composes a chain of two producer/consumer ParallelDos
// into one, eliminating the intermediate collection - ported from
// Optimizer.fuseParallelDos in the original Java. As with sinkFlattens,
// the Java cast to ParallelDo after the OneToOneOp/Flatten checks fail is
// replaced here by an explicit switch that stops recursion on
// GroupByKey/MultipleParallelDo/no-producer instead of throwing.
func fuseParallelDos(g *graph.Arena, output graph.CollectionHandle) error {
	if g.IsMaterialized(output) {
		return nil
	}
	col := g.Collection(output)
	if col.Producer == (graph.OpHandle{}) {
		return nil
	}
	p1Handle := col.Producer
	p1 := g.Op(p1Handle)

	switch p1.Kind {
	case graph.OpOneToOne:
		return fuseParallelDos(g, p1.Origins[0])
	case graph.OpFlatten:
		for _, origin := range p1.Origins {
			if err := fuseParallelDos(g, origin); err != nil {
				return err
			}
		}
		return nil
	case graph.OpParallelDo:
		// fall through to the fusion check below.
	default: // GroupByKey, MultipleParallelDo
		return nil
	}

	orig1 := p1.Origins[0]
	if g.IsMaterialized(orig1) {
		return nil
	}
	orig1Col := g.Collection(orig1)
	if orig1Col.Producer == (graph.OpHandle{}) {
		return nil
	}
	p2Handle := orig1Col.Producer
	p2 := g.Op(p2Handle)
	if p2.Kind != graph.OpParallelDo {
		return fuseParallelDos(g, orig1)
	}

	// A CombineValues sitting directly on top of a GroupByKey is the
	// per-key reduction step the MSCR formation pass expects to find
	// there; fusing it away would hide the shuffle boundary, so this
	// precondition (spec §4.3, scenario 3) refuses to fuse across it.
	if p2.IsCombine {
		gbkSrc := p2.Origins[0]
		if !g.IsMaterialized(gbkSrc) {
			if prod := g.Collection(gbkSrc).Producer; prod != (graph.OpHandle{}) && g.Op(prod).Kind == graph.OpGroupByKey {
				return fuseParallelDos(g, orig1)
			}
		}
	}

	f1, f2 := p1.Fn, p2.Fn
	composed := func(v any, emit graph.EmitFn) {
		f2(v, func(w any) { f1(w, emit) })
	}
	orig2 := p2.Origins[0]

	// Only the two consumer edges move; orig1's producer field is
	// deliberately left pointing at the discarded p2 rather than cleared.
	// orig1 is "orphaned" from a top-down walk (p2 no longer appears in
	// orig2's consumer list, so nothing reaches orig1 that way), but any
	// other consumer of orig1 - a sibling ParallelDo this call never
	// touched - still walks upward through orig1's producer field to p2
	// and on to orig2 correctly. Clearing orig1's producer here (as a
	// full detach of p2 would) would sever that sibling's path to its
	// real source instead of just this one output's.
	//
	// orig1 can have more than one ParallelDo consumer, each discovering
	// the same p2 independently as its own call unwinds up the tree; the
	// first one to run already removed p2 from orig2's consumer list, so
	// later ones skip a removal that's already happened rather than
	// erroring on it.
	if hasConsumer(g, orig2, p2Handle) {
		if err := g.RemoveConsumer(orig2, p2Handle); err != nil {
			return err
		}
	}
	if err := g.RemoveConsumer(orig1, p1Handle); err != nil {
		return err
	}
	g.ReplaceProducer(output, graph.OpHandle{})
	if _, err := g.NewOp(graph.Op{
		Kind:    graph.OpParallelDo,
		Origins: []graph.CollectionHandle{orig2},
		Dest:    output,
		Fn:      composed,
	}); err != nil {
		return err
	}
	return fuseParallelDos(g, output)
}

func hasConsumer(g *graph.Arena, col graph.CollectionHandle, op graph.OpHandle) bool {
	for _, h := range g.Collection(col).Consumers {
		if h == op {
			return true
		}
	}
	return false
}
