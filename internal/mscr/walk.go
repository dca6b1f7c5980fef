package mscr

import "colgraph/internal/graph"

// walkReducerSide climbs from a candidate MSCR output up through its
// post-shuffle ParallelDo/CombineValues chain until it reaches the
// GroupByKey feeding it. Materialized collections along the way are
// climbed through like any other. It returns ok=false if that walk
// reaches a collection with no producing op, a Flatten, or a
// MultipleParallelDo before finding one - the "no support for bypass inputs into an MSCR"
// limitation spec §4.4/§9 calls out: a caller who wants an MSCR to emit
// an input's value untouched has to route it through an identity
// GroupByKey first.
func walkReducerSide(g *graph.Arena, start graph.CollectionHandle) (gbk graph.OpHandle, chain []graph.OpHandle, ok bool) {
	cur := start
	for {
		col := g.Collection(cur)
		if col.Producer == (graph.OpHandle{}) {
			return graph.OpHandle{}, nil, false
		}
		op := g.Op(col.Producer)
		switch op.Kind {
		case graph.OpGroupByKey:
			return op.Handle, chain, true
		case graph.OpParallelDo, graph.OpOneToOne:
			chain = append([]graph.OpHandle{op.Handle}, chain...)
			cur = op.Origins[0]
		default:
			return graph.OpHandle{}, nil, false
		}
	}
}

// walkMapSide climbs from a GroupByKey's origin up through
// ParallelDo/Flatten/MultipleParallelDo/OneToOne ops, collecting every
// materialized collection, true input, or output of another GroupByKey it
// reaches - the map-side source set spec §4.4 rule 2 unions shuffles over.
// A GroupByKey acts as a boundary rather than something to climb past:
// crossing it would merge two genuinely independent MSCR stages into one.
func walkMapSide(g *graph.Arena, start graph.CollectionHandle, sources map[graph.CollectionHandle]bool) {
	if g.IsMaterialized(start) {
		sources[start] = true
		return
	}
	col := g.Collection(start)
	if col.Producer == (graph.OpHandle{}) {
		sources[start] = true
		return
	}
	op := g.Op(col.Producer)
	switch op.Kind {
	case graph.OpParallelDo, graph.OpOneToOne, graph.OpMultipleParallelDo:
		walkMapSide(g, op.Origins[0], sources)
	case graph.OpFlatten:
		for _, origin := range op.Origins {
			walkMapSide(g, origin, sources)
		}
	case graph.OpGroupByKey:
		sources[start] = true
	}
}
