package mscr

import "colgraph/internal/graph"

// GetMSCRBlocks partitions a rewritten graph's requested outputs into
// MSCR units, per spec §4.4: every output is traced back to the
// GroupByKey shuffling into it, those shuffles' map-side source
// collections are computed, and any two shuffles sharing a source are
// merged into one MSCR. Outputs whose walk to a shuffle fails (the
// bypass-input limitation documented on walkReducerSide) are skipped -
// they simply belong to no MSCR, matching how the original optimizer
// never had a code path that would emit one.
func GetMSCRBlocks(g *graph.Arena, outputs []graph.CollectionHandle) ([]*MSCR, error) {
	type channel struct {
		output graph.CollectionHandle
		gbk    graph.OpHandle
		chain  []graph.OpHandle
	}

	var channels []channel
	for _, out := range outputs {
		gbk, chain, ok := walkReducerSide(g, out)
		if !ok {
			continue
		}
		channels = append(channels, channel{output: out, gbk: gbk, chain: chain})
	}

	uf := newUnionFind()
	var gbkOrder []graph.OpHandle
	gbkSources := make(map[graph.OpHandle]map[graph.CollectionHandle]bool)
	for _, ch := range channels {
		if _, ok := gbkSources[ch.gbk]; ok {
			continue
		}
		gbkOrder = append(gbkOrder, ch.gbk)
		uf.add(ch.gbk)
		sources := make(map[graph.CollectionHandle]bool)
		walkMapSide(g, g.Op(ch.gbk).Origins[0], sources)
		gbkSources[ch.gbk] = sources
	}

	sourceOwner := make(map[graph.CollectionHandle]graph.OpHandle)
	for gbk, sources := range gbkSources {
		for src := range sources {
			if owner, ok := sourceOwner[src]; ok {
				uf.union(owner, gbk)
			} else {
				sourceOwner[src] = gbk
			}
		}
	}

	classes := make(map[graph.OpHandle]*MSCR)
	var order []graph.OpHandle
	for _, gbk := range gbkOrder {
		root := uf.find(gbk)
		m, ok := classes[root]
		if !ok {
			m = newMSCR()
			classes[root] = m
			order = append(order, root)
		}
		for src := range gbkSources[gbk] {
			m.addInput(src)
		}
	}
	for _, ch := range channels {
		m := classes[uf.find(ch.gbk)]
		m.OutputChannels[ch.output] = &OutputChannel{
			Output:    ch.output,
			ShuffleOp: ch.gbk,
			Reducer:   ch.chain,
		}
	}

	result := make([]*MSCR, 0, len(order))
	for _, root := range order {
		result = append(result, classes[root])
	}
	return result, nil
}
