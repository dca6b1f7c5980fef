// Package interpret runs a graph.Arena against concrete input elements
// entirely in memory, so property tests can check that a rewrite produced
// a graph computing the same result as the one it replaced. It is not a
// production execution engine - that stays external per the spec's
// non-goals - and its dispatch-by-Opcode switch is grounded on the same
// idiom mini-Spark's executeTaskLogic uses to dispatch a task by
// Operation.Type (internal/worker/executor.go).
package interpret

import "colgraph/internal/graph"

// Run evaluates every collection in wanted, memoizing shared subgraphs,
// and returns the elements each one produced. inputs supplies the element
// stream for every collection with no producing op.
func Run(g *graph.Arena, inputs map[graph.CollectionHandle][]any, wanted []graph.CollectionHandle) map[graph.CollectionHandle][]any {
	memo := make(map[graph.CollectionHandle][]any)
	results := make(map[graph.CollectionHandle][]any, len(wanted))
	for _, h := range wanted {
		results[h] = compute(g, h, inputs, memo)
	}
	return results
}

func compute(g *graph.Arena, h graph.CollectionHandle, inputs map[graph.CollectionHandle][]any, memo map[graph.CollectionHandle][]any) []any {
	if v, ok := memo[h]; ok {
		return v
	}

	col := g.Collection(h)
	if col.Producer == (graph.OpHandle{}) {
		v := inputs[h]
		memo[h] = v
		return v
	}

	op := g.Op(col.Producer)
	var out []any
	emit := func(v any) { out = append(out, v) }

	switch op.Kind {
	case graph.OpParallelDo:
		for _, e := range compute(g, op.Origins[0], inputs, memo) {
			op.Fn(e, emit)
		}
	case graph.OpOneToOne:
		out = append(out, compute(g, op.Origins[0], inputs, memo)...)
	case graph.OpFlatten:
		for _, origin := range op.Origins {
			out = append(out, compute(g, origin, inputs, memo)...)
		}
	case graph.OpGroupByKey:
		out = groupByKey(compute(g, op.Origins[0], inputs, memo))
	case graph.OpMultipleParallelDo:
		src := compute(g, op.Origins[0], inputs, memo)
		for _, d := range op.Dests {
			if d.Dest != h {
				continue
			}
			for _, e := range src {
				d.Fn(e, emit)
			}
			break
		}
	}

	memo[h] = out
	return out
}

func groupByKey(src []any) []any {
	var order []any
	groups := make(map[any][]any)
	for _, e := range src {
		kv, ok := e.(graph.KV)
		if !ok {
			continue
		}
		if _, seen := groups[kv.Key]; !seen {
			order = append(order, kv.Key)
		}
		groups[kv.Key] = append(groups[kv.Key], kv.Value)
	}
	out := make([]any, 0, len(order))
	for _, k := range order {
		out = append(out, graph.KV{Key: k, Value: groups[k]})
	}
	return out
}
