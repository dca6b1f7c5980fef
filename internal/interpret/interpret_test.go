package interpret_test

import (
	"fmt"
	"sort"
	"testing"

	"colgraph/internal/graph"
	"colgraph/internal/interpret"

	"github.com/google/go-cmp/cmp"
)

func canonical(vs []any) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = fmt.Sprintf("%#v", v)
	}
	sort.Strings(out)
	return out
}

func TestRunEvaluatesParallelDoFlattenAndGroupByKey(t *testing.T) {
	g := graph.NewArena()
	et := graph.ElementType{Name: "int"}
	pairType := graph.PairOf(graph.ElementType{Name: "parity"}, et)

	a := g.NewCollection(et, true)
	b := g.NewCollection(et, true)
	flat := graph.FlattenOf(g, et, a, b)
	paired := graph.Do(g, flat, pairType, func(v any, emit graph.EmitFn) {
		emit(graph.KV{Key: v.(int) % 2, Value: v})
	})
	grouped := graph.GroupByKeyOf(g, paired)

	results := interpret.Run(g, map[graph.CollectionHandle][]any{
		a: {1, 2},
		b: {3, 4},
	}, []graph.CollectionHandle{grouped})

	want := canonical([]any{
		graph.KV{Key: 1, Value: []any{1, 3}},
		graph.KV{Key: 0, Value: []any{2, 4}},
	})
	got := canonical(results[grouped])
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("grouped output mismatch (-want +got):\n%s", diff)
	}
}

func TestMultisetEqualIgnoresOrder(t *testing.T) {
	if !interpret.MultisetEqual([]any{1, 2, 2}, []any{2, 1, 2}) {
		t.Fatalf("expected equal multisets regardless of order")
	}
	if interpret.MultisetEqual([]any{1, 2}, []any{1, 2, 2}) {
		t.Fatalf("expected unequal multisets to be reported as unequal")
	}
}
