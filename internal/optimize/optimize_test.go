package optimize

import (
	"testing"

	"colgraph/internal/graph"
	"colgraph/internal/interpret"

	"github.com/stretchr/testify/require"
)

func sum(v any, emit graph.EmitFn) {
	kv := v.(graph.KV)
	total := 0
	for _, e := range kv.Value.([]any) {
		total += e.(int)
	}
	emit(graph.KV{Key: kv.Key, Value: total})
}

func TestOptimizeRejectsEmptyInputsOrOutputs(t *testing.T) {
	g := graph.NewArena()
	x := g.NewCollection(graph.ElementType{Name: "int"}, true)

	_, err := Optimize(g, nil, []graph.CollectionHandle{x}, Options{})
	require.Error(t, err)
	gerr, ok := err.(*graph.Error)
	require.True(t, ok)
	require.Equal(t, graph.InvalidArgument, gerr.Kind)

	_, err = Optimize(g, []graph.CollectionHandle{x}, nil, Options{})
	require.Error(t, err)
}

func TestOptimizeSchedulesStagedMSCRs(t *testing.T) {
	g := graph.NewArena()
	et := graph.ElementType{Name: "int"}
	pairType := graph.PairOf(graph.ElementType{Name: "k"}, et)

	x := g.NewCollection(et, true)
	s1 := graph.Do(g, x, pairType, func(v any, emit graph.EmitFn) { emit(graph.KV{Key: v.(int) % 2, Value: v}) })
	gbk1 := graph.GroupByKeyOf(g, s1)
	y := graph.Combine(g, gbk1, et, sum)
	graph.Materialize(g, y)

	s2 := graph.Do(g, y, pairType, func(v any, emit graph.EmitFn) { emit(graph.KV{Key: v.(int) % 2, Value: v}) })
	gbk2 := graph.GroupByKeyOf(g, s2)
	z := graph.Combine(g, gbk2, et, sum)
	graph.Materialize(g, z)

	plan, err := Optimize(g, []graph.CollectionHandle{x}, []graph.CollectionHandle{y, z}, Options{})
	require.NoError(t, err)
	require.Len(t, plan.MSCRSteps, 1)
	require.NotNil(t, plan.NextStep)
	require.Len(t, plan.NextStep.MSCRSteps, 1)

	require.True(t, plan.MSCRSteps[0].HasInput(x))
	require.True(t, plan.NextStep.MSCRSteps[0].HasInput(y))
}

// TestOptimizePreservesSemanticsAcrossFusion runs the same map-only chain
// through the interpreter before and after the rewrite passes collapse it,
// checking the law spec §8 states for every rewrite: the observed output
// multiset for a fixed input is unchanged.
func TestOptimizePreservesSemanticsAcrossFusion(t *testing.T) {
	g := graph.NewArena()
	et := graph.ElementType{Name: "int"}
	a := g.NewCollection(et, true)
	doubled := graph.Do(g, a, et, double)
	tripled := graph.Do(g, doubled, et, func(v any, emit graph.EmitFn) { emit(v.(int) * 3) })
	sibling := graph.Do(g, doubled, et, addOne)

	inputVals := []any{1, 2, 3, 4}
	inputs := map[graph.CollectionHandle][]any{a: inputVals}
	before := interpret.Run(g, inputs, []graph.CollectionHandle{tripled, sibling})

	plan, err := Optimize(g, []graph.CollectionHandle{a}, []graph.CollectionHandle{tripled, sibling}, Options{})
	require.NoError(t, err)
	require.Nil(t, plan, "a map-only graph with no GroupByKey forms no MSCR")

	after := interpret.Run(g, inputs, []graph.CollectionHandle{tripled, sibling})
	require.True(t, interpret.MultisetEqual(before[tripled], after[tripled]))
	require.True(t, interpret.MultisetEqual(before[sibling], after[sibling]))
}
