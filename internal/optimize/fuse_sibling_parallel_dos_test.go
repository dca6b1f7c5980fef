package optimize

import (
	"testing"

	"colgraph/internal/graph"

	"github.com/stretchr/testify/require"
)

func TestFuseSiblingParallelDosMergesIndependentConsumers(t *testing.T) {
	g := graph.NewArena()
	et := graph.ElementType{Name: "int"}
	src := g.NewCollection(et, true)
	d1 := graph.Do(g, src, et, double)
	d2 := graph.Do(g, src, et, addOne)

	require.NoError(t, fuseSiblingParallelDos(g, d1))

	srcCol := g.Collection(src)
	require.Len(t, srcCol.Consumers, 1)
	merged := g.Op(srcCol.Consumers[0])
	require.Equal(t, graph.OpMultipleParallelDo, merged.Kind)
	require.Len(t, merged.Dests, 2)
	require.Equal(t, merged.Handle, g.Collection(d1).Producer)
	require.Equal(t, merged.Handle, g.Collection(d2).Producer)
}

func TestFuseSiblingParallelDosSkipsLoneConsumer(t *testing.T) {
	g := graph.NewArena()
	et := graph.ElementType{Name: "int"}
	src := g.NewCollection(et, true)
	d1 := graph.Do(g, src, et, double)

	require.NoError(t, fuseSiblingParallelDos(g, d1))

	op := g.Op(g.Collection(d1).Producer)
	require.Equal(t, graph.OpParallelDo, op.Kind)
}

func TestFuseSiblingParallelDosPreservesNonParallelDoConsumerOrder(t *testing.T) {
	g := graph.NewArena()
	et := graph.ElementType{Name: "int"}
	pairType := graph.PairOf(graph.ElementType{Name: "k"}, et)
	src := g.NewCollection(pairType, true)

	gbk := graph.GroupByKeyOf(g, src)
	d1 := graph.Do(g, src, et, double)
	graph.Do(g, src, et, addOne)

	require.NoError(t, fuseSiblingParallelDos(g, d1))

	srcCol := g.Collection(src)
	require.Len(t, srcCol.Consumers, 2)
	require.Equal(t, g.Collection(gbk).Producer, srcCol.Consumers[0])
	require.Equal(t, graph.OpMultipleParallelDo, g.Op(srcCol.Consumers[1]).Kind)
}
