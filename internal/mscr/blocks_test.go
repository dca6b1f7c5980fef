package mscr_test

import (
	"testing"

	"colgraph/internal/graph"
	"colgraph/internal/mscr"

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

func TestGetMSCRBlocksBuildsOneBlockPerIndependentShuffle(t *testing.T) {
	g := graph.NewArena()
	et := graph.ElementType{Name: "int"}
	pairType := graph.PairOf(graph.ElementType{Name: "k"}, et)

	x := g.NewCollection(et, true)
	sX := graph.Do(g, x, pairType, func(v any, emit graph.EmitFn) { emit(graph.KV{Key: 0, Value: v}) })
	gbk := graph.GroupByKeyOf(g, sX)
	out := graph.Combine(g, gbk, et, sum)
	graph.Materialize(g, out)

	blocks, err := mscr.GetMSCRBlocks(g, []graph.CollectionHandle{out})
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	m := blocks[0]
	require.True(t, m.HasInput(x))
	require.False(t, m.HasInput(out))
	require.Contains(t, m.OutputChannels, out)
	require.Equal(t, gbk, g.Op(m.OutputChannels[out].ShuffleOp).Dest)
}

func TestGetMSCRBlocksUnionsShufflesSharingASource(t *testing.T) {
	g := graph.NewArena()
	et := graph.ElementType{Name: "int"}
	pairType := graph.PairOf(graph.ElementType{Name: "k"}, et)

	x := g.NewCollection(et, true)

	sA := graph.Do(g, x, pairType, func(v any, emit graph.EmitFn) { emit(graph.KV{Key: 0, Value: v}) })
	gbkA := graph.GroupByKeyOf(g, sA)
	outA := graph.Combine(g, gbkA, et, sum)
	graph.Materialize(g, outA)

	sB := graph.Do(g, x, pairType, func(v any, emit graph.EmitFn) { emit(graph.KV{Key: 1, Value: v}) })
	gbkB := graph.GroupByKeyOf(g, sB)
	outB := graph.Combine(g, gbkB, et, sum)
	graph.Materialize(g, outB)

	blocks, err := mscr.GetMSCRBlocks(g, []graph.CollectionHandle{outA, outB})
	require.NoError(t, err)
	require.Len(t, blocks, 1, "both shuffles read from x and must land in one MSCR")

	m := blocks[0]
	require.True(t, m.HasInput(x))
	require.Contains(t, m.OutputChannels, outA)
	require.Contains(t, m.OutputChannels, outB)
}

func TestGetMSCRBlocksKeepsUnrelatedShufflesSeparate(t *testing.T) {
	g := graph.NewArena()
	et := graph.ElementType{Name: "int"}
	pairType := graph.PairOf(graph.ElementType{Name: "k"}, et)

	x := g.NewCollection(et, true)
	y := g.NewCollection(et, true)

	sX := graph.Do(g, x, pairType, func(v any, emit graph.EmitFn) { emit(graph.KV{Key: 0, Value: v}) })
	gbkX := graph.GroupByKeyOf(g, sX)
	outX := graph.Combine(g, gbkX, et, sum)
	graph.Materialize(g, outX)

	sY := graph.Do(g, y, pairType, func(v any, emit graph.EmitFn) { emit(graph.KV{Key: 0, Value: v}) })
	gbkY := graph.GroupByKeyOf(g, sY)
	outY := graph.Combine(g, gbkY, et, sum)
	graph.Materialize(g, outY)

	blocks, err := mscr.GetMSCRBlocks(g, []graph.CollectionHandle{outX, outY})
	require.NoError(t, err)
	require.Len(t, blocks, 2)
}
