// Package mscr forms MapShuffleCombineReduce units from a rewritten
// dataflow graph, the shape apache-beam's Go SDK calls a "CoGBK bundle"
// at the edge level (sdks/go/pkg/beam/core/graph) and the original Plume
// optimizer builds explicitly in MSCR.java - this package is the Go
// realization of that latter type, generalized from one output collection
// to the many an MSCR can multiplex through independent output channels.
package mscr

import (
	"sort"

	"colgraph/internal/graph"
)

// OutputChannel is one MSCR output: the terminal collection, the
// GroupByKey that shuffles into it, and the chain of post-shuffle
// ParallelDo/CombineValues ops (nearest-shuffle first) that reduce the
// grouped values down to Output.
type OutputChannel struct {
	Output    graph.CollectionHandle
	ShuffleOp graph.OpHandle
	Reducer   []graph.OpHandle
}

// MSCR is the maximal connected set of operators centered on one or more
// GroupByKeys that share a map-side source collection, per spec §4.4.
// Its zero value is not usable; construct one with GetMSCRBlocks.
type MSCR struct {
	inputs         map[graph.CollectionHandle]bool
	OutputChannels map[graph.CollectionHandle]*OutputChannel
}

func newMSCR() *MSCR {
	return &MSCR{
		inputs:         make(map[graph.CollectionHandle]bool),
		OutputChannels: make(map[graph.CollectionHandle]*OutputChannel),
	}
}

// HasInput reports whether c is one of this MSCR's map-side source
// collections, mirroring MSCR.java's hasInput/inputs surface.
func (m *MSCR) HasInput(c graph.CollectionHandle) bool { return m.inputs[c] }

func (m *MSCR) addInput(c graph.CollectionHandle) { m.inputs[c] = true }

// Inputs lists this MSCR's map-side source collections in a stable order.
func (m *MSCR) Inputs() []graph.CollectionHandle {
	out := make([]graph.CollectionHandle, 0, len(m.inputs))
	for c := range m.inputs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
