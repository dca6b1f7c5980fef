package graph

// EmitFn is the callback a DoFn uses to produce zero or more elements
// for each input element it processes.
type EmitFn func(v any)

// DoFn is the opaque element-transforming function every ParallelDo (and
// its CombineValues refinement) wraps. colgraph never looks inside a
// DoFn - composing them (fuseParallelDos) is the only operation it does
// on one, and that operation only calls the function, never reads it.
type DoFn func(v any, emit EmitFn)

// Opcode tags the variant of a deferred op, in the spirit of Beam Go's
// graph.Opcode (core/graph/edge.go) - a string enum switched on
// throughout, rather than a Go interface with one implementation per
// variant. A tagged struct keeps the rewrite passes' "is this a
// ParallelDo chain" checks a single field read instead of a type switch
// per call, and matches how Optimizer.java tests instanceof across a
// closed, spec-enumerated set of variants.
type Opcode string

const (
	OpParallelDo          Opcode = "ParallelDo"
	OpGroupByKey          Opcode = "GroupByKey"
	OpFlatten             Opcode = "Flatten"
	OpMultipleParallelDo  Opcode = "MultipleParallelDo"
	OpOneToOne            Opcode = "OneToOne"
)

// MultiDest pairs one of a MultipleParallelDo's independent functions with
// the collection it feeds. Go funcs aren't comparable, so this is a slice
// entry rather than a map keyed on the function - order preserved, same
// as the LinkedHashMap-style iteration Optimizer.java relies on when it
// walks a MultipleParallelDo's dests.
type MultiDest struct {
	Fn   DoFn
	Dest CollectionHandle
}

// Op is every deferred op variant named in the spec, discriminated by
// Kind. Only the fields relevant to Kind are populated:
//
//	ParallelDo(fn, origin, dest)         Origins[0], Dest, Fn, IsCombine
//	GroupByKey(origin, dest)             Origins[0], Dest
//	Flatten(origins[], dest)             Origins, Dest
//	MultipleParallelDo(origin, dests)    Origins[0], Dests
//	OneToOneOp(origin, dest)             Origins[0], Dest
//
// IsCombine is the CombineValues discriminant on ParallelDo (spec §9:
// "best modeled as a boolean discriminant... checked before the generic
// ParallelDo arm").
type Op struct {
	Handle    OpHandle
	Kind      Opcode
	Origins   []CollectionHandle
	Dest      CollectionHandle
	Dests     []MultiDest
	Fn        DoFn
	IsCombine bool
}

// IsParallelDoFamily reports whether op should be matched by the rewrite
// passes as "a ParallelDo", per spec §3: "CombineValues is a refinement
// of ParallelDo and is matched as a ParallelDo except where explicitly
// distinguished."
func (op *Op) IsParallelDoFamily() bool { return op.Kind == OpParallelDo }
