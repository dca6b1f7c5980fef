package graph

// Workflow stands in for the external PlumeWorkflow collaborator (spec
// §6): something that lazily builds a graph against an Arena and can
// report its source and sink collections once built. colgraph never
// implements this - real callers walk their own user code to produce
// the initial DAG. The demo command and the tests do not use it either;
// they build their graphs directly with the functions below.
type Workflow interface {
	Build(g *Arena) error
	Inputs() []CollectionHandle
	Outputs() []CollectionHandle
}

// The functions below are the smallest possible surface for constructing
// a graph by hand. They are deliberately thin - one NewCollection plus
// one NewOp each - and are not a replacement for a real collection-builder
// API (spec §1 places that out of scope entirely); they exist only to
// give the optimizer's own tests and cmd/colgraph-demo something to
// optimize, the same role mini-Spark's parser_test.go setupJob helper
// plays for the scheduler tests.

// Do applies fn element-wise to origin and returns the resulting
// collection, i.e. builds a ParallelDo(fn, origin, dest).
func Do(g *Arena, origin CollectionHandle, elemType ElementType, fn DoFn) CollectionHandle {
	dest := g.NewCollection(elemType, false)
	must(g.NewOp(Op{Kind: OpParallelDo, Origins: []CollectionHandle{origin}, Dest: dest, Fn: fn}))
	return dest
}

// GroupByKeyOf shuffles origin's key/value pairs into key->sequence
// pairs, i.e. builds a GroupByKey(origin, dest). origin's element type
// must be a pair; the grouped output re-pairs the key with a sequence
// element type of the same value type.
func GroupByKeyOf(g *Arena, origin CollectionHandle) CollectionHandle {
	et := g.Collection(origin).ElemType
	dest := g.NewCollection(PairOf(*et.Key, ElementType{Name: "seq<" + et.Value.Name + ">"}), false)
	must(g.NewOp(Op{Kind: OpGroupByKey, Origins: []CollectionHandle{origin}, Dest: dest}))
	return dest
}

// Combine applies fn as a per-key reduction directly downstream of a
// GroupByKey, i.e. builds a CombineValues(fn, origin, dest) - a
// ParallelDo with IsCombine set. Legal only when origin was itself
// produced by a GroupByKey (the same precondition fuseParallelDos
// checks before deciding whether to fuse across it).
func Combine(g *Arena, origin CollectionHandle, elemType ElementType, fn DoFn) CollectionHandle {
	dest := g.NewCollection(elemType, false)
	must(g.NewOp(Op{Kind: OpParallelDo, Origins: []CollectionHandle{origin}, Dest: dest, Fn: fn, IsCombine: true}))
	return dest
}

// FlattenOf unions same-typed origins into one collection.
func FlattenOf(g *Arena, elemType ElementType, origins ...CollectionHandle) CollectionHandle {
	dest := g.NewCollection(elemType, false)
	must(g.NewOp(Op{Kind: OpFlatten, Origins: origins, Dest: dest}))
	return dest
}

// OneToOne installs a transparent structural passthrough, the framework
// op every rewrite pass sees through without modifying.
func OneToOne(g *Arena, origin CollectionHandle) CollectionHandle {
	dest := g.NewCollection(g.Collection(origin).ElemType, false)
	must(g.NewOp(Op{Kind: OpOneToOne, Origins: []CollectionHandle{origin}, Dest: dest}))
	return dest
}

// Materialize flags h as a graph boundary: rewrites stop at it rather
// than traversing past it, per spec §3.
func Materialize(g *Arena, h CollectionHandle) {
	g.Collection(h).Materialized = true
}

func must(_ OpHandle, err error) {
	if err != nil {
		panic(err)
	}
}
