package graph

// ElementKind distinguishes a plain element type from a key/value pair,
// mirroring the PType.Kind discriminant in the Plume type hierarchy
// (types/PairType.java) closely enough to tell a pair type from a plain
// one without knowing the concrete Go types involved -
// those stay opaque to colgraph per the builder-is-external non-goal.
type ElementKind int

const (
	ElementSingle ElementKind = iota
	ElementPair
)

// ElementType is the opaque element-type descriptor referenced throughout
// the spec. colgraph never interprets Name and never compares types:
// sinkFlattens copies the replaced op's destination type onto the
// collections it creates, and GroupByKeyOf reads Key and Value to build
// its output type. No pass or builder checks Kind.
type ElementType struct {
	Name  string
	Kind  ElementKind
	Key   *ElementType
	Value *ElementType
}

// PairOf builds a pair element type over the given key and value types,
// the shape GroupByKey produces and CombineValues consumes.
func PairOf(key, value ElementType) ElementType {
	k, v := key, value
	return ElementType{Kind: ElementPair, Key: &k, Value: &v}
}

func (t ElementType) IsPair() bool { return t.Kind == ElementPair }

// KV is the concrete runtime element colgraph expects to flow through a
// pair-typed collection: DoFns feeding a GroupByKey emit these, and a
// GroupByKey's dest carries them back out with Value replaced by the
// grouped sequence. ElementType itself stays a type descriptor only
// (spec §3: colgraph never interprets element values); KV is the one
// concession to a concrete shape, needed because Go has no comparable
// map key convention short of stating one.
type KV struct {
	Key   any
	Value any
}
