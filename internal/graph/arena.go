package graph

// Collection is a lazy parallel collection node. Producer is the zero
// OpHandle when the collection has no producing op (a genuine input).
// Consumers is ordered and never holds a handle twice, maintaining spec
// invariant 1 (producer/consumer edges are symmetric) and invariant 2
// (at most one producer).
type Collection struct {
	Handle       CollectionHandle
	ElemType     ElementType
	Producer     OpHandle
	Consumers    []OpHandle
	Materialized bool
}

func (c *Collection) hasConsumer(op OpHandle) bool {
	for _, h := range c.Consumers {
		if h == op {
			return true
		}
	}
	return false
}

// Arena owns every Collection and Op created against it. Handles are
// only valid against the Arena that minted them - one owning map per
// node kind, no cross-references outside it, the same single-owner shape
// as mini-Spark's JobStore (internal/storage/memory.go) rather than a
// web of pointers each node manages itself.
//
// Arena is not safe for concurrent use. The optimizer is single-threaded
// by design (see the concurrency model in SPEC_FULL.md §6); callers must
// not mutate an Arena while Optimize is running against it.
type Arena struct {
	collections map[CollectionHandle]*Collection
	ops         map[OpHandle]*Op
}

func NewArena() *Arena {
	return &Arena{
		collections: make(map[CollectionHandle]*Collection),
		ops:         make(map[OpHandle]*Op),
	}
}

// NewCollection allocates a fresh collection and returns its handle.
func (a *Arena) NewCollection(elemType ElementType, materialized bool) CollectionHandle {
	h := newCollectionHandle()
	a.collections[h] = &Collection{
		Handle:       h,
		ElemType:     elemType,
		Materialized: materialized,
	}
	return h
}

// Collection dereferences a handle. It panics on an unknown handle - a
// handle from a foreign Arena or a stale reference is a programmer
// error, not a runtime condition callers should branch on.
func (a *Arena) Collection(h CollectionHandle) *Collection {
	c, ok := a.collections[h]
	if !ok {
		panic("graph: unknown collection handle " + h.String())
	}
	return c
}

func (a *Arena) Op(h OpHandle) *Op {
	op, ok := a.ops[h]
	if !ok {
		panic("graph: unknown op handle " + h.String())
	}
	return op
}

func (a *Arena) IsMaterialized(h CollectionHandle) bool {
	return a.Collection(h).Materialized
}

// AddConsumer records op as reading col. Adding the same op twice is a
// no-op - the ordered, duplicate-free list is an invariant colgraph
// maintains internally, not a contract callers must satisfy themselves.
func (a *Arena) AddConsumer(col CollectionHandle, op OpHandle) {
	c := a.Collection(col)
	if c.hasConsumer(op) {
		return
	}
	c.Consumers = append(c.Consumers, op)
}

// RemoveConsumer detaches op from col's consumer list. Removing an op
// that isn't there is a programmer error (spec §4.1) and is reported as
// such rather than silently ignored.
func (a *Arena) RemoveConsumer(col CollectionHandle, op OpHandle) error {
	c := a.Collection(col)
	for i, h := range c.Consumers {
		if h == op {
			c.Consumers = append(c.Consumers[:i], c.Consumers[i+1:]...)
			return nil
		}
	}
	return newError(GraphInvariant, "remove of absent consuming op").withCollection(col).withOp(op)
}

// attachProducer installs op as dest's sole producing op, asserting
// invariant 2. Attempting a second producer is a programmer error.
func (a *Arena) attachProducer(dest CollectionHandle, op OpHandle) error {
	c := a.Collection(dest)
	if c.Producer != (OpHandle{}) {
		return newError(GraphInvariant, "collection already has a producing op").withCollection(dest).withOp(op)
	}
	c.Producer = op
	return nil
}

// detachProducer clears dest's producer, but only if op is actually the
// current producer - guards against a stale caller clearing someone
// else's edge.
func (a *Arena) detachProducer(dest CollectionHandle, op OpHandle) {
	c := a.Collection(dest)
	if c.Producer == op {
		c.Producer = OpHandle{}
	}
}

// NewOp allocates op.Handle, registers it, and wires every edge it
// implies: each origin gains op as a consumer, and each destination
// (Dest, or every entry of Dests for MultipleParallelDo) gets op
// attached as its sole producer. This is the "install" half of the
// graph-model contract in spec §4.1 - Attach plus Add-consumer, done
// together for a brand-new op instead of as two calls a rewrite pass
// could forget to pair up.
func (a *Arena) NewOp(op Op) (OpHandle, error) {
	if len(op.Origins) == 0 {
		return OpHandle{}, newError(GraphInvariant, "op has no origin")
	}
	h := newOpHandle()
	op.Handle = h

	dests := op.destinations()
	if len(dests) == 0 {
		return OpHandle{}, newError(GraphInvariant, "op has no destination").withOp(h)
	}
	for _, origin := range op.Origins {
		for _, dest := range dests {
			if origin == dest {
				return OpHandle{}, newError(GraphInvariant, "op has a self-loop").withCollection(origin).withOp(h)
			}
		}
	}

	a.ops[h] = &op
	for _, origin := range op.Origins {
		a.AddConsumer(origin, h)
	}
	for _, dest := range dests {
		if err := a.attachProducer(dest, h); err != nil {
			return OpHandle{}, err
		}
	}
	return h, nil
}

// destinations lists every collection this op produces into, unifying
// the single-Dest and MultipleParallelDo{Dests} shapes for callers that
// don't care which.
func (op *Op) destinations() []CollectionHandle {
	if op.Kind == OpMultipleParallelDo {
		dests := make([]CollectionHandle, len(op.Dests))
		for i, d := range op.Dests {
			dests[i] = d.Dest
		}
		return dests
	}
	if op.Dest == (CollectionHandle{}) {
		return nil
	}
	return []CollectionHandle{op.Dest}
}

// DetachOp removes op from the graph entirely: it stops being a consumer
// of every origin, and stops being the producer of every destination.
// The op itself is left in the arena (still dereferenceable, e.g. by a
// rewrite that just replaced it and wants to log what it discarded) but
// unreachable from any collection.
func (a *Arena) DetachOp(h OpHandle) error {
	op := a.Op(h)
	for _, origin := range op.Origins {
		if err := a.RemoveConsumer(origin, h); err != nil {
			return err
		}
	}
	for _, dest := range op.destinations() {
		a.detachProducer(dest, h)
	}
	return nil
}

// ReplaceOrigin redirects op's edge from old to fresh: op stops
// consuming old and starts consuming fresh, and op.Origins is updated in
// place. Used by rewrites that keep an op but move where it reads from
// (spec §4.1's "Replace edge").
func (a *Arena) ReplaceOrigin(h OpHandle, old, fresh CollectionHandle) error {
	op := a.Op(h)
	found := false
	for i, o := range op.Origins {
		if o == old {
			op.Origins[i] = fresh
			found = true
			break
		}
	}
	if !found {
		return newError(GraphInvariant, "op does not have the given origin").withCollection(old).withOp(h)
	}
	if err := a.RemoveConsumer(old, h); err != nil {
		return err
	}
	a.AddConsumer(fresh, h)
	return nil
}

// ReplaceProducer sets dest's producer to fresh unconditionally, in place
// of whatever produced it before (if anything). fuseParallelDos and
// fuseSiblingParallelDos call it with the zero OpHandle to clear a
// discarded op's producer edge, so that the replacement op's NewOp can
// attach itself to the same destination collection.
func (a *Arena) ReplaceProducer(dest CollectionHandle, fresh OpHandle) {
	a.Collection(dest).Producer = fresh
}
