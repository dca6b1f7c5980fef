package graph

import "github.com/google/uuid"

// CollectionHandle and OpHandle are stable, comparable identities for the
// nodes of the graph. mini-Spark mints uuid.New().String() ids for tasks
// and jobs that cross the master/worker boundary; here everything stays
// in one process, so we keep the raw uuid.UUID instead of stringifying it -
// still comparable, still printable, no allocation per handle.
type CollectionHandle uuid.UUID

func (h CollectionHandle) String() string { return uuid.UUID(h).String() }

type OpHandle uuid.UUID

func (h OpHandle) String() string { return uuid.UUID(h).String() }

func newCollectionHandle() CollectionHandle { return CollectionHandle(uuid.New()) }

func newOpHandle() OpHandle { return OpHandle(uuid.New()) }
