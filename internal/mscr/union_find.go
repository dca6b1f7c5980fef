package mscr

import "colgraph/internal/graph"

// unionFind groups GroupByKey ops into the equivalence classes that
// become MSCRs: two shuffles land in the same class exactly when their
// map-side source sets intersect (spec §4.4 rule 2).
type unionFind struct {
	parent map[graph.OpHandle]graph.OpHandle
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[graph.OpHandle]graph.OpHandle)}
}

func (u *unionFind) add(h graph.OpHandle) {
	if _, ok := u.parent[h]; !ok {
		u.parent[h] = h
	}
}

func (u *unionFind) find(h graph.OpHandle) graph.OpHandle {
	if u.parent[h] == h {
		return h
	}
	root := u.find(u.parent[h])
	u.parent[h] = root
	return root
}

func (u *unionFind) union(a, b graph.OpHandle) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}
