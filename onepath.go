// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd

// onepath follows whichever branch is non-zero at every node, preferring
// the high branch, and forces the corresponding literal -- producing some
// single satisfying cube with no claim to minimality. Linear in the depth
// of the diagram, so unlike the rest of the engine this needs no memo.
func (k *kernel) onepath(f edge) edge {
	if f.isConstant() {
		return f
	}
	level := k.levelOf(f)
	f0, f1 := k.childrenOf(f)
	if f1 != edgeZero {
		sub := k.pushref(k.onepath(f1))
		res := k.makeNode(level, edgeZero, sub)
		k.popref(1)
		return res
	}
	sub := k.pushref(k.onepath(f0))
	res := k.makeNode(level, sub, edgeZero)
	k.popref(1)
	return res
}

// Onepath returns some single path from f's root to the True leaf, encoded
// as a cube; f must not be the false constant.
func (k *kernel) Onepath(f *Node) *Node {
	e, ok := k.own(f)
	if !ok {
		return k.wrap(edgeError)
	}
	if e.isSentinel() {
		return k.wrap(e)
	}
	if e == edgeZero {
		return k.wrap(k.seterror("onepath: f is the false constant"))
	}
	return k.wrap(k.onepath(e))
}

// pathLenOf reads the minimum path length computed for e by pathLength,
// without requiring the terminals to occupy a memo slot of their own.
func pathLenOf(memo map[edge]int, e edge) int {
	if e == edgeOne {
		return 0
	}
	if e == edgeZero {
		return -1
	}
	return memo[e]
}

// pathLength is the first of the two passes behind ShortestOnepath: the
// minimum number of literals needed to reach True from e, or -1 if e is
// identically false, computed bottom-up and memoized per edge (a node's
// two polarities can have different minimum lengths).
func (k *kernel) pathLength(e edge, memo map[edge]int) int {
	if e == edgeOne {
		return 0
	}
	if e == edgeZero {
		return -1
	}
	if v, ok := memo[e]; ok {
		return v
	}
	f0, f1 := k.childrenOf(e)
	l0 := k.pathLength(f0, memo)
	l1 := k.pathLength(f1, memo)
	res := -1
	switch {
	case l0 < 0 && l1 < 0:
		res = -1
	case l0 < 0:
		res = l1 + 1
	case l1 < 0:
		res = l0 + 1
	default:
		res = l0 + 1
		if l1+1 < res {
			res = l1 + 1
		}
	}
	memo[e] = res
	return res
}

// shortestPath is the second pass: reconstruct a path achieving the minimum
// length found by pathLength, pruning whichever branch cannot reach it.
func (k *kernel) shortestPath(e edge, memo map[edge]int) edge {
	if e == edgeOne {
		return edgeOne
	}
	level := k.levelOf(e)
	f0, f1 := k.childrenOf(e)
	cur := pathLenOf(memo, e)
	l1 := pathLenOf(memo, f1)
	if l1 >= 0 && l1+1 == cur {
		sub := k.pushref(k.shortestPath(f1, memo))
		res := k.makeNode(level, edgeZero, sub)
		k.popref(1)
		return res
	}
	sub := k.pushref(k.shortestPath(f0, memo))
	res := k.makeNode(level, sub, edgeZero)
	k.popref(1)
	return res
}

// ShortestOnepath returns a shortest path from f's root to True, encoded as
// a cube; f must not be the false constant.
func (k *kernel) ShortestOnepath(f *Node) *Node {
	e, ok := k.own(f)
	if !ok {
		return k.wrap(edgeError)
	}
	if e.isSentinel() {
		return k.wrap(e)
	}
	if e == edgeZero {
		return k.wrap(k.seterror("shortest_onepath: f is the false constant"))
	}
	memo := make(map[edge]int)
	k.pathLength(e, memo)
	return k.wrap(k.shortestPath(e, memo))
}

// ShortestOnepathLength returns the number of literals on a shortest path
// from f to True, or -1 if f is identically false.
func (k *kernel) ShortestOnepathLength(f *Node) int {
	e, ok := k.own(f)
	if !ok || e.isSentinel() {
		return -1
	}
	memo := make(map[edge]int)
	return k.pathLength(e, memo)
}
