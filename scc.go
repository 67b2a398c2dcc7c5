// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd

// cubeNext returns the single child of a cube edge c that continues the
// cube (a cube node always has exactly one non-false child).
func (k *kernel) cubeNext(c edge) edge {
	lo, hi := k.childrenOf(c)
	if lo == edgeZero {
		return hi
	}
	return lo
}

// cubeNeg reports whether the top literal of cube edge c is negated, i.e.
// whether the cube continues through the low branch.
func (k *kernel) cubeNeg(c edge) bool {
	lo, _ := k.childrenOf(c)
	return lo != edgeZero
}

// cubeIntersect returns the literals common to cubes a and b: the smallest
// cube containing both. Variables present in only one cube, or present
// in both with opposite polarity, are dropped.
func (k *kernel) cubeIntersect(a, b edge) edge {
	if a.isConstant() || b.isConstant() {
		return edgeOne
	}
	la, lb := k.levelOf(a), k.levelOf(b)
	if la < lb {
		return k.cubeIntersect(k.cubeNext(a), b)
	}
	if lb < la {
		return k.cubeIntersect(a, k.cubeNext(b))
	}
	rest := k.pushref(k.cubeIntersect(k.cubeNext(a), k.cubeNext(b)))
	var res edge
	if k.cubeNeg(a) == k.cubeNeg(b) {
		if k.cubeNeg(a) {
			res = k.makeNode(la, rest, edgeZero)
		} else {
			res = k.makeNode(la, edgeZero, rest)
		}
	} else {
		res = rest
	}
	k.popref(1)
	return res
}

// scc returns the smallest cube containing every minterm of f. When one
// cofactor of f's top variable is false, the result is that variable's
// literal (in the polarity of the other cofactor) joined to the other
// cofactor's smallest cube; otherwise it is the intersection of both
// cofactors' smallest cubes, which drops the top variable.
func (k *kernel) scc(f edge) edge {
	if f == edgeZero {
		return edgeError
	}
	if f == edgeOne {
		return edgeOne
	}
	if res, ok := k.caches.scc.get(int64(f)); ok {
		return res
	}
	level := k.levelOf(f)
	f0, f1 := k.childrenOf(f)
	var res edge
	switch {
	case f0 == edgeZero:
		sub := k.scc(f1)
		if sub.isSentinel() {
			return sub
		}
		res = k.makeNode(level, edgeZero, sub)
	case f1 == edgeZero:
		sub := k.scc(f0)
		if sub.isSentinel() {
			return sub
		}
		res = k.makeNode(level, sub, edgeZero)
	default:
		c0 := k.pushref(k.scc(f0))
		c1 := k.pushref(k.scc(f1))
		res = k.cubeIntersect(c0, c1)
		k.popref(2)
	}
	k.caches.scc.set(int64(f), res)
	return res
}

// SCC returns the smallest cube (conjunction of literals) containing every
// satisfying assignment of f.
func (k *kernel) SCC(f *Node) *Node {
	e, ok := k.own(f)
	if !ok {
		return k.wrap(edgeError)
	}
	if e.isSentinel() {
		return k.wrap(e)
	}
	return k.wrap(k.scc(e))
}
