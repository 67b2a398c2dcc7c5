// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd

// cofactor restricts f to variable v, following its high branch when
// positive is true and its low branch otherwise. It has no dedicated cache,
// so a node above v that is shared by several paths is visited once per
// path.
func (k *kernel) cofactor(f edge, v int32, positive bool) edge {
	if f.isSentinel() || f.isConstant() {
		return f
	}
	lvl := k.levelOf(f)
	if lvl > v {
		return f
	}
	f0, f1 := k.childrenOf(f)
	if lvl == v {
		if positive {
			return f1
		}
		return f0
	}
	lo := k.pushref(k.cofactor(f0, v, positive))
	hi := k.pushref(k.cofactor(f1, v, positive))
	res := k.makeNode(lvl, lo, hi)
	k.popref(2)
	return res
}

// Cofactor returns f restricted to v = 1 (positive) or v = 0 (!positive).
func (k *kernel) Cofactor(f *Node, v int, positive bool) *Node {
	ef, ok := k.own(f)
	if !ok {
		return k.wrap(edgeError)
	}
	if v < 0 || v >= int(k.varnum) {
		return k.wrap(k.seterror("cofactor: variable %d out of range [0,%d)", v, k.varnum))
	}
	return k.wrap(k.cofactor(ef, int32(v), positive))
}

// constrainCube is the linear-time division used when c is known to be a
// cube: at each step either f or c (whichever tests the lower variable)
// determines how to descend, and when both test the same variable we
// follow whichever branch of c is non-zero, fixing f to the matching side.
func (k *kernel) constrainCube(f, c edge) edge {
	if f.isSentinel() || f.isConstant() || c.isConstant() {
		return f
	}
	lf, lc := k.levelOf(f), k.levelOf(c)
	if lf < lc {
		f0, f1 := k.childrenOf(f)
		lo := k.pushref(k.constrainCube(f0, c))
		hi := k.pushref(k.constrainCube(f1, c))
		res := k.makeNode(lf, lo, hi)
		k.popref(2)
		return res
	}
	c0, c1 := k.childrenOf(c)
	if lf > lc {
		if c0 == edgeZero {
			return k.constrainCube(f, c1)
		}
		return k.constrainCube(f, c0)
	}
	f0, f1 := k.childrenOf(f)
	if c0 == edgeZero {
		return k.constrainCube(f1, c1)
	}
	return k.constrainCube(f0, c0)
}

// constrain is the generalized cofactor f |> c (c must not be the false
// constant): the restriction of f to the region where c holds. When f's
// level is strictly above c's (a smaller level), only f is split; when c's
// is strictly above f's, only c is split; when both coincide, each cofactor of f pairs
// with the matching cofactor of c, except that a zero cofactor of c forces
// both branches through the other one, with the f-side fixed -- ported
// from the general (non-cube) case described for this operation.
func (k *kernel) constrain(f, c edge) edge {
	if f.isSentinel() {
		return f
	}
	if c.isSentinel() {
		return c
	}
	if f.isConstant() || c == edgeOne {
		return f
	}
	if k.isCube(c) {
		return k.constrainCube(f, c)
	}
	if res, ok := k.caches.constrain.get(int64(f), int64(c)); ok {
		return res
	}
	lf, lc := k.levelOf(f), k.levelOf(c)
	var res edge
	switch {
	case lf < lc:
		f0, f1 := k.childrenOf(f)
		lo := k.pushref(k.constrain(f0, c))
		hi := k.pushref(k.constrain(f1, c))
		res = k.makeNode(lf, lo, hi)
		k.popref(2)
	case lf == lc:
		f0, f1 := k.childrenOf(f)
		c0, c1 := k.childrenOf(c)
		switch {
		case c0 == edgeZero:
			res = k.constrain(f1, c1)
		case c1 == edgeZero:
			res = k.constrain(f0, c0)
		default:
			lo := k.pushref(k.constrain(f0, c0))
			hi := k.pushref(k.constrain(f1, c1))
			res = k.makeNode(lf, lo, hi)
			k.popref(2)
		}
	default: // lc < lf
		c0, c1 := k.childrenOf(c)
		switch {
		case c0 == edgeZero:
			res = k.constrain(f, c1)
		case c1 == edgeZero:
			res = k.constrain(f, c0)
		default:
			lo := k.pushref(k.constrain(f, c0))
			hi := k.pushref(k.constrain(f, c1))
			res = k.makeNode(lc, lo, hi)
			k.popref(2)
		}
	}
	if !res.isSentinel() {
		k.caches.constrain.set(int64(f), int64(c), res)
	}
	return res
}

// Constrain computes the generalized cofactor of f with respect to c.
func (k *kernel) Constrain(f, c *Node) *Node {
	ef, ok := k.own(f)
	if !ok {
		return k.wrap(edgeError)
	}
	ec, ok := k.own(c)
	if !ok {
		return k.wrap(edgeError)
	}
	if ec == edgeZero {
		return k.wrap(k.seterror("constrain: c must not be the false constant"))
	}
	return k.wrap(k.constrain(ef, ec))
}
