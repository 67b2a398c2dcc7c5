// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd

// pushDown moves the variable tested at level x down to level y (y > x),
// sliding every level from x+1 through y up by one to close the gap.
// Three mutually recursive helpers carry the three phases described for
// this operation: pdStep walks nodes from the root down to x, pdStep2
// renumbers the nodes at levels x+1 through y, and pdStep3 performs the
// actual insertion once an x-level node's two children reach y. All three
// share caches.pushDown, tagged by phase in the low bits of the (shared)
// third key so entries from one phase can never satisfy a lookup from
// another.
func (k *kernel) pushDown(e edge, x, y int32) edge {
	if e.isSentinel() {
		return e
	}
	return k.pdStep(e, x, y)
}

func (k *kernel) pdStep(e edge, x, y int32) edge {
	if e.isConstant() {
		return e
	}
	lvl := k.levelOf(e)
	if lvl > y {
		return e
	}
	if lvl > x {
		return k.pdStep2(e, y)
	}
	tag := int64(y)<<2 | 0
	if res, ok := k.caches.pushDown.get(int64(e), int64(x), tag); ok {
		return res
	}
	var res edge
	e0, e1 := k.childrenOf(e)
	if lvl == x {
		res = k.pdStep3(e0, e1, y)
	} else {
		r0 := k.pdStep(e0, x, y)
		if r0.isSentinel() {
			return r0
		}
		k.pushref(r0)
		r1 := k.pdStep(e1, x, y)
		k.popref(1)
		if r1.isSentinel() {
			return r1
		}
		k.pushref(r0)
		k.pushref(r1)
		res = k.makeNode(lvl, r0, r1)
		k.popref(2)
	}
	if !res.isSentinel() {
		k.caches.pushDown.set(int64(e), int64(x), tag, res)
	}
	return res
}

// pdStep2 renumbers a node at a level from x+1 through y, shifting its level up
// by one to make room for the variable being pushed down.
func (k *kernel) pdStep2(e edge, y int32) edge {
	if e.isConstant() {
		return e
	}
	lvl := k.levelOf(e)
	if lvl > y {
		return e
	}
	tag := int64(y)<<2 | 1
	if res, ok := k.caches.pushDown.get(int64(e), -1, tag); ok {
		return res
	}
	e0, e1 := k.childrenOf(e)
	r0 := k.pdStep2(e0, y)
	if r0.isSentinel() {
		return r0
	}
	k.pushref(r0)
	r1 := k.pdStep2(e1, y)
	k.popref(1)
	if r1.isSentinel() {
		return r1
	}
	k.pushref(r0)
	k.pushref(r1)
	res := k.makeNode(lvl-1, r0, r1)
	k.popref(2)
	if !res.isSentinel() {
		k.caches.pushDown.set(int64(e), -1, tag, res)
	}
	return res
}

// pdStep3 inserts the pushed variable once both of its original children
// have been walked down to level y: below y, the two sides are merged
// pairwise and renumbered; at y, the original x-level decision is finally
// rebuilt one level lower, closing the gap it left behind.
func (k *kernel) pdStep3(e0, e1 edge, y int32) edge {
	top := min2(k.levelOf(e0), k.levelOf(e1))
	tag := int64(y)<<2 | 2
	if res, ok := k.caches.pushDown.get(int64(e0), int64(e1), tag); ok {
		return res
	}
	var res edge
	if top > y {
		res = k.makeNode(y, e0, e1)
	} else {
		var e00, e01, e10, e11 edge
		if k.levelOf(e0) == top {
			e00, e01 = k.childrenOf(e0)
		} else {
			e00, e01 = e0, e0
		}
		if k.levelOf(e1) == top {
			e10, e11 = k.childrenOf(e1)
		} else {
			e10, e11 = e1, e1
		}
		r0 := k.pdStep3(e00, e10, y)
		if r0.isSentinel() {
			return r0
		}
		k.pushref(r0)
		r1 := k.pdStep3(e01, e11, y)
		k.popref(1)
		if r1.isSentinel() {
			return r1
		}
		k.pushref(r0)
		k.pushref(r1)
		res = k.makeNode(top-1, r0, r1)
		k.popref(2)
	}
	if !res.isSentinel() {
		k.caches.pushDown.set(int64(e0), int64(e1), tag, res)
	}
	return res
}

// PushDown returns f with the variable at level x moved down to level y
// (y must be strictly greater than x); every level from x+1 through y
// slides up by one to close the gap.
func (k *kernel) PushDown(f *Node, x, y int) *Node {
	ef, ok := k.own(f)
	if !ok {
		return k.wrap(edgeError)
	}
	if x < 0 || y < 0 || x >= int(k.varnum) || y >= int(k.varnum) || y <= x {
		return k.wrap(k.seterror("push_down: need 0 <= x < y < %d (got x=%d, y=%d)", k.varnum, x, y))
	}
	return k.wrap(k.pushDown(ef, int32(x), int32(y)))
}
