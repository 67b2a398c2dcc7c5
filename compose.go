// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd

// Composer batches a set of simultaneous variable substitutions (register
// any number of variable/replacement pairs, then Apply them all in one
// traversal), generalizing the teacher's single-purpose Replacer
// (replace.go) from swapping variable identities to substituting each
// variable by an arbitrary function.
type Composer struct {
	k     *kernel
	id    int
	subst map[int32]edge
}

// ComposeBegin starts a new batch of substitutions. Each Composer gets a
// fresh id so caches.compose can memoize results per-batch without the
// batches colliding with one another.
func (k *kernel) ComposeBegin() *Composer {
	k.composeNext++
	return &Composer{k: k, id: k.composeNext, subst: make(map[int32]edge)}
}

// Register records that variable v should be replaced by f. Registering the
// same variable twice keeps only the last registration.
func (c *Composer) Register(v int, f *Node) *Composer {
	e, ok := c.k.own(f)
	if !ok {
		return c
	}
	if v < 0 || v >= int(c.k.varnum) {
		c.k.seterror("compose: variable %d out of range [0,%d)", v, c.k.varnum)
		return c
	}
	c.subst[int32(v)] = e
	return c
}

// Apply substitutes every registered variable in f simultaneously.
func (c *Composer) Apply(f *Node) *Node {
	e, ok := c.k.own(f)
	if !ok {
		return c.k.wrap(edgeError)
	}
	return c.k.wrap(c.k.composeRec(e, c))
}

func (k *kernel) composeRec(f edge, c *Composer) edge {
	if f.isSentinel() {
		return f
	}
	if f.isConstant() {
		return f
	}
	if res, ok := k.caches.compose.get(int64(f), int64(c.id)); ok {
		return res
	}
	level := k.levelOf(f)
	f0, f1 := k.childrenOf(f)
	lo := k.composeRec(f0, c)
	if lo.isSentinel() {
		return lo
	}
	k.pushref(lo)
	hi := k.composeRec(f1, c)
	k.popref(1)
	if hi.isSentinel() {
		return hi
	}
	k.pushref(lo)
	k.pushref(hi)
	var res edge
	if sub, ok := c.subst[level]; ok {
		res = k.ite(sub, hi, lo)
	} else {
		res = k.correctify(level, lo, hi)
	}
	k.popref(2)
	if res.isSentinel() {
		return res
	}
	k.caches.compose.set(int64(f), int64(c.id), res)
	return res
}

// correctify rebuilds a node at the given level once its (possibly
// substituted) children no longer respect the ordering invariant that a
// node's level is strictly less than both its children's levels: it walks
// down whichever child has the offending level and interleaves, and when a
// child already tests level itself it rebuilds the node as an ite on that
// level's variable. Ported from the teacher's correctify (operations.go)
// onto the edge/kernel types.
func (k *kernel) correctify(level int32, lo, hi edge) edge {
	llo, lhi := k.levelOf(lo), k.levelOf(hi)
	if level < llo && level < lhi {
		return k.makeNode(level, lo, hi)
	}
	if level == llo || level == lhi {
		return k.ite(k.literal[level][0], hi, lo)
	}
	if llo == lhi {
		lo0, lo1 := k.childrenOf(lo)
		hi0, hi1 := k.childrenOf(hi)
		left := k.pushref(k.correctify(level, lo0, hi0))
		right := k.pushref(k.correctify(level, lo1, hi1))
		res := k.makeNode(llo, left, right)
		k.popref(2)
		return res
	}
	if llo < lhi {
		lo0, lo1 := k.childrenOf(lo)
		left := k.pushref(k.correctify(level, lo0, hi))
		right := k.pushref(k.correctify(level, lo1, hi))
		res := k.makeNode(llo, left, right)
		k.popref(2)
		return res
	}
	hi0, hi1 := k.childrenOf(hi)
	left := k.pushref(k.correctify(level, lo, hi0))
	right := k.pushref(k.correctify(level, lo, hi1))
	res := k.makeNode(lhi, left, right)
	k.popref(2)
	return res
}
