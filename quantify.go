// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd

// quantset2cache tags every level occurring in varset with the manager's
// current quantsetID (bumping it first so stale tags from a previous
// quantification can never be mistaken for membership in this one) and
// returns the highest tagged level, mirroring the teacher's
// quantset2cache/quantlast bookkeeping (operations.go).
func (k *kernel) quantset2cache(varset edge) (int32, error) {
	if !k.isCube(varset) {
		return 0, errNotACube
	}
	k.quantsetID++
	if k.quantsetID == 0 {
		for i := range k.quantsetTag {
			k.quantsetTag[i] = 0
		}
		k.quantsetID = 1
	}
	last := int32(-1)
	e := varset
	for !e.isConstant() {
		lvl := k.levelOf(e)
		k.quantsetTag[lvl] = k.quantsetID
		if lvl > last {
			last = lvl
		}
		_, hi := k.childrenOf(e)
		e = hi
	}
	return last, nil
}

// exist is the existential-quantification engine: below quantLast it walks
// f exactly like apply would, except that at a level present in the
// varset the two cofactors are combined with or instead of rebuilt into a
// fresh node -- the variable disappears rather than being tested.
func (k *kernel) exist(f edge) edge {
	if f.isSentinel() {
		return f
	}
	if f.isConstant() || k.levelOf(f) > k.quantLast {
		return f
	}
	if res, ok := k.caches.exist.get(int64(f), int64(k.quantsetID)); ok {
		return res
	}
	level := k.levelOf(f)
	f0, f1 := k.childrenOf(f)
	lo := k.exist(f0)
	if lo.isSentinel() {
		return lo
	}
	k.pushref(lo)
	hi := k.exist(f1)
	k.popref(1)
	if hi.isSentinel() {
		return hi
	}
	k.pushref(lo)
	k.pushref(hi)
	var res edge
	if k.quantsetTag[level] == k.quantsetID {
		res = k.apply(lo, hi, OPor)
	} else {
		res = k.makeNode(level, lo, hi)
	}
	k.popref(2)
	if res.isSentinel() {
		return res
	}
	k.caches.exist.set(int64(f), int64(k.quantsetID), res)
	return res
}

// Exist returns the existential quantification of f over the variables
// named by varset (a cube built with Makeset).
func (k *kernel) Exist(f, varset *Node) *Node {
	ef, ok := k.own(f)
	if !ok {
		return k.wrap(edgeError)
	}
	ev, ok := k.own(varset)
	if !ok {
		return k.wrap(edgeError)
	}
	if ev.isConstant() {
		return k.wrap(ef)
	}
	last, err := k.quantset2cache(ev)
	if err != nil {
		return k.wrap(k.seterror("exist: %v", err))
	}
	k.quantLast = last
	return k.wrap(k.exist(ef))
}

// andExist fuses and(f, g) with an existential quantification, descending
// both operands together so the conjunction of each pair of cofactors is
// quantified as soon as it is computed rather than only after the full
// conjunction is built -- grounded on the teacher's appquant (operations.go)
// specialized to a fixed and since AndExist's contract here is and_exists
// (no other operator).
func (k *kernel) andExist(f, g edge) edge {
	switch {
	case f.isSentinel():
		return f
	case g.isSentinel():
		return g
	case f == edgeZero || g == edgeZero:
		return edgeZero
	case f == g:
		return k.exist(f)
	case f == edgeOne:
		return k.exist(g)
	case g == edgeOne:
		return k.exist(f)
	}
	if k.levelOf(f) > k.quantLast && k.levelOf(g) > k.quantLast {
		return k.apply(f, g, OPand)
	}
	if res, ok := k.caches.andExist.get(int64(f), int64(g), int64(k.quantsetID)); ok {
		return res
	}
	level := k.levelOf(f)
	if lg := k.levelOf(g); lg < level {
		level = lg
	}
	var f0, f1, g0, g1 edge
	if k.levelOf(f) == level {
		f0, f1 = k.childrenOf(f)
	} else {
		f0, f1 = f, f
	}
	if k.levelOf(g) == level {
		g0, g1 = k.childrenOf(g)
	} else {
		g0, g1 = g, g
	}
	lo := k.andExist(f0, g0)
	if lo.isSentinel() {
		return lo
	}
	k.pushref(lo)
	hi := k.andExist(f1, g1)
	k.popref(1)
	if hi.isSentinel() {
		return hi
	}
	k.pushref(lo)
	k.pushref(hi)
	var res edge
	if k.quantsetTag[level] == k.quantsetID {
		res = k.apply(lo, hi, OPor)
	} else {
		res = k.makeNode(level, lo, hi)
	}
	k.popref(2)
	if res.isSentinel() {
		return res
	}
	k.caches.andExist.set(int64(f), int64(g), int64(k.quantsetID), res)
	return res
}

// AndExist computes exists(varset . f and g) in one traversal.
func (k *kernel) AndExist(f, g, varset *Node) *Node {
	ef, ok := k.own(f)
	if !ok {
		return k.wrap(edgeError)
	}
	eg, ok := k.own(g)
	if !ok {
		return k.wrap(edgeError)
	}
	ev, ok := k.own(varset)
	if !ok {
		return k.wrap(edgeError)
	}
	if ev.isConstant() {
		return k.wrap(k.apply(ef, eg, OPand))
	}
	last, err := k.quantset2cache(ev)
	if err != nil {
		return k.wrap(k.seterror("and_exist: %v", err))
	}
	k.quantLast = last
	return k.wrap(k.andExist(ef, eg))
}
