// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd

// levelOf returns the top variable level tested by e, or maxVarLevel for a
// constant (so a constant always sorts below every real variable during a
// Shannon split).
func (k *kernel) levelOf(e edge) int32 {
	if e.isConstant() {
		return maxVarLevel
	}
	return k.s.at(e.node()).level
}

// childrenOf returns the two cofactors of e at its own top variable, with
// the complement bit of e pushed down onto both; e must not be constant.
func (k *kernel) childrenOf(e edge) (edge, edge) {
	n := k.s.at(e.node())
	neg := e.isComplemented()
	return n.edge0.withPolarity(neg), n.edge1.withPolarity(neg)
}

// applySame derives apply(op, f, f) directly from the truth table: reading
// the diagonal opres[op][0][0]/opres[op][1][1] tells us the function of a
// single variable x that op(x,x) computes, without a per-operator switch.
func applySame(op Operator, f edge) edge {
	v0, v1 := opres[op][0][0], opres[op][1][1]
	switch {
	case v0 == v1:
		return edgeFromBool(v0 == 1)
	case v0 == 0 && v1 == 1:
		return f
	default:
		return f.complement()
	}
}

// applyConstLeft derives apply(op, fval, g) when the left operand is the
// constant fval, reading the truth table's fval row.
func applyConstLeft(op Operator, fval int, g edge) edge {
	v0, v1 := opres[op][fval][0], opres[op][fval][1]
	switch {
	case v0 == v1:
		return edgeFromBool(v0 == 1)
	case v0 == 0 && v1 == 1:
		return g
	default:
		return g.complement()
	}
}

// applyConstRight is applyConstLeft's mirror image for a constant right
// operand, reading the gval column instead of a row.
func applyConstRight(op Operator, f edge, gval int) edge {
	v0, v1 := opres[op][0][gval], opres[op][1][gval]
	switch {
	case v0 == v1:
		return edgeFromBool(v0 == 1)
	case v0 == 0 && v1 == 1:
		return f
	default:
		return f.complement()
	}
}

// apply is the shared binary-operation engine behind Apply, And, Or, Xor,
// Imp and Equiv: a Shannon split on the lower of the two operands' top
// variables, memoized in caches.apply. Every algebraic shortcut (f==g, one
// operand constant) is derived generically from the operator's truth table
// instead of being hand-written per operator, grounded on the teacher's
// apply but generalized across all ten binary operators.
func (k *kernel) apply(f, g edge, op Operator) edge {
	if f.isSentinel() {
		return f
	}
	if g.isSentinel() {
		return g
	}
	if f == g {
		return applySame(op, f)
	}
	if f.isConstant() {
		return applyConstLeft(op, f.boolValue(), g)
	}
	if g.isConstant() {
		return applyConstRight(op, f, g.boolValue())
	}
	if res, ok := k.caches.apply.get(int64(f), int64(g), int64(op)); ok {
		return res
	}
	level := min2(k.levelOf(f), k.levelOf(g))
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
	lo := k.apply(f0, g0, op)
	if lo.isSentinel() {
		return lo
	}
	k.pushref(lo)
	hi := k.apply(f1, g1, op)
	k.popref(1)
	if hi.isSentinel() {
		return hi
	}
	k.pushref(lo)
	k.pushref(hi)
	res := k.makeNode(level, lo, hi)
	k.popref(2)
	k.caches.apply.set(int64(f), int64(g), int64(op), res)
	return res
}

// Apply computes left op right. Both nodes must belong to this manager and
// op must be one of the ten binary operators (not opnot).
//
//	Identifier    Description             Truth table
//	OPand         logical and             [0,0,0,1]
//	OPxor         logical xor             [0,1,1,0]
//	OPor          logical or              [0,1,1,1]
//	OPnand        logical not-and         [1,1,1,0]
//	OPnor         logical not-or          [1,0,0,0]
//	OPimp         implication             [1,1,0,1]
//	OPbiimp       equivalence             [1,0,0,1]
//	OPdiff        set difference          [0,0,1,0]
//	OPless        less than               [0,1,0,0]
//	OPinvimp      reverse implication     [1,0,1,1]
func (k *kernel) Apply(left, right *Node, op Operator) *Node {
	f, ok := k.own(left)
	if !ok {
		return k.wrap(edgeError)
	}
	g, ok := k.own(right)
	if !ok {
		return k.wrap(edgeError)
	}
	if op < 0 || op >= opnot {
		return k.wrap(k.seterror("apply: %v is not a binary operator", op))
	}
	return k.wrap(k.apply(f, g, op))
}

// Not negates n. With complement edges this never recurses: it is a single
// bit flip on a shared node, so there is no cache for it.
func (k *kernel) Not(n *Node) *Node {
	e, ok := k.own(n)
	if !ok {
		return k.wrap(edgeError)
	}
	return k.wrap(e.complement())
}

// ite is the if-then-else engine behind Ite and compose (And, Or, Xor, Imp
// and Equiv go through apply instead): a Shannon split on the lowest of f, g, h's top
// variables, with the classic constant-folding shortcuts applied first and
// memoized in caches.ite, grounded on the teacher's Ite/ite/iteLow/iteHigh.
func (k *kernel) ite(f, g, h edge) edge {
	if f.isSentinel() {
		return f
	}
	if g.isSentinel() {
		return g
	}
	if h.isSentinel() {
		return h
	}
	switch {
	case f == edgeOne:
		return g
	case f == edgeZero:
		return h
	case g == h:
		return g
	case g == edgeOne && h == edgeZero:
		return f
	case g == edgeZero && h == edgeOne:
		return f.complement()
	}
	if res, ok := k.caches.ite.get(int64(f), int64(g), int64(h)); ok {
		return res
	}
	level := min3(k.levelOf(f), k.levelOf(g), k.levelOf(h))
	var f0, f1, g0, g1, h0, h1 edge
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
	if k.levelOf(h) == level {
		h0, h1 = k.childrenOf(h)
	} else {
		h0, h1 = h, h
	}
	lo := k.ite(f0, g0, h0)
	if lo.isSentinel() {
		return lo
	}
	k.pushref(lo)
	hi := k.ite(f1, g1, h1)
	k.popref(1)
	if hi.isSentinel() {
		return hi
	}
	k.pushref(lo)
	k.pushref(hi)
	res := k.makeNode(level, lo, hi)
	k.popref(2)
	k.caches.ite.set(int64(f), int64(g), int64(h), res)
	return res
}

// Ite computes if f then g else h, i.e. (f & g) | (!f & h), in a single
// traversal rather than as three separate operations.
func (k *kernel) Ite(f, g, h *Node) *Node {
	ef, ok := k.own(f)
	if !ok {
		return k.wrap(edgeError)
	}
	eg, ok := k.own(g)
	if !ok {
		return k.wrap(edgeError)
	}
	eh, ok := k.own(h)
	if !ok {
		return k.wrap(edgeError)
	}
	return k.wrap(k.ite(ef, eg, eh))
}

// And computes the conjunction of every argument, left to right, returning
// True for an empty argument list.
func (k *kernel) And(n ...*Node) *Node {
	res := k.True()
	for _, m := range n {
		res = k.Apply(res, m, OPand)
	}
	return res
}

// Or computes the disjunction of every argument, left to right, returning
// False for an empty argument list.
func (k *kernel) Or(n ...*Node) *Node {
	res := k.False()
	for _, m := range n {
		res = k.Apply(res, m, OPor)
	}
	return res
}

func (k *kernel) Xor(f, g *Node) *Node   { return k.Apply(f, g, OPxor) }
func (k *kernel) Imp(f, g *Node) *Node   { return k.Apply(f, g, OPimp) }
func (k *kernel) Equiv(f, g *Node) *Node { return k.Apply(f, g, OPbiimp) }

// Equal reports whether f and g denote the same function. Two nodes from
// different managers, or either carrying the error sentinel, are never
// equal.
func (k *kernel) Equal(f, g *Node) bool {
	ef, ok := k.own(f)
	if !ok {
		return false
	}
	eg, ok := k.own(g)
	if !ok {
		return false
	}
	if ef.isSentinel() || eg.isSentinel() {
		return false
	}
	return ef == eg
}
