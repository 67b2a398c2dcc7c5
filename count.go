// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd

import "math/big"

// pow2 returns 2^n as an arbitrary-precision integer.
func pow2(n int32) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(n))
}

// levelOrCeil is levelOf, except a constant reports nvars instead of the
// sentinel maxVarLevel: the counting routines below use nvars, not the
// manager's own variable count, as the width of the universe they count
// over, so the terminal always has to look like "one past the last
// variable" relative to that parameter, not to k.varnum.
func (k *kernel) levelOrCeil(e edge, nvars int32) int32 {
	if e.isConstant() {
		return nvars
	}
	return k.levelOf(e)
}

// mintermRaw is the size of the satisfying set of the (uncomplemented)
// function rooted at the slab node id, counted only over the variable
// range [level(id), nvars) -- it says nothing about variables strictly
// above id, which the caller accounts for separately. Keyed by node id
// rather than by edge, per spec §4.5 ("keyed by a node, not an edge; the
// polarity of the incoming edge is handled by a sign flip applied on
// return"), grounded on the teacher's Satcount/satcount (hoperations.go)
// generalized from the manager's fixed Varnum to a caller-supplied nvars.
func (k *kernel) mintermRaw(id int32, nvars int32, memo map[int32]*big.Int) *big.Int {
	if v, ok := memo[id]; ok {
		return v
	}
	n := k.s.at(id)
	lo := k.edgeMinterms(n.edge0, nvars, memo)
	hi := k.edgeMinterms(n.edge1, nvars, memo)
	loLevel := k.levelOrCeil(n.edge0, nvars)
	hiLevel := k.levelOrCeil(n.edge1, nvars)
	res := new(big.Int).Add(
		new(big.Int).Lsh(lo, uint(loLevel-n.level-1)),
		new(big.Int).Lsh(hi, uint(hiLevel-n.level-1)),
	)
	memo[id] = res
	return res
}

// edgeMinterms is mintermRaw for an edge, applying the sign flip a
// complement bit demands: the satisfying count of not(g) over a universe
// of width w is 2^w minus the satisfying count of g.
func (k *kernel) edgeMinterms(e edge, nvars int32, memo map[int32]*big.Int) *big.Int {
	if e == edgeZero {
		return big.NewInt(0)
	}
	if e == edgeOne {
		return big.NewInt(1)
	}
	raw := k.mintermRaw(e.node(), nvars, memo)
	if e.isComplemented() {
		width := nvars - k.levelOf(e)
		return new(big.Int).Sub(pow2(width), raw)
	}
	return raw
}

// MintermCount returns the number of satisfying assignments of f over
// nvars Boolean variables.
func (k *kernel) MintermCount(f *Node, nvars int) *big.Int {
	e, ok := k.own(f)
	if !ok || e.isSentinel() {
		return big.NewInt(0)
	}
	memo := make(map[int32]*big.Int)
	raw := k.edgeMinterms(e, int32(nvars), memo)
	if e.isConstant() {
		return new(big.Int).Lsh(raw, uint(nvars))
	}
	return new(big.Int).Lsh(raw, uint(k.levelOf(e)))
}

// Satcount is MintermCount specialized to the manager's own variable
// count, matching the teacher's Satcount (hoperations.go).
func (k *kernel) Satcount(f *Node) *big.Int {
	return k.MintermCount(f, int(k.varnum))
}

// Walsh0 returns the value of f's Walsh transform at the origin:
// sum_x (-1)^f(x), derived from MintermCount by the identity in spec §8
// (walsh0(f, n) == 2^n - 2*minterm_count(f, n)) rather than a second,
// parallel recursive traversal -- the identity already gives the exact
// same arbitrary-precision answer for free.
func (k *kernel) Walsh0(f *Node, nvars int) *big.Int {
	mc := k.MintermCount(f, nvars)
	res := new(big.Int).Lsh(mc, 1)
	return res.Sub(pow2(int32(nvars)), res)
}

// Walsh1 returns the value of f's Walsh transform at the unit point for
// variable v: sum_x (-1)^(f(x) + x_v). Splitting the sum over x_v gives the
// difference of the two cofactors' sums over the other variables; each
// cofactor is independent of x_v, so its full-width Walsh0 counts every such
// assignment twice, and the result is half the difference of the two Walsh0
// values. This is built directly on Cofactor and Walsh0 instead of its own
// traversal.
func (k *kernel) Walsh1(f *Node, v int, nvars int) *big.Int {
	f0 := k.Cofactor(f, v, false)
	f1 := k.Cofactor(f, v, true)
	w0 := k.Walsh0(f0, nvars)
	w1 := k.Walsh0(f1, nvars)
	return new(big.Int).Rsh(w0.Sub(w0, w1), 1)
}
