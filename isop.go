// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd

import (
	"fmt"
	"strings"
)

// Literal names one variable and whether it appears negated in a Product.
type Literal struct {
	Var int
	Neg bool
}

func (l Literal) String() string {
	if l.Neg {
		return "!x" + fmt.Sprint(l.Var)
	}
	return "x" + fmt.Sprint(l.Var)
}

// Product is a conjunction of literals: one term of a Cover.
type Product []Literal

func (p Product) String() string {
	if len(p) == 0 {
		return "1"
	}
	parts := make([]string, len(p))
	for i, l := range p {
		parts[i] = l.String()
	}
	return strings.Join(parts, "&")
}

// Cover is an irredundant sum-of-products expression: the symbolic
// side-output ISOP produces alongside its BDD. Boolean-expression printing
// and parsing proper are out of scope, but ISOP's own result has to be
// handed back in some form, so this is kept minimal on purpose.
type Cover []Product

func (c Cover) String() string {
	if len(c) == 0 {
		return "0"
	}
	parts := make([]string, len(c))
	for i, p := range c {
		parts[i] = p.String()
	}
	return strings.Join(parts, " | ")
}

// litAnd conjoins every product of cov with one more literal on variable v.
func litAnd(cov Cover, v int32, neg bool) Cover {
	if len(cov) == 0 {
		return cov
	}
	res := make(Cover, len(cov))
	for i, p := range cov {
		np := make(Product, 0, len(p)+1)
		np = append(np, p...)
		np = append(np, Literal{Var: int(v), Neg: neg})
		res[i] = np
	}
	return res
}

// isopEntry memoizes both the BDD and the cover isopStep found for a given
// (lower, upper) pair.
type isopEntry struct {
	e   edge
	cov Cover
}

// isopStep is the Minato-Morreale recursive ISOP algorithm: given a lower
// bound l and upper bound u (l implies u), it finds an irredundant
// sum-of-products f with l <= f <= u, splitting on whichever of l, u tests
// the lower variable and combining the two single-variable restrictions
// (z0, z1) with the middle term that falls in neither, grounded on
// original_source's bmc_isop.cc (sop_litand/isop/isop_step).
func (k *kernel) isopStep(l, u edge, memo map[[2]edge]isopEntry) (edge, Cover) {
	if l == edgeZero {
		return edgeZero, nil
	}
	if u == edgeOne {
		return edgeOne, Cover{Product{}}
	}
	key := [2]edge{l, u}
	if ent, ok := memo[key]; ok {
		return ent.e, ent.cov
	}
	level := min2(k.levelOf(l), k.levelOf(u))
	var l0, l1, u0, u1 edge
	if k.levelOf(l) == level {
		l0, l1 = k.childrenOf(l)
	} else {
		l0, l1 = l, l
	}
	if k.levelOf(u) == level {
		u0, u1 = k.childrenOf(u)
	} else {
		u0, u1 = u, u
	}

	z0 := k.apply(l0, u1.complement(), OPand)
	if z0.isSentinel() {
		return z0, nil
	}
	c0, p0 := edgeZero, Cover(nil)
	if z0 != edgeZero {
		res, cov := k.isopStep(z0, u0, memo)
		if res.isSentinel() {
			return res, nil
		}
		c0, p0 = res, litAnd(cov, level, true)
	}
	c0 = k.pushref(c0)

	z1 := k.apply(l1, u0.complement(), OPand)
	if z1.isSentinel() {
		k.popref(1)
		return z1, nil
	}
	c1, p1 := edgeZero, Cover(nil)
	if z1 != edgeZero {
		res, cov := k.isopStep(z1, u1, memo)
		if res.isSentinel() {
			k.popref(1)
			return res, nil
		}
		c1, p1 = res, litAnd(cov, level, false)
	}
	c1 = k.pushref(c1)

	varEdge := k.pushref(k.makeNode(level, edgeZero, edgeOne))
	cc0 := k.pushref(k.apply(c0, varEdge.complement(), OPand))
	cc1 := k.pushref(k.apply(c1, varEdge, OPand))

	h01 := k.pushref(k.apply(l0, c0.complement(), OPand))
	h02 := k.pushref(k.apply(l1, c1.complement(), OPand))
	h0 := k.pushref(k.apply(h01, h02, OPor))
	h1 := k.pushref(k.apply(u0, u1, OPand))

	r0, p2 := k.isopStep(h0, h1, memo)
	if r0.isSentinel() {
		k.popref(9)
		return r0, nil
	}
	r0 = k.pushref(r0)

	tmp := k.pushref(k.apply(cc0, cc1, OPor))
	result := k.apply(tmp, r0, OPor)
	k.popref(11)

	cov := make(Cover, 0, len(p0)+len(p1)+len(p2))
	cov = append(cov, p0...)
	cov = append(cov, p1...)
	cov = append(cov, p2...)
	if !result.isSentinel() {
		memo[key] = isopEntry{result, cov}
	}
	return result, cov
}

// ISOP returns an irredundant sum-of-products f with lower <= f <= upper,
// along with the cover itself. Passing the same node for both bounds
// computes the ISOP of that single function.
func (k *kernel) ISOP(lower, upper *Node) (*Node, Cover) {
	el, ok := k.own(lower)
	if !ok {
		return k.wrap(edgeError), nil
	}
	eu, ok := k.own(upper)
	if !ok {
		return k.wrap(edgeError), nil
	}
	if el.isSentinel() {
		return k.wrap(el), nil
	}
	if eu.isSentinel() {
		return k.wrap(eu), nil
	}
	memo := make(map[[2]edge]isopEntry)
	res, cov := k.isopStep(el, eu, memo)
	return k.wrap(res), cov
}
