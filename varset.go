// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd

import "sort"

// Makeset returns a node corresponding to the conjunction (the cube) of all
// the variables in vars, in their positive form. It is such that
// Scanset(Makeset(a)) == a when a is already sorted by level, mirroring the
// teacher's Makeset (operations.go) built here out of repeated And instead
// of a private apply loop, since And is already the right primitive.
func (k *kernel) Makeset(vars []int) *Node {
	res := k.True()
	for _, v := range vars {
		res = k.And(res, k.Ithvar(v))
	}
	return res
}

// Scanset returns the variables (levels) found by following the high
// branch of cube, the dual of Makeset. It assumes cube is a positive cube
// as produced by Makeset; the result is sorted by level.
func (k *kernel) Scanset(cube *Node) []int {
	e, ok := k.own(cube)
	if !ok || e.isConstant() {
		return nil
	}
	res := []int{}
	for !e.isConstant() {
		res = append(res, int(k.levelOf(e)))
		_, hi := k.childrenOf(e)
		e = hi
	}
	return res
}

// isCube reports whether e is a conjunction of literals: a single path from
// root to the True terminal where every internal node forces one branch to
// False.
func (k *kernel) isCube(e edge) bool {
	for {
		if e.isConstant() {
			return e == edgeOne
		}
		lo, hi := k.childrenOf(e)
		switch {
		case lo == edgeZero && hi != edgeZero:
			e = hi
		case hi == edgeZero && lo != edgeZero:
			e = lo
		default:
			return false
		}
	}
}

// isPositiveCube is isCube restricted to cubes made only of positive
// literals: every step must follow the high branch.
func (k *kernel) isPositiveCube(e edge) bool {
	for {
		if e.isConstant() {
			return e == edgeOne
		}
		lo, hi := k.childrenOf(e)
		if lo != edgeZero || hi == edgeZero {
			return false
		}
		e = hi
	}
}

// IsCube reports whether f is a conjunction of literals.
func (k *kernel) IsCube(f *Node) bool {
	e, ok := k.own(f)
	if !ok {
		return false
	}
	return k.isCube(e)
}

// IsPositiveCube reports whether f is a conjunction of positive literals.
func (k *kernel) IsPositiveCube(f *Node) bool {
	e, ok := k.own(f)
	if !ok {
		return false
	}
	return k.isPositiveCube(e)
}

// Support returns the cube of every variable that f actually depends on,
// found with a single marked traversal over the DAG (so a variable shared
// by many paths is only counted once), then rebuilt in level order with
// Makeset.
func (k *kernel) Support(f *Node) *Node {
	e, ok := k.own(f)
	if !ok {
		return k.wrap(edgeError)
	}
	seen := make(map[int32]bool)
	levels := make(map[int32]bool)
	var walk func(edge)
	walk = func(x edge) {
		if x.isConstant() {
			return
		}
		id := x.node()
		if seen[id] {
			return
		}
		seen[id] = true
		levels[k.levelOf(x)] = true
		lo, hi := k.childrenOf(x)
		walk(lo)
		walk(hi)
	}
	walk(e)
	vars := make([]int, 0, len(levels))
	for lvl := range levels {
		vars = append(vars, int(lvl))
	}
	sort.Ints(vars)
	return k.Makeset(vars)
}
