// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd

import (
	"fmt"
	"strings"
)

// allsat walks every path to True, calling cb with one assignment per path:
// 0/1 for variables the path actually tests, -1 for every variable skipped
// along the way (a "don't care" the reduced diagram never needed to
// distinguish). Ported from the teacher's Allsat/allsat (hoperations.go)
// onto edges and the new childrenOf split.
func (k *kernel) allsat(e edge, assign []int, cb func([]int) error) error {
	if e == edgeZero {
		return nil
	}
	if e == edgeOne {
		out := make([]int, len(assign))
		copy(out, assign)
		return cb(out)
	}
	level := k.levelOf(e)
	f0, f1 := k.childrenOf(e)
	assign[level] = 0
	if err := k.allsat(f0, assign, cb); err != nil {
		return err
	}
	assign[level] = 1
	if err := k.allsat(f1, assign, cb); err != nil {
		return err
	}
	assign[level] = -1
	return nil
}

// Allsat calls cb once for every path from f to the True leaf, with one
// slice of length NumVars() per call (index v holds 0, 1 or -1 for "don't
// care"). Iteration stops as soon as cb returns a non-nil error, which
// Allsat then returns.
func (k *kernel) Allsat(f *Node, cb func([]int) error) error {
	e, ok := k.own(f)
	if !ok {
		return k.err
	}
	if e.isSentinel() {
		return k.err
	}
	assign := make([]int, k.varnum)
	for i := range assign {
		assign[i] = -1
	}
	return k.allsat(e, assign, cb)
}

// allnodesWalk visits e and everything below it exactly once (guarded by
// the generic mark bit node.go sets aside for whole-graph traversals),
// calling cb in post-order so a node's children are always reported before
// the node itself, and recording every id it marks so the caller can clear
// the bit again once the whole traversal is done.
func (k *kernel) allnodesWalk(e edge, visited *[]int32, cb func(id, level, low, high int) error) error {
	if e.isConstant() {
		return nil
	}
	id := e.node()
	n := k.s.at(id)
	if n.marked() {
		return nil
	}
	n.mark()
	*visited = append(*visited, id)
	if err := k.allnodesWalk(n.edge0, visited, cb); err != nil {
		return err
	}
	if err := k.allnodesWalk(n.edge1, visited, cb); err != nil {
		return err
	}
	return cb(int(id), int(n.level), int(n.edge0), int(n.edge1))
}

// Allnodes calls cb once for every node reachable from the given roots (or
// every live node in the manager, if no roots are given), reporting each
// node's id, variable level, and its two children encoded as edges (the
// child's node id shifted left by one, with the low bit set for a
// complemented edge).
func (k *kernel) Allnodes(cb func(id, level, low, high int) error, n ...*Node) error {
	var roots []edge
	if len(n) == 0 {
		k.table.forEach(func(id int32, level int32, e0, e1 edge) {
			roots = append(roots, makeEdge(id, false))
		})
	} else {
		for _, m := range n {
			e, ok := k.own(m)
			if !ok {
				return k.err
			}
			roots = append(roots, e)
		}
	}
	var visited []int32
	var walkErr error
	for _, e := range roots {
		if walkErr = k.allnodesWalk(e, &visited, cb); walkErr != nil {
			break
		}
	}
	for _, id := range visited {
		k.s.at(id).unmark()
	}
	return walkErr
}

// countNodes is Allnodes without the callback, used by Size.
func (k *kernel) countNodes(e edge, visited *[]int32) int {
	if e.isConstant() {
		return 0
	}
	id := e.node()
	n := k.s.at(id)
	if n.marked() {
		return 0
	}
	n.mark()
	*visited = append(*visited, id)
	return 1 + k.countNodes(n.edge0, visited) + k.countNodes(n.edge1, visited)
}

// Size returns the number of distinct nodes reachable from the given roots,
// counting shared nodes only once, or the total number of live nodes in the
// manager if no roots are given. Grounded on node_count in
// original_source's BddMgrImpl and on the size(handles) entry of the
// operation surface (SPEC_FULL.md §4).
func (k *kernel) Size(n ...*Node) int {
	if len(n) == 0 {
		return k.table.size()
	}
	var visited []int32
	total := 0
	for _, m := range n {
		e, ok := k.own(m)
		if !ok {
			continue
		}
		total += k.countNodes(e, &visited)
	}
	for _, id := range visited {
		k.s.at(id).unmark()
	}
	return total
}

// humanSize renders count entries of elemSize bytes each as a short,
// human-readable size, for Stats() and the per-cache String() methods.
func humanSize(count int, elemSize uintptr) string {
	bytes := float64(count) * float64(elemSize)
	units := []string{"B", "KB", "MB", "GB"}
	i := 0
	for bytes >= 1024 && i < len(units)-1 {
		bytes /= 1024
		i++
	}
	return fmt.Sprintf("%.1f%s", bytes, units[i])
}

// Stats reports the manager's variable count, node table occupancy, GC
// history and computed-cache hit rates, replacing the teacher's
// Stats/gcstats (stdio.go) on the new kernel/slab representation.
func (k *kernel) Stats() string {
	var b strings.Builder
	fmt.Fprintf(&b, "variables: %d\n", k.varnum)
	fmt.Fprintf(&b, "nodes: %d in use, %d allocated, %d free, %d garbage\n",
		k.table.size(), k.s.nodeCount(), k.s.nodeCount()-k.table.size(), k.garbage)
	fmt.Fprintf(&b, "garbage collections: %d\n", k.gcCount)
	for i, g := range k.gcHistory {
		fmt.Fprintf(&b, "  #%d: %d nodes, %d free\n", i+1, g.nodes, g.freenodes)
	}
	b.WriteString(k.caches.String())
	return b.String()
}
