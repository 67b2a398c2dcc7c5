// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd

import "log"

// gcRecord is a snapshot of the manager's occupancy right before a
// collection, kept for Stats() -- the teacher's gcpoint (gc.go).
type gcRecord struct {
	nodes     int
	freenodes int
}

// gc performs a full mark-sweep collection: a node with ref > 0 is already
// known live, since activate/deactivate (manager.go) keep every node's ref
// count in lockstep with whether it is reachable from some active root --
// so the only nodes that still need an explicit walk are the ones pushed
// onto the transient refstack, protecting a not-yet-rooted intermediate
// result (e.g. the two halves of an in-flight ite) from being swept before
// the operation that built them has linked them into anything. Every
// computed-result cache is invalidated in the same pass, since a cache
// entry naming a node that just got freed would otherwise point at a slot
// the slab is about to reuse for something else entirely (teacher's gbc,
// gc.go).
func (k *kernel) gc() {
	if logLevel > 0 {
		log.Println("rudd: starting GC")
	}
	k.gcCount++
	k.gcHistory = append(k.gcHistory, gcRecord{nodes: k.s.nodeCount(), freenodes: k.s.nodeCount() - k.table.size()})

	for _, e := range k.refstack {
		if !e.isSentinel() {
			k.markrec(e.node())
		}
	}
	// A snapshot of every currently registered node is taken before we
	// start mutating the table, since sweeping rebuilds it from scratch.
	type entry struct {
		id     int32
		level  int32
		e0, e1 edge
	}
	var live []entry
	k.table.forEach(func(id int32, level int32, e0, e1 edge) {
		live = append(live, entry{id, level, e0, e1})
	})

	k.table.clear()
	for _, ent := range live {
		n := k.s.at(ent.id)
		if n.ref > 0 || n.marked() {
			n.unmark()
			k.table.insert(ent.level, ent.e0, ent.e1, ent.id)
		} else {
			k.s.release(ent.id)
			k.garbage--
		}
	}
	k.caches.reset()
	k.s.resetOverflow()
	if logLevel > 0 {
		log.Printf("rudd: end GC; free: %d, garbage: %d\n", k.s.nodeCount()-k.table.size(), k.garbage)
	}
}

// markrec marks id and everything reachable from it. Terminal indices
// (0, the only slab slot ever shared between False and True) are never
// marked or swept; they live forever.
func (k *kernel) markrec(id int32) {
	if id <= 0 {
		return
	}
	n := k.s.at(id)
	if n.marked() {
		return
	}
	n.mark()
	if lo := n.edge0.node(); lo > 0 {
		k.markrec(lo)
	}
	if hi := n.edge1.node(); hi > 0 {
		k.markrec(hi)
	}
}

// pushref/popref protect transient nodes built in the middle of a
// recursive operation (e.g. the two halves of an ite before they are
// combined into the final node) from being swept by a GC triggered while
// that operation is still building intermediate results -- mirroring the
// teacher's own refstack (gc.go).
func (k *kernel) pushref(e edge) edge {
	k.refstack = append(k.refstack, e)
	return e
}

func (k *kernel) popref(n int) {
	k.refstack = k.refstack[:len(k.refstack)-n]
}
