// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd

import "unsafe"

// slabChunkSize is the number of nodes carved out of the slab each time it
// needs to grow. Growing in fixed chunks, rather than doubling a single
// contiguous slice, means previously handed-out indices stay valid forever
// (the teacher's hudd.go grows b.nodes itself and gets away with it only
// because indices are ints into a slice that is replaced wholesale; here we
// want chunk addresses that never move, closer in spirit to buddy.go's
// fixed-size array tables).
const slabChunkSize = 1 << 12

// slab is the node manager's fixed-size chunked allocator. It hands out
// bddNode slots by index, threading unused slots through bddNode.next as a
// singly linked free list, and refuses to grow once the configured byte cap
// is reached -- reporting that as a sticky overflow rather than an error,
// since running out of memory is an operating condition every operation
// must be able to propagate through, not a programmer mistake.
type slab struct {
	chunks    [][]bddNode
	free      int32 // head of the free list, 0 means empty (slot 0 is the terminal, never freed)
	live      int32 // number of slots currently in use
	byteCap   int64 // 0 means unlimited
	overflow  bool  // sticky: once true, stays true until reset by the manager
	allocated int64 // total nodes ever carved out, across all chunks
}

var nodeSize = int64(unsafe.Sizeof(bddNode{}))

func newSlab(byteCap int64) *slab {
	s := &slab{byteCap: byteCap}
	s.growChunk()
	// Reserve slot 0 for the two terminal nodes (False at 0, True is the
	// complemented edge pointing at the same slot). Slot 0 is never placed
	// on the free list.
	s.chunks[0][0] = bddNode{level: maxVarLevel, edge0: edgeZero, edge1: edgeZero, ref: maxRefCount}
	s.live = 1
	return s
}

// growChunk carves out one more fixed-size chunk and splices its slots onto
// the front of the free list, with the chunk's own last slot pointing at
// whatever used to be the head (so old free slots are not lost).
func (s *slab) growChunk() bool {
	if s.byteCap > 0 && s.allocated*nodeSize >= s.byteCap {
		s.overflow = true
		return false
	}
	base := int32(len(s.chunks)) * slabChunkSize
	chunk := make([]bddNode, slabChunkSize)
	start := int32(0)
	if base == 0 {
		start = 1 // slot 0 of the very first chunk is reserved for the terminal
	}
	oldFree := s.free
	for i := start; i < slabChunkSize; i++ {
		next := base + i + 1
		if i == slabChunkSize-1 {
			next = oldFree
		}
		chunk[i].next = next
	}
	s.chunks = append(s.chunks, chunk)
	s.free = base + start
	s.allocated += slabChunkSize
	return true
}

func (s *slab) set(idx int32, f func(*bddNode)) {
	f(&s.chunks[idx/slabChunkSize][idx%slabChunkSize])
}

func (s *slab) at(idx int32) *bddNode {
	return &s.chunks[idx/slabChunkSize][idx%slabChunkSize]
}

// alloc returns a fresh node index, growing the slab if needed. It reports
// ok=false (and sets the sticky overflow flag) when the byte cap prevents
// further growth and the free list is already empty.
func (s *slab) alloc() (int32, bool) {
	if s.free == 0 {
		if !s.growChunk() {
			return 0, false
		}
	}
	idx := s.free
	n := s.at(idx)
	s.free = n.next
	n.next = 0
	s.live++
	return idx, true
}

// release returns idx to the free list. Callers must have already removed
// any unique-table entry referencing idx.
func (s *slab) release(idx int32) {
	n := s.at(idx)
	*n = bddNode{next: s.free}
	s.free = idx
	s.live--
}

func (s *slab) nodeCount() int {
	return int(s.live)
}

func (s *slab) resetOverflow() {
	s.overflow = false
}
