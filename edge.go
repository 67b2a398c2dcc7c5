// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd

// edge is the fundamental internal handle used by the node manager and the
// operation engine: a node pointer (the index of a bddNode in the slab)
// together with a complement bit, plus two reserved sentinel values. We pack
// both fields into a single machine word, following the convention used
// throughout the dalzilio/rudd node tables (Node as a small integer index)
// but adding the complement bit in the low-order position so that and/xor/ite
// can test and flip it with plain integer arithmetic.
//
// Terminal nodes live at slab index 0; edge(0,0) is the canonical False and
// edge(0,1) is its complement, True. Every non-terminal node index is >= 1,
// so valid edges are always non-negative; the two error sentinels are the
// only negative values an edge can take.
type edge int32

const (
	edgeZero     edge = 0  // node 0, uncomplemented: the canonical False
	edgeOne      edge = 1  // node 0, complemented: True = not(False)
	edgeError    edge = -1 // propagates from logical preconditions
	edgeOverflow edge = -2 // propagates from allocation failure
)

// node extracts the slab index from an edge. Only meaningful for edges that
// are neither error nor overflow.
func (e edge) node() int32 {
	return int32(e) >> 1
}

// isComplemented reports whether e carries the complement bit.
func (e edge) isComplemented() bool {
	return e&1 != 0
}

// isError reports whether e is the error sentinel.
func (e edge) isError() bool {
	return e == edgeError
}

// isOverflow reports whether e is the overflow sentinel.
func (e edge) isOverflow() bool {
	return e == edgeOverflow
}

// isSentinel reports whether e is either of the two in-band failure values;
// such edges propagate through every operation unchanged (spec. error handling).
func (e edge) isSentinel() bool {
	return e < 0
}

// isConstant reports whether e denotes one of the two terminal functions.
func (e edge) isConstant() bool {
	return !e.isSentinel() && e.node() == 0
}

// complement returns the logical negation of e. Sentinels are passed through
// unchanged: negating an error or an overflow is still that same error or
// overflow, never a "negated" sentinel. We never materialize a distinct
// negated node; complement is always a pure bit flip on a shared node.
func (e edge) complement() edge {
	if e.isSentinel() {
		return e
	}
	return e ^ 1
}

// withPolarity returns e complemented iff neg is true.
func (e edge) withPolarity(neg bool) edge {
	if neg {
		return e.complement()
	}
	return e
}

// makeEdge builds the edge pointing at slab index n with the given
// complement bit.
func makeEdge(n int32, complemented bool) edge {
	if complemented {
		return edge(n<<1) | 1
	}
	return edge(n << 1)
}

// edgeFromBool returns the terminal edge denoting v.
func edgeFromBool(v bool) edge {
	if v {
		return edgeOne
	}
	return edgeZero
}

// boolValue reports the boolean value of a constant edge. The result is
// meaningless if e is not constant; callers must check isConstant first.
func (e edge) boolValue() int {
	if e == edgeOne {
		return 1
	}
	return 0
}
