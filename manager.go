// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd

import (
	"io"
	"log"
	"math/big"
	"runtime"
)

// uniqueTable is the hash-consing strategy a manager is built on. NewClassic
// and NewModern share every other piece of the engine (slab, caches,
// operations, GC) and differ only in which uniqueTable they plug in,
// following the "two implementations of a trait, not two class hierarchies"
// redesign called for by the expanded spec.
type uniqueTable interface {
	find(level int32, e0, e1 edge) (int32, bool)
	insert(level int32, e0, e1 edge, id int32)
	remove(level int32, e0, e1 edge, id int32)
	resize(hint int)
	growVars(nvars int)
	clear()
	size() int
	capacity() int
	forEach(f func(id int32, level int32, e0, e1 edge))
}

// BDD is the operation surface exposed by a manager, implemented by the
// value NewClassic/NewModern return. Every method that can fail returns a
// Node that reports true from IsError (bad variable, foreign node, a
// destroyed manager) or IsOverflow (the node table could not grow any
// further); neither ever panics.
type BDD interface {
	Error() string
	Errored() bool

	NumVars() int
	NewVar() (int, error)

	True() *Node
	False() *Node
	From(v bool) *Node
	Ithvar(i int) *Node
	NIthvar(i int) *Node
	Low(n *Node) *Node
	High(n *Node) *Node
	Level(n *Node) int

	Not(n *Node) *Node
	Apply(left, right *Node, op Operator) *Node
	Ite(f, g, h *Node) *Node
	And(n ...*Node) *Node
	Or(n ...*Node) *Node
	Xor(f, g *Node) *Node
	Imp(f, g *Node) *Node
	Equiv(f, g *Node) *Node
	Equal(f, g *Node) bool

	Makeset(vars []int) *Node
	Scanset(cube *Node) []int
	IsCube(f *Node) bool
	IsPositiveCube(f *Node) bool
	Support(f *Node) *Node

	Exist(f, varset *Node) *Node
	AndExist(f, g, varset *Node) *Node
	Cofactor(f *Node, v int, positive bool) *Node
	Constrain(f, c *Node) *Node

	ComposeBegin() *Composer
	PushDown(f *Node, x, y int) *Node

	ISOP(lower, upper *Node) (*Node, Cover)
	SCC(f *Node) *Node
	CheckSymmetry(f *Node, x, y int, pol bool) bool

	MintermCount(f *Node, nvars int) *big.Int
	Walsh0(f *Node, nvars int) *big.Int
	Walsh1(f *Node, v int, nvars int) *big.Int
	Satcount(f *Node) *big.Int

	Onepath(f *Node) *Node
	ShortestOnepath(f *Node) *Node
	ShortestOnepathLength(f *Node) int

	Allsat(f *Node, cb func([]int) error) error
	Allnodes(cb func(id, level, low, high int) error, n ...*Node) error
	Size(n ...*Node) int

	Stats() string
	SetLogStream(w io.Writer)
	UnsetLogStream()
	Params() Params
	SetParams(p Params, mask ParamMask)
	Destroy()
}

// kernel is the single concrete implementation of BDD. NewClassic and
// NewModern both return a *kernel, configured with a different uniqueTable;
// everything else -- the slab, the caches, every operation -- is shared.
type kernel struct {
	varnum int32
	s      *slab
	table  uniqueTable

	literal [][2]edge // literal[v] = {positive edge, negative edge}

	caches *caches

	err       error
	destroyed bool
	logw      io.Writer

	gcThreshold     int // garbage/live percentage that triggers opportunistic GC
	gcnodefloor     int // live-node count below which GC never fires
	minfreenodes    int
	cacheratio      int
	maxnodesize     int
	maxnodeincrease int

	uniquetableloadlimit float64 // average chain length that triggers a table resize
	cacheloadlimit       float64 // cache fill fraction that triggers a cache resize

	quantsetTag []int32 // per-level tag watermark, see quantify.go
	quantsetID  int32
	quantLast   int32 // highest level present in the varset of the in-flight quantification
	composeNext int

	refstack []edge // protects transient, not-yet-rooted nodes during recursion

	garbage   int // nodes with ref == 0, tracked incrementally by activate/deactivate
	gcCount   int
	gcHistory []gcRecord
}

func (k *kernel) Params() Params {
	return Params{
		GCThreshold:          k.gcThreshold,
		GCNodeFloor:          k.gcnodefloor,
		MaxNodeSize:          k.maxnodesize,
		MaxNodeIncrease:      k.maxnodeincrease,
		MinFreeNodes:         k.minfreenodes,
		CacheSize:            len(k.caches.apply.table),
		CacheRatio:           k.cacheratio,
		UniqueTableLoadLimit: k.uniquetableloadlimit,
		CacheLoadLimit:       k.cacheloadlimit,
		MemLimit:             k.s.byteCap,
	}
}

func (k *kernel) SetParams(p Params, mask ParamMask) {
	if mask&PGCThreshold != 0 {
		k.gcThreshold = p.GCThreshold
	}
	if mask&PGCNodeFloor != 0 {
		k.gcnodefloor = p.GCNodeFloor
	}
	if mask&PMaxNodeSize != 0 {
		k.maxnodesize = p.MaxNodeSize
	}
	if mask&PMaxNodeIncrease != 0 {
		k.maxnodeincrease = p.MaxNodeIncrease
	}
	if mask&PMinFreeNodes != 0 {
		k.minfreenodes = p.MinFreeNodes
	}
	if mask&PCacheRatio != 0 {
		k.cacheratio = p.CacheRatio
	}
	if mask&PCacheSize != 0 {
		k.caches = newCaches(p.CacheSize, k.cacheratio, k.cacheloadlimit)
	}
	if mask&PUniqueTableLoadLimit != 0 {
		k.uniquetableloadlimit = p.UniqueTableLoadLimit
	}
	if mask&PCacheLoadLimit != 0 {
		k.cacheloadlimit = p.CacheLoadLimit
		k.caches.setLoadLimit(p.CacheLoadLimit)
	}
	if mask&PMemLimit != 0 {
		k.s.byteCap = p.MemLimit
	}
}

func (k *kernel) SetLogStream(w io.Writer) { k.logw = w }
func (k *kernel) UnsetLogStream()          { k.logw = nil }

func (k *kernel) logf(format string, a ...interface{}) {
	if k.logw != nil {
		log.New(k.logw, "", log.LstdFlags).Printf(format, a...)
	}
}

func (k *kernel) NumVars() int { return int(k.varnum) }

// NewClassic returns a manager with a single, global, hash-consed node
// table shared by every variable -- the fixed-order manager flavor
// (BddMgrClassic in original_source; hudd.go's hashmap table in the
// teacher).
func NewClassic(varnum int, opts ...Option) (BDD, error) {
	k, err := newManagerWithFactory(varnum, func(s *slab, size int) uniqueTable {
		return newClassicTable(s, size)
	}, opts...)
	if err != nil {
		return nil, err
	}
	return k, nil
}

// NewModern returns a manager with one unique sub-table per variable: the
// seam a future dynamic-reordering manager would plug into (BddMgrModern in
// original_source; the teacher's alternate, build-tag-selected array table
// as the precedent for a second concrete representation).
func NewModern(varnum int, opts ...Option) (BDD, error) {
	k, err := newManagerWithFactory(varnum, func(s *slab, size int) uniqueTable {
		return newModernTable(varnum)
	}, opts...)
	if err != nil {
		return nil, err
	}
	return k, nil
}

func newManagerWithFactory(varnum int, factory func(*slab, int) uniqueTable, opts ...Option) (*kernel, error) {
	if varnum < 1 || varnum > maxVar {
		return nil, errBadVarnum
	}
	c := makeconfigs(varnum)
	for _, f := range opts {
		f(c)
	}
	s := newSlab(c.memlimit)
	table := factory(s, c.nodesize)
	k := &kernel{
		varnum:               int32(varnum),
		s:                    s,
		table:                table,
		gcThreshold:          c.gcthreshold,
		gcnodefloor:          c.gcnodefloor,
		minfreenodes:         c.minfreenodes,
		cacheratio:           c.cacheratio,
		maxnodesize:          c.maxnodesize,
		maxnodeincrease:      c.maxnodeincrease,
		uniquetableloadlimit: c.uniquetableloadlimit,
		cacheloadlimit:       c.cacheloadlimit,
		quantsetTag:          make([]int32, varnum),
	}
	k.caches = newCaches(c.cachesize, c.cacheratio, c.cacheloadlimit)
	k.literal = make([][2]edge, varnum)
	k.refstack = make([]edge, 0, 2*varnum+4)
	for v := 0; v < varnum; v++ {
		pos := k.makeNode(int32(v), edgeZero, edgeOne)
		if pos.isSentinel() {
			return nil, errNodeTable
		}
		k.pushref(pos)
		neg := k.makeNode(int32(v), edgeOne, edgeZero)
		if neg.isSentinel() {
			return nil, errNodeTable
		}
		k.popref(1)
		k.pin(pos.node())
		k.pin(neg.node())
		k.literal[v] = [2]edge{pos, neg}
	}
	if logLevel > 0 {
		log.Printf("rudd: created manager with %d variables\n", varnum)
	}
	return k, nil
}

// NewVar extends the manager with one additional variable, placed at the
// next free level above every existing one. Unlike the teacher's
// SetVarnum/ExtVarnum (which resize the whole variable set at once), we
// grow one variable at a time: simpler to reason about and all this engine
// ever needs, since nothing here reorders variables once created.
func (k *kernel) NewVar() (int, error) {
	if k.destroyed {
		return 0, errDestroyed
	}
	v := int(k.varnum)
	if v >= maxVar {
		return 0, errBadVarnum
	}
	k.varnum++
	k.literal = append(k.literal, [2]edge{})
	k.quantsetTag = append(k.quantsetTag, 0)
	k.table.growVars(int(k.varnum))
	pos := k.makeNode(int32(v), edgeZero, edgeOne)
	if pos.isSentinel() {
		k.varnum--
		return 0, errNodeTable
	}
	k.pushref(pos)
	neg := k.makeNode(int32(v), edgeOne, edgeZero)
	if neg.isSentinel() {
		k.varnum--
		return 0, errNodeTable
	}
	k.popref(1)
	k.pin(pos.node())
	k.pin(neg.node())
	k.literal[v] = [2]edge{pos, neg}
	return v, nil
}

// pin gives a freshly built literal node a reference count it can never lose
// (the teacher pins the two per-variable literals the same way so they
// survive every collection; original_source's BddMgrImpl does the same by
// never entering them in its garbage accounting at all). The node was just
// allocated with ref == 0, so it is currently counted as garbage; pinning it
// is the same 0->1 transition activate makes, minus the recursive descent
// into its children (edgeZero/edgeOne, which carry no count of their own).
func (k *kernel) pin(id int32) {
	n := k.s.at(id)
	if n.ref == 0 {
		k.garbage--
	}
	n.ref = maxRefCount
}

// makeNode is the canonicalizing node constructor every operation builds
// on: it applies the e0==e1 reduction rule, restores the complement-edge
// invariant that a stored node's edge0 is never itself complemented, and
// hash-conses through the unique table. It allocates a node on a miss,
// collecting garbage first when the slab already holds MaxNodeSize nodes,
// and collecting and retrying once when the slab cannot supply a slot.
func (k *kernel) makeNode(level int32, e0, e1 edge) edge {
	if e0.isSentinel() {
		return e0
	}
	if e1.isSentinel() {
		return e1
	}
	if e0 == e1 {
		return e0
	}
	comp := e0.isComplemented()
	if comp {
		e0 = e0.complement()
		e1 = e1.complement()
	}
	if id, ok := k.table.find(level, e0, e1); ok {
		return makeEdge(id, comp)
	}
	if k.maxnodesize > 0 && k.s.nodeCount() >= k.maxnodesize {
		k.gc()
		if k.s.nodeCount() >= k.maxnodesize {
			return edgeOverflow
		}
	}
	id, ok := k.s.alloc()
	if !ok {
		k.gc()
		id, ok = k.s.alloc()
		if !ok {
			if logLevel > 0 {
				k.logf("rudd: node table overflow at %d nodes\n", k.s.nodeCount())
			}
			return edgeOverflow
		}
	}
	n := k.s.at(id)
	n.level = level
	n.edge0 = e0
	n.edge1 = e1
	n.ref = 0
	n.clearMark()
	k.table.insert(level, e0, e1, id)
	k.garbage++
	if cap := k.table.capacity(); cap > 0 && float64(k.table.size()) > k.uniquetableloadlimit*float64(cap) {
		k.table.resize(cap * 2)
	}
	return makeEdge(id, comp)
}

// activate recursively raises a node's reference count, descending into its
// children only on the 0->1 transition: a node already referenced by some
// other live root is already keeping its whole subgraph alive, so walking
// further would just re-count nodes that are not becoming any less garbage.
// Ported from original_source's BddMgrImpl::activate, the standard
// BuDDy-family technique for tracking a garbage count without a full-graph
// reachability walk on every root (de)reference.
func (k *kernel) activate(e edge) {
	if e.isSentinel() {
		return
	}
	id := e.node()
	if id <= 0 {
		return
	}
	n := k.s.at(id)
	if n.ref == 0 {
		k.garbage--
		k.activate(n.edge0)
		k.activate(n.edge1)
	}
	n.incRef()
}

// deactivate is activate's mirror: a node's count only drops back into
// "garbage" on the 1->0 transition, at which point its children lose the
// reference this node was holding on their behalf and are walked the same
// way. Ported from original_source's BddMgrImpl::deactivate.
func (k *kernel) deactivate(e edge) {
	if e.isSentinel() {
		return
	}
	id := e.node()
	if id <= 0 {
		return
	}
	n := k.s.at(id)
	n.decRef()
	if n.ref == 0 {
		k.garbage++
		k.deactivate(n.edge0)
		k.deactivate(n.edge1)
	}
}

func (k *kernel) incRootRef(e edge) {
	if k.destroyed {
		return
	}
	k.activate(e)
}

func (k *kernel) decRootRef(e edge) {
	if k.destroyed {
		return
	}
	k.deactivate(e)
	k.maybeGC()
}

// maybeGC runs an opportunistic collection after a root reference is
// dropped (makeNode also collects, in the middle of an operation, when it
// cannot obtain a slot; the refstack protects that operation's
// intermediate results). It fires only when the manager holds more live
// nodes than gcnodefloor and the fraction of those nodes that are garbage
// has crossed gcThreshold, mirroring original_source's check_gc() &&
// mNodeNum > gc_node_limit() && mGarbageNum > mNodeNum*gc_threshold() -- or
// unconditionally once the slab has already failed to grow.
func (k *kernel) maybeGC() {
	if k.destroyed {
		return
	}
	if k.s.overflow {
		k.gc()
		return
	}
	live := k.s.nodeCount()
	if live <= k.gcnodefloor {
		return
	}
	if k.garbage*100 > live*k.gcThreshold {
		k.gc()
	}
}

// Destroy tears the manager down: every still-live client handle is
// rewritten to the error sentinel so any further operation on it returns
// the in-band error rather than reading freed state, matching
// original_source's ~BddMgrImpl (BddMgrImpl.cc:94-119), which walks the
// manager's list of live Bdd and calls set_edge(BddEdge::make_error()) on
// each one before splicing the list onto the process-wide default manager.
//
// This manager takes the same externally observable behaviour -- every
// handle obtained before Destroy reports IsError() after it -- without the
// physical intrusive list or the splice-to-a-fallback-manager step: a Node
// held by client code is, by construction, a strong root the Go garbage
// collector will never collect out from under a live pointer, so there is
// no way to "rewrite the list" other than consulting destroyed at the point
// a handle is read. own() and IsError()/IsOverflow() do exactly that,
// lazily, for every handle this kernel ever produced -- equivalent to an
// eager rewrite for every caller that can still observe the Node, and
// cheaper since no handle is ever rewritten that immediately goes on to be
// finalized unread. The fallback-default-manager splice has no counterpart
// here either: a destroyed kernel's handles simply report the error
// sentinel forever, they are never adopted by another manager's table,
// which is sufficient for the "safe teardown" guarantee the spec asks for
// (no further mutation of freed state) without resurrecting a manager that
// the client explicitly destroyed. See DESIGN.md for the full rationale.
func (k *kernel) Destroy() {
	if k.destroyed {
		return
	}
	k.destroyed = true
	k.table.clear()
	k.caches.reset()
}

// Node is the client-facing handle to a value inside one specific manager.
// It pairs the internal edge with the manager that produced it so foreign
// nodes (passed by mistake to a different manager) are rejected rather than
// silently misread, and it carries a finalizer that calls back into the
// manager to drop the node's root reference once nothing outside the
// manager can reach it any more -- the same automatic-bookkeeping trick as
// the teacher's `type Node *int` plus `runtime.SetFinalizer`, adapted to a
// handle that also remembers its owner.
type Node struct {
	k *kernel
	e edge
}

func (k *kernel) wrap(e edge) *Node {
	n := &Node{k: k, e: e}
	if !e.isSentinel() && !k.destroyed {
		k.incRootRef(e)
		runtime.SetFinalizer(n, func(n *Node) { n.k.decRootRef(n.e) })
	}
	return n
}

// own validates that n was produced by k and that k has not since been
// destroyed, returning the error sentinel otherwise. Every operation
// (Not, And, Cofactor, ...) unwraps its arguments through own, so this single
// check is what makes a handle obtained before Destroy report the error
// sentinel on every use after it, without needing every call site to repeat
// the check itself (manager.go's Destroy doc comment has the full
// rationale).
func (k *kernel) own(n *Node) (edge, bool) {
	if n == nil || n.k != k {
		k.seterror(errForeignNode.Error())
		return edgeError, false
	}
	if n.k.destroyed {
		k.seterror(errDestroyed.Error())
		return edgeError, false
	}
	return n.e, true
}

// IsError reports whether n denotes the in-band error sentinel, including
// the case where n was produced before its manager was destroyed.
func (n *Node) IsError() bool { return n.e.isError() || n.k.destroyed }

// IsOverflow reports whether n denotes the in-band overflow sentinel.
func (n *Node) IsOverflow() bool { return n.e.isOverflow() }

func (k *kernel) True() *Node  { return k.wrap(edgeOne) }
func (k *kernel) False() *Node { return k.wrap(edgeZero) }

func (k *kernel) From(v bool) *Node {
	if v {
		return k.True()
	}
	return k.False()
}

func (k *kernel) Ithvar(i int) *Node {
	if i < 0 || i >= int(k.varnum) {
		return k.wrap(k.seterror("variable %d out of range [0,%d)", i, k.varnum))
	}
	return k.wrap(k.literal[i][0])
}

func (k *kernel) NIthvar(i int) *Node {
	if i < 0 || i >= int(k.varnum) {
		return k.wrap(k.seterror("variable %d out of range [0,%d)", i, k.varnum))
	}
	return k.wrap(k.literal[i][1])
}

func (k *kernel) Low(n *Node) *Node {
	e, ok := k.own(n)
	if !ok {
		return k.wrap(edgeError)
	}
	if e.isConstant() {
		return k.wrap(e)
	}
	node := k.s.at(e.node())
	return k.wrap(node.edge0.withPolarity(e.isComplemented()))
}

func (k *kernel) High(n *Node) *Node {
	e, ok := k.own(n)
	if !ok {
		return k.wrap(edgeError)
	}
	if e.isConstant() {
		return k.wrap(e)
	}
	node := k.s.at(e.node())
	return k.wrap(node.edge1.withPolarity(e.isComplemented()))
}

func (k *kernel) Level(n *Node) int {
	e, ok := k.own(n)
	if !ok {
		return -1
	}
	if e.isSentinel() {
		return -1
	}
	return int(k.s.at(e.node()).level)
}
