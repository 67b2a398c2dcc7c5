// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd

// configs holds the values used once, at construction time, to size a fresh
// manager. After construction the same knobs are exposed again, in bulk,
// through Params/ParamMask (SetParams), matching BddMgrImpl::param's
// mask-based bulk setter in original_source.
type configs struct {
	varnum          int
	nodesize        int
	cachesize       int
	cacheratio      int
	maxnodesize     int
	maxnodeincrease int
	minfreenodes    int
	gcthreshold     int
	gcnodefloor     int
	memlimit        int64

	uniquetableloadlimit float64
	cacheloadlimit       float64
}

func makeconfigs(varnum int) *configs {
	c := &configs{varnum: varnum}
	c.minfreenodes = defaultMinFreeNodes
	c.maxnodeincrease = defaultMaxNodeIncrease
	c.nodesize = 2*varnum + 2
	c.cachesize = 10000
	c.gcthreshold = 10
	c.gcnodefloor = defaultGCNodeFloor
	c.uniquetableloadlimit = defaultUniqueTableLoadLimit
	c.cacheloadlimit = defaultCacheLoadLimit
	return c
}

// Option configures a manager at construction time. Passed as variadic
// arguments to NewClassic/NewModern, in the teacher's functional-options
// style (config.go).
type Option func(*configs)

// NodeSize sets a preferred initial size for the node table. By default we
// create a table large enough to hold the two terminals and every requested
// variable's pair of literals.
func NodeSize(size int) Option {
	return func(c *configs) {
		if size >= 2*c.varnum+2 {
			c.nodesize = size
		}
	}
}

// MaxNodeSize bounds the total number of nodes a manager may ever allocate.
// An operation that would grow the table past this limit instead returns an
// overflow edge. The default (0) means no limit beyond available memory.
func MaxNodeSize(size int) Option {
	return func(c *configs) { c.maxnodesize = size }
}

// MaxNodeIncrease records a bound on how many nodes a single table resize
// may add. The value is stored and reported by Params; the slab always
// grows by whole chunks of slabChunkSize nodes regardless of it.
func MaxNodeIncrease(size int) Option {
	return func(c *configs) { c.maxnodeincrease = size }
}

// MinFreeNodes records the percentage of free nodes to keep after a garbage
// collection. The value is stored and reported by Params; a collection never
// resizes the table because of it.
func MinFreeNodes(ratio int) Option {
	return func(c *configs) { c.minfreenodes = ratio }
}

// CacheSize sets the initial number of entries in each computed-result
// cache.
func CacheSize(size int) Option {
	return func(c *configs) { c.cachesize = size }
}

// CacheRatio records a number of cache entries to keep per 100 node-table
// slots. The value is stored and reported by Params; the caches are not
// resized when the node table grows, and each cache instead doubles on its
// own once its fill fraction crosses CacheLoadLimit.
func CacheRatio(ratio int) Option {
	return func(c *configs) { c.cacheratio = ratio }
}

// GCThreshold sets the percentage of live nodes that must be garbage (ref
// count zero) before a root-reference drop triggers an opportunistic
// collection, mirroring original_source's gc_threshold (BddMgrImpl.h).
func GCThreshold(percent int) Option {
	return func(c *configs) { c.gcthreshold = percent }
}

// GCNodeFloor sets the minimum number of live nodes below which GC never
// fires, regardless of the garbage ratio: collecting a manager with only a
// handful of nodes is never worth the pass over the table. Mirrors
// original_source's gc_node_limit (BddMgrImpl.h).
func GCNodeFloor(nodes int) Option {
	return func(c *configs) { c.gcnodefloor = nodes }
}

// UniqueTableLoadLimit sets the average chain length the node-hashing unique
// table may reach before it doubles its bucket count. Only consulted by
// NewClassic; NewModern's per-variable Go-map sub-tables resize themselves.
// Mirrors original_source's nt_load_limit (BddMgrImpl.h).
func UniqueTableLoadLimit(limit float64) Option {
	return func(c *configs) { c.uniquetableloadlimit = limit }
}

// CacheLoadLimit sets the fill fraction a computed-result cache may reach
// before it doubles its capacity. Mirrors original_source's rt_load_limit
// (BddMgrImpl.h).
func CacheLoadLimit(limit float64) Option {
	return func(c *configs) { c.cacheloadlimit = limit }
}

// MemLimit bounds the total bytes the slab allocator may claim. Zero (the
// default) means no limit. The limit is checked before each new chunk is
// carved out, against the bytes already claimed, so the total can exceed it
// by up to one chunk. Reaching the limit sets the manager's sticky overflow
// condition rather than panicking.
func MemLimit(bytes int64) Option {
	return func(c *configs) { c.memlimit = bytes }
}

// ParamMask selects which fields of a Params value SetParams should apply,
// mirroring BddMgrImpl::param(const BddMgrParam&, ymuint32 mask) from
// original_source: callers can update a handful of tunables at a time
// without having to first read back and repopulate the ones they don't
// intend to touch.
type ParamMask uint32

const (
	PGCThreshold ParamMask = 1 << iota
	PGCNodeFloor
	PMaxNodeSize
	PMaxNodeIncrease
	PMinFreeNodes
	PCacheSize
	PCacheRatio
	PUniqueTableLoadLimit
	PCacheLoadLimit
	PMemLimit

	PParamAll = PGCThreshold | PGCNodeFloor | PMaxNodeSize | PMaxNodeIncrease |
		PMinFreeNodes | PCacheSize | PCacheRatio | PUniqueTableLoadLimit |
		PCacheLoadLimit | PMemLimit
)

// Params is the live, bulk-readable/writable view of a manager's tunables.
// Unlike configs (construction-time only), Params can be read back and
// re-applied at any point in a manager's lifetime via Manager.Params and
// Manager.SetParams.
type Params struct {
	GCThreshold     int
	GCNodeFloor     int
	MaxNodeSize     int
	MaxNodeIncrease int
	MinFreeNodes    int
	CacheSize       int
	CacheRatio      int

	UniqueTableLoadLimit float64
	CacheLoadLimit       float64

	MemLimit int64
}
