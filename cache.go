// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd

import (
	"fmt"
	"unsafe"
)

// tripleHash and pairHash mix integer keys into a single bucket index,
// adapted from the teacher's _TRIPLE/_PAIR (cache.go): a Cantor pairing
// function folded down into [0, length) with a modulo.
func pairHash(a, b int64, length int) int {
	ua, ub := uint64(a), uint64(b)
	return int((((ua+ub)*(ua+ub+1))/2 + ua) % uint64(length))
}

func tripleHash(a, b, c int64, length int) int {
	return pairHash(c, int64(pairHash(a, b, length)), length)
}

// cache3 is a fixed-capacity, direct-mapped (no probing: a collision simply
// evicts the previous entry) computed-result cache keyed by three int64
// values plus a small operator/id tag, used for apply (f, g, op), ite
// (f, g, h) and and_exist (f, g, id). Direct mapping, not open addressing
// with probing, follows the teacher's applycache/itecache/appexcache: a
// stale hit is impossible to observe because every entry also stores its
// own keys and is checked on lookup, so a false hit can only ever read as a
// miss, never as wrong data.
type cache3 struct {
	table     []cache3Entry
	ratio     int
	loadLimit float64
	used      int
	opHit     int
	opMiss    int
}

type cache3Entry struct {
	valid   bool
	a, b, c int64
	res     edge
}

func newCache3(size, ratio int, loadLimit float64) *cache3 {
	c := &cache3{ratio: ratio, loadLimit: loadLimit}
	c.table = make([]cache3Entry, primeGte(size))
	return c
}

func (c *cache3) resize(nodesize int) {
	if c.ratio <= 0 {
		c.reset()
		return
	}
	c.table = make([]cache3Entry, primeGte((nodesize*c.ratio)/100))
	c.used = 0
}

func (c *cache3) reset() {
	for i := range c.table {
		c.table[i].valid = false
	}
	c.used = 0
}

// grow doubles the table once the fraction of valid entries crosses
// loadLimit, following the same "cold cache, same canonical answer on the
// next miss" reasoning as reset: nothing downstream depends on a cache entry
// surviving a reallocation (cache_load_limit, spec §6).
func (c *cache3) grow() {
	c.table = make([]cache3Entry, primeGte(len(c.table)*2))
	c.used = 0
}

func (c *cache3) get(a, b, cc int64) (edge, bool) {
	e := &c.table[tripleHash(a, b, cc, len(c.table))]
	if e.valid && e.a == a && e.b == b && e.c == cc {
		if debugEnabled {
			c.opHit++
		}
		return e.res, true
	}
	if debugEnabled {
		c.opMiss++
	}
	return 0, false
}

func (c *cache3) set(a, b, cc int64, res edge) {
	// Sentinel results (error/overflow) are never memoized: they depend on
	// transient resource conditions (an exhausted node table, say) that a
	// later, unrelated call might no longer be under.
	if res.isSentinel() {
		return
	}
	if c.loadLimit > 0 && float64(c.used) > c.loadLimit*float64(len(c.table)) {
		c.grow()
	}
	e := &c.table[tripleHash(a, b, cc, len(c.table))]
	if !e.valid {
		c.used++
	}
	*e = cache3Entry{valid: true, a: a, b: b, c: cc, res: res}
}

func (c cache3) String() string {
	total := c.opHit + c.opMiss
	ratio := 0.0
	if total > 0 {
		ratio = (float64(c.opHit) * 100) / float64(total)
	}
	return fmt.Sprintf("entries: %d (%s), hits: %d (%.1f%%), miss: %d\n",
		len(c.table), humanSize(len(c.table), unsafe.Sizeof(cache3Entry{})), c.opHit, ratio, c.opMiss)
}

// cache2 is the two-key counterpart of cache3, used for exists/compose (a
// node id plus a small side-table id) and constrain (two edges).
type cache2 struct {
	table     []cache2Entry
	ratio     int
	loadLimit float64
	used      int
	opHit     int
	opMiss    int
}

type cache2Entry struct {
	valid bool
	a, b  int64
	res   edge
}

func newCache2(size, ratio int, loadLimit float64) *cache2 {
	c := &cache2{ratio: ratio, loadLimit: loadLimit}
	c.table = make([]cache2Entry, primeGte(size))
	return c
}

func (c *cache2) resize(nodesize int) {
	if c.ratio <= 0 {
		c.reset()
		return
	}
	c.table = make([]cache2Entry, primeGte((nodesize*c.ratio)/100))
	c.used = 0
}

func (c *cache2) reset() {
	for i := range c.table {
		c.table[i].valid = false
	}
	c.used = 0
}

func (c *cache2) grow() {
	c.table = make([]cache2Entry, primeGte(len(c.table)*2))
	c.used = 0
}

func (c *cache2) get(a, b int64) (edge, bool) {
	e := &c.table[pairHash(a, b, len(c.table))]
	if e.valid && e.a == a && e.b == b {
		if debugEnabled {
			c.opHit++
		}
		return e.res, true
	}
	if debugEnabled {
		c.opMiss++
	}
	return 0, false
}

func (c *cache2) set(a, b int64, res edge) {
	if res.isSentinel() {
		return
	}
	if c.loadLimit > 0 && float64(c.used) > c.loadLimit*float64(len(c.table)) {
		c.grow()
	}
	e := &c.table[pairHash(a, b, len(c.table))]
	if !e.valid {
		c.used++
	}
	*e = cache2Entry{valid: true, a: a, b: b, res: res}
}

func (c cache2) String() string {
	total := c.opHit + c.opMiss
	ratio := 0.0
	if total > 0 {
		ratio = (float64(c.opHit) * 100) / float64(total)
	}
	return fmt.Sprintf("entries: %d (%s), hits: %d (%.1f%%), miss: %d\n",
		len(c.table), humanSize(len(c.table), unsafe.Sizeof(cache2Entry{})), c.opHit, ratio, c.opMiss)
}

// cache1 is the one-key counterpart, used for the smallest-containing-cube
// (scc) memo.
type cache1 struct {
	table     []cache1Entry
	ratio     int
	loadLimit float64
	used      int
	opHit     int
	opMiss    int
}

type cache1Entry struct {
	valid bool
	a     int64
	res   edge
}

func newCache1(size, ratio int, loadLimit float64) *cache1 {
	c := &cache1{ratio: ratio, loadLimit: loadLimit}
	c.table = make([]cache1Entry, primeGte(size))
	return c
}

func (c *cache1) resize(nodesize int) {
	if c.ratio <= 0 {
		c.reset()
		return
	}
	c.table = make([]cache1Entry, primeGte((nodesize*c.ratio)/100))
	c.used = 0
}

func (c *cache1) reset() {
	for i := range c.table {
		c.table[i].valid = false
	}
	c.used = 0
}

func (c *cache1) grow() {
	c.table = make([]cache1Entry, primeGte(len(c.table)*2))
	c.used = 0
}

func (c *cache1) get(a int64) (edge, bool) {
	idx := int(uint64(a) % uint64(len(c.table)))
	e := &c.table[idx]
	if e.valid && e.a == a {
		if debugEnabled {
			c.opHit++
		}
		return e.res, true
	}
	if debugEnabled {
		c.opMiss++
	}
	return 0, false
}

func (c *cache1) set(a int64, res edge) {
	if res.isSentinel() {
		return
	}
	if c.loadLimit > 0 && float64(c.used) > c.loadLimit*float64(len(c.table)) {
		c.grow()
	}
	idx := int(uint64(a) % uint64(len(c.table)))
	e := &c.table[idx]
	if !e.valid {
		c.used++
	}
	*e = cache1Entry{valid: true, a: a, res: res}
}

func (c cache1) String() string {
	total := c.opHit + c.opMiss
	ratio := 0.0
	if total > 0 {
		ratio = (float64(c.opHit) * 100) / float64(total)
	}
	return fmt.Sprintf("entries: %d (%s), hits: %d (%.1f%%), miss: %d\n",
		len(c.table), humanSize(len(c.table), unsafe.Sizeof(cache1Entry{})), c.opHit, ratio, c.opMiss)
}

// caches bundles every computed-result cache the operation engine consults,
// so the manager can reset/resize/report on all of them in one place
// (teacher's cacheinit/cachereset/cacheresize in cache.go).
type caches struct {
	apply     *cache3 // keyed (f, g, op)
	ite       *cache3 // keyed (f, g, h)
	exist     *cache2 // keyed (f, quantsetID)
	andExist  *cache3 // keyed (f, g, quantsetID)
	constrain *cache2 // keyed (f, c)
	compose   *cache2 // keyed (f, composerID)
	pushDown  *cache3 // keyed (f, x, tag), (f, -1, tag) or (e0, e1, tag); tag packs y and the phase
	scc       *cache1 // keyed (f), smallest-cube-containing-F memo
}

func newCaches(size, ratio int, loadLimit float64) *caches {
	return &caches{
		apply:     newCache3(size, ratio, loadLimit),
		ite:       newCache3(size, ratio, loadLimit),
		exist:     newCache2(size, ratio, loadLimit),
		andExist:  newCache3(size, ratio, loadLimit),
		constrain: newCache2(size, ratio, loadLimit),
		compose:   newCache2(size, ratio, loadLimit),
		pushDown:  newCache3(size, ratio, loadLimit),
		scc:       newCache1(size, ratio, loadLimit),
	}
}

// setLoadLimit updates every cache's growth trigger, used by SetParams when
// PCacheLoadLimit is set.
func (c *caches) setLoadLimit(limit float64) {
	c.apply.loadLimit = limit
	c.ite.loadLimit = limit
	c.exist.loadLimit = limit
	c.andExist.loadLimit = limit
	c.constrain.loadLimit = limit
	c.compose.loadLimit = limit
	c.pushDown.loadLimit = limit
	c.scc.loadLimit = limit
}

func (c *caches) reset() {
	c.apply.reset()
	c.ite.reset()
	c.exist.reset()
	c.andExist.reset()
	c.constrain.reset()
	c.compose.reset()
	c.pushDown.reset()
	c.scc.reset()
}

func (c *caches) resize(nodesize int) {
	c.apply.resize(nodesize)
	c.ite.resize(nodesize)
	c.exist.resize(nodesize)
	c.andExist.resize(nodesize)
	c.constrain.resize(nodesize)
	c.compose.resize(nodesize)
	c.pushDown.resize(nodesize)
	c.scc.resize(nodesize)
}

func (c *caches) String() string {
	res := "== apply        " + c.apply.String()
	res += "== ite          " + c.ite.String()
	res += "== exist        " + c.exist.String()
	res += "== and_exist    " + c.andExist.String()
	res += "== constrain    " + c.constrain.String()
	res += "== compose      " + c.compose.String()
	res += "== push_down    " + c.pushDown.String()
	res += "== scc          " + c.scc.String()
	return res
}
