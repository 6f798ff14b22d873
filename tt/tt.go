// Package tt implements the solver's transposition table: a fixed-
// capacity, direct-mapped, always-replace cache from canonical position
// keys to bounded score hints.
package tt

// entry is unpacked: the full key alongside explicit value/generation/
// best-move fields, rather than mixing the key down to 32 bits and
// packing everything into one word. At board-game scale the extra bytes
// per slot are cheap, and keeping the key exact avoids the packed
// variant's ~2^-32 false-hit rate entirely (see DESIGN.md).
type entry struct {
	key      uint64
	value    uint8
	valid    bool
	gen      uint32
	bestMove int8 // column, -1 if unknown
}

// Table is a single pre-allocated buffer reused across solves. It is not
// safe for concurrent use: the search core is single-threaded per solve,
// and callers running multiple solves concurrently must give each its
// own Table (see internal/searchqueue for how the HTTP layer honors
// this).
type Table struct {
	entries []entry
	mask    uint64
	gen     uint32
}

// New allocates a table sized to fit within budgetBytes, rounded down to
// the nearest power of two entry count so indexing is a mask instead of
// a modulo.
func New(budgetBytes int) *Table {
	const entrySize = 24 // entry's in-memory footprint: 17 bytes of fields padded to 8-byte alignment
	count := budgetBytes / entrySize
	if count < 1 {
		count = 1
	}
	size := nextPowerOfTwoOrEqual(uint64(count))
	if size > uint64(count) {
		size >>= 1
	}
	return &Table{
		entries: make([]entry, size),
		mask:    size - 1,
		gen:     1,
	}
}

func nextPowerOfTwoOrEqual(v uint64) uint64 {
	if v&(v-1) == 0 {
		return v
	}
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	v++
	return v
}

func (t *Table) index(key uint64) uint64 {
	return key & t.mask
}

// Get returns the stored value for key, or 0 ("absent") if there is no
// entry, the stored key does not match, or the entry belongs to a
// previous generation.
func (t *Table) Get(key uint64) uint8 {
	e := &t.entries[t.index(key)]
	if !e.valid || e.key != key || e.gen != t.gen {
		return 0
	}
	return e.value
}

// BestMove returns the column recorded alongside key's value, or -1 if
// there is no usable entry.
func (t *Table) BestMove(key uint64) int {
	e := &t.entries[t.index(key)]
	if !e.valid || e.key != key || e.gen != t.gen {
		return -1
	}
	return int(e.bestMove)
}

// Put stores value (an upper bound on the negamax score at key, biased
// so it fits a non-zero byte) and the move that achieved it, always
// replacing whatever was in the slot. value must be non-zero: a zero
// value would be indistinguishable from "absent" on the next Get.
func (t *Table) Put(key uint64, value uint8, bestMove int) {
	if value == 0 {
		panic("tt: Put requires a non-zero value")
	}
	t.entries[t.index(key)] = entry{
		key:      key,
		value:    value,
		valid:    true,
		gen:      t.gen,
		bestMove: int8(bestMove),
	}
}

// Reset logically clears the table in O(1) by bumping the generation
// tag; stale entries are simply ignored by Get until their slot is
// reused. If the generation counter wraps, the table is physically
// zeroed so wrapped-around stale entries can't alias as current.
func (t *Table) Reset() {
	t.gen++
	if t.gen == 0 {
		for i := range t.entries {
			t.entries[i] = entry{}
		}
		t.gen = 1
	}
}

// Len returns the number of usable slots.
func (t *Table) Len() int { return len(t.entries) }

// Generation returns the table's current generation tag, mostly useful
// for tests and diagnostics.
func (t *Table) Generation() uint32 { return t.gen }

// Snapshot is the gob-serializable form of a Table's contents, used by
// package corpus to persist a warm table across process restarts.
type Snapshot struct {
	Size    int
	Entries []SnapshotEntry
}

// SnapshotEntry is one valid slot of a Table at the moment Dump was
// called. Stale (previous-generation) and empty slots are omitted.
type SnapshotEntry struct {
	Index    int
	Key      uint64
	Value    uint8
	BestMove int8
}

// Dump returns a Snapshot of every currently valid entry.
func (t *Table) Dump() Snapshot {
	snap := Snapshot{Size: len(t.entries)}
	for i, e := range t.entries {
		if e.valid && e.gen == t.gen {
			snap.Entries = append(snap.Entries, SnapshotEntry{
				Index:    i,
				Key:      e.key,
				Value:    e.value,
				BestMove: e.bestMove,
			})
		}
	}
	return snap
}

// Load restores entries from a Snapshot into t. Entries are ignored
// when snap.Size does not match t's current entry count: the mask
// indexing scheme depends on exact size, so a mismatched snapshot
// cannot be safely replayed. Restored entries are stamped with t's
// current generation.
func (t *Table) Load(snap Snapshot) bool {
	if snap.Size != len(t.entries) {
		return false
	}
	for _, e := range snap.Entries {
		if e.Index < 0 || e.Index >= len(t.entries) {
			continue
		}
		t.entries[e.Index] = entry{
			key:      e.Key,
			value:    e.Value,
			valid:    true,
			gen:      t.gen,
			bestMove: e.BestMove,
		}
	}
	return true
}
