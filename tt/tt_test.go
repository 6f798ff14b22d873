package tt

import "testing"

func TestGetAbsentKeyReturnsZero(t *testing.T) {
	table := New(1 << 16)
	if got := table.Get(12345); got != 0 {
		t.Fatalf("Get on empty table = %d, want 0", got)
	}
	if got := table.BestMove(12345); got != -1 {
		t.Fatalf("BestMove on empty table = %d, want -1", got)
	}
}

func TestPutThenGetRoundTrips(t *testing.T) {
	table := New(1 << 16)
	table.Put(42, 7, 3)
	if got := table.Get(42); got != 7 {
		t.Fatalf("Get after Put = %d, want 7", got)
	}
	if got := table.BestMove(42); got != 3 {
		t.Fatalf("BestMove after Put = %d, want 3", got)
	}
}

func TestPutZeroValuePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Put with value 0 to panic")
		}
	}()
	table := New(1 << 16)
	table.Put(1, 0, 0)
}

func TestKeyCollisionAlwaysReplaces(t *testing.T) {
	table := New(1 << 8) // small table forces a direct-mapped collision
	size := uint64(table.Len())
	a, b := uint64(1), size+1 // same index, different keys
	table.Put(a, 5, 0)
	table.Put(b, 9, 1)
	if got := table.Get(a); got != 0 {
		t.Fatalf("Get(a) after colliding Put(b) = %d, want 0 (evicted)", got)
	}
	if got := table.Get(b); got != 9 {
		t.Fatalf("Get(b) = %d, want 9", got)
	}
}

func TestResetClearsAllEntries(t *testing.T) {
	table := New(1 << 16)
	table.Put(1, 5, 0)
	table.Put(2, 6, 1)
	table.Reset()
	if got := table.Get(1); got != 0 {
		t.Fatalf("Get(1) after Reset = %d, want 0", got)
	}
	if got := table.Get(2); got != 0 {
		t.Fatalf("Get(2) after Reset = %d, want 0", got)
	}
}

func TestGenerationWrapStaysNonZero(t *testing.T) {
	table := New(1 << 12)
	table.gen = ^uint32(0)
	table.Reset()
	if table.Generation() == 0 {
		t.Fatalf("generation must never be zero after wraparound")
	}
}

func TestLenIsPowerOfTwo(t *testing.T) {
	table := New(1000)
	n := uint64(table.Len())
	if n&(n-1) != 0 {
		t.Fatalf("table length %d is not a power of two", n)
	}
}

func TestDumpLoadRoundTrip(t *testing.T) {
	a := New(1 << 16)
	a.Put(10, 3, 2)
	a.Put(20, 4, 5)
	snap := a.Dump()

	b := New(1 << 16)
	if !b.Load(snap) {
		t.Fatalf("Load reported failure for matching-size snapshot")
	}
	if got := b.Get(10); got != 3 {
		t.Fatalf("Get(10) after Load = %d, want 3", got)
	}
	if got := b.Get(20); got != 4 {
		t.Fatalf("Get(20) after Load = %d, want 4", got)
	}
}

func TestLoadRejectsSizeMismatch(t *testing.T) {
	a := New(1 << 16)
	a.Put(10, 3, 2)
	snap := a.Dump()

	b := New(1 << 20) // different entry count
	if b.Load(snap) {
		t.Fatalf("Load should reject a size-mismatched snapshot")
	}
}
