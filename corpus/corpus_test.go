package corpus

import (
	"strings"
	"testing"

	"github.com/aandres44/c04s/tt"
)

func TestParsePositionsSkipsBlankLines(t *testing.T) {
	records, err := parsePositions(strings.NewReader("4\n\n445 1\n\n"))
	if err != nil {
		t.Fatalf("parsePositions: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Moves != "4" || records[0].HasScore {
		t.Fatalf("record 0 = %+v, want {Moves: 4, HasScore: false}", records[0])
	}
	if records[1].Moves != "445" || !records[1].HasScore || records[1].ExpectedScore != 1 {
		t.Fatalf("record 1 = %+v, want {Moves: 445, ExpectedScore: 1, HasScore: true}", records[1])
	}
}

func TestParsePositionsRejectsBadScore(t *testing.T) {
	_, err := parsePositions(strings.NewReader("4 notanumber"))
	if err == nil {
		t.Fatalf("expected an error for a non-numeric expected score")
	}
}

func TestLoadPositionsMissingFile(t *testing.T) {
	_, err := LoadPositions("/nonexistent/path/that/should/not/exist.txt")
	if err == nil {
		t.Fatalf("expected an error opening a missing file")
	}
}

func TestSaveLoadTTSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/snapshot.gob"

	a := tt.New(1 << 16)
	a.Put(10, 3, 2)
	a.Put(20, 4, 5)
	if err := SaveTTSnapshot(path, a); err != nil {
		t.Fatalf("SaveTTSnapshot: %v", err)
	}

	b := tt.New(1 << 16)
	loaded, err := LoadTTSnapshot(path, b)
	if err != nil {
		t.Fatalf("LoadTTSnapshot: %v", err)
	}
	if !loaded {
		t.Fatalf("expected snapshot to load (matching table size)")
	}
	if got := b.Get(10); got != 3 {
		t.Fatalf("Get(10) = %d, want 3", got)
	}
}

func TestLoadTTSnapshotMissingFileIsNotError(t *testing.T) {
	b := tt.New(1 << 16)
	loaded, err := LoadTTSnapshot("/nonexistent/snapshot.gob", b)
	if err != nil {
		t.Fatalf("LoadTTSnapshot on missing file returned error: %v", err)
	}
	if loaded {
		t.Fatalf("expected loaded=false for a missing snapshot file")
	}
}
