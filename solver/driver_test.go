package solver

import (
	"testing"

	"github.com/aandres44/c04s/position"
)

func TestSolveEmptyBoardIsFirstPlayerWin(t *testing.T) {
	s := New(64, false)
	pos := position.New()
	if got := s.Solve(&pos); got != 1 {
		t.Fatalf("Solve(empty board) = %d, want 1", got)
	}
}

func TestSolveImmediateWinShortCircuits(t *testing.T) {
	s := New(64, false)
	pos := position.New()
	pos.PlaySequence("1616161") // leaves column 0 as an immediate win
	got := s.Solve(&pos)
	if got <= 0 {
		t.Fatalf("Solve(winning position) = %d, want a positive score", got)
	}
}

func TestSolveCenterOpeningIsWon(t *testing.T) {
	// The center column opening is the textbook first-player win; under
	// perfect play the position after it remains won for the first
	// player, so it is lost for the player now to move (the opponent).
	s := New(64, false)
	pos := position.New()
	pos.PlaySequence("4")
	got := s.Solve(&pos)
	if got >= 0 {
		t.Fatalf("Solve(%q) = %d, want a negative score (losing for the player to move)", "4", got)
	}
}

func TestWeakSolveMatchesExactSign(t *testing.T) {
	pos1 := position.New()
	pos1.PlaySequence("4")
	exact := New(64, false).Solve(&pos1)

	pos2 := position.New()
	pos2.PlaySequence("4")
	weak := New(64, true).Solve(&pos2)

	if sign(exact) != sign(weak) {
		t.Fatalf("weak solve sign %d does not match exact solve sign %d", sign(weak), sign(exact))
	}
}

func TestResetClearsTableWithoutChangingOutcome(t *testing.T) {
	s := New(64, false)
	pos := position.New()
	first := s.Solve(&pos)
	s.Reset()

	pos2 := position.New()
	second := s.Solve(&pos2)
	if first != second {
		t.Fatalf("Solve after Reset = %d, want %d (same position, same outcome)", second, first)
	}
}

func TestStatsCountNodesWhenEnabled(t *testing.T) {
	s := New(64, false)
	s.EnableStats()
	pos := position.New()
	pos.PlaySequence("4")
	s.Solve(&pos)
	if s.Stats() == nil || s.Stats().Nodes == 0 {
		t.Fatalf("expected EnableStats to record a nonzero node count")
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
