package search

import (
	"testing"

	"github.com/aandres44/c04s/position"
	"github.com/aandres44/c04s/tt"
)

func TestNegamaxRejectsBadWindow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for alpha >= beta")
		}
	}()
	pos := position.New()
	e := NewEngine(tt.New(1 << 20))
	e.Negamax(&pos, 5, 5)
}

func TestNegamaxRejectsImmediateWin(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when side to move can win immediately")
		}
	}()
	pos := position.New()
	pos.PlaySequence("1616161") // leaves an immediate win in column 0
	e := NewEngine(tt.New(1 << 20))
	e.Negamax(&pos, MinScore, MaxScore)
}

func TestNegamaxScoreWithinBounds(t *testing.T) {
	pos := position.New()
	e := NewEngine(tt.New(1 << 24))
	score := e.Negamax(&pos, MinScore, MaxScore)
	if score < MinScore || score > MaxScore {
		t.Fatalf("score %d out of bounds [%d, %d]", score, MinScore, MaxScore)
	}
}

func TestColumnOrderIsCenterOut(t *testing.T) {
	want := [...]int{3, 2, 4, 1, 5, 0, 6}
	if columnOrder != want {
		t.Fatalf("columnOrder = %v, want %v", columnOrder, want)
	}
}
