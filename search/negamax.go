// Package search implements the recursive alpha-beta negamax engine at
// the heart of the solver: it consumes a position.Position, a tt.Table
// for bound hints, and a sorter.Sorter for move ordering.
package search

import (
	"github.com/aandres44/c04s/position"
	"github.com/aandres44/c04s/sorter"
	"github.com/aandres44/c04s/tt"
)

// MinScore and MaxScore bound every score the solver can return on a
// 7x6 board: MinScore = -(WIDTH*HEIGHT)/2 + 3, MaxScore = (WIDTH*HEIGHT+1)/2 - 3.
const (
	MinScore = -(position.Width*position.Height)/2 + 3
	MaxScore = (position.Width*position.Height+1)/2 - 3
)

// columnOrder biases exploration toward the center columns first, where
// stones participate in the most alignments and pruning pays off
// fastest.
var columnOrder = centerOutOrder()

func centerOutOrder() [position.Width]int {
	var order [position.Width]int
	for i := 0; i < position.Width; i++ {
		// 3,2,4,1,5,0,6 for width 7: center, then alternating outward.
		offset := (i + 1) / 2
		if i%2 == 0 {
			order[i] = position.Width/2 + offset
		} else {
			order[i] = position.Width/2 - offset
		}
	}
	return order
}

// Stats accumulates counters over one Negamax call tree, for benchmark
// reporting and tests. A nil *Stats is safe to pass everywhere the
// caller doesn't care about counters.
type Stats struct {
	Nodes    int64
	TTProbes int64
	TTHits   int64
}

func (s *Stats) countNode() {
	if s != nil {
		s.Nodes++
	}
}

func (s *Stats) countProbe(hit bool) {
	if s == nil {
		return
	}
	s.TTProbes++
	if hit {
		s.TTHits++
	}
}

// Engine bundles the transposition table a Negamax search consults and
// an optional Stats counter (nil disables counting); it may be reused
// across positions and across calls, as long as callers own it
// exclusively (the table is not safe for concurrent use).
type Engine struct {
	Table *tt.Table
	Stats *Stats
}

// NewEngine constructs an Engine around table. Passing a nil table is
// allowed and disables transposition lookups entirely (useful for
// isolating the raw alpha-beta search in tests).
func NewEngine(table *tt.Table) *Engine {
	return &Engine{Table: table}
}

// Negamax returns the game-theoretic score of pos under optimal play,
// clipped to [alpha, beta]: it returns the exact value when that value
// falls inside the window, otherwise a bound (<=alpha or >=beta).
//
// Precondition: alpha < beta, and pos has no immediate winning move for
// the side to move (the iterative driver in package solver checks that
// case before ever calling in).
func (e *Engine) Negamax(pos *position.Position, alpha, beta int) int {
	if alpha >= beta {
		panic("search: Negamax requires alpha < beta")
	}
	if pos.CanWinNext() {
		panic("search: Negamax precondition violated: side to move can win immediately")
	}

	e.Stats.countNode()

	next := pos.PossibleNonLosingMoves()
	if next == 0 {
		// Every remaining move loses immediately for the side to move.
		return -(position.MaxMoves - pos.Ply()) / 2
	}
	if pos.Ply() == position.MaxMoves-2 {
		// Only two plies remain, one per side, and neither can be
		// losing (checked above), so the game is a forced draw.
		return 0
	}

	min := -(position.MaxMoves - 2 - pos.Ply()) / 2
	if alpha < min {
		alpha = min
		if alpha >= beta {
			return alpha
		}
	}

	max := (position.MaxMoves - 1 - pos.Ply()) / 2
	if e.Table != nil {
		key := pos.Key()
		val := e.Table.Get(key)
		e.Stats.countProbe(val != 0)
		if val != 0 {
			max = int(val) + MinScore - 1
		}
	}
	if beta > max {
		beta = max
		if alpha >= beta {
			return beta
		}
	}

	var moves sorter.Sorter
	for i := len(columnOrder) - 1; i >= 0; i-- {
		col := columnOrder[i]
		move := next & position.ColumnMask(col)
		if move != 0 {
			moves.Add(move, pos.MoveScore(move))
		}
	}

	bestMove := -1
	for move := moves.Next(); move != 0; move = moves.Next() {
		col := columnOf(move)
		pos.Play(move)
		score := -e.Negamax(pos, -beta, -alpha)
		pos.Undo(move)

		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
			bestMove = col
		}
	}

	if e.Table != nil {
		e.Table.Put(pos.Key(), uint8(alpha-MinScore+1), bestMove)
	}
	return alpha
}

func columnOf(move uint64) int {
	for col := 0; col < position.Width; col++ {
		if move&position.ColumnMask(col) != 0 {
			return col
		}
	}
	return -1
}
