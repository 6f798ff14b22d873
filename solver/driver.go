// Package solver implements the iterative null-window search driver
// that sits on top of package search's raw negamax engine, narrowing a
// [min, max] score window one null-window probe at a time (an MTD(f)-
// style approach) rather than searching the full [MinScore, MaxScore]
// window in one call.
package solver

import (
	"github.com/aandres44/c04s/position"
	"github.com/aandres44/c04s/search"
	"github.com/aandres44/c04s/tt"
)

// Solver owns one transposition table and the search.Engine wrapping
// it. Like tt.Table, a Solver is not safe for concurrent use: callers
// running solves concurrently give each goroutine its own Solver (see
// internal/searchqueue).
type Solver struct {
	engine *search.Engine
	weak   bool
}

// New constructs a Solver with a table sized to ttSizeMB megabytes. When
// weak is true, Solve reports only the sign of the outcome (loss/draw/
// win) rather than the exact score, at a fraction of the node cost.
func New(ttSizeMB int, weak bool) *Solver {
	table := tt.New(ttSizeMB * 1024 * 1024)
	return &Solver{
		engine: search.NewEngine(table),
		weak:   weak,
	}
}

// Stats exposes the node/TT counters accumulated by the most recent
// Solve call (nil unless EnableStats was called).
func (s *Solver) Stats() *search.Stats {
	return s.engine.Stats
}

// EnableStats turns on node/TT-probe counting for subsequent Solve
// calls. Counting is off by default, matching the zero-overhead default
// a benchmark driver wants when it isn't logging search stats.
func (s *Solver) EnableStats() {
	s.engine.Stats = &search.Stats{}
}

// Reset clears the transposition table, starting the next Solve with no
// carried-over knowledge from prior positions.
func (s *Solver) Reset() {
	s.engine.Table.Reset()
}

// Solve returns the game-theoretic score of pos from the perspective of
// the side to move: positive means a win, negative a loss, zero a draw,
// with the magnitude counting moves-to-end when running in exact (non-
// weak) mode. In weak mode the magnitude carries no meaning beyond its
// sign.
//
// An immediate winning move short-circuits the search entirely: no
// negamax call is needed to know the position is won.
func (s *Solver) Solve(pos *position.Position) int {
	if s.engine.Stats != nil {
		*s.engine.Stats = search.Stats{}
	}

	if pos.CanWinNext() {
		return (position.MaxMoves + 1 - pos.Ply()) / 2
	}

	min := -(position.MaxMoves - pos.Ply()) / 2
	max := (position.MaxMoves + 1 - pos.Ply()) / 2
	if s.weak {
		min = -1
		max = 1
	}

	for min < max {
		mid := min + (max-min)/2
		if mid <= 0 && min/2 < mid {
			mid = min / 2
		} else if mid >= 0 && max/2 > mid {
			mid = max / 2
		}

		// Null-window probe: [mid, mid+1] only asks "is the true score
		// above or below mid", never the exact value.
		r := s.engine.Negamax(pos, mid, mid+1)
		if r <= mid {
			max = r
		} else {
			min = r
		}
	}
	return min
}
