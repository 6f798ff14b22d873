// Package position implements the bitboard encoding of a Connect Four
// board and the move-generation primitives the search core is built on.
package position

import "math/bits"

// Board dimensions. The solver makes no correctness claim beyond 7x6;
// the constants exist so the bit arithmetic below stays self-documenting
// rather than because other sizes are supported.
const (
	Width  = 7
	Height = 6

	// HeightPlus1 is the per-column field width: one sentinel bit sits
	// above the playable rows so horizontal/diagonal shifts on mask
	// never carry into the next column.
	HeightPlus1 = Height + 1
	MaxMoves    = Width * Height
)

// bottomMask has a 1 in bit 0 of every column.
// boardMask has a 1 in every playable cell.
var (
	bottomMask = computeBottomMask()
	boardMask  = bottomMask * ((uint64(1) << Height) - 1)
)

func computeBottomMask() uint64 {
	var m uint64
	for col := 0; col < Width; col++ {
		m |= uint64(1) << (col * HeightPlus1)
	}
	return m
}

// topMask returns the single bit marking the topmost playable cell of col.
func topMask(col int) uint64 {
	return uint64(1) << (col*HeightPlus1 + Height - 1)
}

// columnMask returns every playable bit belonging to col.
func columnMask(col int) uint64 {
	return (uint64(1)<<Height - 1) << (col * HeightPlus1)
}

// ColumnMask exposes columnMask for callers outside the package (search
// move ordering needs to split a moves bitmap up by column).
func ColumnMask(col int) uint64 {
	return columnMask(col)
}

// Position is an immutable-by-value board state, mutated in place via
// Play/Undo during search so a single value traverses the whole tree
// without allocation.
//
// current holds a 1 at every cell occupied by the side to move; mask
// holds a 1 at every occupied cell (either side); ply counts stones
// placed so far.
type Position struct {
	current uint64
	mask    uint64
	ply     int
}

// New returns the empty starting position.
func New() Position {
	return Position{}
}

// Ply returns the number of stones placed so far.
func (p Position) Ply() int { return p.ply }

// Cell identifies which side, if any, occupies a board cell.
type Cell int

const (
	CellEmpty Cell = iota
	CellToMove
	CellOther
)

// CellAt returns the occupant of (col, row), row 0 being the bottom row.
// CellToMove/CellOther are relative to whichever side is to move in p;
// callers rendering a position track that separately if they need an
// absolute player identity.
func (p Position) CellAt(col, row int) Cell {
	bit := uint64(1) << (col*HeightPlus1 + row)
	switch {
	case p.current&bit != 0:
		return CellToMove
	case p.mask&bit != 0:
		return CellOther
	default:
		return CellEmpty
	}
}

// Opponent returns the bitboard of cells occupied by the side not to move.
func (p Position) Opponent() uint64 { return p.current ^ p.mask }

// Key returns the canonical 49-bit encoding of the position, including
// side to move: current + mask. The addition injects a sentinel bit just
// above the topmost stone of each column, disambiguating otherwise
// identical current patterns with differing column heights.
func (p Position) Key() uint64 { return p.current + p.mask }

// CanPlay reports whether col still has room for a stone.
func (p Position) CanPlay(col int) bool {
	return p.mask&topMask(col) == 0
}

// IsWinningMove reports whether playing col would complete a
// four-in-a-row for the side to move. Must not be called on a full
// column. Computed as the intersection of the side's winning cells,
// the currently playable cells, and col's own column mask.
func (p Position) IsWinningMove(col int) bool {
	return p.WinningPositions()&p.Possible()&columnMask(col) != 0
}

// Play applies a single-bit move bitmap. The caller obtains the bitmap
// from Possible (or PossibleNonLosingMoves); play does not itself
// validate legality.
func (p *Position) Play(move uint64) {
	p.current ^= p.mask
	p.mask |= move
	p.ply++
}

// Undo is the exact inverse of Play given the same move bitmap.
func (p *Position) Undo(move uint64) {
	p.ply--
	p.mask ^= move
	p.current ^= p.mask
}

// PlayCol plays the lowest empty cell of col, assuming CanPlay(col).
// Returns the move bitmap that was applied, for a matching Undo.
func (p *Position) PlayCol(col int) uint64 {
	move := (p.mask + (bottomMask & columnMask(col))) & columnMask(col)
	p.Play(move)
	return move
}

// PlaySequence plays a 1-indexed column digit string against p, stopping
// at the first invalid digit, full column, or move that completes a
// four-in-a-row (such positions are terminal and outside the solver's
// domain). It returns the number of digits successfully consumed; the
// caller compares that to len(moves) to detect a short read.
func (p *Position) PlaySequence(moves string) int {
	for i := 0; i < len(moves); i++ {
		c := moves[i]
		if c < '1' || c > '7' {
			return i
		}
		col := int(c-'1')
		if col >= Width || !p.CanPlay(col) {
			return i
		}
		if p.IsWinningMove(col) {
			return i
		}
		p.PlayCol(col)
	}
	return len(moves)
}

// Possible returns the bitmap of all currently legal move placements, one
// bit per playable column at its lowest empty cell.
func (p Position) Possible() uint64 {
	return (p.mask + bottomMask) & boardMask
}

// WinningPositions returns every empty cell such that, were the side to
// move to place there, a four-in-a-row would form. This includes cells
// that are not yet immediately playable; intersect with Possible for the
// set of immediate threats.
func (p Position) WinningPositions() uint64 {
	return computeWinningPositions(p.current, p.mask)
}

// OpponentWinningPositions is WinningPositions for the side not to move.
func (p Position) OpponentWinningPositions() uint64 {
	return computeWinningPositions(p.Opponent(), p.mask)
}

// CanWinNext reports whether the side to move has an immediate winning
// placement available.
func (p Position) CanWinNext() bool {
	return p.WinningPositions()&p.Possible() != 0
}

// PossibleNonLosingMoves returns the subset of legal moves that do not
// hand the opponent an immediate win on their next turn. Precondition:
// !p.CanWinNext() (an immediate win is handled by the caller before ever
// reaching this).
func (p Position) PossibleNonLosingMoves() uint64 {
	possible := p.Possible()
	opponentWin := p.OpponentWinningPositions()
	forced := possible & opponentWin
	if forced != 0 {
		if forced&(forced-1) != 0 {
			// Two independent forced blocks: the opponent has two
			// threats and cannot be stopped.
			return 0
		}
		possible = forced
	}
	// Never play directly beneath an opponent winning cell: doing so
	// hands them that very placement next turn.
	return possible &^ (opponentWin >> 1)
}

// MoveScore is the heuristic used by the move sorter: the number of
// winning cells the side to move would have immediately after playing
// move.
func (p Position) MoveScore(move uint64) int {
	return bits.OnesCount64(computeWinningPositions(p.current|move, p.mask))
}

// computeWinningPositions returns, for a side whose stones are pos inside
// an occupied-cell mask, every empty cell that would complete a
// four-in-a-row for that side. It checks each of the four alignment
// directions (vertical, horizontal, the two diagonals) via the classical
// shift-and-mask technique.
func computeWinningPositions(pos, mask uint64) uint64 {
	// Vertical: three in a column below an empty cell.
	r := (pos << 1) & (pos << 2) & (pos << 3)

	// Horizontal.
	p := (pos << HeightPlus1) & (pos << (2 * HeightPlus1))
	r |= p & (pos << (3 * HeightPlus1))
	r |= p & (pos >> HeightPlus1)
	p = (pos >> HeightPlus1) & (pos >> (2 * HeightPlus1))
	r |= p & (pos << HeightPlus1)
	r |= p & (pos >> (3 * HeightPlus1))

	// Diagonal (\, down-right).
	p = (pos << Height) & (pos << (2 * Height))
	r |= p & (pos << (3 * Height))
	r |= p & (pos >> Height)
	p = (pos >> Height) & (pos >> (2 * Height))
	r |= p & (pos << Height)
	r |= p & (pos >> (3 * Height))

	// Diagonal (/, up-right).
	p = (pos << (Height + 2)) & (pos << (2 * (Height + 2)))
	r |= p & (pos << (3 * (Height + 2)))
	r |= p & (pos >> (Height + 2))
	p = (pos >> (Height + 2)) & (pos >> (2 * (Height + 2)))
	r |= p & (pos << (Height + 2))
	r |= p & (pos >> (3 * (Height + 2)))

	return r & (boardMask ^ mask)
}
