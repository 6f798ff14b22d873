// Package render draws a textual representation of a Connect Four
// position: a 7x6 grid of stones plus a column ruler.
package render

import (
	"strings"

	"github.com/aandres44/c04s/position"
)

// Render draws pos as a bottom-up grid ('X' for the first player to
// move, 'O' for the second, '.' for empty) followed by a column ruler,
// reconstructed by replaying history (the 0-indexed columns that
// produced pos) from an empty board.
func Render(pos *position.Position, history []int) string {
	var grid [position.Width][position.Height]byte
	for c := 0; c < position.Width; c++ {
		for r := 0; r < position.Height; r++ {
			grid[c][r] = '.'
		}
	}

	replay := position.New()
	symbols := [2]byte{'X', 'O'}
	for _, col := range history {
		if col < 0 || col >= position.Width || !replay.CanPlay(col) {
			break
		}
		row := rowOf(&replay, col)
		grid[col][row] = symbols[replay.Ply()%2]
		replay.PlayCol(col)
	}

	var b strings.Builder
	for row := position.Height - 1; row >= 0; row-- {
		for col := 0; col < position.Width; col++ {
			b.WriteByte(grid[col][row])
		}
		b.WriteByte('\n')
	}
	for col := 0; col < position.Width; col++ {
		b.WriteByte(byte('1' + col))
	}
	b.WriteByte('\n')
	return b.String()
}

// rowOf returns the row a stone dropped into col would land on, without
// mutating p.
func rowOf(p *position.Position, col int) int {
	for row := 0; row < position.Height; row++ {
		if p.CellAt(col, row) == position.CellEmpty {
			return row
		}
	}
	return position.Height - 1
}
