package env

import "bitsnake/internal/bitboard"

// Size limits. An 11x11 board uses 121 of the 128 available bits.
const (
	MinSize = 2
	MaxSize = 11
)

// Masks are the static edge masks for one board size.
//
// Cell index is row*size + col with index 0 at the bottom right, so col
// grows to the left and row grows upward.
type Masks struct {
	FirstColumn bitboard.Board // leftmost column, col == size-1
	LastColumn  bitboard.Board // rightmost column, col == 0
	FirstRow    bitboard.Board // top row, row == size-1
	HighBits    bitboard.Board // bits >= size*size, never a real cell
}

// NewMasks builds the masks for a size x size board.
func NewMasks(size int) Masks {
	var m Masks
	for i := 0; i < size; i++ {
		m.FirstColumn = m.FirstColumn.Set(size*i + size - 1)
		m.LastColumn = m.LastColumn.Set(size * i)
		m.FirstRow = m.FirstRow.Set(size*size - i - 1)
	}
	m.HighBits = bitboard.Range(size*size, bitboard.Width)
	return m
}
