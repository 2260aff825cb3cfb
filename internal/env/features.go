package env

import "bitsnake/internal/bitboard"

// Observation planes, in buffer order.
const (
	PlaneHead = iota
	PlaneBody
	PlaneFood
	NumPlanes
)

// Encoder builds full-board observation vectors: one plane per board, one
// float per cell, 1 where the bit is set.
type Encoder struct {
	cells  int
	buffer []float32
}

// NewEncoder creates an encoder for a size x size board
func NewEncoder(size int) *Encoder {
	cells := size * size
	return &Encoder{
		cells:  cells,
		buffer: make([]float32, NumPlanes*cells),
	}
}

// ObsDim returns the observation length
func (f *Encoder) ObsDim() int {
	return len(f.buffer)
}

// Encode fills the buffer from the engine state.
// Returns a slice that should not be modified (internal buffer)
func (f *Encoder) Encode(e *Engine) []float32 {
	for i := range f.buffer {
		f.buffer[i] = 0
	}
	f.fill(PlaneHead, e.Head())
	f.fill(PlaneBody, e.Body())
	f.fill(PlaneFood, e.Food())
	return f.buffer
}

func (f *Encoder) fill(plane int, b bitboard.Board) {
	off := plane * f.cells
	b.Each(func(i int) {
		if i < f.cells {
			f.buffer[off+i] = 1
		}
	})
}
