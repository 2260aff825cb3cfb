package env

import "bitsnake/internal/bitboard"

// history is a fixed-capacity FIFO of cell indices, oldest first.
// It holds the head plus every body cell, so it never exceeds size*size+1
// entries during a step.
type history struct {
	buf   [bitboard.Width]uint8
	start int
	n     int
}

func (h *history) reset(idx int) {
	h.start = 0
	h.n = 0
	h.push(idx)
}

func (h *history) push(idx int) {
	if h.n == len(h.buf) {
		panic("env: body history overflow")
	}
	h.buf[(h.start+h.n)%len(h.buf)] = uint8(idx)
	h.n++
}

// pop removes the oldest entry. ok is false when the history is empty.
func (h *history) pop() (idx int, ok bool) {
	if h.n == 0 {
		return 0, false
	}
	idx = int(h.buf[h.start])
	h.start = (h.start + 1) % len(h.buf)
	h.n--
	return idx, true
}

func (h *history) len() int {
	return h.n
}

// at returns the i-th entry, oldest first.
func (h *history) at(i int) int {
	return int(h.buf[(h.start+i)%len(h.buf)])
}
