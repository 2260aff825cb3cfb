package env

import "bitsnake/internal/bitboard"

// FreeCells returns every real cell not covered by the snake.
func (e *Engine) FreeCells() bitboard.Board {
	return e.head.Or(e.body).Or(e.masks.HighBits).Not()
}

// placeFood puts the food on a uniformly chosen free cell. It returns false
// and clears the food board when the snake covers every cell.
func (e *Engine) placeFood() bool {
	free := e.FreeCells()
	n := free.OnesCount()
	if n == 0 {
		e.food = bitboard.Empty
		return false
	}
	e.food = bitboard.Bit(free.Select(e.rng.Intn(n)))
	return true
}
