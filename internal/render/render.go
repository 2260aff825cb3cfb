// Package render draws engine state as text. Index 0 is the bottom right
// cell, so rows print from high to low and columns from high to low.
package render

import (
	"fmt"
	"strings"

	"bitsnake/internal/bitboard"
	"bitsnake/internal/env"
)

// Board draws the head (H), food (F), body (B) and empty cells (|) with a
// trailing space after each cell.
func Board(e *env.Engine) string {
	head, body, food := e.Head(), e.Body(), e.Food()
	return grid(e.Size(), func(i int) byte {
		switch {
		case head.Has(i):
			return 'H'
		case food.Has(i):
			return 'F'
		case body.Has(i):
			return 'B'
		default:
			return '|'
		}
	})
}

// Plane draws a single bitset as 1s and 0s.
func Plane(b bitboard.Board, size int) string {
	return grid(size, func(i int) byte {
		if b.Has(i) {
			return '1'
		}
		return '0'
	})
}

var planeNames = [env.NumPlanes]string{
	env.PlaneHead: "head",
	env.PlaneBody: "body",
	env.PlaneFood: "food",
}

// Observation draws each plane of an encoded observation under its name.
func Observation(obs []float32, size int) string {
	cells := size * size
	var sb strings.Builder
	for p := 0; p < env.NumPlanes && (p+1)*cells <= len(obs); p++ {
		plane := obs[p*cells : (p+1)*cells]
		sb.WriteString(planeNames[p])
		sb.WriteString(":\n")
		sb.WriteString(grid(size, func(i int) byte {
			if plane[i] > 0 {
				return '1'
			}
			return '0'
		}))
	}
	return sb.String()
}

// Status is a one-line summary of the counters.
func Status(e *env.Engine) string {
	s := fmt.Sprintf("tick: %d | score: %d | health: %d | length: %d",
		e.Tick(), e.Score(), e.Health(), e.Length())
	if e.Done() {
		s += " | DEAD: " + e.Outcome().String()
	}
	return s
}

func grid(size int, cell func(i int) byte) string {
	var sb strings.Builder
	sb.Grow(size * (2*size + 1))
	for r := size - 1; r >= 0; r-- {
		for c := size - 1; c >= 0; c-- {
			sb.WriteByte(cell(r*size + c))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
