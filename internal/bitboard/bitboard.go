// Package bitboard implements a fixed 128-bit set of cell indices.
//
// A Board is a plain value: every operation returns a new Board and never
// allocates, so boards can be copied freely on the hot path.
package bitboard

import (
	"math/bits"
	"strconv"
	"strings"
)

// Width is the number of addressable bits in a Board.
const Width = 128

// Board is a 128-bit unsigned integer used as a bitset. Bit i set means
// cell i has the property the board models.
type Board struct {
	Lo uint64 // bits 0..63
	Hi uint64 // bits 64..127
}

// Empty is the board with no bits set.
var Empty = Board{}

// Bit returns a board with only bit i set. Out of range indices give Empty.
func Bit(i int) Board {
	switch {
	case i < 0 || i >= Width:
		return Empty
	case i < 64:
		return Board{Lo: 1 << uint(i)}
	default:
		return Board{Hi: 1 << uint(i-64)}
	}
}

// Range returns a board with bits [from, to) set.
func Range(from, to int) Board {
	var b Board
	for i := from; i < to; i++ {
		b = b.Set(i)
	}
	return b
}

func (b Board) Has(i int) bool {
	return b.Intersects(Bit(i))
}

func (b Board) Set(i int) Board {
	return b.Or(Bit(i))
}

func (b Board) Clear(i int) Board {
	return b.AndNot(Bit(i))
}

func (b Board) Or(o Board) Board {
	return Board{Lo: b.Lo | o.Lo, Hi: b.Hi | o.Hi}
}

func (b Board) And(o Board) Board {
	return Board{Lo: b.Lo & o.Lo, Hi: b.Hi & o.Hi}
}

// AndNot clears every bit of o from b.
func (b Board) AndNot(o Board) Board {
	return Board{Lo: b.Lo &^ o.Lo, Hi: b.Hi &^ o.Hi}
}

func (b Board) Not() Board {
	return Board{Lo: ^b.Lo, Hi: ^b.Hi}
}

func (b Board) IsZero() bool {
	return b.Lo == 0 && b.Hi == 0
}

// Intersects reports whether b and o share at least one set bit.
func (b Board) Intersects(o Board) bool {
	return b.Lo&o.Lo != 0 || b.Hi&o.Hi != 0
}

// Shl shifts toward higher indices. Bits pushed past bit 127 are lost.
func (b Board) Shl(n uint) Board {
	switch {
	case n == 0:
		return b
	case n >= Width:
		return Empty
	case n >= 64:
		return Board{Hi: b.Lo << (n - 64)}
	default:
		return Board{Lo: b.Lo << n, Hi: b.Hi<<n | b.Lo>>(64-n)}
	}
}

// Shr shifts toward lower indices. Bits pushed below bit 0 are lost.
func (b Board) Shr(n uint) Board {
	switch {
	case n == 0:
		return b
	case n >= Width:
		return Empty
	case n >= 64:
		return Board{Lo: b.Hi >> (n - 64)}
	default:
		return Board{Lo: b.Lo>>n | b.Hi<<(64-n), Hi: b.Hi >> n}
	}
}

func (b Board) OnesCount() int {
	return bits.OnesCount64(b.Lo) + bits.OnesCount64(b.Hi)
}

// TrailingZeros returns the index of the lowest set bit, or Width for Empty.
func (b Board) TrailingZeros() int {
	if b.Lo != 0 {
		return bits.TrailingZeros64(b.Lo)
	}
	return 64 + bits.TrailingZeros64(b.Hi)
}

// Select returns the index of the k-th set bit (0-based, lowest first),
// or -1 if b has k or fewer bits set.
func (b Board) Select(k int) int {
	if k < 0 {
		return -1
	}
	lo := bits.OnesCount64(b.Lo)
	word, base := b.Lo, 0
	if k >= lo {
		k -= lo
		word, base = b.Hi, 64
		if k >= bits.OnesCount64(word) {
			return -1
		}
	}
	// drop the k lowest set bits
	for ; k > 0; k-- {
		word &= word - 1
	}
	return base + bits.TrailingZeros64(word)
}

// Each calls fn with every set index in ascending order.
func (b Board) Each(fn func(i int)) {
	for w, word := range [2]uint64{b.Lo, b.Hi} {
		for word != 0 {
			fn(w*64 + bits.TrailingZeros64(word))
			word &= word - 1
		}
	}
}

// Indices returns the set indices in ascending order.
func (b Board) Indices() []int {
	out := make([]int, 0, b.OnesCount())
	b.Each(func(i int) { out = append(out, i) })
	return out
}

// String prints the set indices, e.g. "{3 8 17}".
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	b.Each(func(i int) {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(strconv.Itoa(i))
	})
	sb.WriteByte('}')
	return sb.String()
}
