package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of squares, one bit per square index (bit 0 = a8, bit 63 = h1).
// The game uses one per color as its attack map.
type Bitboard uint64

// Empty is the bitboard with no squares set.
const Empty Bitboard = 0

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

// Set sets a bit at the given square.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | (1 << sq)
}

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return sq < NoSquare && b&(1<<sq) != 0
}

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the least significant bit (lowest square index).
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB removes and returns the least significant bit.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// Squares returns all squares that are set, in index order.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b != 0 {
		squares = append(squares, b.PopLSB())
	}
	return squares
}

// String returns a visual representation of the bitboard.
func (b Bitboard) String() string {
	var sb strings.Builder
	for sq := A8; sq < NoSquare; sq++ {
		if sq.File() == 0 {
			sb.WriteByte(byte('1' + sq.Rank()))
			sb.WriteByte(' ')
		}
		if b.IsSet(sq) {
			sb.WriteString("1 ")
		} else {
			sb.WriteString(". ")
		}
		if sq.File() == 7 {
			sb.WriteByte('\n')
		}
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
