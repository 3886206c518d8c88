// Package board implements the chess rules: board representation, move generation,
// legality, FEN and SAN, game status and undo/redo history.
package board

import "fmt"

// Square represents a square on the chess board (0-63).
// Squares are numbered row by row from the top-left: A8=0, H8=7, A1=56, H1=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A1
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	NoSquare Square = 64
)

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Row returns the board row counted from the top (0 = 8th rank).
func (sq Square) Row() int {
	return int(sq) >> 3
}

// Rank returns the rank of the square (0-7, where 0=1st rank, 7=8th rank).
func (sq Square) Rank() int {
	return 7 - sq.Row()
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// NewSquare creates a square from file and rank (0-indexed, rank 0 = 1st rank).
func NewSquare(file, rank int) Square {
	return Square((7-rank)*8 + file)
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, &InvalidSquareError{Text: s, Index: -1}
	}

	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, &InvalidSquareError{Text: s, Index: -1}
	}

	return NewSquare(file, rank), nil
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// checkSquare returns an InvalidSquareError for out-of-range indices.
func checkSquare(sq Square) error {
	if !sq.IsValid() {
		return &InvalidSquareError{Index: int(sq)}
	}
	return nil
}

// SquareColor returns the color of the square itself (a1 is dark).
func SquareColor(sq Square) (Color, error) {
	if err := checkSquare(sq); err != nil {
		return NoColor, err
	}
	if (sq.File()+sq.Rank())%2 == 0 {
		return Black, nil
	}
	return White, nil
}
