package board

import (
	"fmt"
	"strings"
)

// MoveFlag is a set of independent move property bits.
type MoveFlag uint8

// Move flags
const (
	FlagNormal MoveFlag = 1 << iota
	FlagCapture
	FlagKingCastle
	FlagQueenCastle
	FlagPawnJump
	FlagPromotion
	FlagEnPassant
)

// Has reports whether all bits of f are set.
func (mf MoveFlag) Has(f MoveFlag) bool {
	return mf&f == f
}

// String lists the set flags, e.g. "capture|promotion".
func (mf MoveFlag) String() string {
	names := []string{"normal", "capture", "O-O", "O-O-O", "jump", "promotion", "e.p."}
	var parts []string
	for i, name := range names {
		if mf&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Move is a chess move. Callers submitting a move only need From, To and, for
// promotions, Promotion; the generator fills in Piece and Flags.
type Move struct {
	From      Square
	To        Square
	Piece     Piece
	Promotion PieceType // NoPieceType unless promoting
	Flags     MoveFlag
}

// NoMove represents an invalid or null move.
var NoMove = Move{From: NoSquare, To: NoSquare, Piece: NoPiece, Promotion: NoPieceType}

// NewMove creates a move request without promotion.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to, Piece: NoPiece, Promotion: NoPieceType}
}

// NewPromotion creates a promotion move request.
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move{From: from, To: to, Piece: NoPiece, Promotion: promo}
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Flags&FlagPromotion != 0
}

// IsCapture returns true if this move captures a piece (including en passant).
func (m Move) IsCapture() bool {
	return m.Flags&FlagCapture != 0
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	return m.Flags&(FlagKingCastle|FlagQueenCastle) != 0
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flags&FlagEnPassant != 0
}

// Matches reports whether m and other describe the same from/to/promotion triple.
func (m Move) Matches(other Move) bool {
	return m.From == other.From && m.To == other.To && m.Promotion == other.Promotion
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if !m.From.IsValid() || !m.To.IsValid() {
		return "0000"
	}

	s := m.From.String() + m.To.String()
	if m.Promotion != NoPieceType {
		s += string(m.Promotion.Char())
	}
	return s
}

// ParseMove parses a UCI format move string into a move request.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	if len(s) == 5 {
		promo := PieceTypeFromChar(s[4])
		if promo == NoPieceType {
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewPromotion(from, to, promo), nil
	}

	return NewMove(from, to), nil
}

// containsMove reports whether moves has an entry matching m.
func containsMove(moves []Move, m Move) (Move, bool) {
	for _, legal := range moves {
		if legal.Matches(m) {
			return legal, true
		}
	}
	return NoMove, false
}
